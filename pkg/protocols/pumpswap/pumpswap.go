// Package pumpswap decodes PumpFun's constant-product AMM (the venue a
// bonding curve migrates liquidity into once it completes): pool creation,
// buy/sell in both quote- and base-denominated forms, and deposit/withdraw.
package pumpswap

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// ProgramID is the PumpSwap AMM program address.
var ProgramID = solkey.MustFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")

var (
	discCreatePool      = []byte{233, 146, 209, 142, 207, 104, 64, 188}
	discBuy             = []byte{102, 6, 61, 18, 1, 218, 235, 234}
	discBuyExactQuoteIn = []byte{203, 128, 98, 173, 0, 18, 65, 214}
	discSell            = []byte{51, 230, 133, 164, 1, 127, 131, 173}
	discDeposit         = []byte{242, 35, 198, 137, 82, 225, 242, 182}
	discWithdraw        = []byte{183, 18, 70, 156, 148, 109, 161, 34}
)

// Account layout is consistent across buy/sell/deposit/withdraw: pool,
// user, base mint, quote mint are at the same positions.
const (
	accPool      = 0
	accUser      = 1
	accBaseMint  = 3
	accQuoteMint = 4
)

func parseCreatePool(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	baseIn, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	quoteIn, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypePumpSwapCreatePool
	return &event.PumpSwapCreatePoolEvent{
		Metadata:      *meta,
		Pool:          protocol.AccountAt(accounts, accPool),
		BaseMint:      protocol.AccountAt(accounts, accBaseMint),
		QuoteMint:     protocol.AccountAt(accounts, accQuoteMint),
		Creator:       protocol.AccountAt(accounts, accUser),
		BaseAmountIn:  baseIn,
		QuoteAmountIn: quoteIn,
	}, true
}

func parseBuy(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	baseOut, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	maxQuoteIn, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypePumpSwapBuy
	return &event.PumpSwapBuyEvent{
		Metadata:      *meta,
		Pool:          protocol.AccountAt(accounts, accPool),
		User:          protocol.AccountAt(accounts, accUser),
		BaseMint:      protocol.AccountAt(accounts, accBaseMint),
		QuoteMint:     protocol.AccountAt(accounts, accQuoteMint),
		BaseAmountOut: baseOut,
		QuoteAmountIn: maxQuoteIn,
	}, true
}

func parseBuyExactQuoteIn(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	quoteIn, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	minBaseOut, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypePumpSwapBuyExactQuoteIn
	return &event.PumpSwapBuyExactQuoteInEvent{
		Metadata:      *meta,
		Pool:          protocol.AccountAt(accounts, accPool),
		User:          protocol.AccountAt(accounts, accUser),
		BaseMint:      protocol.AccountAt(accounts, accBaseMint),
		QuoteMint:     protocol.AccountAt(accounts, accQuoteMint),
		QuoteAmountIn: quoteIn,
		BaseAmountOut: minBaseOut,
	}, true
}

func parseSell(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	baseIn, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	minQuoteOut, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypePumpSwapSell
	return &event.PumpSwapSellEvent{
		Metadata:       *meta,
		Pool:           protocol.AccountAt(accounts, accPool),
		User:           protocol.AccountAt(accounts, accUser),
		BaseMint:       protocol.AccountAt(accounts, accBaseMint),
		QuoteMint:      protocol.AccountAt(accounts, accQuoteMint),
		BaseAmountIn:   baseIn,
		QuoteAmountOut: minQuoteOut,
	}, true
}

func parseDeposit(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	lpOut, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	maxBaseIn, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}
	maxQuoteIn, ok := byteutil.ReadU64LE(payload, 16)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypePumpSwapDeposit
	return &event.PumpSwapDepositEvent{
		Metadata:         *meta,
		Pool:             protocol.AccountAt(accounts, accPool),
		User:             protocol.AccountAt(accounts, accUser),
		BaseAmountIn:     maxBaseIn,
		QuoteAmountIn:    maxQuoteIn,
		LpTokenAmountOut: lpOut,
	}, true
}

func parseWithdraw(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	lpIn, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	minBaseOut, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}
	minQuoteOut, ok := byteutil.ReadU64LE(payload, 16)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypePumpSwapWithdraw
	return &event.PumpSwapWithdrawEvent{
		Metadata:        *meta,
		Pool:            protocol.AccountAt(accounts, accPool),
		User:            protocol.AccountAt(accounts, accUser),
		LpTokenAmountIn: lpIn,
		BaseAmountOut:   minBaseOut,
		QuoteAmountOut:  minQuoteOut,
	}, true
}

// New builds the PumpSwap protocol.Decoder.
func New() *protocol.Descriptor {
	outer := []protocol.OuterRow{
		{Discriminator: discCreatePool, EventType: event.TypePumpSwapCreatePool, Parser: parseCreatePool},
		{Discriminator: discBuy, EventType: event.TypePumpSwapBuy, Parser: parseBuy},
		{Discriminator: discBuyExactQuoteIn, EventType: event.TypePumpSwapBuyExactQuoteIn, Parser: parseBuyExactQuoteIn},
		{Discriminator: discSell, EventType: event.TypePumpSwapSell, Parser: parseSell},
		{Discriminator: discDeposit, EventType: event.TypePumpSwapDeposit, Parser: parseDeposit},
		{Discriminator: discWithdraw, EventType: event.TypePumpSwapWithdraw, Parser: parseWithdraw},
	}
	return protocol.New(ProgramID, event.ProtocolPumpSwap, 8, outer, nil, nil)
}
