// Package raydiumammv4 decodes Raydium's legacy AMM-V4 program, the one
// protocol in this pipeline whose instructions carry a single-byte
// discriminator rather than the 8-byte anchor-style tag everyone else uses
// (§3, §4.E: "AMM-V4").
package raydiumammv4

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// ProgramID is the Raydium AMM-V4 program address.
var ProgramID = solkey.MustFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")

const (
	discSwapBaseIn  = 9
	discSwapBaseOut = 11
	discDeposit     = 3
	discWithdraw    = 4
	discInitialize2 = 1
)

const (
	accAmmID     = 1
	accUserOwner = 17
)

const (
	swapAccUserSource = 15
	swapAccUserDest   = 16
)

func parseSwapBaseIn(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	amountIn, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	minOut, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumAmmV4SwapBaseIn
	return &event.RaydiumAmmV4SwapBaseInEvent{
		Metadata:               *meta,
		AmmID:                  protocol.AccountAt(accounts, accAmmID),
		UserSourceTokenAccount: protocol.AccountAt(accounts, swapAccUserSource),
		UserDestTokenAccount:   protocol.AccountAt(accounts, swapAccUserDest),
		UserOwner:              protocol.AccountAt(accounts, accUserOwner),
		AmountIn:               amountIn,
		MinimumAmountOut:       minOut,
	}, true
}

func parseSwapBaseOut(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	maxIn, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	amountOut, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumAmmV4SwapBaseOut
	return &event.RaydiumAmmV4SwapBaseOutEvent{
		Metadata:               *meta,
		AmmID:                  protocol.AccountAt(accounts, accAmmID),
		UserSourceTokenAccount: protocol.AccountAt(accounts, swapAccUserSource),
		UserDestTokenAccount:   protocol.AccountAt(accounts, swapAccUserDest),
		UserOwner:              protocol.AccountAt(accounts, accUserOwner),
		MaxAmountIn:            maxIn,
		AmountOut:              amountOut,
	}, true
}

func parseDeposit(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	maxCoin, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	maxPc, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}
	baseSide, ok := byteutil.ReadU64LE(payload, 16)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumAmmV4Deposit
	return &event.RaydiumAmmV4DepositEvent{
		Metadata:      *meta,
		AmmID:         protocol.AccountAt(accounts, accAmmID),
		UserOwner:     protocol.AccountAt(accounts, accUserOwner),
		MaxCoinAmount: maxCoin,
		MaxPcAmount:   maxPc,
		BaseSide:      baseSide,
	}, true
}

func parseWithdraw(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	amount, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumAmmV4Withdraw
	return &event.RaydiumAmmV4WithdrawEvent{
		Metadata:  *meta,
		AmmID:     protocol.AccountAt(accounts, accAmmID),
		UserOwner: protocol.AccountAt(accounts, accUserOwner),
		Amount:    amount,
	}, true
}

func parseInitialize2(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	nonce, ok := byteutil.ReadU8LE(payload, 0)
	if !ok {
		return nil, false
	}
	openTime, ok := byteutil.ReadU64LE(payload, 1)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumAmmV4Initialize2
	return &event.RaydiumAmmV4Initialize2Event{
		Metadata:  *meta,
		AmmID:     protocol.AccountAt(accounts, accAmmID),
		UserOwner: protocol.AccountAt(accounts, 17),
		CoinMint:  protocol.AccountAt(accounts, 8),
		PcMint:    protocol.AccountAt(accounts, 9),
		Nonce:     nonce,
		OpenTime:  openTime,
	}, true
}

// New builds the Raydium AMM-V4 protocol.Decoder. Its discriminator length
// is 1 byte, unlike every other protocol in this pipeline.
func New() *protocol.Descriptor {
	outer := []protocol.OuterRow{
		{Discriminator: []byte{discSwapBaseIn}, EventType: event.TypeRaydiumAmmV4SwapBaseIn, Parser: parseSwapBaseIn},
		{Discriminator: []byte{discSwapBaseOut}, EventType: event.TypeRaydiumAmmV4SwapBaseOut, Parser: parseSwapBaseOut},
		{Discriminator: []byte{discDeposit}, EventType: event.TypeRaydiumAmmV4Deposit, Parser: parseDeposit},
		{Discriminator: []byte{discWithdraw}, EventType: event.TypeRaydiumAmmV4Withdraw, Parser: parseWithdraw},
		{Discriminator: []byte{discInitialize2}, EventType: event.TypeRaydiumAmmV4Initialize2, Parser: parseInitialize2},
	}
	return protocol.New(ProgramID, event.ProtocolRaydiumAmmV4, 1, outer, nil, nil)
}
