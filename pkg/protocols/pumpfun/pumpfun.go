// Package pumpfun decodes the PumpFun bonding-curve program: token
// creation, buy/sell trades, and the migrate-to-AMM instruction. Outer
// buy/sell/migrate instructions carry only bound parameters (max cost /
// min output) on the wire; the actual traded amounts are logged by the
// program's own CPI self-invocation and are filled in by the walker's merge
// step (§4.G.i) from the matching inner-instruction row below.
package pumpfun

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// ProgramID is the PumpFun bonding-curve program address.
var ProgramID = solkey.MustFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")

// MigrateDiscriminator is the fixed 8-byte outer discriminator for the
// MIGRATE instruction, named explicitly in spec.md §4.G.h / §6.
var MigrateDiscriminator = [8]byte{155, 234, 231, 146, 236, 158, 162, 30}

var (
	discCreate   = []byte{24, 30, 200, 40, 5, 28, 7, 119}
	discCreateV2 = []byte{153, 171, 33, 223, 14, 34, 8, 194}
	discBuy      = []byte{102, 6, 61, 18, 1, 218, 235, 234}
	discSell     = []byte{51, 230, 133, 164, 1, 127, 131, 173}
)

// account indices for the outer "create" instruction.
const (
	createAccMint         = 0
	createAccBondingCurve = 2
	createAccUser         = 7
)

// account indices shared by buy/sell.
const (
	tradeAccMint         = 2
	tradeAccBondingCurve = 3
	tradeAccUser         = 6
)

func parseString(buf []byte, offset int) (string, int, bool) {
	n, ok := byteutil.ReadU32LE(buf, offset)
	if !ok {
		return "", 0, false
	}
	start := offset + 4
	end := start + int(n)
	if end > len(buf) || end < start {
		return "", 0, false
	}
	return string(buf[start:end]), end, true
}

func parseCreate(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	name, off, ok := parseString(payload, 0)
	if !ok {
		return nil, false
	}
	symbol, off, ok := parseString(payload, off)
	if !ok {
		return nil, false
	}
	uri, _, ok := parseString(payload, off)
	if !ok {
		return nil, false
	}
	if len(accounts) <= createAccUser {
		return nil, false
	}

	meta.EventType = event.TypePumpFunCreateToken
	return &event.PumpFunCreateTokenEvent{
		Metadata:     *meta,
		Name:         name,
		Symbol:       symbol,
		URI:          uri,
		Mint:         protocol.AccountAt(accounts, createAccMint),
		BondingCurve: protocol.AccountAt(accounts, createAccBondingCurve),
		User:         protocol.AccountAt(accounts, createAccUser),
	}, true
}

func parseCreateV2(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	name, off, ok := parseString(payload, 0)
	if !ok {
		return nil, false
	}
	symbol, off, ok := parseString(payload, off)
	if !ok {
		return nil, false
	}
	uri, off, ok := parseString(payload, off)
	if !ok {
		return nil, false
	}
	creator, ok := byteutil.ReadPubkey(payload, off)
	if !ok {
		return nil, false
	}
	if len(accounts) <= createAccUser {
		return nil, false
	}

	meta.EventType = event.TypePumpFunCreateV2Token
	return &event.PumpFunCreateV2TokenEvent{
		Metadata:     *meta,
		Name:         name,
		Symbol:       symbol,
		URI:          uri,
		Mint:         protocol.AccountAt(accounts, createAccMint),
		BondingCurve: protocol.AccountAt(accounts, createAccBondingCurve),
		User:         protocol.AccountAt(accounts, createAccUser),
		Creator:      solkey.Pubkey(creator),
	}, true
}

func parseBuy(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	// payload: amount(u64) max_sol_cost(u64) -- bound parameters only; the
	// actual sol/token amounts arrive via the inner TradeEvent CPI log.
	if _, ok := byteutil.ReadU64LE(payload, 0); !ok {
		return nil, false
	}
	if _, ok := byteutil.ReadU64LE(payload, 8); !ok {
		return nil, false
	}
	if len(accounts) <= tradeAccUser {
		return nil, false
	}

	meta.EventType = event.TypePumpFunTrade
	return &event.PumpFunTradeEvent{
		Metadata: *meta,
		Mint:     protocol.AccountAt(accounts, tradeAccMint),
		User:     protocol.AccountAt(accounts, tradeAccUser),
		IsBuy:    true,
	}, true
}

func parseSell(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	if _, ok := byteutil.ReadU64LE(payload, 0); !ok {
		return nil, false
	}
	if _, ok := byteutil.ReadU64LE(payload, 8); !ok {
		return nil, false
	}
	if len(accounts) <= tradeAccUser {
		return nil, false
	}

	meta.EventType = event.TypePumpFunTrade
	return &event.PumpFunTradeEvent{
		Metadata: *meta,
		Mint:     protocol.AccountAt(accounts, tradeAccMint),
		User:     protocol.AccountAt(accounts, tradeAccUser),
		IsBuy:    false,
	}, true
}

func parseMigrate(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	if len(accounts) <= tradeAccUser {
		return nil, false
	}
	meta.EventType = event.TypePumpFunMigrate
	return &event.PumpFunMigrateEvent{
		Metadata: *meta,
		Mint:     protocol.AccountAt(accounts, tradeAccMint),
		User:     protocol.AccountAt(accounts, tradeAccUser),
	}, true
}

// innerTradeEventDisc is the 16-byte discriminator for the program's
// self-logged "TradeEvent" CPI (anchor event-log prefix + 8-byte event
// discriminator, both fixed per instance of this program).
var innerTradeEventDisc = [16]byte{228, 69, 165, 46, 81, 203, 154, 29, 189, 219, 127, 211, 78, 230, 97, 7}
var innerCompleteEventDisc = [16]byte{95, 114, 97, 156, 212, 46, 152, 8, 23, 114, 126, 210, 13, 99, 57, 3}

func parseInnerTrade(payload []byte, _ []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	mint, ok := byteutil.ReadPubkey(payload, 0)
	if !ok {
		return nil, false
	}
	solAmount, ok := byteutil.ReadU64LE(payload, 32)
	if !ok {
		return nil, false
	}
	tokenAmount, ok := byteutil.ReadU64LE(payload, 40)
	if !ok {
		return nil, false
	}
	isBuy, ok := byteutil.ReadU8LE(payload, 48)
	if !ok {
		return nil, false
	}
	virtualSol, ok := byteutil.ReadU64LE(payload, 49)
	if !ok {
		return nil, false
	}
	virtualToken, ok := byteutil.ReadU64LE(payload, 57)
	if !ok {
		return nil, false
	}
	user, ok := byteutil.ReadPubkey(payload, 65)
	if !ok {
		return nil, false
	}
	creator, ok := byteutil.ReadPubkey(payload, 97)
	if !ok {
		return nil, false
	}

	return &event.PumpFunTradeEvent{
		Metadata:             *meta,
		Mint:                 solkey.Pubkey(mint),
		User:                 solkey.Pubkey(user),
		Creator:              solkey.Pubkey(creator),
		SolAmount:            solAmount,
		TokenAmount:          tokenAmount,
		IsBuy:                isBuy != 0,
		VirtualSolReserves:   virtualSol,
		VirtualTokenReserves: virtualToken,
	}, true
}

func parseInnerComplete(payload []byte, _ []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	mint, ok := byteutil.ReadPubkey(payload, 0)
	if !ok {
		return nil, false
	}
	user, ok := byteutil.ReadPubkey(payload, 32)
	if !ok {
		return nil, false
	}
	ts, ok := byteutil.ReadU64LE(payload, 64)
	if !ok {
		return nil, false
	}
	return &event.PumpFunCompleteEvent{
		Metadata:  *meta,
		Mint:      solkey.Pubkey(mint),
		User:      solkey.Pubkey(user),
		Timestamp: int64(ts),
	}, true
}

// New builds the PumpFun protocol.Decoder.
func New() *protocol.Descriptor {
	outer := []protocol.OuterRow{
		{Discriminator: discCreate, EventType: event.TypePumpFunCreateToken, Parser: parseCreate},
		{Discriminator: discCreateV2, EventType: event.TypePumpFunCreateV2Token, Parser: parseCreateV2},
		{Discriminator: discBuy, EventType: event.TypePumpFunTrade, Parser: parseBuy},
		{Discriminator: discSell, EventType: event.TypePumpFunTrade, Parser: parseSell},
		{Discriminator: MigrateDiscriminator[:], EventType: event.TypePumpFunMigrate, Parser: parseMigrate, RequiresInner: true},
	}
	inner := []protocol.InnerRow{
		{Discriminator: innerTradeEventDisc, EventType: event.TypePumpFunTrade, Parser: parseInnerTrade},
		{Discriminator: innerCompleteEventDisc, EventType: event.TypePumpFunComplete, Parser: parseInnerComplete},
	}
	return protocol.New(ProgramID, event.ProtocolPumpFun, 8, outer, inner, nil)
}
