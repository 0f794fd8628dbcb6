// Package bonk decodes the Bonk launchpad program: pool creation and
// buy/sell trades on its bonding curve. Mirrors pumpfun's shape closely
// since both are bonding-curve launchpads, but Bonk reports sol/token
// amounts directly in the outer instruction instead of via a CPI log.
package bonk

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// ProgramID is the Bonk launchpad program address.
var ProgramID = solkey.MustFromBase58("LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj")

var (
	discPoolCreate = []byte{233, 146, 209, 142, 207, 104, 64, 188}
	discBuy        = []byte{250, 234, 13, 123, 213, 156, 19, 236}
	discSell       = []byte{149, 39, 222, 155, 211, 124, 152, 26}
)

const (
	poolCreateAccPool      = 0
	poolCreateAccBaseMint  = 2
	poolCreateAccQuoteMint = 3
	poolCreateAccCreator   = 6
)

const (
	tradeAccPool = 1
	tradeAccUser = 0
)

func parsePoolCreate(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	// No parameters beyond fixed-size bookkeeping fields are required for
	// the pool-create event itself; a payload of at least 8 bytes still must
	// be present for this to be a genuine instance of the instruction.
	if len(payload) < 8 {
		return nil, false
	}
	if len(accounts) <= poolCreateAccCreator {
		return nil, false
	}

	meta.EventType = event.TypeBonkPoolCreate
	return &event.BonkPoolCreateEvent{
		Metadata:  *meta,
		Pool:      protocol.AccountAt(accounts, poolCreateAccPool),
		BaseMint:  protocol.AccountAt(accounts, poolCreateAccBaseMint),
		QuoteMint: protocol.AccountAt(accounts, poolCreateAccQuoteMint),
		Creator:   protocol.AccountAt(accounts, poolCreateAccCreator),
	}, true
}

func parseTrade(isBuy bool) protocol.ParserFunc {
	return func(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
		amountIn, ok := byteutil.ReadU64LE(payload, 0)
		if !ok {
			return nil, false
		}
		amountOut, ok := byteutil.ReadU64LE(payload, 8)
		if !ok {
			return nil, false
		}
		if len(accounts) <= tradeAccPool {
			return nil, false
		}

		meta.EventType = event.TypeBonkTrade
		return &event.BonkTradeEvent{
			Metadata:  *meta,
			Pool:      protocol.AccountAt(accounts, tradeAccPool),
			User:      protocol.AccountAt(accounts, tradeAccUser),
			AmountIn:  amountIn,
			AmountOut: amountOut,
			IsBuy:     isBuy,
		}, true
	}
}

// New builds the Bonk protocol.Decoder.
func New() *protocol.Descriptor {
	outer := []protocol.OuterRow{
		{Discriminator: discPoolCreate, EventType: event.TypeBonkPoolCreate, Parser: parsePoolCreate},
		{Discriminator: discBuy, EventType: event.TypeBonkTrade, Parser: parseTrade(true)},
		{Discriminator: discSell, EventType: event.TypeBonkTrade, Parser: parseTrade(false)},
	}
	return protocol.New(ProgramID, event.ProtocolBonk, 8, outer, nil, nil)
}
