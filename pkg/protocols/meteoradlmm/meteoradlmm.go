// Package meteoradlmm decodes Meteora's dynamic liquidity market maker
// (DLMM): swap, add/remove liquidity, and lb-pair initialization.
package meteoradlmm

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// ProgramID is the Meteora DLMM program address.
var ProgramID = solkey.MustFromBase58("LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo")

var (
	discSwap             = []byte{65, 75, 63, 76, 235, 91, 91, 136}
	discAddLiquidity     = []byte{181, 157, 89, 67, 143, 182, 52, 72}
	discRemoveLiquidity  = []byte{80, 85, 209, 72, 24, 206, 177, 108}
	discInitializeLbPair = []byte{45, 154, 237, 210, 221, 15, 166, 92}
)

const (
	accLbPair = 0
	accUser   = 5
)

func parseSwap(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	amountIn, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	minOut, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeMeteoraDlmmSwap
	return &event.MeteoraDlmmSwapEvent{
		Metadata:     *meta,
		LbPair:       protocol.AccountAt(accounts, accLbPair),
		User:         protocol.AccountAt(accounts, accUser),
		AmountIn:     amountIn,
		MinAmountOut: minOut,
	}, true
}

func parseAddLiquidity(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	amountX, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	amountY, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeMeteoraDlmmAddLiquidity
	return &event.MeteoraDlmmAddLiquidityEvent{
		Metadata: *meta,
		LbPair:   protocol.AccountAt(accounts, accLbPair),
		User:     protocol.AccountAt(accounts, accUser),
		AmountX:  amountX,
		AmountY:  amountY,
	}, true
}

func parseRemoveLiquidity(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	amountX, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	amountY, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeMeteoraDlmmRemoveLiquidity
	return &event.MeteoraDlmmRemoveLiquidityEvent{
		Metadata: *meta,
		LbPair:   protocol.AccountAt(accounts, accLbPair),
		User:     protocol.AccountAt(accounts, accUser),
		AmountX:  amountX,
		AmountY:  amountY,
	}, true
}

func parseInitializeLbPair(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	binStep, ok := byteutil.ReadU16LE(payload, 0)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeMeteoraDlmmInitializeLbPair
	return &event.MeteoraDlmmInitializeLbPairEvent{
		Metadata:   *meta,
		LbPair:     protocol.AccountAt(accounts, 0),
		TokenMintX: protocol.AccountAt(accounts, 2),
		TokenMintY: protocol.AccountAt(accounts, 3),
		BinStep:    binStep,
	}, true
}

// New builds the Meteora DLMM protocol.Decoder.
func New() *protocol.Descriptor {
	outer := []protocol.OuterRow{
		{Discriminator: discSwap, EventType: event.TypeMeteoraDlmmSwap, Parser: parseSwap},
		{Discriminator: discAddLiquidity, EventType: event.TypeMeteoraDlmmAddLiquidity, Parser: parseAddLiquidity},
		{Discriminator: discRemoveLiquidity, EventType: event.TypeMeteoraDlmmRemoveLiquidity, Parser: parseRemoveLiquidity},
		{Discriminator: discInitializeLbPair, EventType: event.TypeMeteoraDlmmInitializeLbPair, Parser: parseInitializeLbPair},
	}
	return protocol.New(ProgramID, event.ProtocolMeteoraDlmm, 8, outer, nil, nil)
}
