// Package raydiumclmm decodes Raydium's concentrated-liquidity AMM (CLMM):
// swap and SwapV2, plus liquidity increase/decrease. Sqrt-price limits and
// liquidity deltas are on-wire u128 values, represented here as Lo/Hi
// uint64 pairs per the byteutil.ReadU128LE convention.
package raydiumclmm

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// ProgramID is the Raydium CLMM program address.
var ProgramID = solkey.MustFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")

var (
	discSwap               = []byte{248, 198, 158, 145, 225, 117, 135, 200}
	discSwapV2             = []byte{43, 4, 237, 11, 26, 201, 30, 98}
	discIncreaseLiquidity  = []byte{133, 29, 89, 223, 69, 238, 176, 10}
	discDecreaseLiquidity  = []byte{58, 127, 188, 62, 79, 82, 196, 96}
)

const (
	accPoolState = 2
	accPayer     = 0
	accOwner     = 0
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
	lo, hi, ok := byteutil.ReadU128LE(payload, 16)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumClmmSwap
	return &event.RaydiumClmmSwapEvent{
		Metadata:            *meta,
		PoolState:           protocol.AccountAt(accounts, accPoolState),
		Payer:               protocol.AccountAt(accounts, accPayer),
		AmountIn:            amountIn,
		AmountOutMinimum:    minOut,
		SqrtPriceLimitX64Lo: lo,
		SqrtPriceLimitX64Hi: hi,
	}, true
}

func parseSwapV2(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	amountIn, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	minOut, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}
	lo, hi, ok := byteutil.ReadU128LE(payload, 16)
	if !ok {
		return nil, false
	}
	isBaseInput, ok := byteutil.ReadOptionBool(payload, 32)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumClmmSwapV2
	ev := &event.RaydiumClmmSwapV2Event{
		Metadata:            *meta,
		PoolState:           protocol.AccountAt(accounts, accPoolState),
		Payer:               protocol.AccountAt(accounts, accPayer),
		AmountIn:            amountIn,
		AmountOutMinimum:    minOut,
		SqrtPriceLimitX64Lo: lo,
		SqrtPriceLimitX64Hi: hi,
	}
	if isBaseInput != nil {
		ev.IsBaseInput = *isBaseInput
	}
	return ev, true
}

func parseIncreaseLiquidity(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	lo, hi, ok := byteutil.ReadU128LE(payload, 0)
	if !ok {
		return nil, false
	}
	max0, ok := byteutil.ReadU64LE(payload, 16)
	if !ok {
		return nil, false
	}
	max1, ok := byteutil.ReadU64LE(payload, 24)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumClmmIncreaseLiquidity
	return &event.RaydiumClmmIncreaseLiquidityEvent{
		Metadata:    *meta,
		PoolState:   protocol.AccountAt(accounts, accPoolState),
		Owner:       protocol.AccountAt(accounts, accOwner),
		LiquidityLo: lo,
		LiquidityHi: hi,
		AmountMax0:  max0,
		AmountMax1:  max1,
	}, true
}

func parseDecreaseLiquidity(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	lo, hi, ok := byteutil.ReadU128LE(payload, 0)
	if !ok {
		return nil, false
	}
	min0, ok := byteutil.ReadU64LE(payload, 16)
	if !ok {
		return nil, false
	}
	min1, ok := byteutil.ReadU64LE(payload, 24)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumClmmDecreaseLiquidity
	return &event.RaydiumClmmDecreaseLiquidityEvent{
		Metadata:    *meta,
		PoolState:   protocol.AccountAt(accounts, accPoolState),
		Owner:       protocol.AccountAt(accounts, accOwner),
		LiquidityLo: lo,
		LiquidityHi: hi,
		AmountMin0:  min0,
		AmountMin1:  min1,
	}, true
}

// New builds the Raydium CLMM protocol.Decoder.
func New() *protocol.Descriptor {
	outer := []protocol.OuterRow{
		{Discriminator: discSwap, EventType: event.TypeRaydiumClmmSwap, Parser: parseSwap},
		{Discriminator: discSwapV2, EventType: event.TypeRaydiumClmmSwapV2, Parser: parseSwapV2},
		{Discriminator: discIncreaseLiquidity, EventType: event.TypeRaydiumClmmIncreaseLiquidity, Parser: parseIncreaseLiquidity},
		{Discriminator: discDecreaseLiquidity, EventType: event.TypeRaydiumClmmDecreaseLiquidity, Parser: parseDecreaseLiquidity},
	}
	return protocol.New(ProgramID, event.ProtocolRaydiumClmm, 8, outer, nil, nil)
}
