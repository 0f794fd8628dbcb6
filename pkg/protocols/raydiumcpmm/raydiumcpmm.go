// Package raydiumcpmm decodes Raydium's constant-product AMM program
// (CPMM): swap, deposit, withdraw and pool initialization. Account layouts
// below follow the concrete 13/14/15-account instruction shapes named in
// spec.md §8 scenarios 1 and 2.
package raydiumcpmm

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// ProgramID is the Raydium CPMM program address.
var ProgramID = solkey.MustFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C")

var (
	discSwapBaseIn  = []byte{143, 190, 90, 218, 196, 30, 51, 222}
	discWithdraw    = []byte{183, 18, 70, 156, 148, 109, 161, 34}
	discDeposit     = []byte{242, 35, 198, 137, 82, 225, 242, 182}
	discInitialize  = []byte{175, 175, 109, 31, 13, 152, 155, 237}
)

// account indices for Swap (13 accounts, §8 scenario 1).
const (
	swapAccPoolState          = 3
	swapAccInputTokenAccount  = 5
	swapAccOutputTokenAccount = 6
	swapAccPayer              = 0
)

// account indices for Withdraw (14 accounts + a 15th reference that may be
// out of range, §8 scenario 2).
const (
	withdrawAccOwner     = 0
	withdrawAccPoolState = 2
)

// account indices for Deposit, mirroring Withdraw's shape.
const (
	depositAccOwner     = 0
	depositAccPoolState = 2
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

	meta.EventType = event.TypeRaydiumCpmmSwap
	return &event.RaydiumCpmmSwapEvent{
		Metadata:           *meta,
		PoolState:          protocol.AccountAt(accounts, swapAccPoolState),
		InputTokenAccount:  protocol.AccountAt(accounts, swapAccInputTokenAccount),
		OutputTokenAccount: protocol.AccountAt(accounts, swapAccOutputTokenAccount),
		Payer:              protocol.AccountAt(accounts, swapAccPayer),
		AmountIn:           amountIn,
		MinimumAmountOut:   minOut,
	}, true
}

func parseWithdraw(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	lpAmount, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	min0, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}
	min1, ok := byteutil.ReadU64LE(payload, 16)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumCpmmWithdraw
	return &event.RaydiumCpmmWithdrawEvent{
		Metadata:            *meta,
		PoolState:           protocol.AccountAt(accounts, withdrawAccPoolState),
		Owner:               protocol.AccountAt(accounts, withdrawAccOwner),
		LpTokenAmount:       lpAmount,
		MinimumToken0Amount: min0,
		MinimumToken1Amount: min1,
	}, true
}

func parseDeposit(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	lpAmount, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}
	max0, ok := byteutil.ReadU64LE(payload, 8)
	if !ok {
		return nil, false
	}
	max1, ok := byteutil.ReadU64LE(payload, 16)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumCpmmDeposit
	return &event.RaydiumCpmmDepositEvent{
		Metadata:            *meta,
		PoolState:           protocol.AccountAt(accounts, depositAccPoolState),
		Owner:               protocol.AccountAt(accounts, depositAccOwner),
		LpTokenAmount:       lpAmount,
		MaximumToken0Amount: max0,
		MaximumToken1Amount: max1,
	}, true
}

func parseInitialize(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	openTime, ok := byteutil.ReadU64LE(payload, 0)
	if !ok {
		return nil, false
	}

	meta.EventType = event.TypeRaydiumCpmmInitialize
	return &event.RaydiumCpmmInitializeEvent{
		Metadata:   *meta,
		PoolState:  protocol.AccountAt(accounts, 4),
		Creator:    protocol.AccountAt(accounts, 0),
		Token0Mint: protocol.AccountAt(accounts, 6),
		Token1Mint: protocol.AccountAt(accounts, 7),
		OpenTime:   openTime,
	}, true
}

// New builds the Raydium CPMM protocol.Decoder.
func New() *protocol.Descriptor {
	outer := []protocol.OuterRow{
		{Discriminator: discSwapBaseIn, EventType: event.TypeRaydiumCpmmSwap, Parser: parseSwap},
		{Discriminator: discWithdraw, EventType: event.TypeRaydiumCpmmWithdraw, Parser: parseWithdraw},
		{Discriminator: discDeposit, EventType: event.TypeRaydiumCpmmDeposit, Parser: parseDeposit},
		{Discriminator: discInitialize, EventType: event.TypeRaydiumCpmmInitialize, Parser: parseInitialize},
	}
	return protocol.New(ProgramID, event.ProtocolRaydiumCpmm, 8, outer, nil, nil)
}
