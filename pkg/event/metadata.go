// Package event defines the closed set of decoded trading events this
// pipeline emits: EventMetadata, the Protocol and Type tags, SwapData, and
// one struct per (protocol, instruction-kind) variant. The tagged union is
// expressed as a Go interface plus one concrete type per variant rather
// than a class hierarchy: the dispatcher and the post-processor become type
// switches, with no fallback case ever silently matching the wrong variant.
package event

import "github.com/Estereg/solana-streamer/pkg/solkey"

// Protocol tags every emitted event with the decoder module that produced
// it. Stamped by the dispatcher before the parser runs; the parser itself
// never sets it.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolCommon           // compute-budget program
	ProtocolPumpFun
	ProtocolPumpSwap
	ProtocolBonk
	ProtocolRaydiumAmmV4
	ProtocolRaydiumCpmm
	ProtocolRaydiumClmm
	ProtocolMeteoraDlmm
)

func (p Protocol) String() string {
	switch p {
	case ProtocolCommon:
		return "Common"
	case ProtocolPumpFun:
		return "PumpFun"
	case ProtocolPumpSwap:
		return "PumpSwap"
	case ProtocolBonk:
		return "Bonk"
	case ProtocolRaydiumAmmV4:
		return "RaydiumAmmV4"
	case ProtocolRaydiumCpmm:
		return "RaydiumCpmm"
	case ProtocolRaydiumClmm:
		return "RaydiumClmm"
	case ProtocolMeteoraDlmm:
		return "MeteoraDlmm"
	default:
		return "Unknown"
	}
}

// Type enumerates every (protocol, instruction-kind) event variant this
// pipeline can emit, plus the account-snapshot kinds from §4.J.
type Type int

const (
	TypeUnknown Type = iota

	TypeComputeBudgetSetComputeUnitLimit
	TypeComputeBudgetSetComputeUnitPrice

	TypePumpFunCreateToken
	TypePumpFunCreateV2Token
	TypePumpFunTrade
	TypePumpFunMigrate
	TypePumpFunComplete

	TypePumpSwapCreatePool
	TypePumpSwapBuy
	TypePumpSwapBuyExactQuoteIn
	TypePumpSwapSell
	TypePumpSwapDeposit
	TypePumpSwapWithdraw

	TypeBonkPoolCreate
	TypeBonkTrade

	TypeRaydiumAmmV4SwapBaseIn
	TypeRaydiumAmmV4SwapBaseOut
	TypeRaydiumAmmV4Deposit
	TypeRaydiumAmmV4Withdraw
	TypeRaydiumAmmV4Initialize2

	TypeRaydiumCpmmSwap
	TypeRaydiumCpmmWithdraw
	TypeRaydiumCpmmDeposit
	TypeRaydiumCpmmInitialize

	TypeRaydiumClmmSwap
	TypeRaydiumClmmSwapV2
	TypeRaydiumClmmIncreaseLiquidity
	TypeRaydiumClmmDecreaseLiquidity

	TypeMeteoraDlmmSwap
	TypeMeteoraDlmmAddLiquidity
	TypeMeteoraDlmmRemoveLiquidity
	TypeMeteoraDlmmInitializeLbPair

	TypeNonceAccount
	TypeTokenInfo
	TypeTokenAccount
)

// SwapData is the normalized {from, to, amounts, user} summary of a swap,
// filled in either directly by a parser or by the post-processor (§4.I).
type SwapData struct {
	FromMint   solkey.Pubkey
	ToMint     solkey.Pubkey
	FromAmount uint64
	ToAmount   uint64
	User       solkey.Pubkey
}

// Metadata is attached to every emitted event.
type Metadata struct {
	Signature   solkey.Signature
	Slot        uint64
	BlockTimeS  int64
	BlockTimeMs int64

	ProtocolTag Protocol
	EventType   Type
	ProgramID   solkey.Pubkey

	OuterIndex int64
	InnerIndex *int64 // nil for an outer-instruction event

	RecvUs   int64
	HandleUs int64

	TransactionIndex *uint64
	SwapData         *SwapData
}

// Event is implemented by every emitted variant. Meta returns a pointer to
// the variant's embedded Metadata so the walker and post-processor can fill
// in handle_us, swap_data, and the dev-wallet flags after the parser returns.
type Event interface {
	Meta() *Metadata
}
