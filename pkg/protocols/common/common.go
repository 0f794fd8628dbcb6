// Package common decodes the compute-budget program's instructions. It is
// not one of the seven DEX protocols, but it shares the dispatcher's
// program-id/discriminator shape (§4.F: dispatch_compute_budget_instruction)
// and is tagged event.ProtocolCommon.
package common

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// ProgramID is the compute-budget program address.
var ProgramID = solkey.MustFromBase58("ComputeBudget111111111111111111111111111111")

const (
	discRequestUnitsDeprecated            = 0
	discRequestHeapFrame                  = 1
	discSetComputeUnitLimit               = 2
	discSetComputeUnitPrice               = 3
	discSetLoadedAccountsDataSizeLimit    = 4
)

// DecodeInstruction decodes a compute-budget instruction's raw payload
// (discriminator included, it is a single byte with no further tag length
// convention to strip beforehand). Returns (nil, false) for unrecognized or
// malformed payloads.
func DecodeInstruction(data []byte, meta *event.Metadata) (event.Event, bool) {
	disc, ok := byteutil.ReadU8LE(data, 0)
	if !ok {
		return nil, false
	}

	switch disc {
	case discSetComputeUnitLimit:
		units, ok := byteutil.ReadU32LE(data, 1)
		if !ok {
			return nil, false
		}
		meta.EventType = event.TypeComputeBudgetSetComputeUnitLimit
		return &event.ComputeBudgetSetComputeUnitLimitEvent{Metadata: *meta, Units: units}, true

	case discSetComputeUnitPrice:
		micro, ok := byteutil.ReadU64LE(data, 1)
		if !ok {
			return nil, false
		}
		meta.EventType = event.TypeComputeBudgetSetComputeUnitPrice
		return &event.ComputeBudgetSetComputeUnitPriceEvent{Metadata: *meta, MicroLamports: micro}, true

	default:
		return nil, false
	}
}
