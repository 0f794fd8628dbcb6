package dispatch

import (
	"testing"

	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocols/common"
	"github.com/Estereg/solana-streamer/pkg/protocols/raydiumcpmm"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func TestDispatchInstructionRaydiumCpmmSwap(t *testing.T) {
	reg := NewRegistry(raydiumcpmm.New())
	d, ok := reg.DecoderForProgramID(raydiumcpmm.ProgramID)
	if !ok {
		t.Fatalf("expected decoder registered for raydiumcpmm")
	}

	disc := []byte{143, 190, 90, 218, 196, 30, 51, 222}
	data := append(append([]byte{}, disc...), append(u64le(1_000_000), u64le(990_000)...)...)
	accounts := make([]solkey.Pubkey, 13)

	meta := &event.Metadata{}
	ev, _, ok := DispatchInstruction(d, data, accounts, meta)
	if !ok {
		t.Fatalf("expected swap to decode")
	}
	swap, ok := ev.(*event.RaydiumCpmmSwapEvent)
	if !ok {
		t.Fatalf("expected RaydiumCpmmSwapEvent, got %T", ev)
	}
	if swap.AmountIn != 1_000_000 || swap.MinimumAmountOut != 990_000 {
		t.Fatalf("unexpected amounts: %+v", swap)
	}
	if meta.ProtocolTag != event.ProtocolRaydiumCpmm {
		t.Fatalf("expected protocol tag stamped before parser runs")
	}
}

func TestDispatchInstructionUnknownDiscriminatorDropped(t *testing.T) {
	reg := NewRegistry(raydiumcpmm.New())
	d, _ := reg.DecoderForProgramID(raydiumcpmm.ProgramID)

	data := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	meta := &event.Metadata{}
	_, _, ok := DispatchInstruction(d, data, nil, meta)
	if ok {
		t.Fatalf("expected unknown discriminator to be rejected")
	}
}

func TestDispatchComputeBudgetInstruction(t *testing.T) {
	data := append([]byte{2}, u64le(0)[:4]...) // disc=SetComputeUnitLimit, u32 units
	meta := &event.Metadata{}
	ev, ok := DispatchComputeBudgetInstruction(data, meta)
	if !ok {
		t.Fatalf("expected compute budget instruction to decode")
	}
	if meta.ProtocolTag != event.ProtocolCommon {
		t.Fatalf("expected ProtocolCommon tag")
	}
	if _, ok := ev.(*event.ComputeBudgetSetComputeUnitLimitEvent); !ok {
		t.Fatalf("unexpected event type %T", ev)
	}
}

func TestIsComputeBudgetProgram(t *testing.T) {
	if !IsComputeBudgetProgram(common.ProgramID) {
		t.Fatalf("expected compute budget program id to match")
	}
	if IsComputeBudgetProgram(raydiumcpmm.ProgramID) {
		t.Fatalf("expected raydium cpmm program id not to match")
	}
}

func TestMatchProtocolByProgramID(t *testing.T) {
	reg := NewRegistry(raydiumcpmm.New())
	p, ok := reg.MatchProtocolByProgramID(raydiumcpmm.ProgramID)
	if !ok || p != event.ProtocolRaydiumCpmm {
		t.Fatalf("expected RaydiumCpmm match, got %v ok=%v", p, ok)
	}
	if _, ok := reg.MatchProtocolByProgramID(solkey.Zero); ok {
		t.Fatalf("expected no match for zero pubkey")
	}
}
