package walker

import (
	"context"
	"testing"

	"github.com/Estereg/solana-streamer/pkg/clock"
	"github.com/Estereg/solana-streamer/pkg/dispatch"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/postprocess"
	"github.com/Estereg/solana-streamer/pkg/protocols/bonk"
	"github.com/Estereg/solana-streamer/pkg/protocols/common"
	"github.com/Estereg/solana-streamer/pkg/protocols/pumpfun"
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

func newWalker() *Walker {
	reg := dispatch.NewRegistry(raydiumcpmm.New(), pumpfun.New(), bonk.New())
	return New(reg, postprocess.NewRegistries(), clock.Instance())
}

func accountsWithProgramAt(programID solkey.Pubkey, programIdx int, n int) []solkey.Pubkey {
	accs := make([]solkey.Pubkey, n)
	accs[programIdx] = programID
	return accs
}

func TestWalkRaydiumCpmmSwap(t *testing.T) {
	w := newWalker()
	accounts := accountsWithProgramAt(raydiumcpmm.ProgramID, 13, 14)

	disc := []byte{143, 190, 90, 218, 196, 30, 51, 222}
	data := append(append([]byte{}, disc...), append(u64le(1_000_000), u64le(990_000)...)...)

	idx := make([]uint8, 13)
	for i := range idx {
		idx[i] = uint8(i)
	}

	tx := Transaction{
		Signature: solkey.Signature{1},
		Slot:      1,
		RecvUs:    1000,
		Accounts:  accounts,
		Instructions: []CompiledInstruction{
			{ProgramIDIndex: 13, AccountIndices: idx, Data: data},
		},
	}

	var got []event.Event
	w.Walk(context.Background(), tx, Options{}, func(e event.Event) { got = append(got, e) })

	if len(got) != 1 {
		t.Fatalf("expected one event, got %d", len(got))
	}
	swap, ok := got[0].(*event.RaydiumCpmmSwapEvent)
	if !ok {
		t.Fatalf("expected RaydiumCpmmSwapEvent, got %T", got[0])
	}
	if swap.AmountIn != 1_000_000 || swap.MinimumAmountOut != 990_000 {
		t.Fatalf("unexpected amounts: %+v", swap)
	}
	if swap.Metadata.HandleUs < 0 {
		t.Fatalf("expected non-negative handle_us")
	}
}

func TestWalkPumpFunMigrateWithoutInnerIsDropped(t *testing.T) {
	w := newWalker()
	accounts := accountsWithProgramAt(pumpfun.ProgramID, 7, 8)
	idx := []uint8{0, 1, 2, 3, 4, 5, 6}

	tx := Transaction{
		Signature: solkey.Signature{2},
		Accounts:  accounts,
		Instructions: []CompiledInstruction{
			{ProgramIDIndex: 7, AccountIndices: idx, Data: pumpfun.MigrateDiscriminator[:]},
		},
	}

	var got []event.Event
	w.Walk(context.Background(), tx, Options{}, func(e event.Event) { got = append(got, e) })

	if len(got) != 0 {
		t.Fatalf("expected migrate without inner instructions to be dropped, got %d events", len(got))
	}
}

func TestWalkComputeBudgetInstruction(t *testing.T) {
	w := newWalker()
	accounts := accountsWithProgramAt(common.ProgramID, 0, 1)

	data := append([]byte{2}, u64le(0)[:4]...)
	tx := Transaction{
		Signature:    solkey.Signature{3},
		Accounts:     accounts,
		Instructions: []CompiledInstruction{{ProgramIDIndex: 0, Data: data}},
	}

	var got []event.Event
	w.Walk(context.Background(), tx, Options{}, func(e event.Event) { got = append(got, e) })

	if len(got) != 1 {
		t.Fatalf("expected exactly one compute-budget event, got %d", len(got))
	}
	if got[0].Meta().ProtocolTag != event.ProtocolCommon {
		t.Fatalf("expected ProtocolCommon tag")
	}
}

func TestWalkMalformedBonkTradeDroppedNoPanic(t *testing.T) {
	w := newWalker()
	accounts := accountsWithProgramAt(bonk.ProgramID, 2, 3)

	disc := []byte{250, 234, 13, 123, 213, 156, 19, 236} // bonk buy
	data := append([]byte{}, disc...)                    // no amount fields: too short

	tx := Transaction{
		Signature:    solkey.Signature{4},
		Accounts:     accounts,
		Instructions: []CompiledInstruction{{ProgramIDIndex: 2, AccountIndices: []uint8{0, 1}, Data: data}},
	}

	var got []event.Event
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("walker panicked on malformed payload: %v", r)
			}
		}()
		w.Walk(context.Background(), tx, Options{}, func(e event.Event) { got = append(got, e) })
	}()

	if len(got) != 0 {
		t.Fatalf("expected no event for malformed payload, got %d", len(got))
	}
}

func TestWalkEarlyExitOnNoRelevantAccount(t *testing.T) {
	w := newWalker()
	tx := Transaction{
		Accounts:     []solkey.Pubkey{{9}, {8}},
		Instructions: []CompiledInstruction{{ProgramIDIndex: 0, Data: []byte{1, 2, 3}}},
	}

	var called bool
	w.Walk(context.Background(), tx, Options{}, func(e event.Event) { called = true })
	if called {
		t.Fatalf("expected early exit, no callback invocation")
	}
}

// TestWalkOrdersOuterBeforeItsOwnInnerAcrossMultipleOuterInstructions
// guards the (outer_index, inner_index) lexicographic ordering guarantee
// (§4.G "Ordering guarantee", §8): each outer instruction's own inner group
// must be emitted immediately after it, before the walker advances to the
// next outer instruction, rather than in a second pass over all outer
// instructions' inner groups.
func TestWalkOrdersOuterBeforeItsOwnInnerAcrossMultipleOuterInstructions(t *testing.T) {
	w := newWalker()
	accounts := accountsWithProgramAt(raydiumcpmm.ProgramID, 13, 14)
	idx := make([]uint8, 13)
	for i := range idx {
		idx[i] = uint8(i)
	}

	swapDisc := []byte{143, 190, 90, 218, 196, 30, 51, 222}
	swapData := append(append([]byte{}, swapDisc...), append(u64le(1_000_000), u64le(990_000)...)...)

	withdrawDisc := []byte{183, 18, 70, 156, 148, 109, 161, 34}
	withdrawData := append(append([]byte{}, withdrawDisc...), append(u64le(1), append(u64le(2), u64le(3)...)...)...)

	tx := Transaction{
		Signature: solkey.Signature{5},
		Accounts:  accounts,
		Instructions: []CompiledInstruction{
			{ProgramIDIndex: 13, AccountIndices: idx, Data: swapData},
			{ProgramIDIndex: 13, AccountIndices: idx, Data: swapData},
		},
		InnerInstructions: map[int][]CompiledInstruction{
			0: {{ProgramIDIndex: 13, AccountIndices: idx, Data: withdrawData}},
			1: {{ProgramIDIndex: 13, AccountIndices: idx, Data: withdrawData}},
		},
	}

	type key struct {
		outer int64
		inner int64
		has   bool
	}
	var order []key
	w.Walk(context.Background(), tx, Options{}, func(e event.Event) {
		meta := e.Meta()
		k := key{outer: meta.OuterIndex}
		if meta.InnerIndex != nil {
			k.inner = *meta.InnerIndex
			k.has = true
		}
		order = append(order, k)
	})

	want := []key{{outer: 0}, {outer: 0, inner: 0, has: true}, {outer: 1}, {outer: 1, inner: 0, has: true}}
	if len(order) != len(want) {
		t.Fatalf("expected %d events in order, got %d: %+v", len(want), len(order), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("event %d out of order: got %+v, want %+v (full: %+v)", i, order[i], want[i], order)
		}
	}
}

func TestWalkEventTypeFilter(t *testing.T) {
	w := newWalker()
	accounts := accountsWithProgramAt(common.ProgramID, 0, 1)
	data := append([]byte{2}, u64le(0)[:4]...)
	tx := Transaction{
		Accounts:     accounts,
		Instructions: []CompiledInstruction{{ProgramIDIndex: 0, Data: data}},
	}

	filter := map[event.Type]struct{}{event.TypeComputeBudgetSetComputeUnitPrice: {}}
	var called bool
	w.Walk(context.Background(), tx, Options{EventTypeFilter: filter}, func(e event.Event) { called = true })
	if called {
		t.Fatalf("expected event filtered out by event_type_filter")
	}
}
