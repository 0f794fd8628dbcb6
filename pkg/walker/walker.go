// Package walker implements the transaction walker (§4.G): it iterates a
// transaction's outer then inner instructions in (outer_index, inner_index)
// order, pads account-index arrays, dispatches each instruction, correlates
// it with its inner CPI log, and emits enriched events through a
// user-supplied callback.
package walker

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Estereg/solana-streamer/pkg/clock"
	"github.com/Estereg/solana-streamer/pkg/dispatch"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/postprocess"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/protocols/pumpfun"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// CompiledInstruction mirrors the gRPC wire shape (§6): a program-id index
// into the transaction's flat account array, an index list of the
// instruction's own accounts into that same array, and the raw payload.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	AccountIndices []uint8
	Data           []byte
}

// Transaction is everything the walker needs for one transaction.
type Transaction struct {
	Signature         solkey.Signature
	Slot              uint64
	BlockTimeS        int64
	BlockTimeMs       int64
	TransactionIndex  *uint64
	RecvUs            int64
	Accounts          []solkey.Pubkey
	Instructions      []CompiledInstruction
	InnerInstructions map[int][]CompiledInstruction
}

// Options configures one Walk call.
type Options struct {
	// EventTypeFilter, if non-nil, keeps only events whose type is a member.
	EventTypeFilter map[event.Type]struct{}
	BotWallet       *solkey.Pubkey
}

// Walker holds the shared decoders, dev registries, and clock a running
// pipeline needs across many transactions.
type Walker struct {
	registry *dispatch.Registry
	post     *postprocess.Registries
	clk      *clock.Clock
}

// New builds a Walker.
func New(registry *dispatch.Registry, post *postprocess.Registries, clk *clock.Clock) *Walker {
	return &Walker{registry: registry, post: post, clk: clk}
}

func (w *Walker) hasRelevantAccount(accounts []solkey.Pubkey) bool {
	for _, a := range accounts {
		if dispatch.IsComputeBudgetProgram(a) {
			return true
		}
		if _, ok := w.registry.DecoderForProgramID(a); ok {
			return true
		}
	}
	return false
}

// Walk runs the full algorithm described in §4.G over tx, invoking
// callback once per emitted event in (outer_index, inner_index) order.
func (w *Walker) Walk(ctx context.Context, tx Transaction, opts Options, callback func(event.Event)) {
	if !w.hasRelevantAccount(tx.Accounts) {
		return
	}

	w.post.PumpFun.EvictOlderThan(tx.Slot)
	w.post.Bonk.EvictOlderThan(tx.Slot)

	for k, inst := range tx.Instructions {
		siblings := tx.InnerInstructions[k]
		w.processOne(ctx, tx, k, nil, inst, siblings, 0, opts, callback)

		for p, inner := range siblings {
			pp := p
			w.processOne(ctx, tx, k, &pp, inner, siblings, p+1, opts, callback)
		}
	}
}

func accountAt(accounts []solkey.Pubkey, idx uint8) (solkey.Pubkey, bool) {
	if int(idx) >= len(accounts) {
		return solkey.Zero, false
	}
	return accounts[idx], true
}

func (w *Walker) processOne(
	ctx context.Context,
	tx Transaction,
	outerIdx int,
	innerIdx *int,
	inst CompiledInstruction,
	siblings []CompiledInstruction,
	scanFrom int,
	opts Options,
	callback func(event.Event),
) {
	programID, inRange := accountAt(tx.Accounts, inst.ProgramIDIndex)
	if !inRange {
		return
	}

	accounts := protocol.PadAccounts(tx.Accounts, inst.AccountIndices)

	meta := &event.Metadata{
		Signature:        tx.Signature,
		Slot:             tx.Slot,
		BlockTimeS:       tx.BlockTimeS,
		BlockTimeMs:      tx.BlockTimeMs,
		ProgramID:        programID,
		OuterIndex:       int64(outerIdx),
		RecvUs:           tx.RecvUs,
		TransactionIndex: tx.TransactionIndex,
	}
	if innerIdx != nil {
		v := int64(*innerIdx)
		meta.InnerIndex = &v
	}

	if dispatch.IsComputeBudgetProgram(programID) {
		ev, ok := dispatch.DispatchComputeBudgetInstruction(inst.Data, meta)
		if !ok {
			return
		}
		w.finish(ev, tx, opts, callback)
		return
	}

	d, ok := w.registry.DecoderForProgramID(programID)
	if !ok {
		return
	}
	discLen := d.DiscriminatorLen()
	if len(inst.Data) < discLen {
		return
	}
	outerDisc := append([]byte{}, inst.Data[:discLen]...)

	ev, _, ok := dispatch.DispatchInstruction(d, inst.Data, accounts, meta)
	if !ok {
		return
	}

	innerEvent, swapData := w.correlate(ctx, d, siblings, scanFrom, tx.Accounts, ev)

	if meta.ProtocolTag == event.ProtocolPumpFun && len(outerDisc) == 8 &&
		bytes.Equal(outerDisc, pumpfun.MigrateDiscriminator[:]) && innerEvent == nil {
		return
	}

	if innerEvent != nil {
		merge(ev, innerEvent)
	}
	if ev.Meta().SwapData == nil && swapData != nil {
		ev.Meta().SwapData = swapData
	}

	w.finish(ev, tx, opts, callback)
}

// correlate runs the merge-lookup and swap-data-extraction scans
// concurrently (§4.G.g / §9 "parallel inner-scan"): they share no mutable
// state, so a two-task errgroup is a direct expression of the fork-join the
// design calls for.
func (w *Walker) correlate(ctx context.Context, d protocol.Decoder, siblings []CompiledInstruction, scanFrom int, allAccounts []solkey.Pubkey, outer event.Event) (event.Event, *event.SwapData) {
	var innerEvent event.Event
	var swapData *event.SwapData
	needSwapData := outer.Meta().SwapData == nil

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		innerEvent = findMergeCandidate(d, siblings, scanFrom, allAccounts)
		return nil
	})
	g.Go(func() error {
		if needSwapData {
			swapData = extractSwapData(siblings, scanFrom, allAccounts)
		}
		return nil
	})
	_ = g.Wait()

	return innerEvent, swapData
}

func findMergeCandidate(d protocol.Decoder, siblings []CompiledInstruction, scanFrom int, allAccounts []solkey.Pubkey) event.Event {
	for p := scanFrom; p < len(siblings); p++ {
		inst := siblings[p]
		accounts := protocol.PadAccounts(allAccounts, inst.AccountIndices)
		meta := &event.Metadata{}
		if ev, ok := dispatch.DispatchInnerInstruction(d, inst.Data, accounts, meta); ok {
			return ev
		}
	}
	return nil
}

// merge copies amount/optional fields from inner into outer, preserving
// outer's identity and metadata (§4.G.i). Only the pairings the seven
// protocols actually produce are handled; anything else is left untouched.
func merge(outer, inner event.Event) {
	switch o := outer.(type) {
	case *event.PumpFunTradeEvent:
		if in, ok := inner.(*event.PumpFunTradeEvent); ok {
			o.SolAmount = in.SolAmount
			o.TokenAmount = in.TokenAmount
			o.VirtualSolReserves = in.VirtualSolReserves
			o.VirtualTokenReserves = in.VirtualTokenReserves
			if o.Creator == solkey.Zero {
				o.Creator = in.Creator
			}
		}
	}
}

func (w *Walker) finish(ev event.Event, tx Transaction, opts Options, callback func(event.Event)) {
	meta := ev.Meta()
	meta.HandleUs = w.clk.NowUs() - meta.RecvUs

	postprocess.Apply(w.post, ev, tx.Signature, tx.Slot, opts.BotWallet)

	if opts.EventTypeFilter != nil {
		if _, ok := opts.EventTypeFilter[meta.EventType]; !ok {
			return
		}
	}
	callback(ev)
}
