// Package devreg implements the per-signature dev-wallet registry (§4.H):
// two disjoint, process-wide maps from transaction signature to the set of
// creator/authority addresses recorded when that signature's CreateToken or
// PoolCreate event was processed, consulted later in the same transaction
// when annotating trade events.
//
// Entries are soft-evicted on a slot-based sliding window (§9 open question
// b): EvictOlderThan drops any signature whose entries are older than a
// configurable number of slots, bounding memory without requiring callers to
// explicitly close out a signature. The walker calls it for every relevant
// transaction it walks.
package devreg

import (
	"sync"
	"time"

	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// DefaultSlotWindow is the number of slots an entry survives before it
// becomes eligible for eviction. Solana slots are ~400ms apart, so this is
// roughly the two-minute window a dev-wallet annotation needs to stay live
// across the CreateToken -> Trade sequence in realistic traffic.
const DefaultSlotWindow = 300

type entry struct {
	addresses map[solkey.Pubkey]struct{}
	lastSlot  uint64
	touchedAt time.Time
}

// Registry is one of the two maps described in §4.H (PumpFun or Bonk).
// Safe for concurrent use from many goroutines; a single RWMutex guards the
// map, so concurrent lookups share the read lock.
type Registry struct {
	mu         sync.RWMutex
	bySig      map[solkey.Signature]*entry
	slotWindow uint64
}

// New constructs a Registry with the given slot-based eviction window.
func New(slotWindow uint64) *Registry {
	if slotWindow == 0 {
		slotWindow = DefaultSlotWindow
	}
	return &Registry{
		bySig:      make(map[solkey.Signature]*entry),
		slotWindow: slotWindow,
	}
}

// AddAddress records addr as a dev/creator address for sig at slot.
func (r *Registry) AddAddress(sig solkey.Signature, slot uint64, addr solkey.Pubkey) {
	if addr == solkey.Zero {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.bySig[sig]
	if !ok {
		e = &entry{addresses: make(map[solkey.Pubkey]struct{}, 2)}
		r.bySig[sig] = e
	}
	e.addresses[addr] = struct{}{}
	if slot > e.lastSlot {
		e.lastSlot = slot
	}
	e.touchedAt = time.Now()
}

// IsAddressInSignature reports whether addr was previously recorded as a
// dev/creator address for sig.
func (r *Registry) IsAddressInSignature(sig solkey.Signature, addr solkey.Pubkey) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.bySig[sig]
	if !ok {
		return false
	}
	_, ok = e.addresses[addr]
	return ok
}

// EvictOlderThan drops every signature whose most recently touched slot is
// more than slotWindow slots behind currentSlot. The walker calls it with
// the slot of each transaction it walks.
func (r *Registry) EvictOlderThan(currentSlot uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for sig, e := range r.bySig {
		if currentSlot > e.lastSlot && currentSlot-e.lastSlot > r.slotWindow {
			delete(r.bySig, sig)
		}
	}
}

// Len reports the number of tracked signatures, for tests and metrics.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bySig)
}
