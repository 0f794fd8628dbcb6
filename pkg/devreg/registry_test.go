package devreg

import (
	"testing"

	"github.com/Estereg/solana-streamer/pkg/solkey"
)

func TestAddAndQuery(t *testing.T) {
	r := New(DefaultSlotWindow)
	var sig solkey.Signature
	sig[0] = 1
	var addr solkey.Pubkey
	addr[0] = 2

	if r.IsAddressInSignature(sig, addr) {
		t.Fatalf("expected no match before AddAddress")
	}

	r.AddAddress(sig, 100, addr)
	if !r.IsAddressInSignature(sig, addr) {
		t.Fatalf("expected match after AddAddress")
	}

	var other solkey.Pubkey
	other[0] = 3
	if r.IsAddressInSignature(sig, other) {
		t.Fatalf("expected no match for an address never added")
	}
}

func TestAddAddressIgnoresZeroKey(t *testing.T) {
	r := New(DefaultSlotWindow)
	var sig solkey.Signature
	r.AddAddress(sig, 1, solkey.Zero)
	if r.Len() != 0 {
		t.Fatalf("expected zero key to be ignored, Len()=%d", r.Len())
	}
}

func TestEvictOlderThan(t *testing.T) {
	r := New(10)
	var sig solkey.Signature
	sig[0] = 1
	var addr solkey.Pubkey
	addr[0] = 2

	r.AddAddress(sig, 100, addr)
	r.EvictOlderThan(105) // within window
	if r.Len() != 1 {
		t.Fatalf("expected entry to survive within the window")
	}

	r.EvictOlderThan(200) // past window
	if r.Len() != 0 {
		t.Fatalf("expected entry to be evicted past the window")
	}
}
