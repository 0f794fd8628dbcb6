package accountparser

import (
	"testing"

	"github.com/Estereg/solana-streamer/pkg/dispatch"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

func u32le(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func TestParseNonceAccountInitialized(t *testing.T) {
	data := make([]byte, nonceAccountLen)
	copy(data[4:8], u32le(1)) // state = initialized
	var authority, nonce solkey.Pubkey
	authority[0] = 1
	nonce[0] = 2
	copy(data[8:40], authority[:])
	copy(data[40:72], nonce[:])
	copy(data[72:80], u64le(5000))

	account := protocol.Account{Data: data}
	reg := dispatch.NewRegistry()

	ev, ok := ParseAccount(reg, account, Options{})
	if !ok {
		t.Fatalf("expected nonce account to decode")
	}
	nonceEv, ok := ev.(*event.NonceAccountEvent)
	if !ok {
		t.Fatalf("expected NonceAccountEvent, got %T", ev)
	}
	if nonceEv.Authority != authority || nonceEv.Nonce != nonce || nonceEv.LamportsPerSignatureFeeCalc != 5000 {
		t.Fatalf("unexpected nonce fields: %+v", nonceEv)
	}
}

func TestParseNonceAccountUninitializedSkipped(t *testing.T) {
	data := make([]byte, nonceAccountLen) // state = 0 (uninitialized)
	account := protocol.Account{Data: data, Owner: SplTokenProgramID}
	reg := dispatch.NewRegistry()

	_, ok := ParseAccount(reg, account, Options{})
	if ok {
		t.Fatalf("expected uninitialized nonce account not to emit NonceAccountEvent")
	}
}

func TestParseMintAccount(t *testing.T) {
	data := make([]byte, mintLen)
	// mint_authority: absent
	copy(data[36:44], u64le(1_000_000))
	data[44] = 9  // decimals
	data[45] = 1  // is_initialized
	// freeze_authority: absent

	account := protocol.Account{Data: data, Owner: SplTokenProgramID}
	reg := dispatch.NewRegistry()

	ev, ok := ParseAccount(reg, account, Options{})
	if !ok {
		t.Fatalf("expected mint account to decode")
	}
	mintEv, ok := ev.(*event.TokenInfoEvent)
	if !ok {
		t.Fatalf("expected TokenInfoEvent, got %T", ev)
	}
	if mintEv.Supply != 1_000_000 || mintEv.Decimals != 9 || !mintEv.IsInitialized {
		t.Fatalf("unexpected mint fields: %+v", mintEv)
	}
	if mintEv.MintAuthority != nil || mintEv.FreezeAuthority != nil {
		t.Fatalf("expected absent authorities to be nil")
	}
}

func TestParseTokenAccount(t *testing.T) {
	data := make([]byte, tokenLen)
	var mint, owner solkey.Pubkey
	mint[0] = 7
	owner[0] = 8
	copy(data[0:32], mint[:])
	copy(data[32:64], owner[:])
	copy(data[64:72], u64le(42))
	data[108] = tokenAccountStateInitialized

	account := protocol.Account{Data: data, Owner: SplTokenProgramID}
	reg := dispatch.NewRegistry()

	ev, ok := ParseAccount(reg, account, Options{})
	if !ok {
		t.Fatalf("expected token account to decode")
	}
	tokenEv, ok := ev.(*event.TokenAccountEvent)
	if !ok {
		t.Fatalf("expected TokenAccountEvent, got %T", ev)
	}
	if tokenEv.Mint != mint || tokenEv.Owner != owner || tokenEv.Amount != 42 {
		t.Fatalf("unexpected token account fields: %+v", tokenEv)
	}
}

func TestParseAccountTooShortReturnsNoEvent(t *testing.T) {
	account := protocol.Account{Data: []byte{1, 2, 3}}
	reg := dispatch.NewRegistry()
	_, ok := ParseAccount(reg, account, Options{})
	if ok {
		t.Fatalf("expected short/unrecognized account data to yield no event")
	}
}

func TestParseAccountEventTypeFilter(t *testing.T) {
	data := make([]byte, mintLen)
	data[45] = 1
	account := protocol.Account{Data: data, Owner: SplTokenProgramID}
	reg := dispatch.NewRegistry()

	filter := map[event.Type]struct{}{event.TypeNonceAccount: {}}
	_, ok := ParseAccount(reg, account, Options{EventTypeFilter: filter})
	if ok {
		t.Fatalf("expected mint event filtered out by a nonce-only filter")
	}
}
