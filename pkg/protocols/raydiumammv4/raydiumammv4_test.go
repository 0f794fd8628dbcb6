package raydiumammv4

import (
	"testing"

	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

// TestParseSwapBaseInFieldOffsets guards against reading fields as if the
// 1-byte discriminator were still present in payload: the dispatcher
// already strips it (pkg/dispatch.findOuterRow), so amount_in starts at
// offset 0, not 1.
func TestParseSwapBaseInFieldOffsets(t *testing.T) {
	payload := append(append([]byte{}, u64le(1_000_000)...), u64le(990_000)...)
	accounts := make([]solkey.Pubkey, 18)

	meta := &event.Metadata{}
	ev, ok := parseSwapBaseIn(payload, accounts, meta)
	if !ok {
		t.Fatalf("expected swap_base_in to decode")
	}
	swap, ok := ev.(*event.RaydiumAmmV4SwapBaseInEvent)
	if !ok {
		t.Fatalf("expected RaydiumAmmV4SwapBaseInEvent, got %T", ev)
	}
	if swap.AmountIn != 1_000_000 || swap.MinimumAmountOut != 990_000 {
		t.Fatalf("unexpected amounts: %+v", swap)
	}
}

func TestParseWithdrawFieldOffset(t *testing.T) {
	payload := u64le(42)
	accounts := make([]solkey.Pubkey, 18)

	meta := &event.Metadata{}
	ev, ok := parseWithdraw(payload, accounts, meta)
	if !ok {
		t.Fatalf("expected withdraw to decode")
	}
	withdraw, ok := ev.(*event.RaydiumAmmV4WithdrawEvent)
	if !ok {
		t.Fatalf("expected RaydiumAmmV4WithdrawEvent, got %T", ev)
	}
	if withdraw.Amount != 42 {
		t.Fatalf("unexpected amount: %+v", withdraw)
	}
}

func TestParseInitialize2FieldOffsets(t *testing.T) {
	payload := append([]byte{7}, u64le(123)...)
	accounts := make([]solkey.Pubkey, 18)

	meta := &event.Metadata{}
	ev, ok := parseInitialize2(payload, accounts, meta)
	if !ok {
		t.Fatalf("expected initialize2 to decode")
	}
	init, ok := ev.(*event.RaydiumAmmV4Initialize2Event)
	if !ok {
		t.Fatalf("expected RaydiumAmmV4Initialize2Event, got %T", ev)
	}
	if init.Nonce != 7 || init.OpenTime != 123 {
		t.Fatalf("unexpected fields: %+v", init)
	}
}
