package postprocess

import (
	"testing"

	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

func TestPumpFunCreateThenTradeMarksDevCreateTokenTrade(t *testing.T) {
	regs := NewRegistries()
	var sig solkey.Signature
	sig[0] = 7
	var user solkey.Pubkey
	user[0] = 9

	create := &event.PumpFunCreateTokenEvent{User: user}
	Apply(regs, create, sig, 100, nil)

	trade := &event.PumpFunTradeEvent{
		User:        user,
		IsBuy:       true,
		SolAmount:   500,
		TokenAmount: 12345,
	}
	Apply(regs, trade, sig, 101, nil)

	if !trade.IsDevCreateTokenTrade {
		t.Fatalf("expected trade by the creating user to be flagged dev_create_token_trade")
	}
	if trade.Metadata.SwapData == nil {
		t.Fatalf("expected swap data to be filled")
	}
	if trade.Metadata.SwapData.FromAmount != 500 || trade.Metadata.SwapData.ToAmount != 12345 {
		t.Fatalf("unexpected swap data for buy: %+v", trade.Metadata.SwapData)
	}
}

func TestPumpFunTradeSellOrdersAmountsOppositely(t *testing.T) {
	regs := NewRegistries()
	var sig solkey.Signature
	trade := &event.PumpFunTradeEvent{IsBuy: false, SolAmount: 500, TokenAmount: 12345}
	Apply(regs, trade, sig, 1, nil)

	if trade.Metadata.SwapData.FromAmount != 12345 || trade.Metadata.SwapData.ToAmount != 500 {
		t.Fatalf("unexpected swap data for sell: %+v", trade.Metadata.SwapData)
	}
}

func TestPumpFunTradeBotWalletFlag(t *testing.T) {
	regs := NewRegistries()
	var sig solkey.Signature
	var bot solkey.Pubkey
	bot[0] = 5
	trade := &event.PumpFunTradeEvent{User: bot}
	Apply(regs, trade, sig, 1, &bot)

	if !trade.IsBot {
		t.Fatalf("expected user matching bot_wallet to be flagged")
	}
}

func TestBonkPoolCreateThenTrade(t *testing.T) {
	regs := NewRegistries()
	var sig solkey.Signature
	sig[0] = 3
	var creator solkey.Pubkey
	creator[0] = 4

	Apply(regs, &event.BonkPoolCreateEvent{Creator: creator}, sig, 10, nil)

	trade := &event.BonkTradeEvent{User: creator}
	Apply(regs, trade, sig, 11, nil)
	if !trade.IsDevCreateTokenTrade {
		t.Fatalf("expected bonk trade by pool creator to be flagged")
	}
}

func TestUnknownEventPassesThrough(t *testing.T) {
	regs := NewRegistries()
	var sig solkey.Signature
	ev := &event.RaydiumCpmmSwapEvent{AmountIn: 1}
	Apply(regs, ev, sig, 1, nil)
	if ev.AmountIn != 1 {
		t.Fatalf("expected passthrough event to be untouched")
	}
}
