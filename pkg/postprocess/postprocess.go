// Package postprocess implements the event post-processor (§4.I): it fills
// swap-data amounts, flags bot and dev-created-token trades, and records
// creator addresses into the per-signature dev registries. It never
// rejects an event; every variant it doesn't recognize passes through
// unchanged.
package postprocess

import (
	"github.com/Estereg/solana-streamer/pkg/devreg"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// Registries bundles the two disjoint dev-wallet maps (§4.H): one per
// bonding-curve launchpad family.
type Registries struct {
	PumpFun *devreg.Registry
	Bonk    *devreg.Registry
}

// NewRegistries builds a Registries with the default slot window for both maps.
func NewRegistries() *Registries {
	return &Registries{
		PumpFun: devreg.New(devreg.DefaultSlotWindow),
		Bonk:    devreg.New(devreg.DefaultSlotWindow),
	}
}

func isBotWallet(addr solkey.Pubkey, botWallet *solkey.Pubkey) bool {
	return botWallet != nil && addr == *botWallet
}

// Apply runs the post-processor over ev. sig and slot identify the
// transaction the event belongs to, used for dev-registry lookups/inserts.
// botWallet may be nil (no bot-wallet configured).
func Apply(regs *Registries, ev event.Event, sig solkey.Signature, slot uint64, botWallet *solkey.Pubkey) {
	switch e := ev.(type) {
	case *event.PumpFunCreateTokenEvent:
		regs.PumpFun.AddAddress(sig, slot, e.User)
		if e.Creator != solkey.Zero && e.Creator != e.User {
			regs.PumpFun.AddAddress(sig, slot, e.Creator)
		}

	case *event.PumpFunCreateV2TokenEvent:
		regs.PumpFun.AddAddress(sig, slot, e.User)
		if e.Creator != solkey.Zero && e.Creator != e.User {
			regs.PumpFun.AddAddress(sig, slot, e.Creator)
		}

	case *event.PumpFunTradeEvent:
		e.IsDevCreateTokenTrade = regs.PumpFun.IsAddressInSignature(sig, e.User) ||
			regs.PumpFun.IsAddressInSignature(sig, e.Creator)
		e.IsBot = isBotWallet(e.User, botWallet)

		sd := &event.SwapData{User: e.User}
		if e.IsBuy {
			sd.FromAmount = e.SolAmount
			sd.ToAmount = e.TokenAmount
		} else {
			sd.FromAmount = e.TokenAmount
			sd.ToAmount = e.SolAmount
		}
		e.Metadata.SwapData = sd

	case *event.PumpSwapBuyEvent:
		e.Metadata.SwapData = &event.SwapData{
			FromMint:   e.QuoteMint,
			ToMint:     e.BaseMint,
			FromAmount: e.QuoteAmountIn,
			ToAmount:   e.BaseAmountOut,
			User:       e.User,
		}

	case *event.PumpSwapBuyExactQuoteInEvent:
		e.Metadata.SwapData = &event.SwapData{
			FromMint:   e.QuoteMint,
			ToMint:     e.BaseMint,
			FromAmount: e.QuoteAmountIn,
			ToAmount:   e.BaseAmountOut,
			User:       e.User,
		}

	case *event.PumpSwapSellEvent:
		e.Metadata.SwapData = &event.SwapData{
			FromMint:   e.BaseMint,
			ToMint:     e.QuoteMint,
			FromAmount: e.BaseAmountIn,
			ToAmount:   e.QuoteAmountOut,
			User:       e.User,
		}

	case *event.BonkPoolCreateEvent:
		regs.Bonk.AddAddress(sig, slot, e.Creator)

	case *event.BonkTradeEvent:
		e.IsDevCreateTokenTrade = regs.Bonk.IsAddressInSignature(sig, e.User) ||
			regs.Bonk.IsAddressInSignature(sig, e.Creator)
		e.IsBot = isBotWallet(e.User, botWallet)

	default:
		// passthrough
	}
}
