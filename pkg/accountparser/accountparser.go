// Package accountparser decodes standalone account snapshots (§4.J): SPL
// Token mint/token accounts (classic and Token-2022), the standard Solana
// nonce-account layout, and any protocol-specific account layout a
// registered decoder owns.
package accountparser

import (
	"github.com/Estereg/solana-streamer/pkg/byteutil"
	"github.com/Estereg/solana-streamer/pkg/dispatch"
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/solkey"
	"github.com/Estereg/solana-streamer/pkg/wellknown"
)

// Token2022ProgramID is the Token-2022 program address.
var Token2022ProgramID = wellknown.Token2022ProgramID

// SplTokenProgramID is the classic SPL Token program address.
var SplTokenProgramID = wellknown.SplTokenProgramID

const (
	nonceAccountLen = 80
	nonceStateInit  = 1

	mintLen  = 82
	tokenLen = 165

	tokenAccountStateInitialized = 1
)

// Options configures one ParseAccount call.
type Options struct {
	EventTypeFilter map[event.Type]struct{}
}

func passesFilter(t event.Type, opts Options) bool {
	if opts.EventTypeFilter == nil {
		return true
	}
	_, ok := opts.EventTypeFilter[t]
	return ok
}

// ParseAccount runs the algorithm in §4.J over one account snapshot,
// trying protocol dispatch, then nonce, then mint (classic/2022), then
// token account (classic/2022), returning the first event that passes the
// filter.
func ParseAccount(registry *dispatch.Registry, account protocol.Account, opts Options) (event.Event, bool) {
	if len(account.Data) >= 8 {
		if d, ok := registry.DecoderForProgramID(account.Owner); ok {
			meta := baseMetadata(account)
			if ev, ok := dispatch.DispatchAccount(d, account.Data[:8], account, meta); ok && passesFilter(meta.EventType, opts) {
				return ev, true
			}
		}
	}

	if ev, ok := parseNonceAccount(account); ok {
		meta := ev.Meta()
		if passesFilter(meta.EventType, opts) {
			return ev, true
		}
	}

	if ev, ok := parseMint(account, false); ok {
		meta := ev.Meta()
		if passesFilter(meta.EventType, opts) {
			return ev, true
		}
	}
	if ev, ok := parseMint(account, true); ok {
		meta := ev.Meta()
		if passesFilter(meta.EventType, opts) {
			return ev, true
		}
	}

	if ev, ok := parseTokenAccount(account); ok {
		meta := ev.Meta()
		if passesFilter(meta.EventType, opts) {
			return ev, true
		}
	}

	return nil, false
}

func baseMetadata(account protocol.Account) *event.Metadata {
	return &event.Metadata{
		Signature: account.Signature,
		Slot:      account.Slot,
		ProgramID: account.Owner,
		RecvUs:    account.RecvUs,
	}
}

// parseNonceAccount decodes the standard Solana nonce-account layout:
// version(u32) + state(u32) + authority(32) + nonce(32) +
// lamports_per_signature(u64). Only emits when state indicates the account
// is initialized.
func parseNonceAccount(account protocol.Account) (event.Event, bool) {
	if len(account.Data) < nonceAccountLen {
		return nil, false
	}
	state, ok := byteutil.ReadU32LE(account.Data, 4)
	if !ok || state != nonceStateInit {
		return nil, false
	}
	authority, ok := byteutil.ReadPubkey(account.Data, 8)
	if !ok {
		return nil, false
	}
	nonce, ok := byteutil.ReadPubkey(account.Data, 40)
	if !ok {
		return nil, false
	}
	feeCalc, ok := byteutil.ReadU64LE(account.Data, 72)
	if !ok {
		return nil, false
	}

	meta := baseMetadata(account)
	meta.EventType = event.TypeNonceAccount
	return &event.NonceAccountEvent{
		Metadata:                    *meta,
		Account:                     account.Pubkey,
		Authority:                   solkey.Pubkey(authority),
		Nonce:                       solkey.Pubkey(nonce),
		LamportsPerSignatureFeeCalc: feeCalc,
	}, true
}

// parseMint decodes the SPL-Token (or Token-2022) Mint account layout:
// mint_authority option(36) + supply(u64) + decimals(u8) +
// is_initialized(u8) + freeze_authority option(36).
func parseMint(account protocol.Account, token2022 bool) (event.Event, bool) {
	if token2022 {
		if account.Owner != Token2022ProgramID {
			return nil, false
		}
	} else if account.Owner != SplTokenProgramID {
		return nil, false
	}
	if len(account.Data) < mintLen {
		return nil, false
	}

	mintAuthPresent, ok := byteutil.ReadU32LE(account.Data, 0)
	if !ok {
		return nil, false
	}
	var mintAuth *solkey.Pubkey
	if mintAuthPresent != 0 {
		k, ok := byteutil.ReadPubkey(account.Data, 4)
		if !ok {
			return nil, false
		}
		kk := solkey.Pubkey(k)
		mintAuth = &kk
	}

	supply, ok := byteutil.ReadU64LE(account.Data, 36)
	if !ok {
		return nil, false
	}
	decimals, ok := byteutil.ReadU8LE(account.Data, 44)
	if !ok {
		return nil, false
	}
	isInit, ok := byteutil.ReadU8LE(account.Data, 45)
	if !ok {
		return nil, false
	}
	freezeAuthPresent, ok := byteutil.ReadU32LE(account.Data, 46)
	if !ok {
		return nil, false
	}
	var freezeAuth *solkey.Pubkey
	if freezeAuthPresent != 0 {
		k, ok := byteutil.ReadPubkey(account.Data, 50)
		if !ok {
			return nil, false
		}
		kk := solkey.Pubkey(k)
		freezeAuth = &kk
	}

	meta := baseMetadata(account)
	meta.EventType = event.TypeTokenInfo
	return &event.TokenInfoEvent{
		Metadata:        *meta,
		Mint:            account.Pubkey,
		MintAuthority:   mintAuth,
		Supply:          supply,
		Decimals:        decimals,
		IsInitialized:   isInit != 0,
		FreezeAuthority: freezeAuth,
		Token2022:       token2022,
	}, true
}

// parseTokenAccount decodes the SPL-Token (or Token-2022) Token Account
// layout: mint(32) + owner(32) + amount(u64) + ... + state(u8) at offset 108.
func parseTokenAccount(account protocol.Account) (event.Event, bool) {
	token2022 := account.Owner == Token2022ProgramID
	if !token2022 && account.Owner != SplTokenProgramID {
		return nil, false
	}
	if len(account.Data) < tokenLen {
		return nil, false
	}

	mint, ok := byteutil.ReadPubkey(account.Data, 0)
	if !ok {
		return nil, false
	}
	owner, ok := byteutil.ReadPubkey(account.Data, 32)
	if !ok {
		return nil, false
	}
	amount, ok := byteutil.ReadU64LE(account.Data, 64)
	if !ok {
		return nil, false
	}
	state, ok := byteutil.ReadU8LE(account.Data, 108)
	if !ok {
		return nil, false
	}

	meta := baseMetadata(account)
	meta.EventType = event.TypeTokenAccount
	return &event.TokenAccountEvent{
		Metadata:  *meta,
		Account:   account.Pubkey,
		Mint:      solkey.Pubkey(mint),
		Owner:     solkey.Pubkey(owner),
		Amount:    amount,
		State:     state,
		Token2022: token2022,
	}, true
}
