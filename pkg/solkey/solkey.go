// Package solkey defines the fixed-size key types the decode pipeline
// compares by value, and the base58 boundary helpers used to turn the
// well-known program-id literals (and demo/debug logging) into those keys.
package solkey

import (
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Pubkey is a 32-byte on-chain address, compared by value.
type Pubkey [32]byte

// Signature is a 64-byte transaction signature, compared by value.
type Signature [64]byte

// Zero is the all-zero key used to pad out-of-range account references.
var Zero Pubkey

// MustFromBase58 decodes a base58-encoded program id literal into a Pubkey.
// Panics on malformed input; used only at package-init time for constants
// that are known-good by construction.
func MustFromBase58(s string) Pubkey {
	pk := solana.MustPublicKeyFromBase58(s)
	var out Pubkey
	copy(out[:], pk[:])
	return out
}

// FromBase58 decodes a base58 string into a Pubkey, reporting whether it
// decoded to exactly 32 bytes.
func FromBase58(s string) (Pubkey, bool) {
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != 32 {
		return Pubkey{}, false
	}
	var out Pubkey
	copy(out[:], raw)
	return out, true
}

// String returns the base58 encoding of the key.
func (k Pubkey) String() string {
	return base58.Encode(k[:])
}

// String returns the base58 encoding of the signature.
func (s Signature) String() string {
	return base58.Encode(s[:])
}
