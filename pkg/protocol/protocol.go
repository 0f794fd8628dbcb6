// Package protocol defines the shape every per-protocol decoder module
// (§4.E) is built from: a program id, a discriminator length, a table of
// (discriminator -> parser) rows for outer instructions, a similar table
// keyed on 16-byte inner (CPI-log) discriminators, and an account-snapshot
// parser. The dispatcher (pkg/dispatch) is generic over this interface so
// adding the eighth protocol never touches dispatch code.
package protocol

import (
	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// Account is the standalone on-chain account snapshot §4.J's account
// parser is handed.
type Account struct {
	Pubkey      solkey.Pubkey
	Owner       solkey.Pubkey
	Data        []byte
	Lamports    uint64
	Executable  bool
	RentEpoch   uint64
	Slot        uint64
	Signature   solkey.Signature
	RecvUs      int64
}

// ParserFunc decodes payload (the instruction data *after* its
// discriminator) together with the instruction's padded account-index
// array into an Event. Returns (nil, false) when the payload is too short
// for its fields. Only some parsers (PumpFun, Bonk) also reject an account
// array shorter than the slots they read; the others read a missing slot as
// the zero key via AccountAt.
type ParserFunc func(payload []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool)

// AccountParserFunc decodes a protocol-owned account snapshot whose first
// bytes equal disc.
type AccountParserFunc func(disc []byte, account Account, meta *event.Metadata) (event.Event, bool)

// OuterRow is one entry of a protocol's outer-instruction dispatch table.
type OuterRow struct {
	Discriminator []byte
	EventType     event.Type
	Parser        ParserFunc
	RequiresInner bool
}

// InnerRow is one entry of a protocol's inner (CPI-log) dispatch table.
// Inner discriminators are always 16 bytes (§3).
type InnerRow struct {
	Discriminator [16]byte
	EventType     event.Type
	Parser        ParserFunc
}

// Decoder is implemented by each of the seven per-protocol modules.
type Decoder interface {
	ProgramID() solkey.Pubkey
	Protocol() event.Protocol
	DiscriminatorLen() int
	OuterTable() []OuterRow
	InnerTable() []InnerRow
	ParseAccountData(disc []byte, account Account, meta *event.Metadata) (event.Event, bool)
}

// Descriptor is a ready-made Decoder built from a protocol package's
// exported table variables; every DEX protocol package under protocols/
// constructs one of these in its New() function instead of hand-rolling the
// interface (protocols/common, the compute-budget decoder, has no New()).
type Descriptor struct {
	programID     solkey.Pubkey
	protocol      event.Protocol
	discLen       int
	outer         []OuterRow
	inner         []InnerRow
	parseAccount  AccountParserFunc
}

// New builds a Descriptor. parseAccount may be nil for protocols that own
// no standalone account layout (§4.E: "some protocols have none").
func New(programID solkey.Pubkey, p event.Protocol, discLen int, outer []OuterRow, inner []InnerRow, parseAccount AccountParserFunc) *Descriptor {
	return &Descriptor{
		programID:    programID,
		protocol:     p,
		discLen:      discLen,
		outer:        outer,
		inner:        inner,
		parseAccount: parseAccount,
	}
}

func (d *Descriptor) ProgramID() solkey.Pubkey    { return d.programID }
func (d *Descriptor) Protocol() event.Protocol    { return d.protocol }
func (d *Descriptor) DiscriminatorLen() int       { return d.discLen }
func (d *Descriptor) OuterTable() []OuterRow      { return d.outer }
func (d *Descriptor) InnerTable() []InnerRow      { return d.inner }

func (d *Descriptor) ParseAccountData(disc []byte, account Account, meta *event.Metadata) (event.Event, bool) {
	if d.parseAccount == nil {
		return nil, false
	}
	return d.parseAccount(disc, account, meta)
}

// PadAccounts returns a slice of length n where entry i is keys[idx[i]] if
// in range, or solkey.Zero otherwise (§4.E: "padded with a zero key when
// the instruction's index list referenced an out-of-range account").
func PadAccounts(keys []solkey.Pubkey, idx []uint8) []solkey.Pubkey {
	out := make([]solkey.Pubkey, len(idx))
	for i, ix := range idx {
		if int(ix) < len(keys) {
			out[i] = keys[ix]
		} else {
			out[i] = solkey.Zero
		}
	}
	return out
}

// AccountAt returns accounts[i] or a zero key when i is out of range,
// matching the "account_array[i] provides a 32-byte key, padded with a
// zero key" rule for a single positional lookup.
func AccountAt(accounts []solkey.Pubkey, i int) solkey.Pubkey {
	if i < 0 || i >= len(accounts) {
		return solkey.Zero
	}
	return accounts[i]
}
