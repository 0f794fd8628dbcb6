// Package dispatch routes raw instructions and account snapshots to the
// correct protocol decoder (§4.F). It owns no parsing logic of its own: it
// stamps metadata, looks up a table row by discriminator, and hands off to
// the row's parser unchanged.
package dispatch

import (
	"bytes"

	"github.com/Estereg/solana-streamer/pkg/event"
	"github.com/Estereg/solana-streamer/pkg/protocol"
	"github.com/Estereg/solana-streamer/pkg/protocols/common"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// Registry holds every protocol decoder this pipeline knows about, indexed
// by program id for O(1) routing, plus the compute-budget program id,
// which is handled separately since it has no protocol.Decoder of its own.
type Registry struct {
	byProgramID map[solkey.Pubkey]protocol.Decoder
	byProtocol  map[event.Protocol]protocol.Decoder
}

// NewRegistry builds a Registry from a list of decoders.
func NewRegistry(decoders ...protocol.Decoder) *Registry {
	r := &Registry{
		byProgramID: make(map[solkey.Pubkey]protocol.Decoder, len(decoders)),
		byProtocol:  make(map[event.Protocol]protocol.Decoder, len(decoders)),
	}
	for _, d := range decoders {
		r.byProgramID[d.ProgramID()] = d
		r.byProtocol[d.Protocol()] = d
	}
	return r
}

// IsComputeBudgetProgram reports whether pid is the compute-budget program.
func IsComputeBudgetProgram(pid solkey.Pubkey) bool {
	return pid == common.ProgramID
}

// MatchProtocolByProgramID returns the protocol owning pid, if any.
func (r *Registry) MatchProtocolByProgramID(pid solkey.Pubkey) (event.Protocol, bool) {
	d, ok := r.byProgramID[pid]
	if !ok {
		return event.ProtocolUnknown, false
	}
	return d.Protocol(), true
}

// DecoderForProgramID returns the decoder owning pid, if any.
func (r *Registry) DecoderForProgramID(pid solkey.Pubkey) (protocol.Decoder, bool) {
	d, ok := r.byProgramID[pid]
	return d, ok
}

// GetProgramID inverts the protocol -> program-id mapping.
func (r *Registry) GetProgramID(p event.Protocol) (solkey.Pubkey, bool) {
	d, ok := r.byProtocol[p]
	if !ok {
		return solkey.Zero, false
	}
	return d.ProgramID(), true
}

func findOuterRow(rows []protocol.OuterRow, discLen int, data []byte) (*protocol.OuterRow, []byte, bool) {
	if len(data) < discLen {
		return nil, nil, false
	}
	disc := data[:discLen]
	for i := range rows {
		if bytes.Equal(rows[i].Discriminator, disc) {
			return &rows[i], data[discLen:], true
		}
	}
	return nil, nil, false
}

// DispatchInstruction decodes an outer instruction (§4.F step 1-3). data
// includes the discriminator prefix. Stamps meta.ProtocolTag before
// invoking the row's parser; the parser may overwrite only EventType.
func DispatchInstruction(d protocol.Decoder, data []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, *protocol.OuterRow, bool) {
	meta.ProtocolTag = d.Protocol()
	row, payload, ok := findOuterRow(d.OuterTable(), d.DiscriminatorLen(), data)
	if !ok {
		return nil, nil, false
	}
	ev, ok := row.Parser(payload, accounts, meta)
	if !ok {
		return nil, row, false
	}
	return ev, row, true
}

// DispatchInnerInstruction decodes an inner (CPI-log) instruction against
// d's 16-byte-discriminator table.
func DispatchInnerInstruction(d protocol.Decoder, data []byte, accounts []solkey.Pubkey, meta *event.Metadata) (event.Event, bool) {
	if len(data) < 16 {
		return nil, false
	}
	var disc [16]byte
	copy(disc[:], data[:16])
	payload := data[16:]

	for _, row := range d.InnerTable() {
		if row.Discriminator == disc {
			meta.ProtocolTag = d.Protocol()
			return row.Parser(payload, accounts, meta)
		}
	}
	return nil, false
}

// DispatchAccount decodes a standalone account snapshot against d's
// protocol-specific account parser.
func DispatchAccount(d protocol.Decoder, disc []byte, account protocol.Account, meta *event.Metadata) (event.Event, bool) {
	meta.ProtocolTag = d.Protocol()
	return d.ParseAccountData(disc, account, meta)
}

// DispatchComputeBudgetInstruction decodes a compute-budget instruction.
// It does not live in the Registry's decoder table since compute-budget is
// not one of the seven DEX protocols.
func DispatchComputeBudgetInstruction(data []byte, meta *event.Metadata) (event.Event, bool) {
	meta.ProtocolTag = event.ProtocolCommon
	return common.DecodeInstruction(data, meta)
}
