// Package feed describes the two upstream collaborators this pipeline
// consumes (§6): a gRPC transaction/account update stream and a raw shred
// entry stream. Both are treated as external collaborators — reconnection,
// backpressure, and the wire codec belong to a generated gRPC/protobuf
// client, and no such client ships in this module. What lives here is the
// wire shape the walker and account parser are built against, the stream
// interfaces such a client would implement, and a Dial helper.
package feed

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// CompiledInstruction mirrors the gRPC CompiledInstruction message (§6).
type CompiledInstruction struct {
	ProgramIDIndex uint32
	AccountIndices []byte
	Data           []byte
}

// InnerInstructionGroup is one entry of meta.inner_instructions, all the
// CPI-logged instructions nested under one outer instruction index.
type InnerInstructionGroup struct {
	Index        uint32
	Instructions []CompiledInstruction
}

// TransactionMessage is the account-keys/instructions half of a transaction
// update.
type TransactionMessage struct {
	AccountKeys  [][32]byte
	Instructions []CompiledInstruction
}

// TransactionMeta is the execution-result half of a transaction update.
type TransactionMeta struct {
	InnerInstructions       []InnerInstructionGroup
	LoadedWritableAddresses [][32]byte
	LoadedReadonlyAddresses [][32]byte
}

// TransactionUpdate is one message off the gRPC transaction stream.
type TransactionUpdate struct {
	Slot             uint64
	TransactionIndex uint64
	IsVote           bool
	Signature        [64]byte
	BlockTime        *timestamppb.Timestamp
	Message          TransactionMessage
	Meta             TransactionMeta
}

// AccountUpdate is one message off the gRPC account stream.
type AccountUpdate struct {
	Slot       uint64
	Pubkey     [32]byte
	Owner      [32]byte
	Lamports   uint64
	Data       []byte
	Executable bool
	RentEpoch  uint64
}

// ShredEntryMessage is one message off the raw shred feed: entries is a
// length-prefixed sequence of Entry{..., transactions: [VersionedTransaction]}
// in the standard binary shred-entry format.
type ShredEntryMessage struct {
	Slot    uint64
	Entries []byte
}

// SubscribeRequest selects which program ids' activity a stream subscribes to.
type SubscribeRequest struct {
	ProgramIDs      [][32]byte
	IncludeAccounts bool
}

// TransactionStream is the interface a generated gRPC client would
// implement (none is included here); Subscribe returns three channels the caller drains until
// ctx is canceled or the error channel closes.
type TransactionStream interface {
	Subscribe(ctx context.Context, req SubscribeRequest) (<-chan TransactionUpdate, <-chan AccountUpdate, <-chan error)
}

// ShredStream is the raw-shred-feed counterpart of TransactionStream.
type ShredStream interface {
	Subscribe(ctx context.Context, req SubscribeRequest) (<-chan ShredEntryMessage, <-chan error)
}

// DialOptions configures Dial.
type DialOptions struct {
	MaxRecvMsgSizeBytes int
	Insecure            bool
}

// Dial opens a gRPC connection to target using the connect-timeout and
// max-message-size settings from config (§6).
func Dial(ctx context.Context, target string, opts DialOptions) (*grpc.ClientConn, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(opts.MaxRecvMsgSizeBytes)),
	}
	if opts.Insecure {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	conn, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", target, err)
	}
	return conn, nil
}
