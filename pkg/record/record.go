// Package record implements the object-pool layer's four pooled record
// types (§4.C / §3 "Object pool"): AccountPretty, TransactionPretty,
// BlockMetaPretty, and TransactionWithSlot. Each type has a process-wide
// pool sized per the component budget; the acquire-on-populate factories
// below hand the caller a moved-out plain value while the emptied Default
// instance goes back into its pool.
package record

import (
	"sync"

	"github.com/Estereg/solana-streamer/pkg/pool"
	"github.com/Estereg/solana-streamer/pkg/solkey"
)

// Pool sizes (initial / max), per §3.
const (
	AccountPoolInitial     = 10_000
	AccountPoolMax         = 20_000
	TransactionPoolInitial = 10_000
	TransactionPoolMax     = 20_000
	BlockMetaPoolInitial   = 500
	BlockMetaPoolMax       = 1_000
	ShredTxPoolInitial     = 5_000
	ShredTxPoolMax         = 15_000
)

// CompiledInstructionPretty is the pooled-record-friendly mirror of the
// gRPC CompiledInstruction wire shape (§6).
type CompiledInstructionPretty struct {
	ProgramIDIndex uint32
	AccountIndices []uint8
	Data           []byte
}

func (c *CompiledInstructionPretty) reset() {
	c.ProgramIDIndex = 0
	c.AccountIndices = c.AccountIndices[:0]
	c.Data = c.Data[:0]
}

// AccountPretty is the pooled record an account-update frame is decoded
// into before being handed to the account parser.
type AccountPretty struct {
	Pubkey     solkey.Pubkey
	Owner      solkey.Pubkey
	Data       []byte
	Lamports   uint64
	Executable bool
	RentEpoch  uint64
	Slot       uint64
	Signature  solkey.Signature
	RecvUs     int64
}

func (a *AccountPretty) reset() {
	*a = AccountPretty{Data: a.Data[:0]}
}

// TransactionPretty is the pooled record a gRPC transaction-update frame is
// decoded into before being walked.
type TransactionPretty struct {
	Signature         solkey.Signature
	Slot              uint64
	BlockTimeS        int64
	BlockTimeMs       int64
	TransactionIndex  uint64
	HasTransactionIdx bool
	RecvUs            int64
	Accounts          []solkey.Pubkey
	Instructions      []CompiledInstructionPretty
	InnerInstructions map[int][]CompiledInstructionPretty
}

func (t *TransactionPretty) reset() {
	accounts := t.Accounts[:0]
	instructions := t.Instructions[:0]
	*t = TransactionPretty{Accounts: accounts, Instructions: instructions}
}

// BlockMetaPretty is the pooled record for block-level metadata frames.
type BlockMetaPretty struct {
	Slot        uint64
	ParentSlot  uint64
	BlockHash   string
	BlockTimeS  int64
	BlockTimeMs int64
}

func (b *BlockMetaPretty) reset() {
	*b = BlockMetaPretty{}
}

// TransactionWithSlot is the pooled record for the raw-shred feed: a
// versioned transaction paired with the slot its entry belonged to.
type TransactionWithSlot struct {
	Slot        uint64
	Transaction TransactionPretty
}

func (t *TransactionWithSlot) reset() {
	t.Slot = 0
	t.Transaction.reset()
}

var (
	accountPool     *pool.Pool[AccountPretty]
	transactionPool *pool.Pool[TransactionPretty]
	blockMetaPool   *pool.Pool[BlockMetaPretty]
	shredTxPool     *pool.Pool[TransactionWithSlot]
	poolsOnce       sync.Once
)

func initPools() {
	accountPool = pool.New(AccountPoolInitial, AccountPoolMax, func() *AccountPretty { return &AccountPretty{} }, (*AccountPretty).reset)
	transactionPool = pool.New(TransactionPoolInitial, TransactionPoolMax, func() *TransactionPretty { return &TransactionPretty{} }, (*TransactionPretty).reset)
	blockMetaPool = pool.New(BlockMetaPoolInitial, BlockMetaPoolMax, func() *BlockMetaPretty { return &BlockMetaPretty{} }, (*BlockMetaPretty).reset)
	shredTxPool = pool.New(ShredTxPoolInitial, ShredTxPoolMax, func() *TransactionWithSlot { return &TransactionWithSlot{} }, (*TransactionWithSlot).reset)
}

// Pools returns the four process-wide pools, initializing them on first use.
func Pools() (accounts *pool.Pool[AccountPretty], transactions *pool.Pool[TransactionPretty], blockMetas *pool.Pool[BlockMetaPretty], shredTxs *pool.Pool[TransactionWithSlot]) {
	poolsOnce.Do(initPools)
	return accountPool, transactionPool, blockMetaPool, shredTxPool
}

// AcquireAccount runs the acquire-on-populate factory (§4.C) for
// AccountPretty: it acquires a pooled instance, lets fill populate it, then
// moves the populated value out for the caller while the emptied instance
// returns to the pool. fill must assign fresh byte slices rather than
// appending into the pooled instance's existing capacity, since the moved-out
// copy and the recycled instance will otherwise alias the same backing array.
func AcquireAccount(fill func(*AccountPretty)) AccountPretty {
	accounts, _, _, _ := Pools()
	h := accounts.Acquire()
	fill(h.Value)
	out := *h.Value
	h.Release()
	return out
}

// AcquireTransaction is AcquireAccount's counterpart for TransactionPretty.
func AcquireTransaction(fill func(*TransactionPretty)) TransactionPretty {
	_, transactions, _, _ := Pools()
	h := transactions.Acquire()
	fill(h.Value)
	out := *h.Value
	h.Release()
	return out
}

// AcquireBlockMeta is AcquireAccount's counterpart for BlockMetaPretty.
func AcquireBlockMeta(fill func(*BlockMetaPretty)) BlockMetaPretty {
	_, _, blockMetas, _ := Pools()
	h := blockMetas.Acquire()
	fill(h.Value)
	out := *h.Value
	h.Release()
	return out
}

// AcquireTransactionWithSlot is AcquireAccount's counterpart for the
// raw-shred feed's TransactionWithSlot.
func AcquireTransactionWithSlot(fill func(*TransactionWithSlot)) TransactionWithSlot {
	_, _, _, shredTxs := Pools()
	h := shredTxs.Acquire()
	fill(h.Value)
	out := *h.Value
	h.Release()
	return out
}
