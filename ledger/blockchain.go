package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Validation and tampering errors. Verify wraps these with the index of
// the failing block so callers can report which check failed where.
var (
	ErrDigestMismatch   = errors.New("stored digest does not match recomputed digest")
	ErrBrokenLinkage    = errors.New("previous digest does not match predecessor's digest")
	ErrInsufficientWork = errors.New("digest does not satisfy the proof-of-work difficulty")
	ErrIndexOutOfRange  = errors.New("block index out of range")
)

// Blockchain is an append-only sequence of proof-of-work blocks plus the
// queue of records not yet sealed into a block. The difficulty is fixed
// for the chain's lifetime.
type Blockchain struct {
	mu         sync.RWMutex
	blocks     []Block
	pending    []string
	difficulty uint
}

// MineResult describes the outcome of a MinePending call. Mined is false
// when there were no pending records and the chain was left untouched.
type MineResult struct {
	Mined      bool
	BlockIndex int
	Nonce      uint64
	Elapsed    time.Duration
}

// NewBlockchain creates a new blockchain with an initialized genesis block
// and an empty pending queue. The genesis block has index 0, previous
// digest "0", and a single genesis record; it is never mined and is exempt
// from verification by construction.
func NewBlockchain(difficulty uint) *Blockchain {
	genesis := sealBlock(0, time.Now().Unix(), []string{"Genesis Record"}, GenesisPrevDigest, 0)

	return &Blockchain{
		blocks:     []Block{genesis},
		pending:    nil,
		difficulty: difficulty,
	}
}

// AddRecord appends a record payload to the pending queue. The payload is
// opaque to the chain and is not inspected or constrained.
func (bc *Blockchain) AddRecord(payload string) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	bc.pending = append(bc.pending, payload)
}

// MinePending seals the pending records into a new block linked to the
// current last block, runs the proof-of-work search on it, and appends it
// to the chain. The pending queue is cleared exactly when the block is
// appended. With no pending records it reports Mined false and changes
// nothing.
//
// The call blocks for the whole duration of the search. Cancelling the
// context aborts the search and returns its error; the chain and the
// pending queue are left unchanged in that case.
func (bc *Blockchain) MinePending(ctx context.Context) (MineResult, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if len(bc.pending) == 0 {
		return MineResult{}, nil
	}

	latest := bc.blocks[len(bc.blocks)-1]

	records := make([]string, len(bc.pending))
	copy(records, bc.pending)

	candidate := Block{
		Index:      latest.Index + 1,
		Timestamp:  time.Now().Unix(),
		Records:    records,
		PrevDigest: latest.Digest,
		Nonce:      0,
	}

	start := time.Now()
	mined, err := SearchNonce(ctx, candidate, bc.difficulty)
	if err != nil {
		return MineResult{}, err
	}

	bc.blocks = append(bc.blocks, mined)
	bc.pending = nil

	return MineResult{
		Mined:      true,
		BlockIndex: mined.Index,
		Nonce:      mined.Nonce,
		Elapsed:    time.Since(start),
	}, nil
}

// Verify validates the integrity of the entire blockchain. Every block
// after genesis is checked in order for digest integrity, linkage to its
// predecessor, and proof-of-work satisfaction; the first failure is
// returned immediately, wrapped with the failing block's index. Genesis
// is exempt from all three checks. A nil return means the chain is intact.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	for i := 1; i < len(bc.blocks); i++ {
		current := bc.blocks[i]
		previous := bc.blocks[i-1]

		if current.Digest != current.ComputeDigest() {
			return fmt.Errorf("block %d: %w", i, ErrDigestMismatch)
		}
		if current.PrevDigest != previous.Digest {
			return fmt.Errorf("block %d: %w", i, ErrBrokenLinkage)
		}
		if !SatisfiesDifficulty(current.Digest, bc.difficulty) {
			return fmt.Errorf("block %d: %w", i, ErrInsufficientWork)
		}
	}

	return nil
}

// IsValid reports whether Verify finds the chain intact.
func (bc *Blockchain) IsValid() bool {
	return bc.Verify() == nil
}

// Tamper appends a record to the block at the given index without
// recomputing that block's digest, deliberately desynchronizing the two.
// It exists only to demonstrate that Verify detects in-place modification
// and is never reached by the normal mutation path. An out-of-range index
// is reported as an error and leaves the chain unchanged.
func (bc *Blockchain) Tamper(index int, payload string) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if index < 0 || index >= len(bc.blocks) {
		return fmt.Errorf("tamper block %d: %w", index, ErrIndexOutOfRange)
	}

	bc.blocks[index].Records = append(bc.blocks[index].Records, payload)

	return nil
}

// Latest returns the most recently appended block. The chain always
// contains at least the genesis block.
func (bc *Blockchain) Latest() Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return bc.blocks[len(bc.blocks)-1]
}

// ByIndex retrieves a block by its index in the chain. Returns an error
// if the index is out of range.
func (bc *Blockchain) ByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("block %d: %w", index, ErrIndexOutOfRange)
	}

	return bc.blocks[index], nil
}

// Blocks returns a snapshot of the chain for inspection and rendering.
func (bc *Blockchain) Blocks() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	blocks := make([]Block, len(bc.blocks))
	copy(blocks, bc.blocks)
	return blocks
}

// Length returns the number of blocks in the chain, genesis included.
func (bc *Blockchain) Length() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return len(bc.blocks)
}

// Pending returns a snapshot of the records awaiting inclusion in the
// next block.
func (bc *Blockchain) Pending() []string {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	pending := make([]string, len(bc.pending))
	copy(pending, bc.pending)
	return pending
}

// Difficulty returns the number of leading zero hex characters required
// of every mined block's digest.
func (bc *Blockchain) Difficulty() uint {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return bc.difficulty
}
