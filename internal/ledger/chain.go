package ledger

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoPendingRecords is returned by MinePending when there is nothing to
// mine. Mining an empty block is disallowed; callers recover by adding at
// least one record and retrying.
var ErrNoPendingRecords = errors.New("no pending records to mine")

// Chain is an append-only sequence of blocks plus a buffer of records
// awaiting inclusion in the next one. It is created with a pre-mined genesis
// block, grows only through MinePending, and is never reordered or truncated.
//
// A single logical writer is assumed. The mutex exists so that observers
// (metrics scrapes, renderers) can read chain state while a worker goroutine
// is mining; it does not make concurrent MinePending calls meaningful.
type Chain struct {
	mu         sync.RWMutex
	blocks     []*Block
	difficulty int
	pending    []Record
}

// NewChain creates a chain that requires difficulty leading zero hex
// characters on every block hash, and synchronously mines the genesis block.
// The caller pays the genesis proof-of-work cost here, before NewChain
// returns. Negative difficulties are treated as zero.
func NewChain(difficulty int) *Chain {
	if difficulty < 0 {
		difficulty = 0
	}
	genesis := NewBlock(0, Now(), []Record{{"message": "Genesis Block"}}, "0")
	genesis.Mine(difficulty)
	return &Chain{
		blocks:     []*Block{genesis},
		difficulty: difficulty,
	}
}

// AddRecord appends a record to the pending buffer. The record's shape is
// not validated; insertion order is preserved.
func (c *Chain) AddRecord(r Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, r)
}

// MinePending seals the current pending records into a new block: it
// snapshots the buffer, builds a block linked to the tail, runs the
// proof-of-work search, appends the result and drops the mined records from
// the buffer. The search runs outside the lock on a block nobody else can
// see yet, so readers stay live during long mining runs. Returns the newly
// appended block, or ErrNoPendingRecords when the buffer is empty (in which
// case neither the chain nor the buffer is touched).
func (c *Chain) MinePending() (*Block, error) {
	c.mu.Lock()
	if len(c.pending) == 0 {
		c.mu.Unlock()
		return nil, ErrNoPendingRecords
	}
	records := make([]Record, len(c.pending))
	copy(records, c.pending)
	index := len(c.blocks)
	prevHash := c.blocks[len(c.blocks)-1].Hash
	c.mu.Unlock()

	block := NewBlock(index, Now(), records, prevHash)
	block.Mine(c.difficulty)

	c.mu.Lock()
	c.blocks = append(c.blocks, block)
	if len(records) >= len(c.pending) {
		c.pending = c.pending[:0]
	} else {
		c.pending = c.pending[len(records):]
	}
	c.mu.Unlock()

	return block, nil
}

// Verify walks every adjacent block pair and reports the first integrity
// violation: a stored hash that no longer matches its recomputed digest, a
// broken link to the predecessor, or a hash below the required difficulty.
// A nil return means the whole chain is intact. Verification is a full
// re-scan on every call; no validity state is cached.
func (c *Chain) Verify() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := 1; i < len(c.blocks); i++ {
		curr := c.blocks[i]
		prev := c.blocks[i-1]

		if curr.Hash != curr.ComputeHash() {
			return fmt.Errorf("block %d: stored hash does not match recomputed digest", i)
		}
		if curr.PrevHash != prev.Hash {
			return fmt.Errorf("block %d: previous hash does not match hash of block %d", i, i-1)
		}
		if !curr.MeetsDifficulty(c.difficulty) {
			return fmt.Errorf("block %d: hash does not meet difficulty %d", i, c.difficulty)
		}
	}
	return nil
}

// IsValid reports whether Verify found no violations.
func (c *Chain) IsValid() bool {
	return c.Verify() == nil
}

// Latest returns the tail block. It is nil only for a zero-value Chain;
// chains built with NewChain always carry at least the genesis block.
func (c *Chain) Latest() *Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// Length returns the number of blocks in the chain.
func (c *Chain) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Block returns the block at the given position, or false when the position
// is outside [0, Length). An out-of-range lookup is a normal outcome, not an
// error.
func (c *Chain) Block(index int) (*Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.blocks) {
		return nil, false
	}
	return c.blocks[index], true
}

// Difficulty returns the leading-zero requirement blocks are mined against.
func (c *Chain) Difficulty() int {
	return c.difficulty
}

// PendingCount returns the number of records waiting for the next block.
func (c *Chain) PendingCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pending)
}

// ChainSnapshot is the chain's structural form.
type ChainSnapshot struct {
	Chain       []*Block `json:"chain"`
	Difficulty  int      `json:"difficulty"`
	ChainLength int      `json:"chain_length"`
}

// Snapshot returns a structural view of the chain suitable for encoding.
// The block list is copied; the blocks themselves are shared and must be
// treated as read-only.
func (c *Chain) Snapshot() *ChainSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	blocks := make([]*Block, len(c.blocks))
	copy(blocks, c.blocks)
	return &ChainSnapshot{
		Chain:       blocks,
		Difficulty:  c.difficulty,
		ChainLength: len(blocks),
	}
}
