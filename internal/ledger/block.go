package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/quubnetwork/quub/internal/jsonx"
)

// Record is a single payload entry carried by a block. Records are opaque to
// the ledger: any JSON-serializable mapping is accepted and never inspected.
type Record map[string]any

// Block is one entry in the chain. Fields stay exported so that integrity
// checks can be exercised against directly overwritten state; after a block
// has been appended to a chain it must only be mutated by tests.
type Block struct {
	Index     int      `json:"index"`
	Timestamp float64  `json:"timestamp"`
	Data      []Record `json:"data"`
	PrevHash  string   `json:"previous_hash"`
	Nonce     uint64   `json:"nonce"`
	Hash      string   `json:"hash"`
}

// digestFields is the canonical hashing envelope. The field order below is
// fixed and load-bearing: identical logical content must digest to identical
// bytes across processes, so the order must never change. Map keys inside
// Data are sorted by the codec.
type digestFields struct {
	Index     int      `json:"index"`
	Timestamp float64  `json:"timestamp"`
	Data      []Record `json:"data"`
	PrevHash  string   `json:"previous_hash"`
	Nonce     uint64   `json:"nonce"`
}

// NewBlock builds a block with a zero nonce and its hash computed from the
// given fields. Index and prevHash are taken as-is; callers are responsible
// for their coherence.
func NewBlock(index int, timestamp float64, data []Record, prevHash string) *Block {
	b := &Block{
		Index:     index,
		Timestamp: timestamp,
		Data:      data,
		PrevHash:  prevHash,
	}
	b.Hash = b.ComputeHash()
	return b
}

// Now returns the wall-clock time in the timestamp representation blocks use.
func Now() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// ComputeHash digests the block's current field values, excluding the stored
// hash itself, and renders the SHA-256 sum as lowercase hex. It never mutates
// the block; callers decide whether to store the result.
func (b *Block) ComputeHash() string {
	payload, _ := jsonx.Marshal(digestFields{
		Index:     b.Index,
		Timestamp: b.Timestamp,
		Data:      b.Data,
		PrevHash:  b.PrevHash,
		Nonce:     b.Nonce,
	})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Mine searches for a nonce whose digest carries the required number of
// leading zero hex characters, incrementing from the current nonce. The
// search is unbounded: a high difficulty blocks the calling goroutine until
// a solution is found. Nonce and Hash are updated in place.
func (b *Block) Mine(difficulty int) {
	if difficulty <= 0 {
		return
	}
	target := strings.Repeat("0", difficulty)
	for !strings.HasPrefix(b.Hash, target) {
		b.Nonce++
		b.Hash = b.ComputeHash()
	}
}

// MeetsDifficulty reports whether the stored hash has at least difficulty
// leading zero hex characters. It does not recompute the hash.
func (b *Block) MeetsDifficulty(difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	return strings.HasPrefix(b.Hash, strings.Repeat("0", difficulty))
}

// Encode renders the block's structural form: all six fields, including the
// stored hash, as JSON.
func (b *Block) Encode() ([]byte, error) {
	return jsonx.Marshal(b)
}

// DecodeBlock rebuilds a block from its structural form. The stored hash is
// trusted verbatim: nothing is recomputed or verified here, so a forged
// hash survives decoding and is only caught by a later chain verification.
func DecodeBlock(data []byte) (*Block, error) {
	var b Block
	if err := jsonx.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, "malformed block encoding")
	}
	return &b, nil
}
