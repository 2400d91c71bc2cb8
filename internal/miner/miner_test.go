package miner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quubnetwork/quub/internal/ledger"
)

func newTestBlock() *ledger.Block {
	data := []ledger.Record{{"from": "Alice", "to": "Bob", "amount": float64(50)}}
	return ledger.NewBlock(1, 1700000000.123456, data, "previous_hash_123")
}

func TestSolve(t *testing.T) {
	b := newTestBlock()

	err := Solve(context.Background(), b, 2, 4)
	require.NoError(t, err)

	assert.True(t, b.MeetsDifficulty(2))
	assert.Equal(t, b.ComputeHash(), b.Hash)
}

func TestSolveSingleWorker(t *testing.T) {
	b := newTestBlock()

	// Worker counts below one clamp to a lone worker.
	err := Solve(context.Background(), b, 1, 0)
	require.NoError(t, err)
	assert.True(t, b.MeetsDifficulty(1))
}

func TestSolveZeroDifficulty(t *testing.T) {
	b := newTestBlock()
	nonce, hash := b.Nonce, b.Hash

	err := Solve(context.Background(), b, 0, 4)
	require.NoError(t, err)

	assert.Equal(t, nonce, b.Nonce)
	assert.Equal(t, hash, b.Hash)
}

func TestSolveCancelledContext(t *testing.T) {
	b := newTestBlock()
	nonce, hash := b.Nonce, b.Hash

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Solve(ctx, b, 2, 4)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, nonce, b.Nonce)
	assert.Equal(t, hash, b.Hash)
}

func TestSolveTimeout(t *testing.T) {
	b := newTestBlock()
	nonce, hash := b.Nonce, b.Hash

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// 64 leading zeros is unreachable, so only the deadline can end the search.
	err := Solve(ctx, b, 64, 4)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, nonce, b.Nonce)
	assert.Equal(t, hash, b.Hash)
}

func TestMineAsync(t *testing.T) {
	c := ledger.NewChain(2)
	c.AddRecord(ledger.Record{"from": "Alice", "to": "Bob", "amount": float64(50)})

	res := <-MineAsync(c)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Block)

	assert.Equal(t, 2, c.Length())
	assert.True(t, res.Block.MeetsDifficulty(2))
	assert.True(t, c.IsValid())
}

func TestMineAsyncEmpty(t *testing.T) {
	c := ledger.NewChain(2)

	res := <-MineAsync(c)
	require.ErrorIs(t, res.Err, ledger.ErrNoPendingRecords)
	assert.Nil(t, res.Block)
	assert.Equal(t, 1, c.Length())
}
