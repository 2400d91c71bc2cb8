package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []Record {
	return []Record{{"from": "Alice", "to": "Bob", "amount": float64(50)}}
}

func newTestBlock() *Block {
	return NewBlock(1, 1700000000.123456, testRecords(), "previous_hash_123")
}

func TestNewBlock(t *testing.T) {
	b := newTestBlock()

	assert.Equal(t, 1, b.Index)
	assert.Equal(t, testRecords(), b.Data)
	assert.Equal(t, "previous_hash_123", b.PrevHash)
	assert.Equal(t, uint64(0), b.Nonce)
	require.NotEmpty(t, b.Hash)
	assert.Equal(t, b.ComputeHash(), b.Hash)
}

func TestComputeHashDeterministic(t *testing.T) {
	b := newTestBlock()

	require.Equal(t, b.ComputeHash(), b.ComputeHash())

	// A separately constructed block with identical fields digests to the
	// same value; validation relies on this holding across instances.
	other := NewBlock(1, 1700000000.123456, testRecords(), "previous_hash_123")
	require.Equal(t, b.Hash, other.Hash)
}

func TestComputeHashIgnoresStoredHash(t *testing.T) {
	b := newTestBlock()
	want := b.ComputeHash()

	b.Hash = "forged"
	require.Equal(t, want, b.ComputeHash())
}

func TestComputeHashSensitivity(t *testing.T) {
	base := newTestBlock()

	mutations := map[string]func(*Block){
		"data": func(b *Block) {
			b.Data = []Record{{"from": "Charlie", "to": "Dave", "amount": float64(100)}}
		},
		"nonce":         func(b *Block) { b.Nonce = 42 },
		"previous_hash": func(b *Block) { b.PrevHash = "other_hash" },
		"index":         func(b *Block) { b.Index = 2 },
		"timestamp":     func(b *Block) { b.Timestamp = 1700000001.0 },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			b := newTestBlock()
			mutate(b)
			assert.NotEqual(t, base.ComputeHash(), b.ComputeHash())
		})
	}
}

func TestMine(t *testing.T) {
	b := newTestBlock()
	startHash := b.Hash

	b.Mine(2)

	require.True(t, strings.HasPrefix(b.Hash, "00"))
	assert.True(t, b.MeetsDifficulty(2))
	assert.Equal(t, b.ComputeHash(), b.Hash)
	if !strings.HasPrefix(startHash, "00") {
		assert.Greater(t, b.Nonce, uint64(0))
	}
}

func TestMineResumesFromCurrentNonce(t *testing.T) {
	b := newTestBlock()
	b.Nonce = 500
	b.Hash = b.ComputeHash()

	b.Mine(1)

	assert.GreaterOrEqual(t, b.Nonce, uint64(500))
	assert.True(t, b.MeetsDifficulty(1))
}

func TestMineZeroDifficulty(t *testing.T) {
	b := newTestBlock()
	hash := b.Hash

	b.Mine(0)

	assert.Equal(t, uint64(0), b.Nonce)
	assert.Equal(t, hash, b.Hash)
}

func TestMeetsDifficulty(t *testing.T) {
	b := newTestBlock()
	b.Hash = "00ab" + strings.Repeat("f", 60)

	assert.True(t, b.MeetsDifficulty(0))
	assert.True(t, b.MeetsDifficulty(2))
	assert.False(t, b.MeetsDifficulty(3))
	assert.True(t, b.MeetsDifficulty(-1))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := newTestBlock()
	b.Mine(1)

	encoded, err := b.Encode()
	require.NoError(t, err)

	decoded, err := DecodeBlock(encoded)
	require.NoError(t, err)
	require.Equal(t, b, decoded)
}

func TestDecodeBlockTrustsStoredHash(t *testing.T) {
	b := newTestBlock()
	b.Hash = "definitely_not_a_digest"

	encoded, err := b.Encode()
	require.NoError(t, err)

	decoded, err := DecodeBlock(encoded)
	require.NoError(t, err)
	assert.Equal(t, "definitely_not_a_digest", decoded.Hash)
	assert.NotEqual(t, decoded.ComputeHash(), decoded.Hash)
}

func TestDecodeBlockMalformed(t *testing.T) {
	_, err := DecodeBlock([]byte(`{"index": "not a number"`))
	require.Error(t, err)
}
