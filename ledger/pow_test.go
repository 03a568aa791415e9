package ledger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatisfiesDifficulty(t *testing.T) {
	assert.True(t, SatisfiesDifficulty("abcdef", 0))
	assert.True(t, SatisfiesDifficulty("00abcd", 2))
	assert.False(t, SatisfiesDifficulty("00abcd", 3))
	assert.False(t, SatisfiesDifficulty("a0bcde", 1))
}

func TestSearchNonceFindsValidDigest(t *testing.T) {
	candidate := Block{
		Index:      1,
		Timestamp:  1700000000,
		Records:    []string{"Alice pays Bob 5 BTC"},
		PrevDigest: "abc123",
		Nonce:      0,
	}

	mined, err := SearchNonce(context.Background(), candidate, 2)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(mined.Digest, "00"))
	assert.Equal(t, mined.Digest, mined.ComputeDigest())
	assert.Equal(t, candidate.Records, mined.Records)
	assert.Equal(t, candidate.PrevDigest, mined.PrevDigest)
}

func TestSearchNonceStartIsInclusive(t *testing.T) {
	candidate := Block{
		Index:      1,
		Timestamp:  1700000000,
		Records:    []string{"payload"},
		PrevDigest: "abc123",
		Nonce:      0,
	}

	first, err := SearchNonce(context.Background(), candidate, 1)
	require.NoError(t, err)

	// Restarting the scan at the winning nonce must accept it immediately.
	candidate.Nonce = first.Nonce
	second, err := SearchNonce(context.Background(), candidate, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Nonce, second.Nonce)
	assert.Equal(t, first.Digest, second.Digest)
}

func TestSearchNonceCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidate := Block{
		Index:      1,
		Timestamp:  1700000000,
		Records:    []string{"payload"},
		PrevDigest: "abc123",
		Nonce:      0,
	}

	// Difficulty 64 requires an all-zero digest, so only the cancelled
	// context can end this search.
	_, err := SearchNonce(ctx, candidate, 64)
	require.ErrorIs(t, err, context.Canceled)
}
