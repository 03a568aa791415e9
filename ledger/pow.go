package ledger

import (
	"context"
	"strings"
)

// DefaultDifficulty is the number of leading zero hex characters a mined
// digest must have when no explicit difficulty is chosen.
const DefaultDifficulty = 4

// SatisfiesDifficulty reports whether a hex digest begins with at least
// difficulty consecutive '0' characters.
func SatisfiesDifficulty(digest string, difficulty uint) bool {
	return strings.HasPrefix(digest, strings.Repeat("0", int(difficulty)))
}

// SearchNonce scans nonce values upward from the candidate's current nonce,
// inclusive, and returns a copy of the candidate sealed with the first nonce
// whose digest satisfies the difficulty. The search is deterministic given
// the candidate's other fields and restartable from any start nonce.
//
// The context is checked once per iteration; cancelling it is the only way
// to stop a search that has not yet found a valid nonce. On cancellation
// the context's error is returned and the result block is empty.
func SearchNonce(ctx context.Context, candidate Block, difficulty uint) (Block, error) {
	for nonce := candidate.Nonce; ; nonce++ {
		if err := ctx.Err(); err != nil {
			return Block{}, err
		}
		digest := digestOf(candidate.Index, candidate.Timestamp, candidate.Records, candidate.PrevDigest, nonce)
		if SatisfiesDifficulty(digest, difficulty) {
			candidate.Nonce = nonce
			candidate.Digest = digest
			return candidate, nil
		}
	}
}
