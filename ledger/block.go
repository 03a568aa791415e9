package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Block rappresenta un blocco sigillato nella blockchain
type Block struct {
	Index      int      `json:"index"`
	Timestamp  int64    `json:"timestamp"`
	Records    []string `json:"records"`
	PrevDigest string   `json:"previous_digest"`
	Nonce      uint64   `json:"nonce"`
	Digest     string   `json:"digest"`
}

// GenesisPrevDigest is the sentinel linkage value of the genesis block.
// It is not a real digest.
const GenesisPrevDigest = "0"

// digestOf computes the SHA256 digest of a block's contents as a pure
// function of the five hashed fields. The fields are serialized as JSON
// with keys in sorted order so that two blocks with identical field
// values always hash identically.
func digestOf(index int, timestamp int64, records []string, prevDigest string, nonce uint64) string {
	payload, _ := json.Marshal(struct {
		Index      int      `json:"index"`
		Nonce      uint64   `json:"nonce"`
		PrevDigest string   `json:"previous_digest"`
		Records    []string `json:"records"`
		Timestamp  int64    `json:"timestamp"`
	}{
		Index:      index,
		Nonce:      nonce,
		PrevDigest: prevDigest,
		Records:    records,
		Timestamp:  timestamp,
	})

	hash := sha256.Sum256(payload)
	return hex.EncodeToString(hash[:])
}

// sealBlock builds a Block from its fields and stores the digest computed
// over them. After sealing, the digest is never recomputed implicitly;
// Verify recomputes it on demand to detect tampering.
func sealBlock(index int, timestamp int64, records []string, prevDigest string, nonce uint64) Block {
	b := Block{
		Index:      index,
		Timestamp:  timestamp,
		Records:    records,
		PrevDigest: prevDigest,
		Nonce:      nonce,
	}
	b.Digest = digestOf(b.Index, b.Timestamp, b.Records, b.PrevDigest, b.Nonce)
	return b
}

// ComputeDigest returns the digest of the block's current field values.
// For an untampered block this equals the stored Digest.
func (b Block) ComputeDigest() string {
	return digestOf(b.Index, b.Timestamp, b.Records, b.PrevDigest, b.Nonce)
}

// String renders the block with all its fields, one per line.
func (b Block) String() string {
	return fmt.Sprintf("Block %d:\nTimestamp: %d\nRecords: [%s]\nPrevious Digest: %s\nNonce: %d\nDigest: %s",
		b.Index,
		b.Timestamp,
		strings.Join(b.Records, ", "),
		b.PrevDigest,
		b.Nonce,
		b.Digest,
	)
}
