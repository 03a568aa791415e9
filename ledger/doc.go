// Package ledger implements an append-only blockchain ledger protected by
// a proof-of-work puzzle.
//
// # Core Components
//
// Blockchain: An append-only sequence of blocks plus a queue of pending
// records, with cryptographic hash chaining and proof-of-work for tamper
// detection.
//
// Block: A sealed batch of record payloads together with its linkage to
// the previous block and the nonce found by the proof-of-work search.
//
// # Security Properties
//
// The blockchain provides:
//   - Immutability: Once sealed, blocks are never modified by normal operation
//   - Verifiability: Anyone can verify the integrity of the entire chain
//   - Tamper detection: Any modification breaks the digest chain
//   - Costly extension: Every block carries a proof-of-work over its digest
//
// # Usage
//
// Create a blockchain with a fixed difficulty, queue records with AddRecord,
// and seal them into blocks with MinePending. The Verify method can be
// called at any time to ensure the chain remains intact; Tamper exists only
// to demonstrate that it does.
package ledger
