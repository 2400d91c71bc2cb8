// Package ledger implements a single-node append-only chain of
// proof-of-work sealed blocks.
//
// A Block binds an opaque record payload to its predecessor through a
// SHA-256 digest over a canonical encoding of its fields; mining searches
// nonce values until the digest carries the required number of leading zero
// hex characters. A Chain owns the block sequence and a pending-record
// buffer, mines new blocks onto the tail, and can verify the integrity of
// the whole sequence on demand.
//
// Construction is permissive: decoding trusts stored hashes and appended
// blocks are not re-checked beyond the linkage mining itself establishes.
// Tampering and forgery surface later, as Verify failures. There is no
// networking, persistence, or signature handling here; the chain lives and
// dies with its process.
package ledger
