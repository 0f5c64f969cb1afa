package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough for log lines
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	CohortHash Hash
	FigureHash Hash
)

func (h CohortHash) String() string { return Hash(h).String() }
func (h FigureHash) String() string { return Hash(h).String() }

// ComputeCohortHash fingerprints an ordered list of record ids, so two runs
// that retained the same rows log the same value.
func ComputeCohortHash(ids []int64) CohortHash {
	buf := make([]byte, 8*len(ids))
	for i, id := range ids {
		binary.BigEndian.PutUint64(buf[i*8:], uint64(id))
	}
	return CohortHash(NewHash(buf))
}

// NewFigureHash fingerprints encoded image bytes
func NewFigureHash(data []byte) FigureHash { return FigureHash(NewHash(data)) }
