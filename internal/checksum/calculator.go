// Package checksum fingerprints source extracts so analysis artifacts can
// be compared across runs: an unchanged checksum means an unchanged file,
// regardless of timestamps.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Calculator computes content checksums.
// This abstraction allows for different checksum strategies and algorithms.
type Calculator interface {
	// Calculate computes a checksum of the raw, unmodified content.
	Calculate(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple
// goroutines. Using value semantics eliminates heap allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Calculate computes SHA-256 of raw content.
func (c SHA256) Calculate(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

var _ Calculator = SHA256{}
