package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// sha256TokenHasher implements TokenHasher with SHA-256.
type sha256TokenHasher struct{}

// NewTokenHasher creates a TokenHasher that returns hex encoded SHA-256 digests.
func NewTokenHasher() TokenHasher {
	return &sha256TokenHasher{}
}

// HashToken hashes a session token so the raw bearer value is never persisted.
func (h *sha256TokenHasher) HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
