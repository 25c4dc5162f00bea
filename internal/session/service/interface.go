// Package service provides the cryptographic building blocks of the session lifecycle:
// token signing and verification, signing key loading and token hashing.
package service

import (
	"context"
	"time"

	sessionDomain "github.com/codecollab/server/internal/session/domain"
)

// TokenSigner signs and verifies session tokens.
//
// Both operations take the current time explicitly so expiry can be exercised
// without sleeping.
type TokenSigner interface {
	// Sign creates a token for identifier that expires TokenLifetime after now.
	Sign(identifier string, now time.Time) (*sessionDomain.IssuedToken, error)

	// Verify checks the signature, algorithm and expiry of token as seen at now.
	// Every failure returns ErrInvalidCredentials.
	Verify(token string, now time.Time) (*sessionDomain.Claims, error)
}

// SigningKeyLoader resolves the process-wide signing key at startup.
type SigningKeyLoader interface {
	Load(ctx context.Context) ([]byte, error)
}

// TokenHasher derives the storage key of a token for persistent revocation stores.
type TokenHasher interface {
	HashToken(token string) string
}
