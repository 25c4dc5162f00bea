// Package usecase implements the session lifecycle: issuing, validating and revoking
// bearer tokens against a revocation store.
package usecase

import (
	"context"
	"time"

	sessionDomain "github.com/codecollab/server/internal/session/domain"
)

// RevocationStore records revoked tokens until their revocation TTL elapses.
// Implementations must be safe for concurrent use.
type RevocationStore interface {
	// Revoke records token as revoked for ttl. Revoking twice is not an error.
	Revoke(ctx context.Context, token string, ttl time.Duration) error

	// IsRevoked reports whether a live revocation record exists for token.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
}

// SessionUseCase is the session lifecycle manager.
type SessionUseCase interface {
	// Issue signs a new 24 hour token for identifier.
	Issue(ctx context.Context, identifier string) (*sessionDomain.IssuedToken, error)

	// Validate returns the identifier carried by token. Malformed, tampered, expired
	// and revoked tokens all return ErrInvalidCredentials. A failing or slow
	// revocation store returns ErrStoreUnavailable.
	Validate(ctx context.Context, token string) (string, error)

	// Revoke verifies the signature and expiry of token and records it in the revocation
	// store. Revoking an already revoked token succeeds.
	Revoke(ctx context.Context, token string) error

	// Ready reports whether the revocation store can be reached.
	Ready(ctx context.Context) error
}

// RevocationCleaner purges revocation records whose TTL has elapsed. Only the
// database store needs it; redis and memory expire records on their own.
type RevocationCleaner interface {
	// DeleteExpired removes records that expired before now and returns how many
	// were removed. With dryRun set it only counts them.
	DeleteExpired(ctx context.Context, now time.Time, dryRun bool) (int64, error)
}
