package domain

import (
	"github.com/codecollab/server/internal/errors"
)

// Session errors.
var (
	// ErrInvalidCredentials is returned for every rejected token: malformed, tampered,
	// expired or revoked. Callers cannot tell the causes apart.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrStoreUnavailable indicates the revocation store failed or did not answer in time.
	ErrStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "revocation store unavailable")

	// ErrSigningKeyMissing indicates no signing key was configured.
	ErrSigningKeyMissing = errors.New("session signing key is not configured")
)
