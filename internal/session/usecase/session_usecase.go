package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/codecollab/server/internal/errors"
	sessionDomain "github.com/codecollab/server/internal/session/domain"
	sessionService "github.com/codecollab/server/internal/session/service"
	customValidation "github.com/codecollab/server/internal/validation"
)

// DefaultStoreTimeout bounds revocation store calls when Config.StoreTimeout is zero.
const DefaultStoreTimeout = 3 * time.Second

// Config tunes the session manager.
type Config struct {
	// StoreTimeout bounds each revocation store call.
	StoreTimeout time.Duration
	// Clock supplies the current time. Defaults to time.Now.
	Clock sessionDomain.Clock
}

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	signer       sessionService.TokenSigner
	store        RevocationStore
	storeTimeout time.Duration
	clock        sessionDomain.Clock
}

// Issue signs a token for identifier. The identifier is expected to be a
// normalized email address.
func (s *sessionUseCase) Issue(ctx context.Context, identifier string) (*sessionDomain.IssuedToken, error) {
	err := validation.Validate(
		identifier,
		validation.Required,
		customValidation.NotBlank,
		customValidation.NoWhitespace,
		customValidation.Email,
	)
	if err != nil {
		return nil, customValidation.WrapValidationError(validation.Errors{"email": err})
	}

	return s.signer.Sign(identifier, s.clock())
}

// Validate verifies token cryptographically and then checks the revocation store.
// The store is consulted only for tokens that verified, so garbage input never
// reaches it.
func (s *sessionUseCase) Validate(ctx context.Context, token string) (string, error) {
	claims, err := s.signer.Verify(token, s.clock())
	if err != nil {
		return "", sessionDomain.ErrInvalidCredentials
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	revoked, err := s.store.IsRevoked(storeCtx, token)
	if err != nil {
		return "", storeUnavailable(err)
	}
	if revoked {
		return "", sessionDomain.ErrInvalidCredentials
	}

	return claims.Identifier, nil
}

// Revoke records token in the revocation store for the full token lifetime.
// Only the signature and expiry are checked, so revoking an already revoked
// token rewrites the record and returns nil.
func (s *sessionUseCase) Revoke(ctx context.Context, token string) error {
	if _, err := s.signer.Verify(token, s.clock()); err != nil {
		return sessionDomain.ErrInvalidCredentials
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.store.Revoke(storeCtx, token, sessionDomain.RevocationTTL); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// Ready pings the revocation store under the store timeout.
func (s *sessionUseCase) Ready(ctx context.Context) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.store.Ping(storeCtx); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// storeUnavailable keeps the store failure in the message for logs while
// exposing only ErrStoreUnavailable to callers.
func storeUnavailable(err error) error {
	return apperrors.Wrap(sessionDomain.ErrStoreUnavailable, err.Error())
}

// NewSessionUseCase creates a session manager signing with signer and checking store.
func NewSessionUseCase(
	signer sessionService.TokenSigner,
	store RevocationStore,
	cfg Config,
) SessionUseCase {
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = DefaultStoreTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	return &sessionUseCase{
		signer:       signer,
		store:        store,
		storeTimeout: cfg.StoreTimeout,
		clock:        cfg.Clock,
	}
}
