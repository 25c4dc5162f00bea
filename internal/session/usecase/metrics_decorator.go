package usecase

import (
	"context"
	"time"

	"github.com/codecollab/server/internal/metrics"
	sessionDomain "github.com/codecollab/server/internal/session/domain"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance.
func (s *sessionUseCaseWithMetrics) Issue(
	ctx context.Context,
	identifier string,
) (*sessionDomain.IssuedToken, error) {
	start := time.Now()
	issued, err := s.next.Issue(ctx, identifier)
	s.record(ctx, "issue", start, err)
	return issued, err
}

// Validate records metrics for token validation.
func (s *sessionUseCaseWithMetrics) Validate(ctx context.Context, token string) (string, error) {
	start := time.Now()
	identifier, err := s.next.Validate(ctx, token)
	s.record(ctx, "validate", start, err)
	return identifier, err
}

// Revoke records metrics for token revocation.
func (s *sessionUseCaseWithMetrics) Revoke(ctx context.Context, token string) error {
	start := time.Now()
	err := s.next.Revoke(ctx, token)
	s.record(ctx, "revoke", start, err)
	return err
}

// Ready is not instrumented; it runs on every /ready request.
func (s *sessionUseCaseWithMetrics) Ready(ctx context.Context) error {
	return s.next.Ready(ctx)
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, metrics.DomainSession, operation, start, err)
}
