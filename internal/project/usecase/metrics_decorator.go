package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/codecollab/server/internal/metrics"
	"github.com/codecollab/server/internal/project/domain"
)

// projectUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type projectUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewProjectUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewProjectUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &projectUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *projectUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, p.metrics, metrics.DomainProject, operation, start, err)
}

func (p *projectUseCaseWithMetrics) Create(
	ctx context.Context,
	callerEmail string,
	input CreateProjectInput,
) (*domain.Project, error) {
	start := time.Now()
	project, err := p.next.Create(ctx, callerEmail, input)
	p.record(ctx, "create", start, err)
	return project, err
}

func (p *projectUseCaseWithMetrics) List(
	ctx context.Context,
	callerEmail string,
	offset, limit int,
) ([]*domain.Project, error) {
	start := time.Now()
	projects, err := p.next.List(ctx, callerEmail, offset, limit)
	p.record(ctx, "list", start, err)
	return projects, err
}

func (p *projectUseCaseWithMetrics) AddUsers(
	ctx context.Context,
	callerEmail string,
	input AddUsersInput,
) (*domain.Project, error) {
	start := time.Now()
	project, err := p.next.AddUsers(ctx, callerEmail, input)
	p.record(ctx, "add_users", start, err)
	return project, err
}

func (p *projectUseCaseWithMetrics) Get(
	ctx context.Context,
	callerEmail string,
	projectID uuid.UUID,
) (*domain.Project, error) {
	start := time.Now()
	project, err := p.next.Get(ctx, callerEmail, projectID)
	p.record(ctx, "get", start, err)
	return project, err
}
