package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/codecollab/server/internal/errors"
)

// StatusSuccess labels operations that returned no error.
const StatusSuccess = "success"

// Domain labels used by the use case decorators.
const (
	DomainSession = "session"
	DomainUser    = "user"
	DomainProject = "project"
)

// BusinessMetrics counts and times use case calls. Operation names follow the
// use case methods: session issue, validate and revoke; user register, login,
// logout, profile, list, create and import; project create, list, get and
// add_users.
type BusinessMetrics interface {
	RecordOperation(ctx context.Context, domain, operation, status string)
	// RecordDuration feeds a seconds histogram.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)
}

type otelBusinessMetrics struct {
	calls   metric.Int64Counter
	latency metric.Float64Histogram
}

// NewBusinessMetrics registers <namespace>_operations_total and
// <namespace>_operation_duration_seconds on meterProvider.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	calls, err := meter.Int64Counter(
		namespace+"_operations_total",
		metric.WithDescription("Use case calls by domain, operation and outcome"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("operations counter: %w", err)
	}

	latency, err := meter.Float64Histogram(
		namespace+"_operation_duration_seconds",
		metric.WithDescription("Use case call latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("operation duration histogram: %w", err)
	}

	return &otelBusinessMetrics{calls: calls, latency: latency}, nil
}

func businessLabels(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (m *otelBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.calls.Add(ctx, 1, businessLabels(domain, operation, status))
}

func (m *otelBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.latency.Record(ctx, duration.Seconds(), businessLabels(domain, operation, status))
}

// Status maps an operation result to its label: "success" for nil, otherwise
// the error kind ("unauthorized", "unavailable", "internal", ...).
func Status(err error) string {
	if err == nil {
		return StatusSuccess
	}
	return apperrors.Kind(err)
}

// Observe records one call that started at start and finished with err.
func Observe(ctx context.Context, m BusinessMetrics, domain, operation string, start time.Time, err error) {
	status := Status(err)
	m.RecordOperation(ctx, domain, operation, status)
	m.RecordDuration(ctx, domain, operation, time.Since(start), status)
}

// Discard is used when METRICS_ENABLED is false.
var Discard BusinessMetrics = discard{}

type discard struct{}

func (discard) RecordOperation(context.Context, string, string, string) {}

func (discard) RecordDuration(context.Context, string, string, time.Duration, string) {}
