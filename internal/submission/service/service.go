package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"intake/internal/submission"
	"intake/internal/submission/metrics"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/store-mocks.go -package=mocks

// Store is the persistence port. Implementations live in the store package.
type Store interface {
	ReadAll(ctx context.Context) ([]submission.Submission, error)
	Append(ctx context.Context, sub submission.Submission) error
}

// Client-facing messages. Validation failures never say which field failed.
const (
	MessageInvalidFormData = "Invalid form data."
	MessageSaveFailed      = "Failed to save submission."
	MessageLoadFailed      = "Failed to load submissions."
)

const (
	opAppend  = "append"
	opReadAll = "read_all"
)

// Service validates, normalizes, timestamps and persists submissions.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   func() time.Time
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source used for submittedAt.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// New builds a Service over store.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		clock:  time.Now,
		tracer: otel.Tracer("intake/submission"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs input through Validate and Normalize, stamps it with the
// server clock and appends it. The returned submission is the
// acknowledgement. Validation failures carry CodeValidation; store failures
// carry CodeInternal and wrap the store error. Nothing is persisted on error.
func (s *Service) Submit(ctx context.Context, input any) (*submission.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "submission.Submit")
	defer span.End()

	data, err := submission.Validate(input)
	if err != nil {
		s.metrics.IncrementRejected()
		span.SetStatus(codes.Error, "validation failed")
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, MessageInvalidFormData)
	}

	record := submission.New(submission.Normalize(data), s.clock())

	start := time.Now()
	err = s.store.Append(ctx, record)
	s.metrics.ObserveStore(opAppend, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, MessageSaveFailed)
	}

	s.metrics.IncrementAccepted()
	span.SetAttributes(attribute.String("submission.submitted_at", record.SubmittedAt))
	s.logger.InfoContext(ctx, "submission stored",
		"request_id", requestcontext.RequestID(ctx),
		"submitted_at", record.SubmittedAt,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &record, nil
}

// List returns every stored submission in insertion order.
func (s *Service) List(ctx context.Context) ([]submission.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "submission.List")
	defer span.End()

	start := time.Now()
	subs, err := s.store.ReadAll(ctx)
	s.metrics.ObserveStore(opReadAll, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, MessageLoadFailed)
	}
	if subs == nil {
		subs = []submission.Submission{}
	}

	span.SetAttributes(attribute.Int("submission.count", len(subs)))
	return subs, nil
}
