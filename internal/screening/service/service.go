// Package service implements the screening core: concurrent aggregation of
// candidate persons from unreliable registries, a sequential family-relation
// sweep, and the approval decision, all scoped to a single request.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ENEASJO/sistema-de-filtro/internal/relationship"
	"github.com/ENEASJO/sistema-de-filtro/internal/screening/metrics"
	"github.com/ENEASJO/sistema-de-filtro/internal/screening/models"
	"github.com/ENEASJO/sistema-de-filtro/internal/screening/ports"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	dErrors "github.com/ENEASJO/sistema-de-filtro/pkg/domain-errors"
	pstrings "github.com/ENEASJO/sistema-de-filtro/pkg/platform/strings"
	"github.com/ENEASJO/sistema-de-filtro/pkg/requestcontext"
)

// ErrNoDataFound is returned when every source adapter failed for an
// organization and there is nothing to decide on.
var ErrNoDataFound = dErrors.New(dErrors.CodeNotFound, "no data found for organization in any source")

// Service orchestrates one screening run. Construct one per process; it holds
// no per-request state, so concurrent requests never share mutable data.
type Service struct {
	sources []ports.SourcePort
	checker *relationship.Checker

	maxBatchSize int
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service. Source order is the merge priority order.
func New(sources []ports.SourcePort, checker *relationship.Checker, maxBatchSize int, opts ...Option) (*Service, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one source adapter is required")
	}
	if checker == nil {
		return nil, fmt.Errorf("relationship checker is required")
	}
	if maxBatchSize < 1 {
		return nil, fmt.Errorf("max batch size must be at least 1")
	}

	s := &Service{
		sources:      sources,
		checker:      checker,
		maxBatchSize: maxBatchSize,
		tracer:       otel.Tracer("screening"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// ProcessOrganization runs the full pipeline for one organization: concurrent
// source fan-out, merge, sequential relationship sweep, decision.
func (s *Service) ProcessOrganization(ctx context.Context, ruc domain.RUC) (*models.AggregationResult, error) {
	ctx, span := s.tracer.Start(ctx, "screening.process_organization",
		trace.WithAttributes(attribute.String("ruc", ruc.String())))
	defer span.End()

	outcomes := s.fetchSources(ctx, ruc)

	view := s.merge(ruc, outcomes)
	if len(view.failedSources) == len(outcomes) {
		return nil, dErrors.Wrap(ErrNoDataFound, dErrors.CodeNotFound,
			fmt.Sprintf("all %d sources failed for %s", len(outcomes), ruc))
	}
	if len(view.failedSources) > 0 {
		s.logger.WarnContext(ctx, "aggregation degraded",
			"request_id", requestcontext.RequestID(ctx),
			"ruc", ruc,
			"failed_sources", view.failedSources,
		)
	}

	dnis := make([]domain.DNI, len(view.people))
	for i, person := range view.people {
		dnis[i] = person.DNI
	}

	sweepCtx, sweepSpan := s.tracer.Start(ctx, "screening.relationship_sweep",
		trace.WithAttributes(attribute.Int("identifiers", len(dnis))))
	results, err := s.checker.Sweep(sweepCtx, dnis)
	sweepSpan.End()
	if err != nil {
		return nil, err
	}

	d := decide(view.people, results)
	s.metrics.IncrementOutcome(d.approved, d.reason)

	s.logger.InfoContext(ctx, "organization screened",
		"request_id", requestcontext.RequestID(ctx),
		"ruc", ruc,
		"people", len(view.people),
		"approved", d.approved,
		"rejected", len(d.rejectedDNIs),
	)

	return &models.AggregationResult{
		RUC:             ruc,
		CompanyName:     view.companyName,
		People:          view.people,
		FailedSources:   view.failedSources,
		Relationships:   results,
		Approved:        d.approved,
		RejectionReason: d.reason,
		ApprovedDNIs:    d.approvedDNIs,
		RejectedDNIs:    d.rejectedDNIs,
		EvaluatedAt:     requestcontext.Now(ctx),
	}, nil
}

// ProcessBatch screens several organizations strictly sequentially. All
// identifiers are validated and the size cap enforced before any processing
// starts; afterwards an unclassified failure for one organization is confined
// to its entry instead of aborting the batch. A request-deadline abort is the
// exception: it stops the whole batch, since the caller must re-issue from
// scratch anyway.
func (s *Service) ProcessBatch(ctx context.Context, rawRUCs []string) (*models.BatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "screening.process_batch",
		trace.WithAttributes(attribute.Int("organizations", len(rawRUCs))))
	defer span.End()

	distinct := pstrings.DedupeAndTrim(rawRUCs)
	if len(distinct) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one ruc is required")
	}
	if len(distinct) > s.maxBatchSize {
		return nil, dErrors.New(dErrors.CodeTooLarge,
			fmt.Sprintf("batch of %d organizations exceeds the maximum of %d; split the request into smaller batches",
				len(distinct), s.maxBatchSize))
	}

	rucs := make([]domain.RUC, 0, len(distinct))
	for _, raw := range distinct {
		ruc, err := domain.ParseRUC(raw)
		if err != nil {
			return nil, err
		}
		rucs = append(rucs, ruc)
	}
	s.metrics.ObserveBatchSize(len(rucs))

	batch := &models.BatchResult{
		Entries: make([]models.BatchEntry, 0, len(rucs)),
		Summary: models.BatchSummary{RejectionDetails: []models.RejectionDetail{}},
	}

	// No two organizations are processed concurrently: the relatives registry
	// offers no multiplexing guarantees, and the per-identifier delay is the
	// only pacing we apply.
	for _, ruc := range rucs {
		result, err := s.ProcessOrganization(ctx, ruc)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			s.logger.ErrorContext(ctx, "organization screening failed",
				"request_id", requestcontext.RequestID(ctx),
				"ruc", ruc,
				"error", err,
			)
			batch.Entries = append(batch.Entries, models.BatchEntry{RUC: ruc, Error: err.Error()})
			batch.Summary.TotalProcessed++
			continue
		}

		batch.Entries = append(batch.Entries, models.BatchEntry{RUC: ruc, Result: result})
		batch.Summary.TotalProcessed++
		if result.Approved {
			batch.Summary.ApprovedCount++
		} else {
			batch.Summary.RejectedCount++
			batch.Summary.RejectionDetails = append(batch.Summary.RejectionDetails, models.RejectionDetail{
				RUC:          ruc,
				Reason:       result.RejectionReason,
				RejectedDNIs: result.RejectedDNIs,
			})
		}
	}

	return batch, nil
}
