// Package service implements the comparison mode: given a caller-supplied set
// of person identifiers, detect and report family links among exactly that
// set.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ENEASJO/sistema-de-filtro/internal/comparison/models"
	"github.com/ENEASJO/sistema-de-filtro/internal/relationship"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	dErrors "github.com/ENEASJO/sistema-de-filtro/pkg/domain-errors"
	pstrings "github.com/ENEASJO/sistema-de-filtro/pkg/platform/strings"
	"github.com/ENEASJO/sistema-de-filtro/pkg/requestcontext"
)

// ErrMinimumCount is returned when fewer than two distinct identifiers remain
// after deduplication. The check runs before any lookup.
var ErrMinimumCount = dErrors.New(dErrors.CodeValidation, "at least 2 distinct person identifiers are required")

// Service runs comparison batches through the shared relationship checker.
type Service struct {
	checker *relationship.Checker
	logger  *slog.Logger
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a comparison Service around the shared checker.
func New(checker *relationship.Checker, opts ...Option) (*Service, error) {
	if checker == nil {
		return nil, fmt.Errorf("relationship checker is required")
	}
	s := &Service{checker: checker, tracer: otel.Tracer("comparison")}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// CompareIdentifiers deduplicates and validates the input, sweeps the
// relatives registry sequentially, and reports the family links found within
// the batch.
func (s *Service) CompareIdentifiers(ctx context.Context, rawDNIs []string) (*models.ComparisonReport, error) {
	distinct := pstrings.DedupeAndTrim(rawDNIs)
	if len(distinct) < 2 {
		return nil, ErrMinimumCount
	}

	dnis := make([]domain.DNI, 0, len(distinct))
	for _, raw := range distinct {
		dni, err := domain.ParseDNI(raw)
		if err != nil {
			return nil, err
		}
		dnis = append(dnis, dni)
	}

	ctx, span := s.tracer.Start(ctx, "comparison.compare_identifiers",
		trace.WithAttributes(attribute.Int("identifiers", len(dnis))))
	defer span.End()

	results, err := s.checker.Sweep(ctx, dnis)
	if err != nil {
		return nil, err
	}

	report := buildReport(dnis, results)

	s.logger.InfoContext(ctx, "comparison completed",
		"request_id", requestcontext.RequestID(ctx),
		"identifiers", len(dnis),
		"links", len(report.Links),
	)
	return report, nil
}
