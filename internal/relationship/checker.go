package relationship

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ENEASJO/sistema-de-filtro/internal/relationship/metrics"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	dErrors "github.com/ENEASJO/sistema-de-filtro/pkg/domain-errors"
	"github.com/ENEASJO/sistema-de-filtro/pkg/requestcontext"
)

// Checker runs relatives-registry lookups for a set of identifiers, strictly
// sequentially, with a fixed delay between consecutive calls. The delay is the
// only back-pressure mechanism; there are no retries.
type Checker struct {
	lookup  LookupPort
	delay   time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Checker)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Checker) {
		c.metrics = m
	}
}

// NewChecker constructs a Checker. delay may be zero (tests); negative delays
// are rejected.
func NewChecker(lookup LookupPort, delay time.Duration, opts ...Option) (*Checker, error) {
	if lookup == nil {
		return nil, fmt.Errorf("lookup port is required")
	}
	if delay < 0 {
		return nil, fmt.Errorf("delay must not be negative")
	}
	c := &Checker{lookup: lookup, delay: delay}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Sweep checks every identifier in order and returns one Result per input,
// output order matching input order one to one so callers can zip inputs with
// results without re-keying.
//
// A per-call failure is absorbed as Result{Found:false, Errored:true} and the
// queue continues: one bad lookup must never block the others. Context
// cancellation is different - the request deadline bounds the whole pipeline,
// so the sweep aborts with no partial results and the caller re-issues from
// scratch.
func (c *Checker) Sweep(ctx context.Context, dnis []domain.DNI) ([]Result, error) {
	results := make([]Result, 0, len(dnis))

	for i, dni := range dnis {
		if i > 0 {
			if err := c.pause(ctx); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		res, err := c.lookup.Check(ctx, dni)
		c.metrics.ObserveLookupLatency(time.Since(start))

		if err != nil {
			if ctx.Err() != nil {
				return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeUnavailable, "relationship sweep aborted by request deadline")
			}
			c.logger.WarnContext(ctx, "relationship lookup failed",
				"request_id", requestcontext.RequestID(ctx),
				"dni", dni,
				"error", err,
			)
			c.metrics.IncrementLookupFailure()
			results = append(results, NotFoundResult(dni, true))
			continue
		}

		results = append(results, *res)
	}

	c.metrics.ObserveSweepSize(len(dnis))
	return results, nil
}

// pause waits the configured delay, or returns early when the request
// deadline fires.
func (c *Checker) pause(ctx context.Context) error {
	if c.delay == 0 {
		if err := ctx.Err(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "relationship sweep aborted by request deadline")
		}
		return nil
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeUnavailable, "relationship sweep aborted by request deadline")
	case <-timer.C:
		return nil
	}
}
