package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	"github.com/ENEASJO/sistema-de-filtro/pkg/requestcontext"
)

// fetchSources fans out over all registered source adapters concurrently and
// settles every slot: each goroutine writes its own outcome and always
// returns nil, so one adapter's failure can never cancel or poison the
// others' results. The returned slice preserves adapter registration order,
// which is also the merge priority order.
func (s *Service) fetchSources(ctx context.Context, ruc domain.RUC) []sourceOutcome {
	outcomes := make([]sourceOutcome, len(s.sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, source := range s.sources {
		i, source := i, source
		g.Go(func() error {
			start := time.Now()
			result, err := source.FetchByRUC(ctx, ruc)
			s.metrics.ObserveSourceLatency(source.Name(), time.Since(start))

			if err != nil {
				s.logger.WarnContext(ctx, "source fetch failed",
					"request_id", requestcontext.RequestID(ctx),
					"source", source.Name(),
					"ruc", ruc,
					"error", err,
				)
				s.metrics.IncrementSourceFailure(source.Name())
				outcomes[i] = sourceOutcome{name: source.Name(), err: err}
				return nil
			}

			outcomes[i] = sourceOutcome{name: source.Name(), result: result}
			return nil
		})
	}

	// No goroutine returns an error, so Wait only joins.
	_ = g.Wait()
	return outcomes
}
