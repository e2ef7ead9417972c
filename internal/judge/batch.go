package judge

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-coach/internal/types"
)

// DefaultConcurrency is the batch limit used when none is given.
const DefaultConcurrency = 4

// RunBatch judges sessions concurrently with at most limit runs in flight.
// Outcomes are returned in input order. Runs never fail, so the only error is
// the context's.
func RunBatch(ctx context.Context, j *Judge, sessions []*types.Session, limit int) ([]*Outcome, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	outcomes := make([]*Outcome, len(sessions))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, s := range sessions {
		if err := gCtx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = j.Run(gCtx, s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, ctx.Err()
}
