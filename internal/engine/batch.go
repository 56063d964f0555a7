package engine

import (
	"context"

	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// DefaultBatchWorkers is used when AnalyzeBatch is given a non-positive worker count.
const DefaultBatchWorkers = 8

// AnalyzeBatch analyzes inputs concurrently with at most workers goroutines.
// Outcomes are returned in input order.
func (e *Engine) AnalyzeBatch(ctx context.Context, inputs []sancai.NameInput, workers int) []Outcome {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	out := make([]Outcome, len(inputs))
	p := pool.New().WithMaxGoroutines(workers)
	for i, in := range inputs {
		p.Go(func() {
			res, err := e.Analyze(ctx, in)
			out[i] = Assemble(in, res, err)
		})
	}
	p.Wait()

	failed := 0
	for _, o := range out {
		if !o.OK {
			failed++
		}
	}
	e.logger.Info("Batch analyzed",
		zap.Int("names", len(inputs)),
		zap.Int("failed", failed),
		zap.Int("workers", workers),
	)
	return out
}
