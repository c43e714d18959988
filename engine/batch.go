package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchInput pairs one Analyze call's bytes with its own Config.
type BatchInput struct {
	Bytes  []byte
	Config Config
}

// AnalyzeBatch runs independent Analyze calls concurrently, bounded by
// concurrency goroutines, and returns one Report per input in the same
// order. This realizes spec §5's "parallelism, if desired by the host, is
// obtained by running independent analyze calls concurrently" using
// errgroup, the bounded-fan-out primitive standardbeagle-lci and
// NineSunsInc-citadel both depend on. A per-input error always has index
// i's entry as a ConfigError; other inputs still complete.
func (e *Engine) AnalyzeBatch(ctx context.Context, inputs []BatchInput, concurrency int) ([]Report, []error) {
	if concurrency <= 0 {
		concurrency = 4
	}
	reports := make([]Report, len(inputs))
	errs := make([]error, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			report, err := e.Analyze(gctx, in.Bytes, in.Config)
			reports[i] = report
			errs[i] = err
			return nil // per-input errors are reported, not fatal to the batch
		})
	}
	_ = g.Wait()
	return reports, errs
}
