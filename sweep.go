package main

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sweep optimizes every ordered (primary, secondary) pair in parallel and
// returns the results ranked by estimated hours, longest first. Each run works
// on its own copy of roster; oracle must be safe for concurrent use. The first
// failing run cancels the rest.
func Sweep(ctx context.Context, roster []CrewMember, startAM float64,
	oracle DurationOracle, cfg Config, log *zap.Logger) ([]*OptimizationResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	numWorkers := cfg.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pairs := skillPairs()
	results := make([]*OptimizationResult, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for i, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			opt, err := NewOptimizer(roster, p[0], p[1], startAM, oracle, cfg, log)
			if err != nil {
				return err
			}
			r, err := opt.Optimize()
			if err != nil {
				return fmt.Errorf("%s/%s: %w", p[0], p[1], err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].EstimatedHours > results[j].EstimatedHours
	})
	log.Info("sweep done",
		zap.Int("runs", len(results)),
		zap.Stringer("best_primary", results[0].Primary),
		zap.Stringer("best_secondary", results[0].Secondary),
		zap.Float64("hours", results[0].EstimatedHours))
	return results, nil
}
