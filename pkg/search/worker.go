package search

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/nullbound/matilda/pkg/board"
)

// RunBatch fans out n independent UCT simulations over a worker pool and
// waits for all of them, the parallel-simulation-batch model of spec §5.
// Grounded on herohde-morlock's use of golang.org/x/sync/errgroup for its
// own parallel work dispatch (see SPEC_FULL.md §C.1): simulations never
// return an error, but errgroup's bounded-concurrency Group.SetLimit gives
// the worker-count cap for free instead of hand-rolling a semaphore.
//
// root/rootBoard/rootColor are read-only from each goroutine's
// perspective: Simulate clones rootBoard itself. rngs supplies one
// *rand.Rand per simulation so no goroutine shares mutable RNG state.
func (s *Searcher) RunBatch(ctx context.Context, root *Node, rootBoard *board.CFGBoard, rootColor board.Color, rngs []*rand.Rand) {
	workers := s.Config.BatchSize
	if workers <= 0 || workers > len(rngs) {
		workers = len(rngs)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, rng := range rngs {
		rng := rng
		g.Go(func() error {
			s.Simulate(gctx, rng, root, rootBoard, rootColor)
			return nil
		})
	}
	_ = g.Wait() // Simulate never errors; Wait only blocks for completion
}

// newBatchRNGs derives batchSize independent *rand.Rand from seed, one per
// simulation, so RunBatch callers don't have to manage per-goroutine RNG
// state themselves.
func newBatchRNGs(seed int64, batchSize int) []*rand.Rand {
	src := rand.New(rand.NewSource(seed))
	rngs := make([]*rand.Rand, batchSize)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewSource(src.Int63()))
	}
	return rngs
}
