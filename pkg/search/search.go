package search

import (
	"context"
	"math/rand"

	"github.com/seekerror/logw"

	"github.com/nullbound/matilda/pkg/board"
)

// OutBoard is the result of evaluating a position: a per-point quality
// estimate, which points were actually explored, and pass's own quality
// (spec §6's external search-result contract).
type OutBoard struct {
	Quality [board.Total]float64
	Tested  [board.Total]bool
	Pass    float64
}

// Evaluate runs UCT simulation batches against cb/color from root until
// ctx is done, the table fills, or the leading edge's win rate leaves the
// configured [MinWinRate;MaxWinRate] band (spec §4.7 "outer loop", §7's
// memory-exhaustion and early-stop conditions). It reports the resulting
// OutBoard and whether a play is recommended at all (false means resign,
// spec §6).
func (s *Searcher) Evaluate(ctx context.Context, cb *board.CFGBoard, color board.Color, seed int64) (OutBoard, bool) {
	root := s.Root(ctx, cb, color)
	rngSrc := rand.New(rand.NewSource(seed))

	batches := 0
	for {
		select {
		case <-ctx.Done():
			return s.buildOutBoard(root), hasPlay(root, s.Config.ResignThreshold)
		default:
		}

		rngs := newBatchRNGs(rngSrc.Int63(), s.Config.BatchSize)
		s.RunBatch(ctx, root, cb, color, rngs)
		batches++

		if s.TT.Full() {
			logw.Infof(ctx, "Transposition table full after %v batches: stopping early", batches)
			break
		}
		if best := bestEdge(root); best != nil && best.MCN > 0 {
			if best.MCQ <= s.Config.MinWinRate || best.MCQ >= s.Config.MaxWinRate {
				break
			}
		}
	}

	return s.buildOutBoard(root), hasPlay(root, s.Config.ResignThreshold)
}

// PruneOutside retains root and every node reachable from it in the
// transposition table, releasing the rest of the previous turn's tree back
// to the free list
// (opt_turn_maintenance in spec §4.6, run once per actual move played).
func (s *Searcher) PruneOutside(root *Node) {
	s.TT.PruneOutside(root)
}

func bestEdge(n *Node) *Edge {
	var best *Edge
	for _, e := range n.Edges {
		if e.Move == board.Pass {
			continue
		}
		if best == nil || e.MCQ > best.MCQ {
			best = e
		}
	}
	return best
}

func hasPlay(n *Node, resignThreshold float64) bool {
	best := bestEdge(n)
	return best != nil && best.MCQ > resignThreshold
}

func (s *Searcher) buildOutBoard(root *Node) OutBoard {
	var out OutBoard
	for _, e := range root.Edges {
		if e.Move == board.Pass {
			out.Pass = e.MCQ
			continue
		}
		out.Quality[e.Move] = e.MCQ
		out.Tested[e.Move] = true
	}
	return out
}
