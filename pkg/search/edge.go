package search

import (
	"sort"

	"github.com/nullbound/matilda/pkg/board"
)

// Edge is a play edge in the UCT tree: a candidate move out of a Node,
// carrying its own MC, AMAF/RAVE and criticality statistics plus an
// optional LGRF1 hint (spec §3, §4.7).
type Edge struct {
	Move board.Point

	MCN uint32  // simulations through this edge, including prior visits
	MCQ float64 // running mean outcome in [0,1], from the moving color's perspective

	AMAFN uint32
	AMAFQ float64

	// OwnerWinning and ColorOwning are the pachi-style criticality
	// accumulators described in spec §4.7: ColorOwning is the running mean
	// signed final-position ownership of Move (+1 Black, -1 White, 0
	// neutral); OwnerWinning is the running mean of that same ownership
	// rescaled to [0,1] from Black's perspective.
	OwnerWinning float64
	ColorOwning  float64

	Next *Node // child node, in the opposite color's table; nil until reached

	// LGRF1Reply is an advisory hint, not an owned reference (Design Note
	// 9): the pointed-to edge may belong to a node since pruned. Every use
	// re-validates membership in the current node's edge list.
	LGRF1Reply *Edge
}

// sortEdges orders edges by ascending move position, the order spec §4.5
// and §3 require ("emitted in ascending move order to enable binary
// search").
func sortEdges(edges []*Edge) {
	sort.Slice(edges, func(i, j int) bool { return edges[i].Move < edges[j].Move })
}

// findEdge returns the edge for move via binary search, since edges are
// kept sorted by move (spec §3: "sorted by move position (used for binary
// search during non-deterministic shift handling)").
func findEdge(edges []*Edge, move board.Point) (*Edge, bool) {
	i := sort.Search(len(edges), func(i int) bool { return edges[i].Move >= move })
	if i < len(edges) && edges[i].Move == move {
		return edges[i], true
	}
	return nil, false
}

// containsEdge reports whether e is (by pointer identity) one of edges --
// used to re-validate an LGRF1 hint against the node it is about to be
// applied to, since the hinted edge may belong to a node pruned since the
// hint was recorded.
func containsEdge(edges []*Edge, e *Edge) bool {
	for _, c := range edges {
		if c == e {
			return true
		}
	}
	return false
}
