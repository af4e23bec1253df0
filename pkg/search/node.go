// Package search implements the UCT/RAVE tree search (spec §4.7), its
// bucket-hashed transposition table (spec §4.6), and the parallel
// simulation batch dispatch that drives them (spec §5).
package search

import (
	"sync"

	"github.com/nullbound/matilda/pkg/board"
)

// Node is a transposition-table entry keyed by color-to-play plus position
// hash (spec §3). Collisions are resolved by comparing the full snapshot:
// zobrist hash, board bitmap, last-eaten point and pass state must all
// match.
type Node struct {
	Hash        board.ZobristHash
	Snapshot    [board.Total]board.Color
	LastEaten   board.Point
	LastWasPass bool

	// ExpansionDelay counts down to -1 across visits; priors run exactly
	// once, the visit that drives it from 0 to -1 (spec §4.7 step 3,
	// §5 "expansion_delay transitions through -1 exactly once").
	ExpansionDelay int32

	Edges []*Edge // nil until expanded; sorted by move ascending once set

	mark uint32 // maintenance mark, written during prune_outside sweeps
	next *Node  // bucket chain link, owned by the table

	mu sync.Mutex
}

// matches reports whether this node is the one keyed by (hash, colors,
// lastEaten, lastWasPass), per the table's collision policy (spec §4.6).
func (n *Node) matches(hash board.ZobristHash, colors [board.Total]board.Color, lastEaten board.Point, lastWasPass bool) bool {
	return n.Hash == hash && n.LastEaten == lastEaten && n.LastWasPass == lastWasPass && n.Snapshot == colors
}

// Lock/Unlock expose the per-node lock to the UCT searcher: held during
// edge selection, virtual-loss application, expansion, and backprop
// updates to this node's edges -- never across a playout (spec §5).
func (n *Node) Lock()   { n.mu.Lock() }
func (n *Node) Unlock() { n.mu.Unlock() }

// TotalVisits sums mc_n across this node's edges, used as UCT's parent_n.
func (n *Node) TotalVisits() uint32 {
	var total uint32
	for _, e := range n.Edges {
		total += e.MCN
	}
	return total
}

func (n *Node) reset(hash board.ZobristHash, colors [board.Total]board.Color, lastEaten board.Point, lastWasPass bool, expansionDelay int32) {
	n.Hash = hash
	n.Snapshot = colors
	n.LastEaten = lastEaten
	n.LastWasPass = lastWasPass
	n.ExpansionDelay = expansionDelay
	n.Edges = nil
	n.mark = 0
	n.next = nil
}
