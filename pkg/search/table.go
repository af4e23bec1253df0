package search

import (
	"context"
	"sync"

	"github.com/seekerror/logw"

	"github.com/nullbound/matilda/pkg/board"
)

// bucket is one hash slot: a lock guarding a singly linked chain of nodes
// (spec §4.6: "nodes inside a bucket form a singly linked list").
type bucket struct {
	mu   sync.Mutex
	head *Node
}

// Table is the bucket-hashed transposition table: two color-segregated
// bucket arrays (spec §3/§4.6 -- "two color-segregated hash tables") plus a
// shared free list for O(1) node reclamation. Grounded structurally on
// herohde-morlock/pkg/search/transposition.go's TranspositionTable
// interface and factory-function pattern, generalized from a single
// CAS-updated slot per key to Matilda's bucket-of-nodes-plus-free-list
// design, which spec §4.6 requires explicitly (unlike the teacher's
// single-entry-per-slot chess table, Matilda's nodes are mutable,
// variable-sized (edge lists) and reused across turns via prune_outside,
// so in-place CAS replacement does not fit).
type Table struct {
	buckets [board.NumColors][]bucket

	freeMu   sync.Mutex
	freeList []*Node

	mark uint32

	maxAllocated int
	allocated    int32 // atomic-free: only ever touched under a bucket or freeMu lock path in this design
	full         bool
}

// TranspositionTableFactory mirrors the teacher's naming
// (search.TranspositionTableFactory) for a constructor taking a sizing
// parameter -- here the max node count rather than a byte size, since
// Matilda's entries are variable-sized (edge-list length varies).
type TranspositionTableFactory func(ctx context.Context, maxAllocatedStates int) *Table

// NewTable allocates a table sized to maxAllocatedStates, split evenly
// across the two color-to-move tables, each bucket-count a prime near
// maxAllocatedStates/2 (spec §4.6).
func NewTable(ctx context.Context, maxAllocatedStates int) *Table {
	if maxAllocatedStates < 2 {
		maxAllocatedStates = 2
	}
	n := nextPrime(maxAllocatedStates / 2)

	logw.Infof(ctx, "Allocating transposition table: %v buckets/color, %v max states", n, maxAllocatedStates)

	t := &Table{maxAllocated: maxAllocatedStates}
	for c := 0; c < board.NumColors; c++ {
		t.buckets[c] = make([]bucket, n)
	}
	return t
}

func nextPrime(n int) int {
	if n < 3 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// LookupOrCreate returns the node for (color, hash, snapshot), creating one
// if absent. root is true when called from the search root: at capacity,
// root calls still get a fresh node (logged as an out-of-memory warning,
// spec §4.6/§7), while mid-descent calls instead return ok=false so the
// caller runs a cheap playout at that depth rather than growing the table
// further.
func (t *Table) LookupOrCreate(ctx context.Context, color board.Color, hash board.ZobristHash, snapshot [board.Total]board.Color, lastEaten board.Point, lastWasPass bool, expansionDelay int32, root bool) (*Node, bool) {
	b := &t.buckets[color.Index()][uint64(hash)%uint64(len(t.buckets[color.Index()]))]

	b.mu.Lock()
	defer b.mu.Unlock()

	for n := b.head; n != nil; n = n.next {
		if n.matches(hash, snapshot, lastEaten, lastWasPass) {
			return n, true
		}
	}

	n, ok := t.allocate()
	if !ok {
		if !root {
			return nil, false
		}
		logw.Warningf(ctx, "Transposition table at capacity (%v states): allocating beyond budget at search root", t.maxAllocated)
		n = &Node{}
	}

	n.reset(hash, snapshot, lastEaten, lastWasPass, expansionDelay)
	n.next = b.head
	b.head = n
	return n, true
}

func (t *Table) allocate() (*Node, bool) {
	t.freeMu.Lock()
	defer t.freeMu.Unlock()

	if k := len(t.freeList); k > 0 {
		n := t.freeList[k-1]
		t.freeList = t.freeList[:k-1]
		return n, true
	}
	if int(t.allocated) >= t.maxAllocated {
		t.full = true
		return nil, false
	}
	t.allocated++
	return &Node{}, true
}

// Full reports whether the table has reached its configured node budget,
// the search-memory-exhausted condition of spec §7.
func (t *Table) Full() bool {
	return t.full
}

// PruneOutside sweep-marks every node reachable from root's subtree (over
// both color tables, since edges cross from one to the other) and releases
// everything else back to the free list (spec §4.6).
func (t *Table) PruneOutside(root *Node) {
	t.mark++
	mark := t.mark

	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || n.mark == mark {
			return
		}
		n.mark = mark
		for _, e := range n.Edges {
			walk(e.Next)
		}
	}
	walk(root)

	t.freeMu.Lock()
	defer t.freeMu.Unlock()

	for c := 0; c < board.NumColors; c++ {
		for i := range t.buckets[c] {
			b := &t.buckets[c][i]
			b.mu.Lock()
			var kept *Node
			for n := b.head; n != nil; {
				next := n.next
				if n.mark == mark {
					n.next = kept
					kept = n
				} else {
					t.freeList = append(t.freeList, n)
				}
				n = next
			}
			b.head = kept
			b.mu.Unlock()
		}
	}
	t.full = false
}

// ClearAll dumps every node in both tables to the free list (spec §4.6,
// used between games).
func (t *Table) ClearAll() {
	t.freeMu.Lock()
	defer t.freeMu.Unlock()

	for c := 0; c < board.NumColors; c++ {
		for i := range t.buckets[c] {
			b := &t.buckets[c][i]
			b.mu.Lock()
			for n := b.head; n != nil; {
				next := n.next
				t.freeList = append(t.freeList, n)
				n = next
			}
			b.head = nil
			b.mu.Unlock()
		}
	}
	t.full = false
}

// Used returns node-count utilization as a fraction in [0;1]: nodes taken
// from the budget and not sitting on the free list, over the budget. It
// mirrors the teacher's TranspositionTable.Used() accessor.
func (t *Table) Used() float64 {
	if t.maxAllocated == 0 {
		return 0
	}
	t.freeMu.Lock()
	live := int(t.allocated) - len(t.freeList)
	t.freeMu.Unlock()
	if live < 0 {
		live = 0 // root nodes made beyond the budget are not counted in allocated
	}
	return float64(live) / float64(t.maxAllocated)
}
