package playout

import "github.com/nullbound/matilda/pkg/board"

// Flag bits stored per position, per color, in LegalityCache. Grounded on
// spec.md §4.4's "legality cache... one byte per position, with bits dirty,
// legal, opp-safe, captures" -- described as the playout engine's single
// largest performance optimization.
const (
	flagDirty byte = 1 << iota
	flagLegal
	flagOppSafe
	flagCaptures
)

// LegalityCache memoizes, per color and position, whether a move there is
// legal, whether it is "safe" for the opponent color (SafeToPlay grade
// above self-atari), and whether it captures -- recomputed lazily only when
// the dirty bit is set.
type LegalityCache struct {
	black, white [board.Total]byte
}

// NewLegalityCache returns a cache with every entry marked dirty.
func NewLegalityCache() *LegalityCache {
	c := &LegalityCache{}
	for i := range c.black {
		c.black[i] = flagDirty
		c.white[i] = flagDirty
	}
	return c
}

func (c *LegalityCache) table(color board.Color) *[board.Total]byte {
	if color == board.Black {
		return &c.black
	}
	return &c.white
}

// Invalidate marks p dirty for both colors. Called for every position whose
// local neighborhood changed as a result of a play: the played point, its
// 8-neighborhood, captured stones, and the liberties of any group adjacent
// to a capture or to the new group.
func (c *LegalityCache) Invalidate(p board.Point) {
	c.black[p] |= flagDirty
	c.white[p] |= flagDirty
}

// InvalidateNeighborhood invalidates p and every one of its 8 neighbors
// (the corners included), the set of positions whose legality could have
// changed from a single play at p.
func (c *LegalityCache) InvalidateNeighborhood(p board.Point) {
	c.Invalidate(p)
	for _, n := range board.Cardinal4(p) {
		c.Invalidate(n)
	}
	for _, n := range board.Diagonal4(p) {
		c.Invalidate(n)
	}
}

// Query returns the cached legal/opp-safe/captures flags for p and color,
// recomputing and clearing the dirty bit first if necessary.
func (c *LegalityCache) Query(cb *board.CFGBoard, p board.Point, color board.Color) (legal, oppSafe, captures bool) {
	table := c.table(color)
	if table[p]&flagDirty != 0 {
		c.recompute(cb, p, color)
	}
	v := table[p]
	return v&flagLegal != 0, v&flagOppSafe != 0, v&flagCaptures != 0
}

func (c *LegalityCache) recompute(cb *board.CFGBoard, p board.Point, color board.Color) {
	grade, captures := cb.SafeToPlay(p, color)

	var v byte
	if grade != board.Illegal {
		v |= flagLegal
	}
	if captures {
		v |= flagCaptures
	}
	oppGrade, _ := cb.SafeToPlay(p, color.Opponent())
	if oppGrade == board.Safe {
		v |= flagOppSafe
	}
	c.table(color)[p] = v
}
