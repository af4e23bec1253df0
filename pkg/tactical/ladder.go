package tactical

import "github.com/nullbound/matilda/pkg/board"

// IsLadder reports whether the group at p, belonging to color and holding
// exactly two liberties, is caught in an inescapable ladder within
// maxDepth plies (spec recommends a depth cap of about 3*Size). Grounded
// on tactical.c's is_ladder, reimplemented as a bounded adversarial search
// over the CFG board rather than the reference's direction-tracking ladder
// walk, since Matilda already has cheap board cloning for simulation.
func IsLadder(cb *board.CFGBoard, p board.Point, color board.Color, maxDepth int) bool {
	g, ok := cb.Group(p)
	if !ok || g.LibertyCount() != 2 {
		return false
	}
	return !canEscape(cb.Clone(), p, color, maxDepth)
}

// canEscape reports whether the group at p can reach safety (three or more
// liberties, or survive until depth runs out with at least two) against
// best defense, assuming it is the attacker's turn to reduce liberties.
func canEscape(cb *board.CFGBoard, p board.Point, color board.Color, depth int) bool {
	g, ok := cb.Group(p)
	if !ok {
		return false
	}
	if g.LibertyCount() >= 3 {
		return true
	}
	if g.LibertyCount() == 0 {
		return false
	}
	if depth <= 0 {
		return g.LibertyCount() >= 2
	}

	attacker := color.Opponent()
	for lib := g.FirstLiberty(); lib != board.NoPoint; lib = g.NextLiberty(lib) {
		if !cb.CanPlay(lib, attacker, true) {
			continue
		}
		clone := cb.Clone()
		clone.Play(lib, attacker)
		if !defenderEscapes(clone, p, color, depth-1) {
			return false // this attacker reply defeats every defender response
		}
	}
	return true
}

// defenderEscapes reports whether the defending color has a reply that
// keeps the group (at p) alive, assuming it is their turn to move.
func defenderEscapes(cb *board.CFGBoard, p board.Point, color board.Color, depth int) bool {
	g, ok := cb.Group(p)
	if !ok {
		return false
	}
	if g.LibertyCount() >= 3 {
		return true
	}
	if g.LibertyCount() == 0 || depth <= 0 {
		return g.LibertyCount() >= 2
	}

	for lib := g.FirstLiberty(); lib != board.NoPoint; lib = g.NextLiberty(lib) {
		if !cb.CanPlay(lib, color, true) {
			continue
		}
		clone := cb.Clone()
		clone.Play(lib, color)
		if canEscape(clone, p, color, depth-1) {
			return true
		}
	}
	return false
}
