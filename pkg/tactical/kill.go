package tactical

import "github.com/nullbound/matilda/pkg/board"

// GetKillingPlay returns a move that forces the eventual capture of g
// (which must hold three or fewer liberties), reading up to maxDepth
// plies of alternating attacker/defender replies, or ok=false if no move
// forces a kill. Grounded on tactical.c's can_be_killed/can_be_killed_all.
func GetKillingPlay(cb *board.CFGBoard, g *board.Group, maxDepth int) (move board.Point, ok bool) {
	if g.LibertyCount() > 3 {
		return board.NoPoint, false
	}
	attacker := g.Color.Opponent()
	anchor := g.Stones[0]

	for lib := g.FirstLiberty(); lib != board.NoPoint; lib = g.NextLiberty(lib) {
		if !cb.CanPlay(lib, attacker, true) {
			continue
		}
		clone := cb.Clone()
		clone.Play(lib, attacker)
		if !defenderEscapes(clone, anchor, g.Color, maxDepth-1) {
			return lib, true
		}
	}
	return board.NoPoint, false
}

// GetSavingPlay returns a move of g's own color that keeps it alive,
// reading up to maxDepth plies, or ok=false if no move saves it (the
// defender should consider passing instead, per spec).
func GetSavingPlay(cb *board.CFGBoard, g *board.Group, maxDepth int) (move board.Point, ok bool) {
	if g.LibertyCount() > 3 {
		return board.NoPoint, false
	}
	anchor := g.Stones[0]

	for lib := g.FirstLiberty(); lib != board.NoPoint; lib = g.NextLiberty(lib) {
		if !cb.CanPlay(lib, g.Color, true) {
			continue
		}
		clone := cb.Clone()
		clone.Play(lib, g.Color)
		if canEscape(clone, anchor, g.Color, maxDepth-1) {
			return lib, true
		}
	}
	return board.NoPoint, false
}
