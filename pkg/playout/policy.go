// Package playout implements policy-driven random completion of a CFG
// board position to a terminal score, plus the legality cache that makes
// repeated playouts cheap (spec §4.4).
package playout

import (
	"math/rand"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/pattern"
	"github.com/nullbound/matilda/pkg/tactical"
)

// Config holds the playout policy's tunable parameters: per-stage skip
// probabilities expressed in 128ths (spec §4.4: "probabilistic skipping of
// each stage"), the mercy-score threshold, and the depth-cap shape. A plain
// named-field record per Design Note 9, mirroring priors.Config.
type Config struct {
	// SaveSkip..PassSkip are the probability, in 128ths, that a stage is
	// skipped even though it would otherwise offer a candidate.
	SaveSkip    int
	NakadeSkip  int
	CaptureSkip int
	PatternSkip int
	RandomSkip  int

	// MercyThreshold is a doubled-score stone-count differential; once the
	// running material difference reaches it, the playout stops early and
	// reports a maximal win for the leading color. Zero disables mercy.
	MercyThreshold int

	// DepthCapRandomness bounds the small random offset added to the
	// depth cap (spec §4.4: "N^2/3 + empty-count + small random offset").
	DepthCapRandomness int

	Komi board.Score
}

// DefaultConfig returns reasonable default skip probabilities and depth-cap
// shape; exact tuned values are parameters per spec.md's non-goals.
func DefaultConfig() Config {
	return Config{
		SaveSkip:           8,
		NakadeSkip:         8,
		CaptureSkip:        16,
		PatternSkip:        16,
		RandomSkip:         0,
		MercyThreshold:     0,
		DepthCapRandomness: 8,
		Komi:               15, // 7.5 doubled
	}
}

// weighted is a candidate move and its selection weight.
type weighted struct {
	move   board.Point
	weight float64
}

// pick selects one of cands proportionally to weight, or returns false if
// cands is empty or every weight is non-positive.
func pick(rng *rand.Rand, cands []weighted) (board.Point, bool) {
	var total float64
	for _, c := range cands {
		total += c.weight
	}
	if total <= 0 {
		return board.NoPoint, false
	}
	r := rng.Float64() * total
	for _, c := range cands {
		r -= c.weight
		if r <= 0 {
			return c.move, true
		}
	}
	return cands[len(cands)-1].move, true
}

func skipStage(rng *rand.Rand, prob128 int) bool {
	if prob128 <= 0 {
		return false
	}
	return rng.Intn(128) < prob128
}

// Run plays cb (already holding any setup position) to completion from
// color-to-play, following the deterministic-order, probabilistic-skip
// policy of spec §4.4, and returns the final area score (from Black's
// perspective, per board.AreaScore) and the AMAF trace: for each position,
// the color of whichever player first occupied it during the playout.
//
// cb is mutated in place; callers clone beforehand if the starting
// position must be preserved (as the UCT simulation loop does).
func Run(rng *rand.Rand, cb *board.CFGBoard, color board.Color, store *pattern.Store, cfg Config) (board.Score, [board.Total]board.Color) {
	var amaf [board.Total]board.Color
	cache := NewLegalityCache()

	depthCap := board.Total/3 + len(cb.EmptyPoints)
	if cfg.DepthCapRandomness > 0 {
		depthCap += rng.Intn(cfg.DepthCapRandomness)
	}

	consecutivePasses := 0
	for ply := 0; ply < depthCap && consecutivePasses < 2; ply++ {
		move := selectMove(rng, cb, color, cache, store, cfg)

		if move == board.Pass {
			cb.Pass()
			consecutivePasses++
		} else {
			consecutivePasses = 0
			if amaf[move] == board.Empty {
				amaf[move] = color
			}
			captured := cb.Play(move, color)
			invalidateAfterPlay(cache, cb, move, captured)

			if cfg.MercyThreshold > 0 {
				if diff := materialDiff(cb); diff >= cfg.MercyThreshold {
					return board.Total * 2, amaf
				} else if -diff >= cfg.MercyThreshold {
					return -board.Score(board.Total * 2), amaf
				}
			}
		}

		color = color.Opponent()
	}

	return board.AreaScore(cb.Colors, cfg.Komi), amaf
}

// invalidateAfterPlay marks dirty the positions whose legality could have
// changed as a result of playing move: the point itself and its 8
// neighborhood, every captured stone and its 8 neighborhood, the liberties
// of every group next to a captured stone, and the liberties of the group
// at move and of the groups beside it (spec §4.4).
//
// captured stones are recovered from the tail of EmptyPoints: CFGBoard.Play
// appends each captured stone back to EmptyPoints in order, after removing
// the played point, so the last `captured` entries are exactly the stones
// freed by this play.
func invalidateAfterPlay(cache *LegalityCache, cb *board.CFGBoard, move board.Point, captured int) {
	invalidateLibs := func(p board.Point) {
		if g, ok := cb.Group(p); ok {
			for lib := g.FirstLiberty(); lib != board.NoPoint; lib = g.NextLiberty(lib) {
				cache.Invalidate(lib)
			}
		}
	}

	cache.InvalidateNeighborhood(move)

	if captured > 0 {
		n := len(cb.EmptyPoints)
		for _, s := range cb.EmptyPoints[n-captured:] {
			cache.InvalidateNeighborhood(s)
			for _, nb := range board.Cardinal4(s) {
				invalidateLibs(nb)
			}
		}
	}

	invalidateLibs(move)
	for _, nb := range board.Cardinal4(move) {
		invalidateLibs(nb)
	}
}

func materialDiff(cb *board.CFGBoard) int {
	black, white := 0, 0
	for p := board.Point(0); int(p) < board.Total; p++ {
		switch cb.Colors[p] {
		case board.Black:
			black++
		case board.White:
			white++
		}
	}
	return 2 * (black - white)
}

// selectMove runs the six-stage policy in order and returns the chosen
// move, or board.Pass if every stage is skipped or empty.
func selectMove(rng *rand.Rand, cb *board.CFGBoard, color board.Color, cache *LegalityCache, store *pattern.Store, cfg Config) board.Point {
	if !skipStage(rng, cfg.SaveSkip) {
		if m, ok := pick(rng, saveCandidates(cb, color)); ok {
			return m
		}
	}
	if !skipStage(rng, cfg.NakadeSkip) {
		if m, ok := pick(rng, nakadeCandidates(cb)); ok {
			return m
		}
	}
	if !skipStage(rng, cfg.CaptureSkip) {
		if m, ok := pick(rng, captureCandidates(cb, color)); ok {
			return m
		}
	}
	if !skipStage(rng, cfg.PatternSkip) {
		if m, ok := pick(rng, patternCandidates(cb, color, store)); ok {
			return m
		}
	}
	if !skipStage(rng, cfg.RandomSkip) {
		if m, ok := pick(rng, randomCandidates(cb, color, cache)); ok {
			return m
		}
	}
	return board.Pass
}

// saveCandidates implements stage 1: save a group of our color that is in
// atari adjacent to the last play, weighting by group size plus liberties,
// doubled when the save is itself a capture that puts the enemy in atari.
func saveCandidates(cb *board.CFGBoard, color board.Color) []weighted {
	last := cb.LastPlayed
	if !last.IsOnBoard() {
		return nil
	}

	var cands []weighted
	seen := map[board.Point]bool{}
	for _, n := range board.Cardinal4(last) {
		if cb.Colors[n] != color {
			continue
		}
		g, ok := cb.Group(n)
		if !ok || g.LibertyCount() != 1 {
			continue
		}
		lib := g.FirstLiberty()
		if seen[lib] {
			continue
		}
		seen[lib] = true

		weight := float64(g.Size() + g.LibertyCount())
		if cb.CapturesAfterPlay(lib, color) && putsOpponentInAtari(cb, lib, color) {
			weight *= 2
		}
		cands = append(cands, weighted{lib, weight})
	}
	return cands
}

// nakadeCandidates implements stage 2: weight every empty point by its
// nakade size estimate.
func nakadeCandidates(cb *board.CFGBoard) []weighted {
	var cands []weighted
	for _, p := range cb.EmptyPoints {
		if size := tactical.Nakade(cb, p); size > 0 {
			cands = append(cands, weighted{p, float64(size)})
		}
	}
	return cands
}

// captureCandidates implements stage 3: uniform weight among empty points
// that would capture at least one enemy stone.
func captureCandidates(cb *board.CFGBoard, color board.Color) []weighted {
	var cands []weighted
	for _, p := range cb.EmptyPoints {
		if cb.CapturesAfterPlay(p, color) {
			cands = append(cands, weighted{p, 1})
		}
	}
	return cands
}

// patternCandidates implements stage 4: match within the 8-neighborhood of
// the last play, weighted by the pattern store's registered weight.
func patternCandidates(cb *board.CFGBoard, color board.Color, store *pattern.Store) []weighted {
	if store == nil || !cb.LastPlayed.IsOnBoard() {
		return nil
	}
	var cands []weighted
	for _, p := range board.Neighbors8(cb.LastPlayed) {
		if cb.Colors[p] != board.Empty {
			continue
		}
		if w := store.Find(cb, p, color); w > 0 {
			cands = append(cands, weighted{p, float64(w)})
		}
	}
	return cands
}

// randomCandidates implements stage 5: every legal, non-self-eye-filling
// empty point, excluding self-atari unless it is a throw-in (captures or
// puts an enemy group in atari). Safe moves get weight 2, throw-ins get 1.
func randomCandidates(cb *board.CFGBoard, color board.Color, cache *LegalityCache) []weighted {
	var cands []weighted
	for _, p := range cb.EmptyPoints {
		legal, _, captures := cache.Query(cb, p, color)
		if !legal {
			continue
		}
		if isOwnEyeFill(cb, p, color) {
			continue
		}

		grade, _ := cb.SafeToPlay(p, color)
		switch grade {
		case board.Safe:
			cands = append(cands, weighted{p, 2})
		case board.SelfAtari:
			if captures || putsOpponentInAtari(cb, p, color) {
				cands = append(cands, weighted{p, 1})
			}
		}
	}
	return cands
}

// isOwnEyeFill reports whether p is a proper single/two/four-point eye of
// color's own that is not worth attacking (spec §4.4: "2pt/4pt own-eye
// defenders are suppressed unless the shape may be forced").
func isOwnEyeFill(cb *board.CFGBoard, p board.Point, color board.Color) bool {
	if tactical.IsEye(cb, p, color) {
		return true
	}
	if eye, canForce := tactical.Is2PtEye(cb, p, color); eye && !canForce {
		return true
	}
	if eye, canForce := tactical.Is4PtEye(cb, p, color); eye && !canForce {
		return true
	}
	return false
}

// putsOpponentInAtari reports whether playing p as color would leave some
// adjacent opposite-color group with exactly one liberty.
func putsOpponentInAtari(cb *board.CFGBoard, p board.Point, color board.Color) bool {
	clone := cb.Clone()
	clone.Play(p, color)
	for _, n := range board.Cardinal4(p) {
		g, ok := clone.Group(n)
		if ok && g.Color == color.Opponent() && g.LibertyCount() == 1 {
			return true
		}
	}
	return false
}
