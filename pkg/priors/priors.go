// Package priors seeds newly expanded UCT tree nodes with heuristic
// visit/win counts, so the first few playouts through a node are not
// uniformly uninformed.
package priors

import (
	"math"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/pattern"
	"github.com/nullbound/matilda/pkg/tactical"
)

// Config holds the tunable weights for each heuristic, a plain named-field
// record per Design Note 9 rather than the variadic name/type pairs the
// original's initialization uses.
type Config struct {
	// GroupSizeExponent is alpha in "weight proportional to group-size^alpha"
	// for nakade/saving/capturing heuristics.
	GroupSizeExponent float64
	NakadeWeight      float64
	SavingWeight      float64
	CapturingWeight   float64
	SelfAtariPenalty  float64
	PatternWeight     float64

	// NearLastPlayBonus rewards playing in the 3x3 neighborhood of the
	// last move or a liberty of its group (both W and V), separate from
	// the isolation tiers below: spec §4.5 names "near last play" and
	// "line-2/3 bonuses" as two distinct mechanisms.
	NearLastPlayBonus float64

	// Border-distance tiers for the isolation sub-bonuses (spec §4.5's
	// "line-2/3 bonuses"), split by whether any stone sits within
	// Manhattan distance 3 of the candidate. Isolated moves (no such
	// stone) get both W and V on the third line and deeper, V-only
	// closer to the edge, and are excluded as candidates entirely on the
	// first line; moves near existing stones get a small V-only nudge on
	// the first and second lines, W and V on the third, and nothing past it.
	IsolatedLine2Bonus float64 // second line, isolated: V only
	IsolatedLine3Bonus float64 // third line, isolated: W and V
	IsolatedEmptyBonus float64 // fourth line or deeper, isolated: W and V
	CrowdedLine1Bonus  float64 // first line, not isolated: V only
	CrowdedLine2Bonus  float64 // second line, not isolated: V only
	CrowdedLine3Bonus  float64 // third line, not isolated: W and V

	CornerBonus float64
	LadderDepth int
	// MinCandidateFraction is the T/8 fraction below which a pass edge is
	// added to reflect resignation probability.
	MinCandidateFraction float64
}

// DefaultConfig returns reasonable default weights, grounded on the shape of
// spec.md's heuristic list (exact tuned values are parameters, not part of
// the contract).
func DefaultConfig() Config {
	return Config{
		GroupSizeExponent:    1.24,
		NakadeWeight:         10,
		SavingWeight:         8,
		CapturingWeight:      6,
		SelfAtariPenalty:     4,
		PatternWeight:        3,
		NearLastPlayBonus:    2,
		IsolatedLine2Bonus:   1,
		IsolatedLine3Bonus:   2,
		IsolatedEmptyBonus:   2,
		CrowdedLine1Bonus:    1,
		CrowdedLine2Bonus:    1,
		CrowdedLine3Bonus:    1,
		CornerBonus:          1,
		LadderDepth:          3 * board.Size,
		MinCandidateFraction: 1.0 / 8,
	}
}

// Candidate is a move seeded with prior wins W and visits V (W <= V), the
// values a tree node's new edge is expanded with. Priors has no knowledge of
// the tree/edge representation itself -- that belongs to pkg/search, which
// converts these into its own Edge type -- to keep the two packages from
// importing each other.
type Candidate struct {
	Move        board.Point // board.Pass for the resignation-probability pass edge
	PriorWins   float64
	PriorVisits float64
}

// Seed enumerates legal, non-skipped moves for color on cb and returns one
// Candidate per move, following spec.md §4.5.
func Seed(cb *board.CFGBoard, color board.Color, lastPlay board.Point, store *pattern.Store, cfg Config) []Candidate {
	var candidates []Candidate

	for p := board.Point(0); int(p) < board.Total; p++ {
		if cb.Colors[p] != board.Empty {
			continue
		}
		if skip(cb, p, color, cfg) {
			continue
		}

		weight, vote := 1.0, 1.0 // even prior baseline: W=E/2, V=E folded per-candidate below

		if size := tactical.Nakade(cb, p); size > 0 {
			bonus := math.Pow(float64(size), cfg.GroupSizeExponent) * cfg.NakadeWeight
			weight += bonus
			vote += bonus
		}
		if savingBonus := savingWeight(cb, p, color, cfg); savingBonus > 0 {
			weight += savingBonus
			vote += savingBonus
		}
		if capturingBonus := capturingWeight(cb, p, color, cfg); capturingBonus > 0 {
			weight += capturingBonus
			vote += capturingBonus
		}
		if grade, _ := cb.SafeToPlay(p, color); grade == board.SelfAtari {
			vote += cfg.SelfAtariPenalty // anti-vote: visits only, no wins
		}
		if store != nil {
			if w := store.Find(cb, p, color); w > 0 {
				bonus := float64(w) * cfg.PatternWeight
				weight += bonus
				vote += bonus
			}
		}
		if nearLastPlay(cb, p, lastPlay) {
			weight += cfg.NearLastPlayBonus
			vote += cfg.NearLastPlayBonus
		}

		isolated := stonesWithinManhattan3(cb, p) == 0
		excludeFirstLine := false
		switch dist := int(board.DistanceToBorder(p)); {
		case isolated && dist == 0:
			excludeFirstLine = true // bare first-line point in empty space: not worth considering
		case isolated && dist == 1:
			vote += cfg.IsolatedLine2Bonus
		case isolated && dist == 2:
			weight += cfg.IsolatedLine3Bonus
			vote += cfg.IsolatedLine3Bonus
		case isolated:
			weight += cfg.IsolatedEmptyBonus
			vote += cfg.IsolatedEmptyBonus
		case dist == 0:
			vote += cfg.CrowdedLine1Bonus
		case dist == 1:
			vote += cfg.CrowdedLine2Bonus
		case dist == 2:
			weight += cfg.CrowdedLine3Bonus
			vote += cfg.CrowdedLine3Bonus
		}
		if excludeFirstLine {
			continue
		}

		if isCorner(p) {
			vote += cfg.CornerBonus
		}

		candidates = append(candidates, Candidate{Move: p, PriorWins: weight / 2, PriorVisits: vote})
	}

	if float64(len(candidates)) < float64(board.Total)*cfg.MinCandidateFraction {
		candidates = append(candidates, Candidate{Move: board.Pass, PriorWins: 1, PriorVisits: 2})
	}

	return candidates
}

// skip reports whether p must never be offered as a candidate move: suicide,
// ko violation, or a proper eye of color's own (playing into one's own living
// eye is never profitable in area scoring).
func skip(cb *board.CFGBoard, p board.Point, color board.Color, cfg Config) bool {
	if !cb.CanPlay(p, color, true) {
		return true // suicide or ko violation
	}
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

func savingWeight(cb *board.CFGBoard, p board.Point, color board.Color, cfg Config) float64 {
	for _, n := range board.Cardinal4(p) {
		if cb.Colors[n] != color {
			continue
		}
		g, ok := cb.Group(n)
		if !ok || g.LibertyCount() > 1 {
			continue
		}
		if _, found := tactical.GetSavingPlay(cb, g, cfg.LadderDepth); found {
			return math.Pow(float64(g.Size()), cfg.GroupSizeExponent) * cfg.SavingWeight
		}
	}
	return 0
}

func capturingWeight(cb *board.CFGBoard, p board.Point, color board.Color, cfg Config) float64 {
	enemy := color.Opponent()
	var best float64
	for _, n := range board.Cardinal4(p) {
		if cb.Colors[n] != enemy {
			continue
		}
		g, ok := cb.Group(n)
		if !ok || g.LibertyCount() != 1 {
			continue
		}
		w := math.Pow(float64(g.Size()), cfg.GroupSizeExponent) * cfg.CapturingWeight
		if w > best {
			best = w
		}
	}
	return best
}

// nearLastPlay reports whether p is in the 3x3 neighborhood of last or a
// liberty of the group occupying last, the reference's definition of "near"
// for the near-last-play prior (original_source's tactical.c: mark_near_pos).
func nearLastPlay(cb *board.CFGBoard, p, last board.Point) bool {
	if !last.IsOnBoard() {
		return false
	}
	if p == last {
		return true
	}
	for _, n := range board.Neighbors8(last) {
		if n == p {
			return true
		}
	}
	if g, ok := cb.Group(last); ok {
		for lib := g.FirstLiberty(); lib != board.NoPoint; lib = g.NextLiberty(lib) {
			if lib == p {
				return true
			}
		}
	}
	return false
}

// stonesWithinManhattan3 counts stones (either color) within Manhattan
// distance 3 of p, excluding p itself -- the isolation test the reference's
// stones_in_manhattan_dst3 performs to separate "near last play" from "open
// area of the board" (original_source's uct_priors.c).
func stonesWithinManhattan3(cb *board.CFGBoard, p board.Point) int {
	row, col := p.Row(), p.Col()
	count := 0
	for dr := -3; dr <= 3; dr++ {
		for dc := -3; dc <= 3; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			ad := dr
			if ad < 0 {
				ad = -ad
			}
			bd := dc
			if bd < 0 {
				bd = -bd
			}
			if ad+bd > 3 {
				continue
			}
			r, c := row+dr, col+dc
			if r < 0 || r >= board.Size || c < 0 || c >= board.Size {
				continue
			}
			if cb.Colors[board.NewPoint(r, c)] != board.Empty {
				count++
			}
		}
	}
	return count
}

func isCorner(p board.Point) bool {
	row, col := p.Row(), p.Col()
	onEdgeRow := row == 0 || row == board.Size-1
	onEdgeCol := col == 0 || col == board.Size-1
	return onEdgeRow && onEdgeCol
}
