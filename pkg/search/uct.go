package search

import (
	"context"
	"math"
	"math/rand"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/pattern"
	"github.com/nullbound/matilda/pkg/playout"
	"github.com/nullbound/matilda/pkg/priors"
)

// Config holds the UCT searcher's tunable parameters: the UCB1-TUNED
// exploration constant, the RAVE beta schedule constant, the criticality
// blend threshold/weight, the simulation batch size and depth cap, and the
// resign/early-stop win-rate band (spec §4.7, §5). A plain named-field
// record, per Design Note 9.
type Config struct {
	ExploreC float64 // UCT bonus constant C

	RaveB             float64 // beta schedule constant b
	CriticalityThresh uint32  // mc_n beyond which criticality blends into amaf_q
	CriticalityWeight float64

	// InitialExpansionDelay is the value a freshly created node's
	// ExpansionDelay starts at; it is decremented on each visit and the
	// node expands the visit it reaches -1 (spec §3/§4.7).
	InitialExpansionDelay int32

	BatchSize int // target parallel simulation batch size, spec ~960
	MaxDepth  int // MAX_UCT_DEPTH, spec ~= 2*Total/3

	SuperkoHistory int // ancestor hashes checked for positional superko, spec: six

	ResignThreshold        float64 // best child mc_q below this => "no play"
	MinWinRate, MaxWinRate float64 // early-stop band: outside this, stop before budget exhausts
}

// DefaultConfig returns reasonable default constants; exact tuned values
// are parameters per spec.md's non-goals.
func DefaultConfig() Config {
	return Config{
		ExploreC:              0.25,
		RaveB:                 0.35,
		CriticalityThresh:     30,
		CriticalityWeight:     0.1,
		InitialExpansionDelay: 1,
		BatchSize:             960,
		MaxDepth:              2 * board.Total / 3,
		SuperkoHistory:        6,
		ResignThreshold:       0.1,
		MinWinRate:            0.02,
		MaxWinRate:            0.98,
	}
}

// Searcher drives the UCT/RAVE search loop over a shared Table (spec
// §4.7). A Searcher holds no board state of its own: every simulation
// clones the caller-supplied root board, per spec §5's per-goroutine
// cloned-board concurrency model.
type Searcher struct {
	TT       *Table
	Patterns *pattern.Store

	PriorsConfig  priors.Config
	PlayoutConfig playout.Config
	Config        Config

	zt *board.ZobristTable
}

// NewSearcher builds a Searcher sharing zt, tt and patterns across every
// simulation goroutine (Design Note 9: these are the only pieces of global
// state that must be immutable and shared).
func NewSearcher(zt *board.ZobristTable, tt *Table, patterns *pattern.Store, priorsCfg priors.Config, playoutCfg playout.Config, cfg Config) *Searcher {
	return &Searcher{TT: tt, Patterns: patterns, PriorsConfig: priorsCfg, PlayoutConfig: playoutCfg, Config: cfg, zt: zt}
}

// Root returns (creating if absent) the tree node for cb/color, always
// granted even at table capacity (spec §4.6: "returns a newly allocated
// node anyway... when called from the search root").
func (s *Searcher) Root(ctx context.Context, cb *board.CFGBoard, color board.Color) *Node {
	hash := s.zt.Hash(cb.Colors, color)
	n, _ := s.TT.LookupOrCreate(ctx, color, hash, cb.Colors, cb.LastEaten, cb.LastPlayed == board.Pass, s.Config.InitialExpansionDelay, true)
	return n
}

type pathStep struct {
	node  *Node
	edge  *Edge
	color board.Color
}

// Simulate runs exactly one UCT simulation from root: descent, expansion,
// playout and backpropagation (spec §4.7). rootBoard is cloned, never
// mutated.
func (s *Searcher) Simulate(ctx context.Context, rng *rand.Rand, root *Node, rootBoard *board.CFGBoard, rootColor board.Color) {
	cb := rootBoard.Clone()
	color := rootColor
	node := root

	var path []pathStep
	var ancestorHashes []board.ZobristHash
	var prevEdge *Edge

	consecutivePasses := 0
	forcedLoss := false
	forcedLossColor := color

	for depth := 0; depth < s.Config.MaxDepth; depth++ {
		node.Lock()
		if node.ExpansionDelay >= 0 {
			node.ExpansionDelay--
			if node.ExpansionDelay == -1 {
				s.expand(node, cb, color)
			}
		}
		if len(node.Edges) == 0 {
			node.Unlock()
			break // not yet expanded, or genuinely no candidates: playout from here
		}
		edge := s.selectEdge(rng, node, prevEdge)

		// Virtual loss (spec §4.7 step 2, §5): pessimistically count this
		// as a loss under the lock, corrected at backprop. Proportional
		// decrement, not a flat 1/n: mc_q -= mc_q/mc_n is the running-mean
		// update for appending a zero-valued sample (original_source's
		// src/mcts/uct.c:717), so the result stays in [0,1]; a flat 1/n
		// decrement does not and can drive it negative.
		edge.MCN++
		n := edge.MCN
		edge.MCQ -= edge.MCQ / float64(n)
		node.Unlock()

		if edge.Move == board.Pass {
			cb.Pass()
			consecutivePasses++
		} else {
			consecutivePasses = 0
			cb.Play(edge.Move, color)

			newHash := s.zt.Hash(cb.Colors, color.Opponent())
			if containsRecentHash(ancestorHashes, newHash, s.Config.SuperkoHistory) {
				path = append(path, pathStep{node, edge, color})
				forcedLoss, forcedLossColor = true, color
				break
			}
		}

		path = append(path, pathStep{node, edge, color})
		ancestorHashes = append(ancestorHashes, node.Hash)

		if edge.Next == nil {
			childColor := color.Opponent()
			child, ok := s.TT.LookupOrCreate(ctx, childColor, s.zt.Hash(cb.Colors, childColor), cb.Colors, cb.LastEaten, edge.Move == board.Pass, s.Config.InitialExpansionDelay, false)
			if !ok {
				break // table at capacity mid-descent: cheap playout at this depth
			}
			node.Lock()
			if edge.Next == nil {
				edge.Next = child
			}
			node.Unlock()
		}

		node = edge.Next
		color = color.Opponent()
		prevEdge = edge

		if consecutivePasses >= 2 {
			break
		}
	}

	var score board.Score
	var amaf [board.Total]board.Color
	if forcedLoss {
		if forcedLossColor == board.Black {
			score = -board.Score(2 * board.Total)
		} else {
			score = board.Score(2 * board.Total)
		}
	} else {
		score, amaf = playout.Run(rng, cb, color, s.Patterns, s.PlayoutConfig)
	}

	s.backprop(path, score, amaf, finalOwnership(cb.Colors))
}

// selectEdge picks the edge to descend: an LGRF1 hint first if the
// previously traversed edge carries one still valid for this node's
// current edge list, otherwise the UCB1-TUNED+RAVE+criticality maximizer,
// ties broken uniformly at random (spec §4.7 step 2).
func (s *Searcher) selectEdge(rng *rand.Rand, node *Node, prevEdge *Edge) *Edge {
	if prevEdge != nil && prevEdge.LGRF1Reply != nil && containsEdge(node.Edges, prevEdge.LGRF1Reply) {
		return prevEdge.LGRF1Reply
	}

	parentN := node.TotalVisits()

	var best []*Edge
	bestScore := math.Inf(-1)
	for _, e := range node.Edges {
		sc := s.score(e, parentN)
		switch {
		case sc > bestScore:
			bestScore = sc
			best = best[:0]
			best = append(best, e)
		case sc == bestScore:
			best = append(best, e)
		}
	}
	if len(best) == 1 {
		return best[0]
	}
	return best[rng.Intn(len(best))]
}

// score computes q_combined plus the UCT exploration bonus for e (spec
// §4.7 step 2's formulas).
func (s *Searcher) score(e *Edge, parentN uint32) float64 {
	if e.MCN == 0 {
		return math.Inf(1) // guarantee every edge is tried at least once
	}
	n := float64(e.MCN)

	amafQAdjusted := e.AMAFQ
	if e.MCN > s.Config.CriticalityThresh {
		c := e.OwnerWinning - (2*e.ColorOwning*e.MCQ - e.ColorOwning - e.MCQ + 1)
		amafQAdjusted += s.Config.CriticalityWeight * c
	}

	beta := float64(e.AMAFN) / (n + float64(e.AMAFN) + n*float64(e.AMAFN)*4*s.Config.RaveB*s.Config.RaveB)
	qCombined := (1-beta)*e.MCQ + beta*amafQAdjusted

	p := float64(parentN)
	if p < 1 {
		p = 1
	}
	variance := e.MCQ - e.MCQ*e.MCQ + math.Sqrt(2*math.Log(p)/n)
	if variance > 0.25 {
		variance = 0.25
	}
	uct := s.Config.ExploreC * math.Sqrt(math.Log(p)/n*variance)

	return qCombined + uct
}

// expand seeds a freshly-matured node's edges from the priors module (spec
// §4.5/§4.7 step 3). Called with node's lock held.
func (s *Searcher) expand(node *Node, cb *board.CFGBoard, color board.Color) {
	candidates := priors.Seed(cb, color, cb.LastPlayed, s.Patterns, s.PriorsConfig)

	edges := make([]*Edge, len(candidates))
	for i, c := range candidates {
		q := 0.5
		if c.PriorVisits > 0 {
			q = c.PriorWins / c.PriorVisits
		}
		edges[i] = &Edge{Move: c.Move, MCN: uint32(math.Round(c.PriorVisits)), MCQ: q}
	}
	sortEdges(edges)
	node.Edges = edges
}

// backprop walks path from leaf to root, updating MC, AMAF/RAVE,
// criticality and the LGRF1 hint for every ancestor edge (spec §4.7 step
// 5). Per §E's redesign-flag resolution, the hint is cleared on every
// non-win outcome, not only on loss.
func (s *Searcher) backprop(path []pathStep, score board.Score, amaf [board.Total]board.Color, ownership [board.Total]board.Color) {
	for i := len(path) - 1; i >= 0; i-- {
		step := path[i]
		node, edge, color := step.node, step.edge, step.color
		r := outcomeFor(color, score)

		node.Lock()

		n := float64(edge.MCN) // already incremented at virtual-loss time
		// Win-only correction (original_source's src/mcts/uct.c:802: "if
		// (is_black == (outcome > 0)) plays[k]->mc_q += 1.0/plays[k]->mc_n"),
		// paired with the proportional virtual-loss decrement above --
		// together an exact running mean. A loss needs no correction: the
		// virtual loss already treated it as a zero-valued sample. r/n
		// generalizes cleanly to the r=0.5 draw case (r=0 is a no-op,
		// matching the reference's win-only skip).
		edge.MCQ += r / n

		for _, sib := range node.Edges {
			if sib.Move.IsOnBoard() && amaf[sib.Move] == color {
				sib.AMAFN++
				sib.AMAFQ += (r - sib.AMAFQ) / float64(sib.AMAFN)
			}
		}

		var ownerVal float64
		if edge.Move.IsOnBoard() {
			switch ownership[edge.Move] {
			case board.Black:
				ownerVal = 1
			case board.White:
				ownerVal = -1
			}
		}
		edge.ColorOwning += (ownerVal - edge.ColorOwning) / n
		edge.OwnerWinning += ((ownerVal+1)/2 - edge.OwnerWinning) / n

		if i+1 < len(path) {
			reply := path[i+1].edge
			if outcomeFor(color.Opponent(), score) >= 1 {
				edge.LGRF1Reply = reply
			} else {
				edge.LGRF1Reply = nil
			}
		}

		node.Unlock()
	}
}

func outcomeFor(color board.Color, score board.Score) float64 {
	switch {
	case score == 0:
		return 0.5
	case score > 0:
		if color == board.Black {
			return 1
		}
		return 0
	default:
		if color == board.White {
			return 1
		}
		return 0
	}
}

func containsRecentHash(history []board.ZobristHash, h board.ZobristHash, window int) bool {
	start := 0
	if len(history) > window {
		start = len(history) - window
	}
	for _, v := range history[start:] {
		if v == h {
			return true
		}
	}
	return false
}

// finalOwnership computes, for every position, which color's area it
// falls in at playout's end (an empty region bordered by exactly one
// color belongs to that color), for the criticality update in backprop.
// Deliberately a local flood fill rather than a call into
// board.AreaScore, which aggregates straight to a score and does not
// expose per-point ownership; mirrors the same flood-fill shape as
// board/score.go's unexported helper and tactical/nakade.go's region
// flood, restated here for that reason.
func finalOwnership(colors [board.Total]board.Color) [board.Total]board.Color {
	var owner [board.Total]board.Color
	explored := make([]bool, board.Total)

	for p := board.Point(0); int(p) < board.Total; p++ {
		if colors[p] != board.Empty {
			owner[p] = colors[p]
			continue
		}
		if explored[p] {
			continue
		}
		region, black, white := floodRegion(colors, p, explored)
		if black == white {
			continue // dame: leave Empty (neutral)
		}
		c := board.Black
		if white {
			c = board.White
		}
		for _, q := range region {
			owner[q] = c
		}
	}
	return owner
}

func floodRegion(colors [board.Total]board.Color, start board.Point, explored []bool) (region []board.Point, blackBorder, whiteBorder bool) {
	stack := []board.Point{start}
	explored[start] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, p)

		for _, n := range board.Cardinal4(p) {
			switch colors[n] {
			case board.Black:
				blackBorder = true
			case board.White:
				whiteBorder = true
			default:
				if !explored[n] {
					explored[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return region, blackBorder, whiteBorder
}
