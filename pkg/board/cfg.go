package board

// groupID indexes into CFGBoard's group arena. Zero means "no group" so the
// zero value of groupID is usable directly as GroupOf's empty sentinel,
// matching Design Note 9: groups are referenced by arena index, not pointer,
// so neighbor sets stay acyclic.
type groupID int32

// Group is a CFG node: a maximal chain of same-colored stones, its
// liberties, and the canonical ids of adjacent opposite-color groups
// (spec §3). Stones[0] is the group's canonical/representative point.
type Group struct {
	Color      Color
	Stones     []Point
	Neighbors  []groupID // opposite-color groups sharing a liberty with this one
	liberties  libertyBitmap
	libCount   int
	minLiberty Point

	dragonID int32 // reserved for future dragon analysis (SPEC_FULL §D.7); unused by the core
}

// LibertyCount returns the number of distinct liberties of the group.
func (g *Group) LibertyCount() int { return g.libCount }

// Size returns the number of stones in the group.
func (g *Group) Size() int { return len(g.Stones) }

func (g *Group) bumpMinLiberty(p Point) {
	if g.minLiberty == NoPoint || p < g.minLiberty {
		g.minLiberty = p
	}
}

// FirstLiberty returns a liberty of the group, or NoPoint if somehow none
// remain (should not happen for a live group).
func (g *Group) FirstLiberty() Point {
	if g.minLiberty != NoPoint && g.liberties.test(g.minLiberty) {
		return g.minLiberty
	}
	return g.liberties.first()
}

// NextLiberty returns a liberty strictly after start, or NoPoint.
func (g *Group) NextLiberty(start Point) Point {
	return g.liberties.next(start)
}

// CFGBoard is the Common Fate Graph board: a plain Board plus the
// incrementally maintained group/liberty graph and 3x3 neighborhood
// bookkeeping used for O(1) tactical queries (spec §3, §4.1).
type CFGBoard struct {
	Board

	Hash3x3 [Total]uint16

	BlackN4 [Total]uint8
	WhiteN4 [Total]uint8
	BlackN8 [Total]uint8
	WhiteN8 [Total]uint8

	EmptyPoints []Point
	emptyIdx    [Total]int // index into EmptyPoints, -1 if occupied

	UniqueGroups []groupID
	GroupOf      [Total]groupID

	groups   []*Group // arena; groups[0] is never used (sentinel)
	freeList []groupID

	zt *ZobristTable
}

// NewCFGBoard returns an empty CFG board bound to the given Zobrist table.
// The table is shared read-only; it is not owned by the CFGBoard.
func NewCFGBoard(zt *ZobristTable) *CFGBoard {
	cb := &CFGBoard{
		Board:   Board{LastPlayed: NoPoint, LastEaten: NoPoint},
		groups:  []*Group{nil},
		zt:      zt,
	}
	for p := Point(0); int(p) < Total; p++ {
		cb.emptyIdx[p] = int(p)
		cb.EmptyPoints = append(cb.EmptyPoints, p)
	}
	return cb
}

// NewCFGBoardFrom builds a CFG board from a plain Board snapshot, replaying
// its stones as fresh plays. The two are not linked afterwards.
func NewCFGBoardFrom(zt *ZobristTable, b *Board) *CFGBoard {
	cb := NewCFGBoard(zt)
	// Two passes: place every stone first with no capture semantics assumed
	// impossible, since a raw snapshot may contain stones that would
	// capture each other if replayed in the wrong order. We instead seed
	// group structure directly from the color array.
	cb.seedFrom(b)
	return cb
}

func (cb *CFGBoard) seedFrom(b *Board) {
	for p := Point(0); int(p) < Total; p++ {
		if b.Colors[p] == Empty {
			continue
		}
		cb.occupy(p, b.Colors[p])
	}
	// Build groups by flood fill over same-colored cardinal-adjacency, then
	// derive liberties and neighbor sets from scratch.
	visited := make([]bool, Total)
	for p := Point(0); int(p) < Total; p++ {
		if b.Colors[p] == Empty || visited[p] {
			continue
		}
		c := b.Colors[p]
		var stones []Point
		stack := []Point{p}
		visited[p] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stones = append(stones, cur)
			for _, n := range Cardinal4(cur) {
				if !visited[n] && b.Colors[n] == c {
					visited[n] = true
					stack = append(stack, n)
				}
			}
		}
		gid := cb.allocGroup(c, stones)
		for _, s := range stones {
			cb.GroupOf[s] = gid
		}
	}
	// Liberties and neighbor sets, one pass.
	for _, gid := range cb.UniqueGroups {
		g := cb.group(gid)
		for _, s := range g.Stones {
			for _, n := range Cardinal4(s) {
				if b.Colors[n] == Empty {
					g.liberties.set(n)
					g.bumpMinLiberty(n)
				} else if b.Colors[n] != g.Color {
					cb.addNeighborRelation(gid, cb.GroupOf[n])
				}
			}
		}
		g.libCount = g.liberties.popcount()
	}
	cb.Board = *b
}

// Clone returns a fully independent deep copy.
func (cb *CFGBoard) Clone() *CFGBoard {
	out := &CFGBoard{
		Board:        cb.Board,
		Hash3x3:      cb.Hash3x3,
		BlackN4:      cb.BlackN4,
		WhiteN4:      cb.WhiteN4,
		BlackN8:      cb.BlackN8,
		WhiteN8:      cb.WhiteN8,
		emptyIdx:     cb.emptyIdx,
		GroupOf:      cb.GroupOf,
		zt:           cb.zt,
		EmptyPoints:  append([]Point(nil), cb.EmptyPoints...),
		UniqueGroups: append([]groupID(nil), cb.UniqueGroups...),
		freeList:     append([]groupID(nil), cb.freeList...),
		groups:       make([]*Group, len(cb.groups)),
	}
	for i, g := range cb.groups {
		if g == nil {
			continue
		}
		cg := *g
		cg.Stones = append([]Point(nil), g.Stones...)
		cg.Neighbors = append([]groupID(nil), g.Neighbors...)
		out.groups[i] = &cg
	}
	return out
}

func (cb *CFGBoard) group(gid groupID) *Group {
	return cb.groups[gid]
}

// Group looks up the group occupying p, if any.
func (cb *CFGBoard) Group(p Point) (*Group, bool) {
	gid := cb.GroupOf[p]
	if gid == 0 {
		return nil, false
	}
	return cb.groups[gid], true
}

// Groups returns every live group on the board, in unique_groups order.
func (cb *CFGBoard) Groups() []*Group {
	ret := make([]*Group, len(cb.UniqueGroups))
	for i, gid := range cb.UniqueGroups {
		ret[i] = cb.groups[gid]
	}
	return ret
}

func (cb *CFGBoard) allocGroup(c Color, stones []Point) groupID {
	var gid groupID
	if n := len(cb.freeList); n > 0 {
		gid = cb.freeList[n-1]
		cb.freeList = cb.freeList[:n-1]
		*cb.groups[gid] = Group{Color: c, Stones: stones, minLiberty: NoPoint}
	} else {
		cb.groups = append(cb.groups, &Group{Color: c, Stones: stones, minLiberty: NoPoint})
		gid = groupID(len(cb.groups) - 1)
	}
	cb.UniqueGroups = append(cb.UniqueGroups, gid)
	return gid
}

func (cb *CFGBoard) freeGroup(gid groupID) {
	// swap-remove from UniqueGroups
	for i, id := range cb.UniqueGroups {
		if id == gid {
			last := len(cb.UniqueGroups) - 1
			cb.UniqueGroups[i] = cb.UniqueGroups[last]
			cb.UniqueGroups = cb.UniqueGroups[:last]
			break
		}
	}
	cb.groups[gid].Stones = nil
	cb.groups[gid].Neighbors = nil
	cb.freeList = append(cb.freeList, gid)
}

func (cb *CFGBoard) addEmpty(p Point) {
	cb.emptyIdx[p] = len(cb.EmptyPoints)
	cb.EmptyPoints = append(cb.EmptyPoints, p)
}

func (cb *CFGBoard) removeEmpty(p Point) {
	idx := cb.emptyIdx[p]
	last := len(cb.EmptyPoints) - 1
	cb.EmptyPoints[idx] = cb.EmptyPoints[last]
	cb.emptyIdx[cb.EmptyPoints[idx]] = idx
	cb.EmptyPoints = cb.EmptyPoints[:last]
	cb.emptyIdx[p] = -1
}

func hasGroupID(s []groupID, id groupID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func (cb *CFGBoard) addNeighborRelation(a, b groupID) {
	if a == 0 || b == 0 {
		return
	}
	ga, gb := cb.groups[a], cb.groups[b]
	if !hasGroupID(ga.Neighbors, b) {
		ga.Neighbors = append(ga.Neighbors, b)
	}
	if !hasGroupID(gb.Neighbors, a) {
		gb.Neighbors = append(gb.Neighbors, a)
	}
}

func (cb *CFGBoard) removeNeighborRelation(a, b groupID) {
	if a == 0 {
		return
	}
	ga := cb.groups[a]
	for i, v := range ga.Neighbors {
		if v == b {
			last := len(ga.Neighbors) - 1
			ga.Neighbors[i] = ga.Neighbors[last]
			ga.Neighbors = ga.Neighbors[:last]
			return
		}
	}
}

// occupy updates the 3x3 hash and neighbor-count bookkeeping for placing a
// stone of color c at p; it does not touch groups or liberties.
func (cb *CFGBoard) occupy(p Point, c Color) {
	cb.Colors[p] = c
	cb.removeEmpty(p)

	for _, n := range Cardinal4(p) {
		if c == Black {
			cb.BlackN4[n]++
			cb.BlackN8[n]++
		} else {
			cb.WhiteN4[n]++
			cb.WhiteN8[n]++
		}
		cb.Hash3x3[n] ^= cb.zt.hash3x3Contribution(n, p, c)
	}
	for _, n := range Diagonal4(p) {
		if c == Black {
			cb.BlackN8[n]++
		} else {
			cb.WhiteN8[n]++
		}
		cb.Hash3x3[n] ^= cb.zt.hash3x3Contribution(n, p, c)
	}
}

// vacate reverts occupy: used when a stone is captured.
func (cb *CFGBoard) vacate(p Point, c Color) {
	for _, n := range Cardinal4(p) {
		if c == Black {
			cb.BlackN4[n]--
			cb.BlackN8[n]--
		} else {
			cb.WhiteN4[n]--
			cb.WhiteN8[n]--
		}
		cb.Hash3x3[n] ^= cb.zt.hash3x3Contribution(n, p, c)
	}
	for _, n := range Diagonal4(p) {
		if c == Black {
			cb.BlackN8[n]--
		} else {
			cb.WhiteN8[n]--
		}
		cb.Hash3x3[n] ^= cb.zt.hash3x3Contribution(n, p, c)
	}
	cb.Colors[p] = Empty
	cb.addEmpty(p)
}

// Pass applies a passing turn: only last-move bookkeeping changes.
func (cb *CFGBoard) Pass() {
	cb.LastPlayed = Pass
	cb.LastEaten = NoPoint
}

// Play assumes the move is legal (spec §4.1: "Assume play is legal") and
// updates groups, liberties and captures accordingly. Returns the number of
// stones captured.
func (cb *CFGBoard) Play(p Point, c Color) int {
	cb.occupy(p, c)

	var sameColor, enemy []groupID
	emptyN := 0
	for _, n := range Cardinal4(p) {
		ngid := cb.GroupOf[n]
		switch {
		case ngid == 0:
			emptyN++
		case cb.group(ngid).Color == c:
			if !hasGroupID(sameColor, ngid) {
				sameColor = append(sameColor, ngid)
			}
		default:
			if !hasGroupID(enemy, ngid) {
				enemy = append(enemy, ngid)
			}
		}
	}

	gid := cb.allocGroup(c, []Point{p})
	cb.GroupOf[p] = gid
	g := cb.group(gid)
	for _, n := range Cardinal4(p) {
		if cb.GroupOf[n] == 0 {
			g.liberties.set(n)
			g.bumpMinLiberty(n)
		}
	}

	for _, mgid := range sameColor {
		gid = cb.mergeInto(gid, mgid)
	}
	g = cb.group(gid)
	g.liberties.clear(p) // p was a liberty of any merged same-color group; it's occupied now

	for _, ngid := range enemy {
		ng := cb.group(ngid)
		ng.liberties.clear(p)
		ng.libCount = ng.liberties.popcount()
		cb.addNeighborRelation(gid, ngid)
	}
	g.libCount = g.liberties.popcount()

	captured := 0
	var lastCapturedStone Point
	for _, ngid := range append([]groupID(nil), g.Neighbors...) {
		ng := cb.group(ngid)
		if ng.libCount != 0 {
			continue
		}
		n := len(ng.Stones)
		captured += n
		if n == 1 {
			lastCapturedStone = ng.Stones[0]
		}
		cb.captureGroup(ngid)
	}

	cb.LastPlayed = p
	if captured == 1 && len(g.Stones) == 1 && g.libCount == 1 {
		// a lone capturing stone left with one liberty can be retaken at once: ko
		cb.LastEaten = lastCapturedStone
	} else {
		cb.LastEaten = NoPoint
	}
	return captured
}

// mergeInto absorbs src into dst (dst survives) and returns dst. Same-color
// groups only, per the CFG invariant that same-color groups are never
// adjacent without merging.
func (cb *CFGBoard) mergeInto(dst, src groupID) groupID {
	d, s := cb.group(dst), cb.group(src)
	for _, stone := range s.Stones {
		cb.GroupOf[stone] = dst
	}
	d.Stones = append(d.Stones, s.Stones...)
	d.liberties.or(&s.liberties)
	if s.minLiberty != NoPoint {
		d.bumpMinLiberty(s.minLiberty)
	}
	d.libCount = d.liberties.popcount()

	for _, enemyGid := range s.Neighbors {
		cb.removeNeighborRelation(enemyGid, src)
		cb.addNeighborRelation(dst, enemyGid)
	}

	cb.freeGroup(src)
	return dst
}

func (cb *CFGBoard) captureGroup(gid groupID) {
	g := cb.group(gid)
	color := g.Color
	stones := append([]Point(nil), g.Stones...)

	for _, s := range stones {
		cb.vacate(s, color)
		cb.GroupOf[s] = 0
	}

	var touched []groupID
	for _, s := range stones {
		for _, n := range Cardinal4(s) {
			ngid := cb.GroupOf[n]
			if ngid == 0 || ngid == gid {
				continue
			}
			ng := cb.group(ngid)
			ng.liberties.set(s)
			ng.bumpMinLiberty(s)
			if !hasGroupID(touched, ngid) {
				touched = append(touched, ngid)
			}
		}
	}
	for _, ngid := range touched {
		ng := cb.group(ngid)
		ng.libCount = ng.liberties.popcount()
	}

	for _, enemyGid := range g.Neighbors {
		cb.removeNeighborRelation(enemyGid, gid)
	}
	cb.freeGroup(gid)
}

// KoViolation reports whether p recreates the most recent single-stone
// capture's position (spec §3/§4.1 ko handling). It does not check any
// other form of legality.
func (cb *CFGBoard) KoViolation(p Point) bool {
	return p == cb.LastEaten
}

// CanPlay reports whether playing p as c is legal, optionally respecting
// the simple-ko rule.
func (cb *CFGBoard) CanPlay(p Point, c Color, respectKo bool) bool {
	if !p.IsOnBoard() || cb.Colors[p] != Empty {
		return false
	}
	if respectKo && cb.KoViolation(p) {
		return false
	}
	clone := cb.Clone()
	clone.Play(p, c)
	gid := clone.GroupOf[p]
	return gid != 0 && clone.group(gid).libCount > 0
}

// LibertiesAfterPlay returns the resulting group's liberty count and the
// number of stones that would be captured by playing p as c.
func (cb *CFGBoard) LibertiesAfterPlay(p Point, c Color) (libs, captures int) {
	clone := cb.Clone()
	captures = clone.Play(p, c)
	gid := clone.GroupOf[p]
	if gid == 0 {
		return 0, captures
	}
	return clone.group(gid).libCount, captures
}

// CapturesAfterPlay reports whether playing p as c captures any enemy stone.
func (cb *CFGBoard) CapturesAfterPlay(p Point, c Color) bool {
	for _, n := range Cardinal4(p) {
		ngid := cb.GroupOf[n]
		if ngid != 0 && cb.group(ngid).Color != c && cb.group(ngid).libCount == 1 {
			return true
		}
	}
	return false
}

// Safety grades returned by SafeToPlay.
const (
	Illegal = iota
	SelfAtari
	Safe
)

// SafeToPlay answers legality and safety in three grades without actually
// playing the move (spec §4.1): 0 illegal, 1 ends in atari (one liberty),
// 2 safe (at least two liberties). It may under-count liberties arising
// from future merges, but never claims Safe for a move that is actually
// illegal or ends in self-atari, and always detects multi-point captures.
func (cb *CFGBoard) SafeToPlay(p Point, c Color) (grade int, captures bool) {
	if !p.IsOnBoard() || cb.Colors[p] != Empty {
		return Illegal, false
	}

	emptyN := 0
	capturedStones := 0
	selfEscape := false

	for _, n := range Cardinal4(p) {
		ngid := cb.GroupOf[n]
		if ngid == 0 {
			emptyN++
			continue
		}
		ng := cb.group(ngid)
		if ng.Color == c {
			if ng.libCount > 1 {
				selfEscape = true
			}
			continue
		}
		if ng.libCount == 1 {
			captures = true
			capturedStones++ // n itself becomes a liberty once its group is removed
		}
	}

	guaranteed := emptyN + capturedStones
	switch {
	case guaranteed == 0 && !selfEscape:
		return Illegal, false
	case guaranteed >= 2:
		return Safe, captures
	default:
		return SelfAtari, captures
	}
}
