package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbound/matilda/pkg/board"
)

func newCFG() *board.CFGBoard {
	return board.NewCFGBoard(board.NewZobristTable(3))
}

func TestPlaySingleStoneCapture(t *testing.T) {
	cb := newCFG()

	white := board.NewPoint(4, 5)
	cb.Play(board.NewPoint(3, 5), board.Black)
	cb.Play(white, board.White)
	cb.Play(board.NewPoint(5, 5), board.Black)
	cb.Play(board.NewPoint(4, 6), board.Black)

	captured := cb.Play(board.NewPoint(4, 4), board.Black)
	require.Equal(t, 1, captured)
	assert.Equal(t, board.Empty, cb.Colors[white])
	assert.Equal(t, board.NoPoint, cb.LastEaten) // (4,4) keeps four liberties: no ko

	_, ok := cb.Group(white)
	assert.False(t, ok)
}

func TestKoViolationClearsOnNextPlay(t *testing.T) {
	cb := newCFG()

	white := board.NewPoint(4, 5)
	cb.Play(board.NewPoint(3, 5), board.Black)
	cb.Play(white, board.White)
	cb.Play(board.NewPoint(5, 5), board.Black)
	cb.Play(board.NewPoint(4, 6), board.Black)
	cb.Play(board.NewPoint(3, 4), board.White) // white on three sides of (4,4) makes the capture a ko
	cb.Play(board.NewPoint(5, 4), board.White)
	cb.Play(board.NewPoint(4, 3), board.White)
	cb.Play(board.NewPoint(4, 4), board.Black)

	require.True(t, cb.KoViolation(white))
	assert.False(t, cb.CanPlay(white, board.White, true))

	cb.Play(board.NewPoint(0, 0), board.White) // any other play clears the ko
	assert.False(t, cb.KoViolation(white))
}

func TestMultiStoneCapture(t *testing.T) {
	cb := newCFG()

	// Two-stone white group at (4,4)-(4,5), surrounded on all sides by black.
	cb.Play(board.NewPoint(4, 4), board.White)
	cb.Play(board.NewPoint(3, 4), board.Black)
	cb.Play(board.NewPoint(4, 5), board.White)
	cb.Play(board.NewPoint(3, 5), board.Black)
	cb.Play(board.NewPoint(5, 4), board.Black)
	cb.Play(board.NewPoint(5, 5), board.Black)
	cb.Play(board.NewPoint(4, 3), board.Black)

	captured := cb.Play(board.NewPoint(4, 6), board.Black)
	require.Equal(t, 2, captured)
	assert.Equal(t, board.Empty, cb.Colors[board.NewPoint(4, 4)])
	assert.Equal(t, board.Empty, cb.Colors[board.NewPoint(4, 5)])
	assert.Equal(t, board.NoPoint, cb.LastEaten) // more than one stone, no ko
}

func TestSuicideIsIllegal(t *testing.T) {
	cb := newCFG()

	p := board.NewPoint(4, 4)
	cb.Play(board.NewPoint(3, 4), board.Black)
	cb.Play(board.NewPoint(5, 4), board.Black)
	cb.Play(board.NewPoint(4, 3), board.Black)
	cb.Play(board.NewPoint(4, 5), board.Black)

	assert.False(t, cb.CanPlay(p, board.White, true))

	grade, captures := cb.SafeToPlay(p, board.White)
	assert.Equal(t, board.Illegal, grade)
	assert.False(t, captures)
}

func TestSameColorGroupsMergeAndShareLiberties(t *testing.T) {
	cb := newCFG()

	a := board.NewPoint(4, 4)
	cb.Play(a, board.Black)
	cb.Play(board.NewPoint(4, 5), board.White)
	cb.Play(board.NewPoint(5, 4), board.Black)

	g, ok := cb.Group(a)
	require.True(t, ok)
	assert.Equal(t, 2, g.Size())
	assert.Equal(t, 5, g.LibertyCount())

	g2, ok := cb.Group(board.NewPoint(5, 4))
	require.True(t, ok)
	assert.Same(t, g, g2)
}

func TestSafeToPlaySelfAtari(t *testing.T) {
	cb := newCFG()

	p := board.NewPoint(4, 4)
	cb.Play(board.NewPoint(3, 4), board.White)
	cb.Play(board.NewPoint(4, 3), board.White)
	cb.Play(board.NewPoint(4, 5), board.White)
	// (5,4) left open: black playing p has exactly one liberty

	grade, captures := cb.SafeToPlay(p, board.Black)
	assert.Equal(t, board.SelfAtari, grade)
	assert.False(t, captures)
}

func TestSafeToPlaySafeOpenPoint(t *testing.T) {
	cb := newCFG()

	grade, captures := cb.SafeToPlay(board.NewPoint(4, 4), board.Black)
	assert.Equal(t, board.Safe, grade)
	assert.False(t, captures)
}

func TestLibertiesAfterPlayMatchesActualPlay(t *testing.T) {
	cb := newCFG()
	cb.Play(board.NewPoint(3, 4), board.White)
	cb.Play(board.NewPoint(4, 3), board.White)
	cb.Play(board.NewPoint(4, 5), board.White)

	p := board.NewPoint(4, 4)
	libs, captures := cb.LibertiesAfterPlay(p, board.Black)
	assert.Equal(t, 1, libs)
	assert.Equal(t, 0, captures)

	// Playing it for real must match.
	clone := cb.Clone()
	n := clone.Play(p, board.Black)
	g, ok := clone.Group(p)
	require.True(t, ok)
	assert.Equal(t, libs, g.LibertyCount())
	assert.Equal(t, captures, n)
}

func TestCloneIsIndependent(t *testing.T) {
	cb := newCFG()
	cb.Play(board.NewPoint(4, 4), board.Black)

	clone := cb.Clone()
	clone.Play(board.NewPoint(4, 5), board.White)

	assert.Equal(t, board.Empty, cb.Colors[board.NewPoint(4, 5)])
	assert.Equal(t, board.White, clone.Colors[board.NewPoint(4, 5)])
}

func TestNewCFGBoardFromSeedsGroupsAndLiberties(t *testing.T) {
	zt := board.NewZobristTable(5)
	b := board.NewBoard()
	b.Colors[board.NewPoint(4, 4)] = board.Black
	b.Colors[board.NewPoint(4, 5)] = board.Black
	b.Colors[board.NewPoint(4, 6)] = board.White

	cb := board.NewCFGBoardFrom(zt, b)

	g, ok := cb.Group(board.NewPoint(4, 4))
	require.True(t, ok)
	assert.Equal(t, 2, g.Size())
	assert.Equal(t, 5, g.LibertyCount())

	wg, ok := cb.Group(board.NewPoint(4, 6))
	require.True(t, ok)
	assert.Equal(t, 1, wg.Size())
	assert.Equal(t, 3, wg.LibertyCount())
}
