package board_test

// Exercises the liberty bitmap indirectly through CFGBoard, since
// libertyBitmap itself is unexported -- play sequences that grow, merge and
// clear liberties are the real contract under test.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullbound/matilda/pkg/board"
)

func TestLibertyCountSingleStone(t *testing.T) {
	zt := board.NewZobristTable(1)
	cb := board.NewCFGBoard(zt)

	p := board.NewPoint(4, 4)
	cb.Play(p, board.Black)

	g, ok := cb.Group(p)
	assert.True(t, ok)
	assert.Equal(t, 4, g.LibertyCount()) // center stone, all four sides open
}

func TestLibertyCountCornerStone(t *testing.T) {
	zt := board.NewZobristTable(1)
	cb := board.NewCFGBoard(zt)

	p := board.NewPoint(0, 0)
	cb.Play(p, board.Black)

	g, ok := cb.Group(p)
	assert.True(t, ok)
	assert.Equal(t, 2, g.LibertyCount())
}

func TestLibertyCountAfterMerge(t *testing.T) {
	zt := board.NewZobristTable(1)
	cb := board.NewCFGBoard(zt)

	a := board.NewPoint(4, 4)
	b := board.NewPoint(4, 5)
	cb.Play(a, board.Black)
	cb.Play(b, board.White) // white stone beside a takes away one of its liberties
	cb.Play(board.NewPoint(5, 4), board.Black)

	g, ok := cb.Group(a)
	assert.True(t, ok)
	assert.Equal(t, 2, g.Size())
	// a=(4,4) has libs (3,4),(4,3); b occupies (4,5) so it's not a liberty;
	// (5,4) now occupied too, but (5,4) contributes libs (6,4),(5,3),(5,5).
	assert.Equal(t, 5, g.LibertyCount())
}
