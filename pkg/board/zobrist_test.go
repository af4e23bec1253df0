package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullbound/matilda/pkg/board"
)

func TestZobristHashIncrementalMatchesBatch(t *testing.T) {
	zt := board.NewZobristTable(7)

	var colors [board.Total]board.Color
	h := zt.Hash(colors, board.Black)

	p1 := board.NewPoint(2, 2)
	p2 := board.NewPoint(3, 3)

	colors[p1] = board.Black
	h = zt.TogglePoint(h, p1, board.Black)
	colors[p2] = board.White
	h = zt.TogglePoint(h, p2, board.White)
	h = zt.ToggleTurn(h, board.Black)
	h = zt.ToggleTurn(h, board.White)

	assert.Equal(t, zt.Hash(colors, board.White), h)
}

func TestZobristTogglePointSelfInverse(t *testing.T) {
	zt := board.NewZobristTable(1)
	var h board.ZobristHash = 0x1234

	out := zt.TogglePoint(zt.TogglePoint(h, board.NewPoint(0, 0), board.Black), board.NewPoint(0, 0), board.Black)
	assert.Equal(t, h, out)
}

func TestZobristTablesAreSeedStable(t *testing.T) {
	a := board.NewZobristTable(42)
	b := board.NewZobristTable(42)

	var colors [board.Total]board.Color
	colors[board.NewPoint(4, 4)] = board.Black

	assert.Equal(t, a.Hash(colors, board.Black), b.Hash(colors, board.Black))
}

func TestZobristTablesDecorrelateAcrossSeeds(t *testing.T) {
	a := board.NewZobristTable(1)
	b := board.NewZobristTable(2)

	var colors [board.Total]board.Color
	colors[board.NewPoint(4, 4)] = board.Black

	assert.NotEqual(t, a.Hash(colors, board.Black), b.Hash(colors, board.Black))
}
