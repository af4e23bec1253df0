package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullbound/matilda/pkg/board"
)

func TestScoreString(t *testing.T) {
	tests := []struct {
		score    board.Score
		expected string
	}{
		{0, "0"},
		{57, "B+28.5"},
		{6, "B+3"},
		{-57, "W+28.5"},
		{-6, "W+3"},
		{1, "B+0.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.score.String())
	}
}

func TestKomiString(t *testing.T) {
	tests := []struct {
		komi     board.Score
		expected string
	}{
		{0, "0"},
		{15, "7.5"},
		{-15, "-7.5"},
		{4, "2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, board.KomiString(tt.komi))
	}
}

func TestAreaScoreEmptyBoardIsAllDame(t *testing.T) {
	var colors [board.Total]board.Color
	assert.Equal(t, board.Score(0), board.AreaScore(colors, 0))
}

func TestAreaScoreSurroundedTerritory(t *testing.T) {
	var colors [board.Total]board.Color
	// A single black stone surrounded entirely by empty points: with no
	// white anywhere on the board, every empty region borders black only,
	// so black owns the whole board.
	colors[board.NewPoint(4, 4)] = board.Black

	score := board.AreaScore(colors, 0)
	assert.Equal(t, board.Score(board.Total*2), score)
}

func TestAreaScoreSplitByWall(t *testing.T) {
	var colors [board.Total]board.Color
	for col := 0; col < board.Size; col++ {
		colors[board.NewPoint(4, col)] = board.Black
	}
	colors[board.NewPoint(board.Size-1, board.Size-1)] = board.White

	score := board.AreaScore(colors, 0)
	// Rows 0-3 plus the wall itself are black territory/stones; the bottom
	// region borders both black (the wall) and white, so it stays dame
	// except for the single white stone's own point.
	blackPoints := board.Size*4 + board.Size
	whitePoints := 1
	assert.Equal(t, board.Score(blackPoints*2-whitePoints*2), score)
}

func TestAreaScoreWithKomi(t *testing.T) {
	var colors [board.Total]board.Color
	colors[board.NewPoint(0, 0)] = board.Black
	colors[board.NewPoint(board.Size-1, board.Size-1)] = board.White

	withoutKomi := board.AreaScore(colors, 0)
	withKomi := board.AreaScore(colors, 15) // 7.5 komi, doubled
	assert.Equal(t, withoutKomi-15, withKomi)
}
