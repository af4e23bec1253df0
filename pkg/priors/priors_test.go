package priors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/priors"
)

func TestSeedProducesCandidatesOnEmptyBoard(t *testing.T) {
	zt := board.NewZobristTable(1)
	cb := board.NewCFGBoard(zt)

	candidates := priors.Seed(cb, board.Black, board.NoPoint, nil, priors.DefaultConfig())
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		assert.GreaterOrEqual(t, c.PriorVisits, c.PriorWins)
	}
}

func TestSeedSkipsSuicide(t *testing.T) {
	zt := board.NewZobristTable(1)
	cb := board.NewCFGBoard(zt)

	corner := board.NewPoint(0, 0)
	cb.Play(board.NewPoint(0, 1), board.Black)
	cb.Play(board.NewPoint(1, 0), board.Black)

	candidates := priors.Seed(cb, board.White, board.NoPoint, nil, priors.DefaultConfig())
	for _, c := range candidates {
		assert.NotEqual(t, corner, c.Move)
	}
}

func TestSeedRewardsProximityToLastPlay(t *testing.T) {
	zt := board.NewZobristTable(1)
	cb := board.NewCFGBoard(zt)

	last := board.NewPoint(4, 4)
	cb.Play(last, board.Black)

	candidates := priors.Seed(cb, board.White, last, nil, priors.DefaultConfig())

	var near, far *priors.Candidate
	for i := range candidates {
		c := &candidates[i]
		switch c.Move {
		case board.NewPoint(4, 5): // adjacent to last play
			near = c
		case board.NewPoint(0, 0): // far corner, excluded as an isolated first-line point
			far = c
		}
	}

	require.NotNil(t, near)
	assert.Nil(t, far, "isolated first-line point should be excluded as a candidate")
	assert.Greater(t, near.PriorVisits, 1.0)
}

func TestSeedAddsPassWhenFewCandidates(t *testing.T) {
	zt := board.NewZobristTable(1)
	var colors [board.Total]board.Color
	for p := board.Point(0); int(p) < board.Total; p++ {
		colors[p] = board.Black
	}
	// Leave a handful of empty points so only a few legal candidates remain.
	for _, c := range [][2]int{{4, 4}, {4, 5}, {5, 4}} {
		colors[board.NewPoint(c[0], c[1])] = board.Empty
	}
	b := board.NewBoard()
	b.Colors = colors
	cb := board.NewCFGBoardFrom(zt, b)

	candidates := priors.Seed(cb, board.Black, board.NoPoint, nil, priors.DefaultConfig())

	found := false
	for _, c := range candidates {
		if c.Move == board.Pass {
			found = true
		}
	}
	assert.True(t, found)
}
