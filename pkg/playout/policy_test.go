package playout_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/playout"
)

func TestRunTerminatesOnEmptyBoard(t *testing.T) {
	zt := board.NewZobristTable(1)
	cb := board.NewCFGBoard(zt)
	rng := rand.New(rand.NewSource(1))

	score, amaf := playout.Run(rng, cb, board.Black, nil, playout.DefaultConfig())
	_ = score

	occupied := 0
	for _, c := range amaf {
		if c != board.Empty {
			occupied++
		}
	}
	assert.Greater(t, occupied, 0)
}

func TestRunNeverFillsOwnEye(t *testing.T) {
	zt := board.NewZobristTable(1)
	cb := board.NewCFGBoard(zt)

	p := board.NewPoint(4, 4)
	cb.Play(board.NewPoint(3, 4), board.Black)
	cb.Play(board.NewPoint(5, 4), board.Black)
	cb.Play(board.NewPoint(4, 3), board.Black)
	cb.Play(board.NewPoint(4, 5), board.Black)

	rng := rand.New(rand.NewSource(42))
	cache := playout.NewLegalityCache()
	legal, _, _ := cache.Query(cb, p, board.Black)
	assert.True(t, legal) // legal, but should never be *selected* by the policy

	_, _ = playout.Run(rng, cb, board.White, nil, playout.DefaultConfig())
	assert.Equal(t, board.Empty, cb.Colors[p], "black's own eye must never be filled: illegal for white, suppressed for black")
}

func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	zt := board.NewZobristTable(7)

	run := func(seed int64) board.Score {
		cb := board.NewCFGBoard(zt)
		rng := rand.New(rand.NewSource(seed))
		score, _ := playout.Run(rng, cb, board.Black, nil, playout.DefaultConfig())
		return score
	}

	assert.Equal(t, run(99), run(99))
}

func TestLegalityCacheInvalidatesOnPlay(t *testing.T) {
	zt := board.NewZobristTable(1)
	cb := board.NewCFGBoard(zt)
	cache := playout.NewLegalityCache()

	p := board.NewPoint(4, 4)
	legal, _, _ := cache.Query(cb, p, board.Black)
	assert.True(t, legal)

	cb.Play(p, board.Black)
	cache.Invalidate(p)
	legal, _, _ = cache.Query(cb, p, board.White)
	assert.False(t, legal, "occupied point must be illegal after invalidation and recompute")
}
