package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/engine"
	"github.com/nullbound/matilda/pkg/pattern"
)

func newTestEngine(t *testing.T) (*engine.Engine, context.Context) {
	t.Helper()
	ctx := context.Background()

	cfg := engine.DefaultConfig()
	cfg.UCT.BatchSize = 16
	cfg.TableSize = 4096

	e := engine.New(ctx, "matilda-test", "test", pattern.NewStore(), engine.WithOptions(cfg))
	return e, ctx
}

func TestNewEngineStartsWithBlackToPlayOnAnEmptyBoard(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.Equal(t, board.Black, e.Turn())

	cb := e.Board()
	for _, c := range cb.Colors {
		assert.Equal(t, board.Empty, c)
	}
}

func TestMoveAppliesALegalPlay(t *testing.T) {
	e, ctx := newTestEngine(t)

	require.NoError(t, e.Move(ctx, "D4"))

	cb := e.Board()
	p, err := board.ParseCoord("D4")
	require.NoError(t, err)
	assert.Equal(t, board.Black, cb.Colors[p])
	assert.Equal(t, board.White, e.Turn())
}

func TestMoveRejectsAnOccupiedPoint(t *testing.T) {
	e, ctx := newTestEngine(t)

	require.NoError(t, e.Move(ctx, "D4"))
	assert.Error(t, e.Move(ctx, "D4"))
}

func TestMoveRejectsAMalformedCoordinate(t *testing.T) {
	e, ctx := newTestEngine(t)

	assert.Error(t, e.Move(ctx, "not-a-coordinate"))
}

func TestMovePassAlternatesTurnWithoutChangingTheBoard(t *testing.T) {
	e, ctx := newTestEngine(t)

	require.NoError(t, e.Move(ctx, "pass"))
	assert.Equal(t, board.White, e.Turn())

	cb := e.Board()
	for _, c := range cb.Colors {
		assert.Equal(t, board.Empty, c)
	}
}

func TestEvaluatePositionRecommendsAPlayOnAnEmptyBoard(t *testing.T) {
	e, ctx := newTestEngine(t)

	out, hasPlay, err := e.EvaluatePosition(ctx, 11)
	require.NoError(t, err)
	assert.True(t, hasPlay)

	tested := 0
	for _, v := range out.Tested {
		if v {
			tested++
		}
	}
	assert.Greater(t, tested, 0)
}

func TestHaltWithoutAnActiveSearchReturnsAnError(t *testing.T) {
	e, ctx := newTestEngine(t)

	assert.Error(t, e.Halt(ctx))
}

func TestResetReturnsToAnEmptyBoardWithBlackToPlay(t *testing.T) {
	e, ctx := newTestEngine(t)

	require.NoError(t, e.Move(ctx, "D4"))
	e.Reset(ctx)

	assert.Equal(t, board.Black, e.Turn())
	cb := e.Board()
	for _, c := range cb.Colors {
		assert.Equal(t, board.Empty, c)
	}
}
