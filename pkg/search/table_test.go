package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/search"
)

func TestLookupOrCreateReturnsSameNodeForSameKey(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 64)

	var colors [board.Total]board.Color
	n1, ok := tt.LookupOrCreate(ctx, board.Black, 42, colors, board.NoPoint, false, 1, false)
	require.True(t, ok)

	n2, ok := tt.LookupOrCreate(ctx, board.Black, 42, colors, board.NoPoint, false, 1, false)
	require.True(t, ok)

	assert.Same(t, n1, n2)
}

func TestLookupOrCreateDistinguishesColorTables(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 64)

	var colors [board.Total]board.Color
	black, _ := tt.LookupOrCreate(ctx, board.Black, 7, colors, board.NoPoint, false, 1, false)
	white, _ := tt.LookupOrCreate(ctx, board.White, 7, colors, board.NoPoint, false, 1, false)

	assert.NotSame(t, black, white)
}

func TestLookupOrCreateFailsAtCapacityMidDescent(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 2)

	var colors [board.Total]board.Color
	for i := 0; i < 4; i++ {
		colors[0] = board.Color(i % 2)
		if _, ok := tt.LookupOrCreate(ctx, board.Black, board.ZobristHash(i), colors, board.NoPoint, false, 1, false); !ok {
			assert.True(t, tt.Full())
			return
		}
	}
	t.Fatal("expected table to report capacity exhausted")
}

func TestLookupOrCreateAtRootAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 1)

	var colors [board.Total]board.Color
	_, ok := tt.LookupOrCreate(ctx, board.Black, 1, colors, board.NoPoint, false, 1, false)
	require.True(t, ok)
	// NewTable raises a budget below 2 to 2; this second node fills it.
	_, ok = tt.LookupOrCreate(ctx, board.Black, 3, colors, board.NoPoint, false, 1, false)
	require.True(t, ok)

	colors[0] = board.Black
	_, ok = tt.LookupOrCreate(ctx, board.Black, 2, colors, board.NoPoint, false, 1, true)
	assert.True(t, ok, "root lookups must succeed even beyond the node budget")
}

func TestPruneOutsideKeepsOnlyReachableNodes(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 64)

	var colors [board.Total]board.Color
	root, _ := tt.LookupOrCreate(ctx, board.Black, 1, colors, board.NoPoint, false, 1, true)
	colors[0] = board.Black
	_, _ = tt.LookupOrCreate(ctx, board.White, 2, colors, board.NoPoint, false, 1, false)

	before := tt.Used()
	tt.PruneOutside(root)
	after := tt.Used()

	assert.LessOrEqual(t, after, before)
}

func TestClearAllEmptiesTheTable(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 64)

	var colors [board.Total]board.Color
	_, _ = tt.LookupOrCreate(ctx, board.Black, 1, colors, board.NoPoint, false, 1, false)
	require.Greater(t, tt.Used(), 0.0)

	tt.ClearAll()
	assert.Equal(t, 0.0, tt.Used())
}
