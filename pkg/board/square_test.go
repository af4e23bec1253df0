package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbound/matilda/pkg/board"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in       string
		expected board.Point
	}{
		{"pass", board.Pass},
		{"PASS", board.Pass},
		{"A1", board.NewPoint(board.Size-1, 0)},
		{"a1", board.NewPoint(board.Size-1, 0)},
		{"J9", board.NewPoint(0, 8)}, // 'I' is skipped
		{"1 1", board.NewPoint(board.Size-1, 0)},
		{"9 1", board.NewPoint(board.Size-1, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := board.ParseCoord(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestParseCoordInvalid(t *testing.T) {
	for _, in := range []string{"", "Z1", "I5", "A99", "99"} {
		t.Run(in, func(t *testing.T) {
			_, err := board.ParseCoord(in)
			assert.Error(t, err)
		})
	}
}

func TestPointRoundTrip(t *testing.T) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			p := board.NewPoint(row, col)
			require.True(t, p.IsOnBoard())

			parsed, err := board.ParseCoord(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, parsed)
		}
	}
}

func TestPassAndNoPointNotOnBoard(t *testing.T) {
	assert.False(t, board.Pass.IsOnBoard())
	assert.False(t, board.NoPoint.IsOnBoard())
}
