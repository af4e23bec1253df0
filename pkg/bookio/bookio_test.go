package bookio_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/bookio"
)

func TestLoadPointsParsesHoshi(t *testing.T) {
	src := "9\nC3\nG3\nC7\nG7\nE5\n"
	pts, err := bookio.LoadPoints(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 9, pts.Size)
	assert.Len(t, pts.Hoshi, 5)

	e5, err := board.ParseCoord("E5")
	require.NoError(t, err)
	assert.True(t, pts.IsHoshi(e5))

	other, err := board.ParseCoord("A1")
	require.NoError(t, err)
	assert.False(t, pts.IsHoshi(other))
}

func TestLoadPointsRejectsBadSize(t *testing.T) {
	_, err := bookio.LoadPoints(strings.NewReader("nine\nC3\n"))
	assert.Error(t, err)
}

func TestLoadBookFiltersBySize(t *testing.T) {
	src := "9 C3 G7 | E5\n13 D4 | K10\n"
	b, err := bookio.LoadBook(strings.NewReader(src), 9)
	require.NoError(t, err)

	c3, _ := board.ParseCoord("C3")
	g7, _ := board.ParseCoord("G7")
	e5, _ := board.ParseCoord("E5")

	reply, ok := b.Lookup([]board.Point{c3, g7})
	require.True(t, ok)
	assert.Equal(t, e5, reply)

	_, ok = b.Lookup([]board.Point{c3})
	assert.False(t, ok)
}

func TestLoadBookRejectsMissingSeparator(t *testing.T) {
	_, err := bookio.LoadBook(strings.NewReader("9 C3 G7\n"), 9)
	assert.Error(t, err)
}

func TestCacheLookupPopulatesFromBook(t *testing.T) {
	src := "9 C3 | E5\n"
	b, err := bookio.LoadBook(strings.NewReader(src), 9)
	require.NoError(t, err)

	cache, err := bookio.NewCache(16)
	require.NoError(t, err)
	defer cache.Close()

	c3, _ := board.ParseCoord("C3")
	reply, ok := cache.Lookup(context.Background(), b, "C3", []board.Point{c3})
	require.True(t, ok)

	e5, _ := board.ParseCoord("E5")
	assert.Equal(t, e5, reply)
}
