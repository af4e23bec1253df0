package bookio

import (
	"context"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/seekerror/logw"

	"github.com/nullbound/matilda/pkg/board"
)

// Cache bounds the number of decoded book replies kept resident, per §C.1 of
// SPEC_FULL.md: book files can be large and lookup sits outside the hot
// path, so a simple LRU-ish bounded cache (unlike the transposition table's
// bucket/free-list design, which a cache's eviction policy would fight) is
// the right fit here. Backed by ristretto, the library hailam-chessplay's
// go.mod pulls in.
type Cache struct {
	inner *ristretto.Cache[string, board.Point]
}

// NewCache builds a cache holding up to maxEntries decoded replies.
func NewCache(maxEntries int64) (*Cache, error) {
	inner, err := ristretto.NewCache(&ristretto.Config[string, board.Point]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner}, nil
}

// Lookup consults the cache first, then book on a miss, populating the
// cache with the result when book has a reply. Misses are not cached: a
// key with no book rule is looked up in book again on every call.
func (c *Cache) Lookup(ctx context.Context, book *Book, key string, moves []board.Point) (board.Point, bool) {
	if p, ok := c.inner.Get(key); ok {
		return p, true
	}
	p, ok := book.Lookup(moves)
	if ok {
		c.inner.Set(key, p, 1)
		logw.Debugf(ctx, "Cached book reply for %v: %v", key, p)
	}
	return p, ok
}

// Close releases the cache's background goroutines.
func (c *Cache) Close() {
	c.inner.Close()
}
