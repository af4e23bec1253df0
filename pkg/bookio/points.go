// Package bookio loads the engine's small text-file collaborators: star
// point lists (.pts) and opening book lines (.ob/.spb), plus a bounded
// in-memory cache for book lookups. None of it is wired into search --
// spec.md scopes opening-book lookup out of the UCT core -- these are
// cmd/matilda-level conveniences, grounded on original_source/src/inc/pts_file.h
// and original_source/src/inc/opening_book.h.
package bookio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nullbound/matilda/pkg/board"
)

// Points lists the hoshi (star) points conventionally marked for a given
// board size, the set `pts_file.h` loads to decorate a text board render.
type Points struct {
	Size  int
	Hoshi []board.Point
}

// LoadPoints reads a .pts file: one line with the board size, then one
// alpha-num coordinate per remaining non-blank line.
//
//	9
//	C3
//	G3
//	C7
//	G7
//	E5
func LoadPoints(r io.Reader) (Points, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return Points{}, fmt.Errorf("empty points file")
	}
	size, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return Points{}, fmt.Errorf("invalid board size: %w", err)
	}

	var pts Points
	pts.Size = size
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := board.ParseCoord(line)
		if err != nil {
			return Points{}, fmt.Errorf("invalid coordinate %q: %w", line, err)
		}
		pts.Hoshi = append(pts.Hoshi, p)
	}
	if err := scanner.Err(); err != nil {
		return Points{}, fmt.Errorf("reading points file: %w", err)
	}
	return pts, nil
}

// IsHoshi reports whether p is one of the marked star points.
func (pts Points) IsHoshi(p board.Point) bool {
	for _, h := range pts.Hoshi {
		if h == p {
			return true
		}
	}
	return false
}
