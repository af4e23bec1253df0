package bookio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nullbound/matilda/pkg/board"
)

// Book is a parsed opening-book line set: for an exact prefix of moves
// played from the empty board, the recommended reply. Grounded on
// original_source/src/inc/opening_book.h's one-rule-per-line format,
// "<board-size> <move...> | <reply>". Not wired into UCT descent -- spec.md
// scopes opening-book lookup out of the search core -- this is a pure
// parser plus exact-prefix lookup, consumed only by cmd/matilda before a
// search is launched.
type Book struct {
	size  int
	rules map[string]board.Point
}

// LoadBook reads a .ob/.spb file restricted to lines tagged with boardSize.
// Lines for other board sizes are skipped, not rejected, since a single
// book file may bundle rules for several sizes.
func LoadBook(r io.Reader, boardSize int) (*Book, error) {
	b := &Book{size: boardSize, rules: map[string]board.Point{}}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		before, after, ok := strings.Cut(line, "|")
		if !ok {
			return nil, fmt.Errorf("book line %d: missing '|' separator", lineNo)
		}

		fields := strings.Fields(before)
		if len(fields) < 1 {
			return nil, fmt.Errorf("book line %d: missing board size", lineNo)
		}
		size, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("book line %d: invalid board size %q: %w", lineNo, fields[0], err)
		}
		if size != boardSize {
			continue
		}

		moves := fields[1:]
		for _, m := range moves {
			if _, err := board.ParseCoord(m); err != nil {
				return nil, fmt.Errorf("book line %d: invalid move %q: %w", lineNo, m, err)
			}
		}

		replyField := strings.TrimSpace(after)
		reply, err := board.ParseCoord(replyField)
		if err != nil {
			return nil, fmt.Errorf("book line %d: invalid reply %q: %w", lineNo, replyField, err)
		}

		b.rules[prefixKey(moves)] = reply
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading opening book: %w", err)
	}
	return b, nil
}

// Lookup returns the recommended reply for an exact sequence of moves played
// so far, or ok=false if no rule matches.
func (b *Book) Lookup(moves []board.Point) (reply board.Point, ok bool) {
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	p, found := b.rules[prefixKey(strs)]
	return p, found
}

func prefixKey(moves []string) string {
	return strings.Join(moves, " ")
}
