// Package pattern implements the compiled 3x3 move-suggestion dictionary:
// hand-picked neighborhood shapes, each carrying an optional weight, looked
// up in O(1) against the 8 points surrounding a candidate move.
package pattern

import "github.com/nullbound/matilda/pkg/board"

// Cell is the state of one of the 8 points around a candidate move, relative
// to the color on move.
type Cell uint16

const (
	CellEmpty Cell = iota
	CellOwn
	CellOpponent
	CellOffBoard
)

func onBoard(row, col int) bool {
	return row >= 0 && row < board.Size && col >= 0 && col < board.Size
}

// Code3x3 encodes the 8-neighborhood of p, relative to color, into a 16-bit
// value (2 bits per ring position: empty/own/opponent/off-board). This is a
// canonical encoding, deliberately separate from CFGBoard.Hash3x3 -- that
// field is a random Zobrist-style contribution sum (see pkg/board's zobrist
// entry in DESIGN.md) and is unsuited as a table key; pattern lookup needs a
// deterministic, collision-free code, so it is recomputed directly here.
func Code3x3(cb *board.CFGBoard, p board.Point, color board.Color) uint16 {
	row, col := p.Row(), p.Col()
	var code uint16
	for i, off := range []struct{ dr, dc int }{
		{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1},
	} {
		r, c := row+off.dr, col+off.dc
		var cell Cell
		switch {
		case !onBoard(r, c):
			cell = CellOffBoard
		default:
			switch n := board.NewPoint(r, c); cb.Colors[n] {
			case board.Empty:
				cell = CellEmpty
			case color:
				cell = CellOwn
			default:
				cell = CellOpponent
			}
		}
		code |= uint16(cell) << (2 * uint(i))
	}
	return code
}

// Store is a compiled pattern dictionary: one table per stone color, each
// mapping a 16-bit neighborhood code (always relative to that color being
// "own", per Code3x3) to its weight. A Go map is used as the chained hash
// table the format calls for; patterns are already expanded (symmetry and
// color swap) at load time, so lookup is a single O(1) map access per
// candidate move.
type Store struct {
	black, white map[uint16]uint16
}

// NewStore builds an empty pattern store.
func NewStore() *Store {
	return &Store{black: map[uint16]uint16{}, white: map[uint16]uint16{}}
}

// Add registers one already-oriented code, encoded relative to color, with
// weight w. Loaders call this once per symmetry/color-swap variant produced
// from a source pattern.
func (s *Store) Add(code uint16, color board.Color, weight uint16) {
	if color == board.Black {
		s.black[code] = weight
	} else {
		s.white[code] = weight
	}
}

// Find returns the weight registered for a position's 8-neighborhood code
// as seen by color, or 0 if the shape was never loaded.
func (s *Store) Find(cb *board.CFGBoard, p board.Point, color board.Color) uint16 {
	code := Code3x3(cb, p, color)
	if color == board.Black {
		return s.black[code]
	}
	return s.white[code]
}

// Len reports how many distinct codes are registered across both tables,
// mostly useful for load-time logging.
func (s *Store) Len() int {
	return len(s.black) + len(s.white)
}
