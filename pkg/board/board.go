package board

import "fmt"

// Board is the plain intersection-array representation (spec §3). It
// carries no tactical bookkeeping of its own -- CFGBoard is built from one
// and is what the search and playout engine actually operate on. Board
// values are cheap to copy.
type Board struct {
	Colors     [Total]Color
	LastPlayed Point // Pass or a Point; NoPoint before the first move
	LastEaten  Point // NoPoint unless the last play captured exactly one stone creating a ko
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{LastPlayed: NoPoint, LastEaten: NoPoint}
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) String() string {
	var s string
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			s += b.Colors[NewPoint(row, col)].String()
		}
		s += "\n"
	}
	return fmt.Sprintf("%slast=%v eaten=%v", s, b.LastPlayed, b.LastEaten)
}
