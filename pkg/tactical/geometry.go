// Package tactical answers fixed-depth life-and-death questions over a CFG
// board: eye shape, nakade, ladders, and forced kill/save reading.
package tactical

import "github.com/nullbound/matilda/pkg/board"

func right(p board.Point) board.Point       { return board.NewPoint(p.Row(), p.Col()+1) }
func bottom(p board.Point) board.Point      { return board.NewPoint(p.Row()+1, p.Col()) }
func bottomRight(p board.Point) board.Point { return board.NewPoint(p.Row()+1, p.Col()+1) }

func n4(cb *board.CFGBoard, c board.Color, p board.Point) uint8 {
	if c == board.Black {
		return cb.BlackN4[p]
	}
	return cb.WhiteN4[p]
}

func n8(cb *board.CFGBoard, c board.Color, p board.Point) uint8 {
	if c == board.Black {
		return cb.BlackN8[p]
	}
	return cb.WhiteN8[p]
}

func oppN4(cb *board.CFGBoard, c board.Color, p board.Point) uint8 {
	return n4(cb, c.Opponent(), p)
}
