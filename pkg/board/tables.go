package board

// Precomputed neighbor geometry, built once at package init. Mirrors the
// reference's board_constants tables (neighbors_side, neighbors_diag,
// out_neighbors4/8, border_*, distances_to_border) but as Go slices sized
// to the compile-time Size.

var (
	cardinal  [Total][]Point // up to 4, in N,S,W,E order, on-board only
	diagonal  [Total][]Point // up to 4, in NW,NE,SW,SE order, on-board only
	neighbors3x3 [Total][]Point // union of cardinal+diagonal, on-board only

	outN4 [Total]uint8 // off-board cardinal neighbor count
	outN8 [Total]uint8 // off-board 3x3-neighborhood neighbor count

	borderLeft, borderRight, borderTop, borderBottom [Total]bool

	distToBorder [Total]uint8
)

// offset8 enumerates the eight relative 3x3 directions in a fixed order used
// to index the Zobrist 3x3-hash contribution table.
var offset8 = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1}, // cardinal: N,S,W,E
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1}, // diagonal: NW,NE,SW,SE
}

func init() {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := NewPoint(row, col)

			borderTop[p] = row == 0
			borderBottom[p] = row == Size-1
			borderLeft[p] = col == 0
			borderRight[p] = col == Size-1

			d := row
			if v := Size - 1 - row; v < d {
				d = v
			}
			if v := col; v < d {
				d = v
			}
			if v := Size - 1 - col; v < d {
				d = v
			}
			distToBorder[p] = uint8(d)

			for i, off := range offset8 {
				n := NewPoint(row+off[0], col+off[1])
				if n == NoPoint {
					outN8[p]++
					if i < 4 {
						outN4[p]++
					}
					continue
				}
				neighbors3x3[p] = append(neighbors3x3[p], n)
				if i < 4 {
					cardinal[p] = append(cardinal[p], n)
				} else {
					diagonal[p] = append(diagonal[p], n)
				}
			}
		}
	}
}

// Cardinal4 returns the on-board cardinal (N,S,W,E) neighbors of p.
func Cardinal4(p Point) []Point { return cardinal[p] }

// Diagonal4 returns the on-board diagonal neighbors of p.
func Diagonal4(p Point) []Point { return diagonal[p] }

// Neighbors8 returns the on-board 3x3-neighborhood neighbors (cardinal+diagonal) of p.
func Neighbors8(p Point) []Point { return neighbors3x3[p] }

// OutOfBoard4 returns the number of off-board cardinal neighbors of p.
func OutOfBoard4(p Point) uint8 { return outN4[p] }

// OutOfBoard8 returns the number of off-board 3x3-neighborhood neighbors of p.
func OutOfBoard8(p Point) uint8 { return outN8[p] }

// DistanceToBorder returns the Chebyshev distance from p to the nearest edge.
func DistanceToBorder(p Point) uint8 { return distToBorder[p] }

func IsBorderLeft(p Point) bool   { return borderLeft[p] }
func IsBorderRight(p Point) bool  { return borderRight[p] }
func IsBorderTop(p Point) bool    { return borderTop[p] }
func IsBorderBottom(p Point) bool { return borderBottom[p] }

// offsetIndex returns the offset8 index of neighbor n relative to center p,
// or -1 if n is not one of p's eight 3x3 neighbors.
func offsetIndex(p, n Point) int {
	dr := n.Row() - p.Row()
	dc := n.Col() - p.Col()
	for i, off := range offset8 {
		if off[0] == dr && off[1] == dc {
			return i
		}
	}
	return -1
}
