package tactical

import "github.com/nullbound/matilda/pkg/board"

// IsEye reports whether p is an empty point whose four cardinal neighbors
// are own-color or off-board, with at most one off-color or off-board
// diagonal neighbor (zero if p sits on the edge). Grounded on the
// reference's analytic fallback in tactical.c's is_eye (the bit form of the
// same rule the reference otherwise memoizes in a 65536-entry table keyed
// by the 3x3 neighborhood -- the neighbor-count fields already make this
// O(1), so no such table is built here).
func IsEye(cb *board.CFGBoard, p board.Point, c board.Color) bool {
	if cb.Colors[p] != board.Empty {
		return false
	}
	out4 := board.OutOfBoard4(p)
	if out4 == 0 {
		return n4(cb, c, p) == 4 && n8(cb, c.Opponent(), p) < 2
	}
	return n4(cb, c, p)+out4 == 4 && n8(cb, c.Opponent(), p) == 0
}

// Is2PtEye detects the top-left point of a two-point eye shape (an empty
// pair solidly surrounded by one color). canForce reports whether the
// shape is attackable as a forcing move. Must be called on the top-left
// point of the pair or it reports false.
func Is2PtEye(cb *board.CFGBoard, p board.Point, c board.Color) (eye, canForce bool) {
	if cb.Colors[p] != board.Empty || oppN4(cb, c, p) > 0 {
		return false, false
	}
	out4 := board.OutOfBoard4(p)
	if n4(cb, c, p)+out4 != 3 {
		return false, false
	}

	strict := out4 > 0
	var m2 board.Point
	switch {
	case !board.IsBorderRight(p) && cb.Colors[right(p)] == board.Empty:
		m2 = right(p)
	case !board.IsBorderBottom(p) && cb.Colors[bottom(p)] == board.Empty:
		m2 = bottom(p)
	default:
		return false, false
	}

	out4m2 := board.OutOfBoard4(m2)
	strict = strict || out4m2 > 0
	if n4(cb, c, m2)+out4m2 != 3 {
		return false, false
	}

	out8, out8m2 := board.OutOfBoard8(p), board.OutOfBoard8(m2)
	if strict {
		if n8(cb, c, p)+out8 < 7 || n8(cb, c, m2)+out8m2 < 7 {
			return false, false
		}
		return true, false
	}

	nm1 := n8(cb, c, p) + out8
	nm2 := n8(cb, c, m2) + out8m2
	if nm1 < 6 || nm2 < 6 {
		return false, false
	}
	return true, nm1+nm2 == 12
}

// Is4PtEye detects the top-left point of a 2x2 empty block solidly
// surrounded by one color. Must be called on the top-left point of the
// block or it reports false.
func Is4PtEye(cb *board.CFGBoard, p board.Point, c board.Color) (eye, canForce bool) {
	if board.IsBorderRight(p) || board.IsBorderBottom(p) {
		return false, false
	}
	r, b, rb := right(p), bottom(p), bottomRight(p)
	if cb.Colors[r] != board.Empty || cb.Colors[b] != board.Empty || cb.Colors[rb] != board.Empty {
		return false, false
	}

	if board.OutOfBoard4(p) == 0 && board.OutOfBoard4(rb) == 0 {
		if n4(cb, c, p) != 2 || n4(cb, c, r) != 2 || n4(cb, c, b) != 2 || n4(cb, c, rb) != 2 {
			return false, false
		}
		sum := int(n8(cb, c, p)) + int(n8(cb, c, r)) + int(n8(cb, c, b)) + int(n8(cb, c, rb))
		if sum < 18 {
			return false, false
		}
		return true, sum == 18
	}

	if int(n8(cb, c, p))+int(board.OutOfBoard8(p)) != 5 {
		return false, false
	}
	if int(n8(cb, c, r))+int(board.OutOfBoard8(r)) != 5 {
		return false, false
	}
	if int(n8(cb, c, b))+int(board.OutOfBoard8(b)) != 5 {
		return false, false
	}
	if int(n8(cb, c, rb))+int(board.OutOfBoard8(rb)) != 5 {
		return false, false
	}
	return true, false
}
