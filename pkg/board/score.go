package board

import "fmt"

// Score is a doubled integer: every full point is represented as 2, so a
// half point (an odd komi) stays exact without floating point (spec §4,
// mirroring the reference's "scores and komi are always doubled").
type Score int16

// AreaScore computes the Chinese-style (area) score: every stone on the
// board counts, plus every empty region bordered by exactly one color.
// Dead stones are not removed; callers resolve life and death (e.g. via
// playout-based final position estimation) before scoring.
func AreaScore(colors [Total]Color, komi Score) Score {
	final := colors
	explored := make([]bool, Total)

	for p := Point(0); int(p) < Total; p++ {
		if final[p] != Empty || explored[p] {
			continue
		}
		region, blackBorder, whiteBorder := floodEmptyRegion(colors, p, explored)
		if blackBorder == whiteBorder {
			continue // dame, or not yet fully surrounded by one color
		}
		owner := Black
		if whiteBorder {
			owner = White
		}
		for _, q := range region {
			final[q] = owner
		}
	}

	var r Score
	for p := Point(0); int(p) < Total; p++ {
		switch final[p] {
		case Black:
			r += 2
		case White:
			r -= 2
		}
	}
	return r - komi
}

func floodEmptyRegion(colors [Total]Color, start Point, explored []bool) (region []Point, blackBorder, whiteBorder bool) {
	stack := []Point{start}
	explored[start] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, p)

		for _, n := range Cardinal4(p) {
			switch colors[n] {
			case Black:
				blackBorder = true
			case White:
				whiteBorder = true
			default:
				if !explored[n] {
					explored[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return region, blackBorder, whiteBorder
}

// String renders a score the conventional way: "B+28.5", "W+3", or "0" for
// a draw.
func (s Score) String() string {
	switch {
	case s == 0:
		return "0"
	case s%2 != 0:
		if s > 0 {
			return fmt.Sprintf("B+%d.5", s/2)
		}
		return fmt.Sprintf("W+%d.5", (-s)/2)
	default:
		if s > 0 {
			return fmt.Sprintf("B+%d", s/2)
		}
		return fmt.Sprintf("W+%d", (-s)/2)
	}
}

// KomiString renders a doubled komi value as a signed number, without the
// B+/W+ prefix used for match scores.
func KomiString(komi Score) string {
	switch {
	case komi == 0:
		return "0"
	case komi%2 != 0:
		if komi > 0 {
			return fmt.Sprintf("%d.5", komi/2)
		}
		return fmt.Sprintf("-%d.5", (-komi)/2)
	default:
		if komi > 0 {
			return fmt.Sprintf("%d", komi/2)
		}
		return fmt.Sprintf("-%d", (-komi)/2)
	}
}
