package pattern

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/seekerror/logw"

	"github.com/nullbound/matilda/pkg/board"
)

// A .pat3 line lists the 8 ring symbols (N, NE, E, SE, S, SW, W, NW, the same
// order Code3x3 uses) authored relative to black, optionally followed by an
// integer weight:
//
//	X.O.?-x.  12
//
// Symbol set, grounded on pat3.h's SYMBOL_* names (the header gives names,
// not literal characters -- the original .pat3 file format is not part of
// the distilled source, so the concrete characters below are this loader's
// own choice):
//
//	.  empty          X  own (black) stone     O  opponent (white) stone
//	x  own-or-empty   o  opponent-or-empty     ?  any (wildcard)
//	-  off-board / edge
//
// Wildcard symbols expand into every concrete ring value they cover before
// the dihedral and color-swap expansion runs, so a single authored line can
// match many board shapes.
const (
	symEmpty        = '.'
	symOwn          = 'X'
	symOwnOrEmpty   = 'x'
	symOpp          = 'O'
	symOppOrEmpty   = 'o'
	symAny          = '?'
	symOffBoard     = '-'
	defaultWeight   = 1
	ringPositionLen = 8
)

// Load reads a .pat3 file from r and compiles every line into store,
// expanding dihedral symmetry, color swap and symbol wildcards.
func Load(ctx context.Context, store *Store, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo, compiled := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := compileLine(store, line); err != nil {
			return fmt.Errorf("pat3 line %d: %w", lineNo, err)
		}
		compiled++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading pat3: %w", err)
	}
	logw.Infof(ctx, "Loaded %v pat3 lines into %v codes", compiled, store.Len())
	return nil
}

func compileLine(store *Store, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("empty line")
	}
	shape := fields[0]
	if len(shape) != ringPositionLen {
		return fmt.Errorf("shape %q must have %d ring symbols, got %d", shape, ringPositionLen, len(shape))
	}

	weight := uint16(defaultWeight)
	if len(fields) > 1 {
		w, err := strconv.ParseUint(fields[1], 10, 16)
		if err != nil {
			return fmt.Errorf("invalid weight %q: %w", fields[1], err)
		}
		weight = uint16(w)
	}

	codes, err := expandWildcards(shape)
	if err != nil {
		return err
	}
	for _, code := range codes {
		for _, oriented := range Orientations(code) {
			store.Add(oriented, board.Black, weight)
			store.Add(SwapColor(oriented), board.White, weight)
		}
	}
	return nil
}

// expandWildcards turns an 8-character symbol string into every concrete
// ring code it denotes (a cartesian product over any wildcard positions).
func expandWildcards(shape string) ([]uint16, error) {
	options := make([][]Cell, ringPositionLen)
	for i, r := range shape {
		switch r {
		case symEmpty:
			options[i] = []Cell{CellEmpty}
		case symOwn:
			options[i] = []Cell{CellOwn}
		case symOpp:
			options[i] = []Cell{CellOpponent}
		case symOffBoard:
			options[i] = []Cell{CellOffBoard}
		case symOwnOrEmpty:
			options[i] = []Cell{CellOwn, CellEmpty}
		case symOppOrEmpty:
			options[i] = []Cell{CellOpponent, CellEmpty}
		case symAny:
			options[i] = []Cell{CellOwn, CellOpponent, CellEmpty}
		default:
			return nil, fmt.Errorf("unknown pat3 symbol %q", r)
		}
	}

	var codes []uint16
	var cells [8]Cell
	var walk func(pos int)
	walk = func(pos int) {
		if pos == ringPositionLen {
			codes = append(codes, encode(cells))
			return
		}
		for _, c := range options[pos] {
			cells[pos] = c
			walk(pos + 1)
		}
	}
	walk(0)
	return codes, nil
}
