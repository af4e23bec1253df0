// matilda is a 9x9 Go (Weiqi) engine built around UCT/RAVE Monte Carlo
// tree search over a Common Fate Graph board.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/seekerror/logw"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/bookio"
	"github.com/nullbound/matilda/pkg/engine"
	"github.com/nullbound/matilda/pkg/pattern"
	"github.com/nullbound/matilda/pkg/search"
)

var (
	budget   = flag.Duration("budget", 200*time.Millisecond, "Per-move search time budget")
	table    = flag.Int("table", 1<<20, "Transposition table node budget")
	seed     = flag.Int64("seed", 0, "Zobrist/search RNG seed (zero is the reproducible default)")
	selfPlay = flag.Bool("selfplay", false, "Play a full game against itself and print the final board")
	points   = flag.String("points", "", "Path to a .pts hoshi/handicap point file to mark star points")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: matilda [options]

MATILDA is a 9x9 Go/Weiqi engine driven by UCT/RAVE Monte Carlo tree search
over an incrementally maintained Common Fate Graph board. With -selfplay it
plays a full game against itself; otherwise it reads one coordinate move per
line from stdin (e.g. "D4", "3 4", or "pass") and answers with its own move.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	store := pattern.NewStore()
	hoshi := loadPoints(ctx)

	cfg := engine.DefaultConfig()
	cfg.TableSize = *table

	e := engine.New(ctx, "MATILDA", "nullbound", store, engine.WithZobrist(*seed), engine.WithOptions(cfg))
	logw.Infof(ctx, "%v by %v ready (budget=%v, table=%v)", e.Name(), e.Author(), *budget, *table)

	if *selfPlay {
		runSelfPlay(ctx, e, hoshi)
		return
	}
	runInteractive(ctx, e, hoshi)
}

func loadPoints(ctx context.Context) bookio.Points {
	if *points == "" {
		return bookio.Points{}
	}
	f, err := os.Open(*points)
	if err != nil {
		logw.Warningf(ctx, "Could not open points file %v: %v", *points, err)
		return bookio.Points{}
	}
	defer f.Close()

	pts, err := bookio.LoadPoints(f)
	if err != nil {
		logw.Warningf(ctx, "Could not parse points file %v: %v", *points, err)
		return bookio.Points{}
	}
	return pts
}

// runSelfPlay drives the engine smoke-test scenario (spec §8 scenario 6):
// play moves for both sides until two consecutive passes or resignation,
// then print the final board and area score.
func runSelfPlay(ctx context.Context, e *engine.Engine, hoshi bookio.Points) {
	passes := 0
	for ply := 0; ply < board.Total*3 && passes < 2; ply++ {
		turn := e.Turn()

		deadline, cancel := context.WithTimeout(ctx, *budget)
		out, hasPlay, err := e.EvaluatePosition(deadline, *seed+int64(ply))
		cancel()
		if err != nil {
			logw.Errorf(ctx, "Search failed: %v", err)
			return
		}
		if !hasPlay {
			logw.Infof(ctx, "%v resigns", turn)
			break
		}

		coord, quality := bestMove(out)
		if err := e.Move(ctx, coord); err != nil {
			logw.Errorf(ctx, "Engine proposed an illegal move %v: %v", coord, err)
			return
		}
		if coord == "pass" {
			passes++
		} else {
			passes = 0
		}
		logw.Infof(ctx, "%v plays %v (q=%.3f)", turn, coord, quality)
	}

	cb := e.Board()
	fmt.Print(renderBoard(cb, hoshi))
	fmt.Printf("Result: %v\n", board.AreaScore(cb.Colors, e.Config().Playout.Komi))
}

// runInteractive reads one coordinate per line from stdin and answers each
// with a search-selected move, printing the board after every ply.
func runInteractive(ctx context.Context, e *engine.Engine, hoshi bookio.Points) {
	in := engine.ReadStdinLines(ctx)
	out := make(chan string, 1)
	go engine.WriteStdoutLines(ctx, out)
	defer close(out)

	out <- renderBoard(e.Board(), hoshi)

	for line := range in {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := e.Move(ctx, line); err != nil {
			out <- fmt.Sprintf("error: %v", err)
			continue
		}

		deadline, cancel := context.WithTimeout(ctx, *budget)
		outBoard, hasPlay, err := e.EvaluatePosition(deadline, *seed)
		cancel()
		if err != nil {
			out <- fmt.Sprintf("error: %v", err)
			continue
		}
		if !hasPlay {
			out <- fmt.Sprintf("%v resigns", e.Turn())
			continue
		}

		reply, quality := bestMove(outBoard)
		if err := e.Move(ctx, reply); err != nil {
			out <- fmt.Sprintf("error: %v", err)
			continue
		}
		out <- fmt.Sprintf("= %v (q=%.3f)", reply, quality)
		out <- renderBoard(e.Board(), hoshi)
	}
}

// bestMove picks the highest-quality move out of an OutBoard, formatted as
// a coordinate string EvaluatePosition/Move both accept ("pass" included).
func bestMove(out search.OutBoard) (string, float64) {
	coord, quality := "pass", out.Pass
	for p := board.Point(0); int(p) < board.Total; p++ {
		if out.Tested[p] && out.Quality[p] > quality {
			coord, quality = p.String(), out.Quality[p]
		}
	}
	return coord, quality
}

func renderBoard(cb *board.CFGBoard, hoshi bookio.Points) string {
	var sb strings.Builder
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			p := board.NewPoint(row, col)
			switch cb.Colors[p] {
			case board.Black:
				sb.WriteByte('X')
			case board.White:
				sb.WriteByte('O')
			default:
				if hoshi.IsHoshi(p) {
					sb.WriteByte('+')
				} else {
					sb.WriteByte('.')
				}
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
