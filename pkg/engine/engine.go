package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/nullbound/matilda/pkg/board"
	"github.com/nullbound/matilda/pkg/pattern"
	"github.com/nullbound/matilda/pkg/playout"
	"github.com/nullbound/matilda/pkg/priors"
	"github.com/nullbound/matilda/pkg/search"
)

var version = build.NewVersion(0, 1, 0)

// Config aggregates every tunable parameter across the priors, playout and
// UCT search layers into one plain named-field record, following the
// teacher's engine.Options (Design Note 9: a single struct rather than
// variadic name/type pairs).
type Config struct {
	Priors  priors.Config
	Playout playout.Config
	UCT     search.Config

	// TableSize is the transposition table's node budget, the Go analogue
	// of the teacher's Options.Hash (there: MB of hash table; here: a node
	// count, since Matilda's entries are variable-sized edge lists rather
	// than fixed-size transposition slots).
	TableSize int
}

func (c Config) String() string {
	return fmt.Sprintf("{table=%v, batch=%v}", c.TableSize, c.UCT.BatchSize)
}

// DefaultConfig returns the default tuning across all three layers.
func DefaultConfig() Config {
	return Config{
		Priors:    priors.DefaultConfig(),
		Playout:   playout.DefaultConfig(),
		UCT:       search.DefaultConfig(),
		TableSize: 1 << 20,
	}
}

// Engine encapsulates game-playing logic, search and evaluation for one
// game in progress, mirroring the teacher's pkg/engine.Engine shape
// (name/author/options/mutex-guarded board state) but built around
// Matilda's UCT searcher instead of alpha-beta.
type Engine struct {
	name, author string

	factory search.TranspositionTableFactory
	zt      *board.ZobristTable
	store   *pattern.Store
	seed    int64
	cfg     Config

	cb       *board.CFGBoard
	turn     board.Color
	tt       *search.Table
	searcher *search.Searcher
	root     *search.Node

	active *handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithTable configures the engine to use the given transposition table
// factory, mirroring the teacher's WithTable.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) {
		e.factory = factory
	}
}

// WithOptions sets the engine's tuning configuration.
func WithOptions(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithZobrist configures the engine to use the given random seed instead of
// the default seed of zero, mirroring the teacher's WithZobrist.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// New constructs an Engine with an empty board and Black to play.
func New(ctx context.Context, name, author string, store *pattern.Store, opts ...Option) *Engine {
	e := &Engine{
		name:    name,
		author:  author,
		factory: search.NewTable,
		store:   store,
		cfg:     DefaultConfig(),
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)

	e.Reset(ctx)

	logw.Infof(ctx, "Initialized engine: %v, config=%v", e.Name(), e.cfg)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

// Board returns a forked copy of the current position.
func (e *Engine) Board() *board.CFGBoard {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cb.Clone()
}

// Turn returns the color to play.
func (e *Engine) Turn() board.Color {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.turn
}

// Config returns the engine's current tuning configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cfg
}

// Reset resets the engine to an empty board with Black to play, per
// new_match_maintenance (spec §4.8): a fresh transposition table replaces
// the old one outright, rather than pruning it, since nothing from the
// previous game is reachable from an empty board anyway.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset, config=%v", e.cfg)

	e.haltSearchIfActive(ctx)

	e.cb = board.NewCFGBoard(e.zt)
	e.turn = board.Black
	e.tt = e.factory(ctx, e.cfg.TableSize)
	e.searcher = search.NewSearcher(e.zt, e.tt, e.store, e.cfg.Priors, e.cfg.Playout, e.cfg.UCT)
	e.root = nil

	logw.Infof(ctx, "New board: %v", e.cb)
}

// Move plays move for the color to play, usually an opponent move relayed
// from outside. move may be "pass" or any format board.ParseCoord accepts.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	p, err := board.ParseCoord(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltSearchIfActive(ctx)

	if p == board.Pass {
		e.cb.Pass()
	} else {
		if !e.cb.CanPlay(p, e.turn, true) {
			return fmt.Errorf("illegal move: %v", p)
		}
		e.cb.Play(p, e.turn)
	}
	e.turn = e.turn.Opponent()

	e.optTurnMaintenance(ctx)

	logw.Infof(ctx, "Move %v: %v", p, e.cb)
	return nil
}

// optTurnMaintenance retains only the subtree reachable from the position
// just played, releasing the rest of the previous turn's tree back to the
// table's free list (spec §4.8 opt_turn_maintenance). No-op until a search
// has actually built a root for the position being left.
func (e *Engine) optTurnMaintenance(ctx context.Context) {
	if e.root == nil {
		return
	}
	if edge, ok := findEdgeByPoint(e.root, e.cb.LastPlayed); ok && edge.Next != nil {
		e.tt.PruneOutside(edge.Next)
		logw.Debugf(ctx, "Pruned transposition table to subtree rooted at %v: used=%.3f", e.cb.LastPlayed, e.tt.Used())
	} else {
		e.tt.PruneOutside(nil)
	}
	e.root = nil
}

func findEdgeByPoint(root *search.Node, move board.Point) (*search.Edge, bool) {
	for _, e := range root.Edges {
		if e.Move == move {
			return e, true
		}
	}
	return nil, false
}

// EvaluatePosition runs the UCT search against the current position until
// ctx is done or Halt is called, returning the resulting per-point quality
// estimate and whether a play is recommended at all (false means resign,
// spec §6).
func (e *Engine) EvaluatePosition(ctx context.Context, seed int64) (search.OutBoard, bool, error) {
	e.mu.Lock()
	if e.active != nil {
		e.mu.Unlock()
		return search.OutBoard{}, false, fmt.Errorf("search already active")
	}
	cb, turn, searcher := e.cb.Clone(), e.turn, e.searcher
	active := newHandle()
	e.active = active
	e.mu.Unlock()

	logw.Infof(ctx, "EvaluatePosition %v to play on %v", turn, cb)

	root := searcher.Root(ctx, cb, turn)

	e.mu.Lock()
	e.root = root
	e.mu.Unlock()

	out, hasPlay := searcher.Evaluate(active.ctx(ctx), cb, turn, seed)
	active.markDone()

	e.mu.Lock()
	if e.active == active {
		e.active = nil
	}
	e.mu.Unlock()

	if e.tt.Full() {
		logw.Warningf(ctx, "Transposition table exhausted (used=%.3f): returning best move found so far", e.tt.Used())
	}
	logw.Infof(ctx, "EvaluatePosition done: hasPlay=%v pass=%.3f", hasPlay, out.Pass)
	return out, hasPlay, nil
}

// Halt halts the active search, if any. Idempotent, mirroring the
// teacher's Engine.Halt/haltSearchIfActive.
func (e *Engine) Halt(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.haltSearchIfActive(ctx) {
		return fmt.Errorf("no active search")
	}
	return nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) bool {
	if e.active == nil {
		return false
	}
	logw.Infof(ctx, "Halting active search")
	e.active.halt()
	e.active = nil
	return true
}

// handle lets the caller-visible Halt cancel an in-flight EvaluatePosition
// without the searcher itself knowing about cancellation, mirroring the
// teacher's searchctl.handle built on iox.AsyncCloser/contextx.WithQuitCancel.
type handle struct {
	quit   iox.AsyncCloser
	done   iox.AsyncCloser
	cancel context.CancelFunc
}

func newHandle() *handle {
	return &handle{quit: iox.NewAsyncCloser(), done: iox.NewAsyncCloser()}
}

func (h *handle) ctx(parent context.Context) context.Context {
	wctx, cancel := contextx.WithQuitCancel(parent, h.quit.Closed())
	h.cancel = cancel
	return wctx
}

func (h *handle) halt() {
	h.quit.Close()
	<-h.done.Closed()
}

func (h *handle) markDone() {
	h.cancel()
	h.done.Close()
}
