// External interface: the surface for driving a search from outside the package,
// independent of whatever protocol (UCI, a bot API, a benchmark harness) sits on top
// of it.

package engine

import (
	"context"
	"sync/atomic"
	"time"

	dragon "github.com/Bubblyworld/dragontoothmg"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Limits bounds one Search call: any zero field is simply not a limit.
type Limits struct {
	Depth    int
	Nodes    uint64
	MoveTime time.Duration
	MultiPV  int
}

// PVResult is one line of a (possibly multi-PV) search result.
type PVResult struct {
	Score EvalCp
	PV    []dragon.Move
}

// SearchResult is what Engine.Search returns once it stops, one way or another.
type SearchResult struct {
	Lines      []PVResult
	Depth      int
	Stats      Stats
	TimedOut   bool
}

// ProgressEvent is emitted once per completed iterative-deepening depth, the
// structured equivalent of a UCI "info" line, delivered to a caller-supplied sink
// rather than a hardwired stdout Printf so the protocol layer on top decides how to
// render it.
type ProgressEvent struct {
	Depth int
	Lines []PVResult
	Nodes uint64
	Time  time.Duration
}

// Engine is the package's external entry point: one Engine per game, reused across
// moves the way a UCI engine process is reused across a whole game's worth of
// "position"/"go" pairs.
type Engine struct {
	opts   Options
	tt     *Table
	oracle Oracle
	cuckoo *cuckooTable

	log      zerolog.Logger
	progress func(ProgressEvent)

	stop atomic.Bool
}

// NewEngine builds an Engine with default options, ready for Configure to tune.
func NewEngine(logger zerolog.Logger) *Engine {
	opts := DefaultOptions()
	e := &Engine{
		opts:   opts,
		tt:     NewTable(opts.HashMB),
		oracle: ClassicalOracle{},
		cuckoo: buildCuckooTable(zobristPieceSquareKey),
		log:    logger,
	}
	e.progress = e.logDepthComplete
	return e
}

// Configure walks the tunable registry (engine/config.go) applying name->value
// overrides; unknown names are ignored rather than erroring, the way a UCI engine
// tolerates a "setoption" naming an option it doesn't recognise.
func (e *Engine) Configure(overrides map[string]int) {
	for _, p := range registerTunables(&e.opts) {
		if val, ok := overrides[p.Descr]; ok {
			if val < p.Min {
				val = p.Min
			}
			if val > p.Max {
				val = p.Max
			}
			p.Set(val)
		}
	}
	if e.opts.HashMB > 0 {
		e.tt = NewTable(e.opts.HashMB)
	}
}

// SetOracle swaps in a different evaluator, e.g. a real NNUE-backed implementation.
func (e *Engine) SetOracle(o Oracle) { e.oracle = o }

// SetProgressSink installs the callback Search reports ProgressEvents to.
func (e *Engine) SetProgressSink(fn func(ProgressEvent)) { e.progress = fn }

// NewGame resets the persistent state between games: the TT and its generation
// counter. The Engine keeps no game history of its own; Search takes the position
// history as an argument on every call.
func (e *Engine) NewGame() {
	e.tt.Clear()
}

// Stop cooperatively cancels an in-flight Search; workers notice within
// stopPollInterval nodes.
func (e *Engine) Stop() { e.stop.Store(true) }

// Search runs iterative deepening from pos out to limits, driving one or more
// workers (runWorkers' Lazy-SMP pool when opts.Threads > 1) and returning once
// the deepest completed iteration is interrupted by ctx, limits, or Stop().
func (e *Engine) Search(ctx context.Context, pos *Position, history RepetitionTable, limits Limits) SearchResult {
	e.stop.Store(false)
	e.tt.NewGeneration()
	e.logSearchStart(limits)

	if result, drawn := rootDrawResult(e.opts, pos, history); drawn {
		e.logSearchEnd(result)
		return result
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if limits.MoveTime > 0 {
		var timeCancel context.CancelFunc
		ctx, timeCancel = context.WithTimeout(ctx, limits.MoveTime)
		defer timeCancel()
	}

	go func() {
		<-ctx.Done()
		e.stop.Store(true)
	}()

	return e.runWorkers(pos, history, limits)
}

// runWorkers drives opts.Threads-1 helper workers (Lazy-SMP: same TT, independent
// move-ordering tables and node stacks) alongside the main iterative-deepening
// driver in engine/root.go, fanned out with an errgroup the way a bounded worker
// pool normally is.
func (e *Engine) runWorkers(pos *Position, history RepetitionTable, limits Limits) SearchResult {
	threads := e.opts.Threads
	if threads < 1 {
		threads = 1
	}

	var g errgroup.Group
	results := make([]SearchResult, threads)

	for w := 0; w < threads; w++ {
		w := w
		g.Go(func() error {
			searcher := NewSearcher(e.opts, e.tt, e.oracle, e.cuckoo, &e.stop)
			for k, v := range history {
				searcher.repetition[k] = v
			}
			board := *pos.board
			workerPos := NewPosition(&board)
			results[w] = runIterativeDeepening(searcher, workerPos, limits, e.progress, w == 0)
			return nil
		})
	}
	_ = g.Wait()

	result := results[0]
	for _, r := range results[1:] {
		result.Stats.Add(&r.Stats)
	}
	e.logSearchEnd(result)
	return result
}

// zobristPieceSquareKey derives the per-(color,piece,square) zobrist key the cuckoo
// table needs straight from dragontoothmg's own zobrist key table, so the two hash
// schemes never drift apart.
func zobristPieceSquareKey(color dragon.Color, piece dragon.Piece, sq uint8) uint64 {
	return dragon.Zobrist.Pieces[color][piece][sq]
}
