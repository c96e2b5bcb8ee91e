// Structured logging via chained Debug()/Info() fields rather than fmt.Printf, so a
// caller can filter or redirect search progress without the engine package caring
// where it ends up.

package engine

import (
	"strings"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// formatPV renders a principal variation the way a UCI "info pv" line would, reusing
// dragontoothmg's own Move.String() so the log output matches whatever the engine
// would report over the wire.
func formatPV(pv []dragon.Move) string {
	moves := make([]string, 0, len(pv))
	for _, m := range pv {
		if m == NoMove {
			break
		}
		moves = append(moves, m.String())
	}
	return strings.Join(moves, " ")
}

// logSearchStart records the limits and thread count a search was asked to run under, at
// Debug level since it fires on every call.
func (e *Engine) logSearchStart(limits Limits) {
	e.log.Debug().
		Int("depth", limits.Depth).
		Uint64("nodes", limits.Nodes).
		Dur("moveTime", limits.MoveTime).
		Int("multiPV", limits.MultiPV).
		Int("threads", e.opts.Threads).
		Msg("search-start")
}

// logDepthComplete is the ProgressEvent sink installed by default when the caller
// hasn't set one of their own via SetProgressSink: one Info line per completed
// iterative-deepening depth, the structured equivalent of a UCI "info depth N pv ...".
func (e *Engine) logDepthComplete(ev ProgressEvent) {
	event := e.log.Info().
		Int("depth", ev.Depth).
		Uint64("nodes", ev.Nodes).
		Dur("time", ev.Time)
	if len(ev.Lines) > 0 {
		event = event.Int16("scoreCp", int16(ev.Lines[0].Score)).Str("pv", formatPV(ev.Lines[0].PV))
	}
	if len(ev.Lines) > 1 {
		for i, line := range ev.Lines[1:] {
			e.log.Debug().Int("depth", ev.Depth).Int("multiPvRank", i+2).
				Int16("scoreCp", int16(line.Score)).Str("pv", formatPV(line.PV)).
				Msg("search-multipv-line")
		}
	}
	event.Msg("search-depth-complete")
}

// logSearchEnd summarises the node counts and pruning stats Stats accumulates, at
// Debug level to keep Info-level output limited to per-depth lines.
func (e *Engine) logSearchEnd(result SearchResult) {
	e.log.Debug().
		Int("depth", result.Depth).
		Uint64("nodes", result.Stats.Nodes).
		Uint64("qnodes", result.Stats.QNodes).
		Uint64("ttHits", result.Stats.TTHits).
		Uint64("nullMoveCuts", result.Stats.NullMoveCuts).
		Uint64("betaCuts", result.Stats.BetaCuts).
		Bool("timedOut", result.TimedOut).
		Msg("search-end")
}
