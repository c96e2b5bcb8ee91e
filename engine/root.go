// Root driver: iterative deepening over engine/search.go's NegaMax, with aspiration
// windows around the previous iteration's score and simple multi-PV support.

package engine

import (
	"sort"
	"time"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// runIterativeDeepening drives one worker's search from depth 1 up to limits.Depth
// (or opts.SearchDepth), reporting a ProgressEvent after each completed depth when
// report is true — only the first worker in a Lazy-SMP pool reports, so multiple
// workers never emit duplicate progress lines for the same depth.
func runIterativeDeepening(s *Searcher, pos *Position, limits Limits, progress func(ProgressEvent), report bool) SearchResult {
	start := time.Now()

	multiPV := limits.MultiPV
	if multiPV < 1 {
		multiPV = 1
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > s.opts.SearchDepth {
		maxDepth = s.opts.SearchDepth
	}

	var result SearchResult
	var prevEval EvalCp

	for depth := 1; depth <= maxDepth; depth++ {
		if s.stop.Load() {
			result.TimedOut = true
			break
		}
		if limits.Nodes > 0 && s.stats.Nodes >= limits.Nodes {
			break
		}

		lines := searchRoot(s, pos, depth, multiPV, prevEval)
		if len(lines) == 0 {
			break
		}

		result.Lines = lines
		result.Depth = depth
		result.Stats = s.stats
		prevEval = lines[0].Score

		if progress != nil && report {
			progress(ProgressEvent{Depth: depth, Lines: lines, Nodes: s.stats.Nodes, Time: time.Since(start)})
		}

		if s.stop.Load() {
			result.TimedOut = true
			break
		}
		if IsMateScore(lines[0].Score) && MateDistance(lines[0].Score) <= depth {
			break
		}
	}

	return result
}

// searchRoot finds the best multiPV lines at depth by repeatedly running a root move
// loop that excludes moves already claimed by an earlier (better) line.
func searchRoot(s *Searcher, pos *Position, depth, multiPV int, prevEval EvalCp) []PVResult {
	legalMoves, _ := pos.board.GenerateLegalMoves2(false)
	if len(legalMoves) == 0 {
		return nil
	}

	excluded := make(map[dragon.Move]bool, multiPV)
	lines := make([]PVResult, 0, multiPV)

	for slot := 0; slot < multiPV && len(excluded) < len(legalMoves); slot++ {
		alpha, beta := -Inf, Inf
		if s.opts.UseAspirationWindow && slot == 0 && depth >= 5 {
			alpha = prevEval - s.opts.AspirationBase
			beta = prevEval + s.opts.AspirationBase
		}

		move, eval, pv := searchRootMoves(s, pos, legalMoves, excluded, depth, alpha, beta)
		if s.opts.UseAspirationWindow && slot == 0 && depth >= 5 && (eval <= alpha || eval >= beta) {
			// Aspiration window missed: the true score lies outside it, so fall
			// back to a full-width search rather than iterating window widths.
			move, eval, pv = searchRootMoves(s, pos, legalMoves, excluded, depth, -Inf, Inf)
		}

		if move == NoMove {
			break
		}
		lines = append(lines, PVResult{Score: eval, PV: pv})
		excluded[move] = true
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Score > lines[j].Score })
	return lines
}

func searchRootMoves(s *Searcher, pos *Position, legalMoves []dragon.Move, excluded map[dragon.Move]bool, depth int, alpha, beta EvalCp) (dragon.Move, EvalCp, []dragon.Move) {
	bestMove := NoMove
	bestEval := -Inf
	var bestPV []dragon.Move

	for _, move := range legalMoves {
		if excluded[move] {
			continue
		}

		var boardSave dragon.BoardSaveT
		pos.board.MakeMove(move, &boardSave)
		s.oracle.OnMoveApplied(pos, move, &boardSave)
		pv := make([]dragon.Move, depth)
		eval := -s.NegaMax(pos, depth-1, 1, -beta, -maxEval(alpha, bestEval), pv)
		s.oracle.OnMoveUndone(pos)
		pos.board.Restore(&boardSave)

		if eval > bestEval {
			bestEval, bestMove = eval, move
			bestPV = append([]dragon.Move{move}, pv...)
		}
		if s.stop.Load() {
			break
		}
	}

	return bestMove, bestEval, bestPV
}
