// NaiveSearch is a deliberately unoptimised negamax, with no TT, no move ordering,
// no pruning of any kind — a ground truth the tests can check the real Searcher
// against on small/tactical positions, since any pruning bug that changes a best
// move or score will disagree with it while a legitimate speedup won't. Uses a single
// negamax form (rather than separate white-maximises/black-minimises branches) over
// dragontoothmg's MakeMove/Restore pair.

package engine

import dragon "github.com/Bubblyworld/dragontoothmg"

// NaiveSearch walks the full game tree to depth with no pruning, returning the best
// move and its score from pos's side to move.
func NaiveSearch(pos *Position, oracle Oracle, depth int) (dragon.Move, EvalCp) {
	return naiveSearch(pos, oracle, depth, 0)
}

func naiveSearch(pos *Position, oracle Oracle, depth, height int) (dragon.Move, EvalCp) {
	if depth <= 0 {
		return NoMove, oracle.Evaluate(pos)
	}

	legalMoves, _ := pos.board.GenerateLegalMoves2(false)
	if len(legalMoves) == 0 {
		return NoMove, mateScore(pos.InCheck(), height)
	}

	bestMove := NoMove
	bestEval := -Mate

	for _, move := range legalMoves {
		var boardSave dragon.BoardSaveT
		pos.board.MakeMove(move, &boardSave)
		_, childEval := naiveSearch(pos, oracle, depth-1, height+1)
		pos.board.Restore(&boardSave)

		eval := -childEval
		if eval > bestEval {
			bestEval, bestMove = eval, move
		}
	}

	return bestMove, bestEval
}
