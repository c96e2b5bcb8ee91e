package engine

import dragon "github.com/Bubblyworld/dragontoothmg"

// singularMargin is how far below the TT move's score a reduced-depth,
// move-excluded search must stay for the TT move to be judged "singular" — the only
// move that doesn't lose badly — and therefore worth a one-ply extension.
const singularMargin = EvalCp(80)

// probeSingular runs a reduced-depth search with ttMove excluded from the move loop
// and reports whether every alternative falls more than singularMargin short of
// ttScore and ttScore is at least beta, in which case extending the main search by
// one ply when ttMove is finally played pays for itself by avoiding a shallow miss
// on a forced line.
func (s *Searcher) probeSingular(pos *Position, depth, height int, beta EvalCp, ttMove dragon.Move, ttScore EvalCp) bool {
	if ttMove == NoMove || depth < s.opts.SingularMinDepth {
		return false
	}

	singularBeta := ttScore - singularMargin
	singularDepth := (depth - 1) / 2

	legalMoves, _ := pos.board.GenerateLegalMoves2(false)
	picker := NewPicker(pos, legalMoves, height, NoMove, NoMove, s.nodes, s.pickerContext())

	for {
		move, _ := picker.Next()
		if move == NoMove {
			break
		}
		if move == ttMove {
			continue
		}

		var boardSave dragon.BoardSaveT
		pos.board.MakeMove(move, &boardSave)
		s.oracle.OnMoveApplied(pos, move, &boardSave)
		eval := -s.NegaMax(pos, singularDepth, height+1, -singularBeta-1, -singularBeta, nil)
		s.oracle.OnMoveUndone(pos)
		pos.board.Restore(&boardSave)

		if eval >= singularBeta {
			return false
		}
	}

	return beta <= singularBeta+singularMargin
}
