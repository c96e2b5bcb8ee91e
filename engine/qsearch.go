// Quiescence search: extends the main search past the nominal horizon along noisy
// lines (captures, promotions, check evasions) so the static evaluation is never
// taken at a position where an obvious recapture is pending. Shares the same
// Oracle/TT/history machinery as the main search rather than a wholly separate QTT.

package engine

import dragon "github.com/Bubblyworld/dragontoothmg"

// qsearchDeltaMargin is the slack added on top of a capture's own material gain
// before delta pruning trusts that the capture can't possibly raise standPat back
// above alpha — wide enough to absorb the positional swing a single capture can
// cause without a real search confirming it.
const qsearchDeltaMargin = EvalCp(200)

// QSearch returns the quiescent evaluation of pos, relative to the side to move.
// qdepth bounds how many more plies the non-capture moves the generator returns
// outside check may still be searched; captures and check evasions are searched
// regardless of qdepth, bounded only by running out of them and by MaxPly.
func (s *Searcher) QSearch(pos *Position, qdepth, height int, alpha, beta EvalCp) EvalCp {
	if s.timedOut() {
		return alpha
	}
	if height >= MaxPly-1 {
		return s.oracle.Evaluate(pos)
	}
	s.stats.Nodes++
	s.stats.QNodes++

	inCheck := pos.InCheck()

	var standPat EvalCp
	if !inCheck {
		standPat = s.oracle.Evaluate(pos)
		if standPat >= beta {
			s.stats.QStandPatCuts++
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	zobrist := pos.Hash()
	if s.opts.UseTT {
		hit := s.tt.Probe(zobrist)
		if hit.Found && int(hit.Depth) >= 0 {
			ttScore := scoreFromTT(hit.Eval, height, pos.HalfMoveClock())
			switch hit.Bound {
			case TTBoundExact:
				return ttScore
			case TTBoundLower:
				if ttScore >= beta {
					return ttScore
				}
			case TTBoundUpper:
				if ttScore <= alpha {
					return ttScore
				}
			}
		}
	}

	legalMoves, genInCheck := pos.board.GenerateLegalMoves2(!inCheck)
	inCheck = genInCheck

	if len(legalMoves) == 0 {
		if inCheck {
			return mateScore(true, height)
		}
		return standPat
	}

	bestEval := standPat
	if inCheck {
		bestEval = -Mate + EvalCp(height)
	}
	bestMove := NoMove

	picker := NewPicker(pos, legalMoves, height, NoMove, NoMove, s.nodes, s.pickerContext())

	for {
		move, _ := picker.Next()
		if move == NoMove {
			break
		}

		if !inCheck {
			if victim, isCapture := pos.CapturedPiece(move); isCapture {
				if pos.See(move) < 0 {
					continue
				}
				if standPat+pieceVals[victim]+qsearchDeltaMargin <= alpha {
					s.stats.QDeltaPrunes++
					continue
				}
			} else if qdepth <= 0 {
				continue
			}
		}

		var boardSave dragon.BoardSaveT
		pos.board.MakeMove(move, &boardSave)
		s.oracle.OnMoveApplied(pos, move, &boardSave)

		eval := -s.QSearch(pos, qdepth-1, height+1, -beta, -alpha)

		s.oracle.OnMoveUndone(pos)
		pos.board.Restore(&boardSave)

		if eval > bestEval {
			bestEval, bestMove = eval, move
		}
		if eval > alpha {
			alpha = eval
		}
		if alpha >= beta {
			break
		}
	}

	if s.opts.UseTT && !s.timedOut() {
		bound := TTBoundUpper
		if bestEval >= beta {
			bound = TTBoundLower
		}
		s.tt.Store(zobrist, bestMove, scoreToTT(bestEval, height), 0, bound)
	}

	return bestEval
}
