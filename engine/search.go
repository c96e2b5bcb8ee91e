// Main search: iterative-deepening principal-variation negamax over alpha-beta, with
// null-move, razoring, futility, LMR/LMP, and check/singular extensions, backed by
// the bucketed lock-free TT (engine/tt.go) and the staged move picker
// (engine/picker.go).

package engine

import (
	"sync/atomic"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// stopPollInterval is how many nodes a worker visits between polling its stop flag:
// frequent enough that a Stop() call lands within a few thousand nodes, rare enough
// that the atomic load never shows up in profiles.
const stopPollInterval = 1024

// Searcher holds everything one search worker needs: the shared, lock-free TT, this
// worker's own move-ordering tables and node stack (never shared across workers,
// unlike the TT), and the stop flag every worker polls cooperatively.
type Searcher struct {
	opts   Options
	tt     *Table
	oracle Oracle

	nodes       *NodeStack
	killers     KillerTable
	counterMove CounterMoveTable
	history     ButterflyHistory
	contHist    [len(contHistOffsets)]ContinuationHistory
	capHist     CaptureHistory
	repetition  RepetitionTable
	cuckoo      *cuckooTable

	stats     Stats
	stop      *atomic.Bool
	nodeCount uint64
}

func NewSearcher(opts Options, tt *Table, oracle Oracle, cuckoo *cuckooTable, stop *atomic.Bool) *Searcher {
	return &Searcher{
		opts:       opts,
		tt:         tt,
		oracle:     oracle,
		nodes:      NewNodeStack(),
		repetition: make(RepetitionTable),
		cuckoo:     cuckoo,
		stop:       stop,
	}
}

func (s *Searcher) timedOut() bool {
	s.nodeCount++
	if s.nodeCount&(stopPollInterval-1) != 0 {
		return false
	}
	return s.stop.Load()
}

func (s *Searcher) pickerContext() *PickerContext {
	ctx := &PickerContext{
		Killers:     &s.killers,
		CounterMove: &s.counterMove,
		History:     &s.history,
		CapHist:     &s.capHist,
	}
	for i := range s.contHist {
		ctx.ContHist[i] = &s.contHist[i]
	}
	return ctx
}

// updateContHist applies delta to every continuation-history slot whose ancestor
// offset actually exists from height (the root and its first few plies don't have
// ancestors at offset 3 or 5 yet).
func (s *Searcher) updateContHist(height int, piece dragon.Piece, move dragon.Move, delta int32) {
	for i, offset := range contHistOffsets {
		anc := s.nodes.Ancestor(height, offset)
		if anc == nil || anc.Piece == dragon.Nothing {
			continue
		}
		s.contHist[i].Update(anc.Piece, anc.Move.To(), piece, move, delta)
	}
}

// NegaMax returns the best score attainable from pos via alpha-beta negamax, writing
// the principal variation into pvLine when it is non-nil (the zero-window searches of
// later moves, null-move searches and singular probes pass an explicit nil rather
// than a shared scratch slice every caller must remember not to trust).
func (s *Searcher) NegaMax(pos *Position, depth, height int, alpha, beta EvalCp, pvLine []dragon.Move) EvalCp {
	if s.timedOut() {
		return alpha
	}

	// Height guard: check/singular extensions can keep childDepth from shrinking
	// across a long forcing line, and SearchDepth is configurable well past MaxPly,
	// so nothing upstream actually bounds height. Falling back to a static eval here
	// rather than recursing any further is what keeps NodeStack/KillerTable indexing
	// (and the mate-distance arithmetic below) safe on an adversarial or just very
	// deep forcing line.
	if height >= MaxPly-1 {
		return s.oracle.Evaluate(pos)
	}

	s.stats.Nodes++
	node := s.nodes.At(height)
	node.reset()

	// Fifty-move rule: a non-root node whose halfmove clock has already reached 100
	// is a draw regardless of material, checked ahead of mate-distance pruning and
	// every other pruning step so it can't be shadowed by a mate score computed from
	// the (irrelevant) position below it.
	if height > 0 && pos.HalfMoveClock() >= 100 {
		return Draw
	}

	// Mate-distance pruning: a mate any number of plies further away than one
	// already found can never improve on it, so narrow the window before doing any
	// other work.
	alpha = maxEval(alpha, -Mate+EvalCp(height))
	beta = minEval(beta, Mate-EvalCp(height-1))
	if alpha >= beta {
		return alpha
	}

	inCheck := pos.InCheck()
	node.InCheck = inCheck

	if depth <= 0 && !inCheck {
		return s.QSearch(pos, s.opts.QSearchDepth, height, alpha, beta)
	}

	isPV := beta-alpha > 1
	origAlpha, origBeta := alpha, beta

	zobrist := pos.Hash()
	node.Zobrist = zobrist

	if s.opts.UseUpcomingRepCheck && height > 0 && pos.HalfMoveClock() >= 3 {
		if s.upcomingRepetition(pos, height) {
			s.stats.UpcomingRepetitions++
			return Draw
		}
	}

	var ttMove dragon.Move
	var ttScoreForExt EvalCp
	var haveTTScore bool
	if s.opts.UseTT {
		hit := s.tt.Probe(zobrist)
		if hit.Found {
			s.stats.TTHits++
			ttMove = hit.Move
			ttScore := scoreFromTT(hit.Eval, height, pos.HalfMoveClock())
			ttScoreForExt, haveTTScore = ttScore, true
			// A stored bound only short-circuits the search in a non-PV node: cutting off
			// here in a PV node would return before pvLine is ever written, truncating the
			// reconstructed principal variation at this ply.
			if !isPV && int(hit.Depth) >= depth {
				switch hit.Bound {
				case TTBoundExact:
					s.stats.TTExactHits++
					return ttScore
				case TTBoundLower:
					if ttScore >= beta {
						s.stats.TTBetaCuts++
						return ttScore
					}
				case TTBoundUpper:
					if ttScore <= alpha {
						s.stats.TTAlphaCuts++
						return ttScore
					}
				}
			}
		}
	}

	staticEval := s.oracle.Evaluate(pos)
	node.StaticEval = staticEval

	// Reverse futility / static null-move pruning: at shallow depth, a static eval
	// already this far above beta is assumed to stay above beta once a move is
	// actually played, so the static eval is trusted outright instead of spending a
	// search to confirm it.
	if s.opts.UseReverseFutility && !isPV && !inCheck && depth <= s.opts.ReverseFutilityMaxDepth &&
		staticEval-s.opts.ReverseFutilityMarginPerPly*EvalCp(depth) >= beta {
		s.stats.ReverseFutilityPrunes++
		return staticEval
	}

	// Razoring: if we're hopelessly behind at shallow depth, drop straight to
	// quiescence rather than spending a full-depth search to confirm it.
	if s.opts.UseRazoring && !isPV && !inCheck && depth <= s.opts.RazorMaxDepth {
		margin := s.opts.RazorBase + s.opts.RazorMarginPerPly*EvalCp(depth)
		if staticEval+margin < alpha {
			s.stats.RazorPrunes++
			qEval := s.QSearch(pos, s.opts.QSearchDepth, height, alpha, beta)
			if qEval < alpha {
				return qEval
			}
		}
	}

	// Futility pruning at the parent level: a position whose static eval is already
	// far below alpha is unlikely to have a quiet move that rescues it, so quiet
	// moves get skipped in the move loop below rather than fully searched.
	futilityPrune := s.opts.UseFutility && !isPV && !inCheck && depth <= s.opts.FutilityMaxDepth &&
		staticEval+s.opts.FutilityMarginPerPly*EvalCp(depth) <= alpha

	// Null-move pruning: if passing the move entirely still doesn't let the
	// opponent catch up, this position is so good a real move will almost
	// certainly beat beta too.
	if s.opts.UseNullMove && !isPV && !inCheck && depth >= s.opts.NullMoveMinDepth && beta < Mate-EvalCp(MaxPly) {
		if hasNonPawnMaterial(pos) {
			unapply := pos.board.ApplyNullMove()
			s.stats.NullMoveTries++
			reduction := s.opts.NullMoveBaseR + depth/6
			nullEval := -s.NegaMax(pos, depth-1-reduction, height+1, -beta, -beta+1, nil)
			unapply()
			if !s.timedOut() && nullEval >= beta {
				s.stats.NullMoveCuts++
				return nullEval
			}
		}
	}

	legalMoves, _ := pos.board.GenerateLegalMoves2(false)
	if len(legalMoves) == 0 {
		return mateScore(inCheck, height)
	}

	var prevMove dragon.Move
	var prevPiece dragon.Piece
	if ancestor := s.nodes.Ancestor(height, 1); ancestor != nil {
		prevMove, prevPiece = ancestor.Move, ancestor.Piece
	}

	picker := NewPicker(pos, legalMoves, height, NoMove, ttMove, s.nodes, s.pickerContext())

	bestMove := NoMove
	bestEval := -Mate
	childPV := make([]dragon.Move, depth+1)
	moveIndex := 0
	quietsTried := 0

	for {
		move, stage := picker.Next()
		if move == NoMove && stage == stageDone {
			break
		}

		piece, _ := pos.PieceAt(move.From())
		_, isCapture := pos.CapturedPiece(move)

		// Futility/LMP: skip late, unpromising quiet moves outright rather than
		// spending even a reduced search on them.
		if !isCapture && moveIndex > 0 {
			if futilityPrune {
				s.stats.FutilityPrunes++
				continue
			}
			if s.opts.UseLMP && !isPV && depth <= 8 && quietsTried >= lmpThreshold(depth) {
				s.stats.LMPPrunes++
				continue
			}
		}

		singularExt := 0
		if s.opts.UseSingularExt && move == ttMove && haveTTScore && beta < Mate-EvalCp(MaxPly) {
			if s.probeSingular(pos, depth, height, beta, ttMove, ttScoreForExt) {
				s.stats.SingularExtensions++
				singularExt = 1
			}
		}

		var boardSave dragon.BoardSaveT
		pos.board.MakeMove(move, &boardSave)
		s.oracle.OnMoveApplied(pos, move, &boardSave)
		repetitions := 0
		if s.opts.UsePosRepetition {
			repetitions = s.repetition.Add(pos.Hash())
		}

		node.Move, node.Piece = move, piece

		var eval EvalCp
		if s.opts.UsePosRepetition && repetitions > 1 {
			s.stats.PosRepetitions++
			eval = Draw
		} else {
			childDepth := depth - 1 + singularExt
			if s.opts.UseCheckExtension && pos.InCheck() {
				s.stats.CheckExtensions++
				childDepth++
			}

			reduced := childDepth
			if s.opts.UseLMR && !isCapture && moveIndex > 0 && depth >= 3 && !inCheck {
				reduced = childDepth - lmrReduction(depth, moveIndex)
				if reduced < 0 {
					reduced = 0
				}
				s.stats.LMRReductions++
			}

			if moveIndex == 0 {
				eval = -s.NegaMax(pos, childDepth, height+1, -beta, -alpha, childPV)
			} else {
				eval = -s.NegaMax(pos, reduced, height+1, -alpha-1, -alpha, nil)
				if eval > alpha && reduced < childDepth {
					eval = -s.NegaMax(pos, childDepth, height+1, -alpha-1, -alpha, nil)
				}
				if eval > alpha && isPV {
					eval = -s.NegaMax(pos, childDepth, height+1, -beta, -alpha, childPV)
				}
			}
		}

		if s.opts.UsePosRepetition {
			s.repetition.Remove(pos.Hash())
		}
		s.oracle.OnMoveUndone(pos)
		pos.board.Restore(&boardSave)

		if !isCapture {
			quietsTried++
		}

		if depth > 1 && s.timedOut() {
			return alpha
		}

		if eval > bestEval {
			bestEval, bestMove = eval, move
		}
		if eval > alpha {
			alpha = eval
			if pvLine != nil {
				pvLine[0] = move
				copy(pvLine[1:], childPV)
			}
		}
		if alpha >= beta {
			s.stats.BetaCuts++
			if moveIndex == 0 {
				s.stats.FirstChildCuts++
			}
			if !isCapture {
				delta := historyBonus(depth)
				s.history.Update(pos.SideToMove(), move, delta)
				s.updateContHist(height, piece, move, delta)
				s.killers.Add(move, height)
				s.counterMove.Update(pos.SideToMove(), prevMove, prevPiece, move)
				s.stats.KillerCuts++
			} else {
				victim, _ := pos.CapturedPiece(move)
				s.capHist.Update(piece, victim, move, historyBonus(depth))
			}
			break
		} else if !isCapture {
			malus := historyMalus(depth)
			s.history.Update(pos.SideToMove(), move, malus)
			s.updateContHist(height, piece, move, malus)
		}

		moveIndex++
	}

	if s.opts.UseTT && !s.timedOut() {
		bound := TTBoundExact
		if bestEval >= origBeta {
			bound = TTBoundLower
		} else if bestEval <= origAlpha {
			bound = TTBoundUpper
		}
		s.tt.Store(zobrist, bestMove, scoreToTT(bestEval, height), uint8(depth), bound)
	}

	return bestEval
}

func maxEval(a, b EvalCp) EvalCp {
	if a > b {
		return a
	}
	return b
}

func minEval(a, b EvalCp) EvalCp {
	if a < b {
		return a
	}
	return b
}

// hasNonPawnMaterial guards null-move pruning against zugzwang positions, where
// passing really can be the opponent's best move.
func hasNonPawnMaterial(pos *Position) bool {
	var count int
	for color := dragon.White; color <= dragon.Black; color++ {
		for piece := dragon.Knight; piece <= dragon.Queen; piece++ {
			count += popcount(pos.board.Bbs[color][piece])
		}
	}
	return count >= 2
}

func popcount(bb uint64) int {
	count := 0
	for bb != 0 {
		count++
		bb &= bb - 1
	}
	return count
}

// lmrReduction scales the late-move reduction with both remaining depth and how far
// into the move list we are — later moves at shallower remaining depth get reduced
// more aggressively, the conventional logarithmic-ish shape.
func lmrReduction(depth, moveIndex int) int {
	r := 1
	if depth >= 6 && moveIndex >= 6 {
		r = 2
	}
	if depth >= 10 && moveIndex >= 12 {
		r = 3
	}
	return r
}

// lmpThreshold bounds how many quiet moves get a full look at shallow depths before
// late-move pruning skips the rest outright.
func lmpThreshold(depth int) int {
	return 3 + depth*depth
}
