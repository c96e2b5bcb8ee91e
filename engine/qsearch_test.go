package engine

import (
	"testing"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// hangingQueenFEN has black's queen sitting on a square white's knight can take for
// free; quiescence search must find that capture even at qdepth 0, since captures
// aren't bounded by the qdepth budget.
const hangingQueenFEN = "4k3/8/8/3q4/8/2N5/8/4K3 w - - 0 1"

func TestQSearchFindsHangingCapture(t *testing.T) {
	s := newTestSearcher(DefaultOptions())
	pos := newTestPosition(hangingQueenFEN)

	eval := s.QSearch(pos, 0, 0, -Inf, Inf)
	if eval <= 0 {
		t.Errorf("expected quiescence to find the free queen capture and return a positive score, got %d", eval)
	}
}

// quietFEN has no captures available at all; quiescence search must fall back to the
// stand-pat evaluation rather than exploring anything.
const quietFEN = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"

func TestQSearchStandPatWithNoCaptures(t *testing.T) {
	s := newTestSearcher(DefaultOptions())
	pos := newTestPosition(quietFEN)

	eval := s.QSearch(pos, s.opts.QSearchDepth, 0, -Inf, Inf)
	standPat := ClassicalOracle{}.Evaluate(pos)
	if eval != standPat {
		t.Errorf("expected a position with no captures to return the stand-pat eval %d, got %d", standPat, eval)
	}
}

// deltaPruneFEN gives white a losing static position (a knight against a rook and a
// pawn), and the test sets alpha 1000 above the static eval, with
// one available capture (knight takes pawn) that's SEE-nonnegative but can't possibly
// close the gap back up to alpha, so delta pruning should skip searching it.
const deltaPruneFEN = "r3k3/8/8/4p3/8/3N4/8/4K3 w - - 0 1"

func TestQSearchDeltaPrunesHopelessCapture(t *testing.T) {
	s := newTestSearcher(DefaultOptions())
	pos := newTestPosition(deltaPruneFEN)

	standPat := ClassicalOracle{}.Evaluate(pos)
	alpha := standPat + EvalCp(1000)

	eval := s.QSearch(pos, 0, 0, alpha, Inf)
	if eval != standPat {
		t.Errorf("expected delta pruning to skip the hopeless capture and return stand-pat %d, got %d", standPat, eval)
	}
	if s.stats.QDeltaPrunes == 0 {
		t.Errorf("expected QDeltaPrunes to be incremented")
	}
}

func TestQSearchCheckEvasionFindsMate(t *testing.T) {
	s := newTestSearcher(DefaultOptions())
	pos := newTestPosition(backRankMateFEN)

	var save dragon.BoardSaveT
	legalMoves, _ := pos.board.GenerateLegalMoves2(false)
	var mateMove = NoMove
	for _, m := range legalMoves {
		if m.From() == 4 && m.To() == 60 {
			mateMove = m
			break
		}
	}
	if mateMove == NoMove {
		t.Fatal("expected Re1-e8 to be a legal move in the back-rank mate fixture")
	}

	pos.board.MakeMove(mateMove, &save)
	eval := s.QSearch(pos, s.opts.QSearchDepth, 1, -Inf, Inf)
	pos.board.Restore(&save)

	if eval != -Mate+1 {
		t.Errorf("expected quiescence to score the mated side at -Mate+1 = %d, got %d", -Mate+1, eval)
	}
}
