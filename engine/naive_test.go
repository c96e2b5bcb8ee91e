package engine

import (
	"testing"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// NaiveSearch has no pruning or TT, so it must agree exactly with a real Searcher on
// the same position and depth whenever the real search isn't allowed to diverge via a
// heuristic that trades exactness for speed — these fixtures stick to shallow depths
// on small, tactical-but-not-huge positions so both searches stay cheap.
func TestNaiveSearchAgreesWithNegaMaxOnMateInOne(t *testing.T) {
	pos := newTestPosition(backRankMateFEN)

	_, naiveEval := NaiveSearch(pos, ClassicalOracle{}, 3)

	s := newTestSearcher(DefaultOptions())
	pv := make([]dragon.Move, 3)
	negaEval := s.NegaMax(pos, 3, 0, -Inf, Inf, pv)

	if naiveEval != negaEval {
		t.Errorf("expected NaiveSearch and NegaMax to agree on the mate score, got naive=%d negamax=%d", naiveEval, negaEval)
	}
	if !IsMateScore(naiveEval) {
		t.Fatalf("expected NaiveSearch to also find the mate, got %d", naiveEval)
	}
}

// exactOptions turns off every heuristic that trades exactness for speed (futility,
// razoring, null-move, LMP, LMR, check/singular extension), leaving only TT and move
// ordering — neither of which can change the final minimax value, only how quickly
// it's reached — so the result is directly comparable to NaiveSearch's exhaustive
// fixed-depth walk.
func exactOptions() Options {
	opts := DefaultOptions()
	opts.UseFutility = false
	opts.UseReverseFutility = false
	opts.UseRazoring = false
	opts.UseNullMove = false
	opts.UseLMP = false
	opts.UseLMR = false
	opts.UseCheckExtension = false
	opts.UseSingularExt = false
	return opts
}

func TestNaiveSearchAgreesWithNegaMaxOnQuietPosition(t *testing.T) {
	pos := newTestPosition(pickerFEN)

	_, naiveEval := NaiveSearch(pos, ClassicalOracle{}, 2)

	s := newTestSearcher(exactOptions())
	negaEval := s.NegaMax(pos, 2, 0, -Inf, Inf, nil)

	if naiveEval != negaEval {
		t.Errorf("expected NaiveSearch and NegaMax to agree at depth 2, got naive=%d negamax=%d", naiveEval, negaEval)
	}
}
