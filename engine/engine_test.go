package engine

import (
	"context"
	"testing"

	dragon "github.com/Bubblyworld/dragontoothmg"
	"github.com/rs/zerolog"
)

func newTestEngine() *Engine {
	return NewEngine(zerolog.Nop())
}

// TestSearchShortCircuitsOnRootRepetitionDraw exercises scenario 6 from the engine's
// end-to-end contract: a position already pushed twice into the caller's history is
// a forced draw the instant the engine is asked to search it, independent of how
// winning the position looks materially.
func TestSearchShortCircuitsOnRootRepetitionDraw(t *testing.T) {
	e := newTestEngine()
	pos := newTestPosition(backRankMateFEN)

	history := make(RepetitionTable)
	history[pos.Hash()] = 2

	result := e.Search(context.Background(), pos, history, Limits{Depth: 4})
	if len(result.Lines) == 0 {
		t.Fatal("expected a root draw short-circuit to still report a playable line")
	}
	if result.Lines[0].Score != Draw {
		t.Errorf("expected a position already reached twice before to score Draw, got %d", result.Lines[0].Score)
	}
	if result.Depth != 0 {
		t.Errorf("expected the root draw short-circuit to skip iterative deepening entirely, got depth %d", result.Depth)
	}
}

// TestSearchShortCircuitsOnRootFiftyMoveDraw mirrors the same short-circuit for the
// fifty-move rule: reaching the halfmove-clock limit at the root is a draw before any
// move of the search proper is considered.
func TestSearchShortCircuitsOnRootFiftyMoveDraw(t *testing.T) {
	e := newTestEngine()
	pos := newTestPosition(fiftyMoveFEN)

	result := e.Search(context.Background(), pos, make(RepetitionTable), Limits{Depth: 4})
	if len(result.Lines) == 0 {
		t.Fatal("expected a root draw short-circuit to still report a playable line")
	}
	if result.Lines[0].Score != Draw {
		t.Errorf("expected halfmove clock 100 at the root to score Draw, got %d", result.Lines[0].Score)
	}
}

// TestSearchRunsNormallyWithoutRootDraw is the control: a perfectly ordinary position
// must still run iterative deepening rather than ever hitting the short-circuit.
func TestSearchRunsNormallyWithoutRootDraw(t *testing.T) {
	e := newTestEngine()
	pos := newTestPosition(dragon.Startpos)

	result := e.Search(context.Background(), pos, make(RepetitionTable), Limits{Depth: 2})
	if result.Depth == 0 {
		t.Error("expected a normal position to run at least one iterative-deepening depth")
	}
}
