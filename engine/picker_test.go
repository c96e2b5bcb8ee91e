package engine

import (
	"testing"

	dragon "github.com/Bubblyworld/dragontoothmg"
	"github.com/matryer/is"
)

// pickerFEN is a quiet middlegame position with a mix of captures and quiet moves
// available, so every stage of the picker has something to emit.
const pickerFEN = "r1bqkbnr/pp2pppp/2n5/2pp4/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 0 4"

func newTestPosition(fen string) *Position {
	board := dragon.ParseFen(fen)
	return NewPosition(&board)
}

func TestPickerEmitsEachLegalMoveExactlyOnce(t *testing.T) {
	is := is.New(t)
	pos := newTestPosition(pickerFEN)
	legalMoves, _ := pos.board.GenerateLegalMoves2(false)

	picker := NewPicker(pos, legalMoves, 0, NoMove, NoMove, NewNodeStack(), &PickerContext{})

	seen := make(map[dragon.Move]bool, len(legalMoves))
	count := 0
	for {
		move, stage := picker.Next()
		if move == NoMove && stage == stageDone {
			break
		}
		is.True(!seen[move])
		seen[move] = true
		count++
	}

	is.Equal(count, len(legalMoves))
	for _, m := range legalMoves {
		is.True(seen[m])
	}
}

func TestPickerEmitsPVAndTTMoveFirst(t *testing.T) {
	is := is.New(t)
	pos := newTestPosition(pickerFEN)
	legalMoves, _ := pos.board.GenerateLegalMoves2(false)
	is.True(len(legalMoves) >= 2)

	pv, tt := legalMoves[0], legalMoves[1]
	picker := NewPicker(pos, legalMoves, 0, pv, tt, NewNodeStack(), &PickerContext{})

	first, stage := picker.Next()
	is.Equal(first, pv)
	is.Equal(stage, stagePV)

	second, stage := picker.Next()
	is.Equal(second, tt)
	is.Equal(stage, stageTT)
}

func TestPickerGoodCapturesBeforeQuiets(t *testing.T) {
	pos := newTestPosition(pickerFEN)
	legalMoves, _ := pos.board.GenerateLegalMoves2(false)

	picker := NewPicker(pos, legalMoves, 0, NoMove, NoMove, NewNodeStack(), &PickerContext{})

	var stages []pickerStage
	for {
		move, stage := picker.Next()
		if move == NoMove && stage == stageDone {
			break
		}
		stages = append(stages, stage)
	}

	lastGoodCapture := -1
	firstQuiet := -1
	for i, s := range stages {
		if s == stageGoodCaptures {
			lastGoodCapture = i
		}
		if s == stageQuiets && firstQuiet == -1 {
			firstQuiet = i
		}
	}
	if lastGoodCapture != -1 && firstQuiet != -1 && lastGoodCapture > firstQuiet {
		t.Errorf("expected all good captures to precede all quiets, but a good capture appeared at index %d after a quiet at %d", lastGoodCapture, firstQuiet)
	}
}

func TestPickerHonoursKillerSlots(t *testing.T) {
	is := is.New(t)
	pos := newTestPosition(pickerFEN)
	legalMoves, _ := pos.board.GenerateLegalMoves2(false)

	var killers KillerTable
	var quiet dragon.Move
	for _, m := range legalMoves {
		if _, isCapture := pos.CapturedPiece(m); !isCapture {
			quiet = m
			break
		}
	}
	is.True(quiet != NoMove)
	killers.Add(quiet, 0)

	picker := NewPicker(pos, legalMoves, 0, NoMove, NoMove, NewNodeStack(), &PickerContext{Killers: &killers})

	var killerStage pickerStage = -1
	for {
		move, stage := picker.Next()
		if move == NoMove && stage == stageDone {
			break
		}
		if move == quiet {
			killerStage = stage
		}
	}
	is.Equal(killerStage, stageKiller)
}
