package engine

import (
	"testing"

	dragon "github.com/Bubblyworld/dragontoothmg"
	"github.com/matryer/is"
)

func move(from, to uint8) dragon.Move {
	return dragon.Move(uint16(from) | uint16(to)<<6)
}

func TestHistoryGravityBoundedAndMonotonic(t *testing.T) {
	is := is.New(t)

	c := int32(0)
	for i := 0; i < 1000; i++ {
		c = historyGravity(c, historyBonus(10))
	}
	is.True(c > 0)
	is.True(c <= historyMax)

	positive := historyGravity(0, historyBonus(5))
	is.True(positive > 0)
	negative := historyGravity(0, historyMalus(5))
	is.True(negative < 0)
}

func TestButterflyHistoryUpdateScore(t *testing.T) {
	is := is.New(t)

	var h ButterflyHistory
	m := move(12, 28)

	is.Equal(h.Score(dragon.White, m), int32(0))
	h.Update(dragon.White, m, historyBonus(6))
	is.True(h.Score(dragon.White, m) > 0)
	is.Equal(h.Score(dragon.Black, m), int32(0))
}

func TestContinuationHistoryIndexedByPrevMove(t *testing.T) {
	is := is.New(t)

	var h ContinuationHistory
	m := move(12, 28)

	h.Update(dragon.Knight, 20, dragon.Pawn, m, historyBonus(4))
	is.True(h.Score(dragon.Knight, 20, dragon.Pawn, m) > 0)
	is.Equal(h.Score(dragon.Bishop, 20, dragon.Pawn, m), int32(0))
}

func TestCaptureHistoryIndexedByVictim(t *testing.T) {
	is := is.New(t)

	var h CaptureHistory
	m := move(12, 28)

	h.Update(dragon.Rook, dragon.Queen, m, historyBonus(8))
	is.True(h.Score(dragon.Rook, dragon.Queen, m) > 0)
	is.Equal(h.Score(dragon.Rook, dragon.Pawn, m), int32(0))
}
