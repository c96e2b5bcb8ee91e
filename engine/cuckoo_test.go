package engine

import (
	"testing"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

func testPieceSquareKey(color dragon.Color, piece dragon.Piece, sq uint8) uint64 {
	// A deterministic, non-trivial stand-in for dragontoothmg's zobrist table: the
	// real table's fidelity doesn't matter to the cuckoo table's own insert/lookup
	// logic, only that distinct (color, piece, sq) triples get well-mixed keys, so a
	// from/to delta depends on colour and piece as well as on the two squares.
	x := (uint64(color)*8+uint64(piece))*64 + uint64(sq) + 1
	x *= 0x9e3779b97f4a7c15
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func TestCuckooTableRoundTrip(t *testing.T) {
	ct := buildCuckooTable(testPieceSquareKey)

	from, to := uint8(10), uint8(26)
	delta := testPieceSquareKey(dragon.White, dragon.Rook, from) ^ testPieceSquareKey(dragon.White, dragon.Rook, to)

	mv, ok := ct.HasMoveFor(delta)
	if !ok {
		t.Fatal("expected a hit for a delta inserted by buildCuckooTable")
	}
	if mv.From() != from || mv.To() != to {
		t.Errorf("expected move %d->%d, got %d->%d", from, to, mv.From(), mv.To())
	}
}

func TestCuckooTableMissOnUnknownDelta(t *testing.T) {
	ct := buildCuckooTable(testPieceSquareKey)
	if _, ok := ct.HasMoveFor(0x1); ok {
		t.Fatal("expected a miss for a delta that was never inserted")
	}
}

func TestCuckooTableExcludesPawns(t *testing.T) {
	ct := buildCuckooTable(testPieceSquareKey)

	from, to := uint8(8), uint8(16)
	delta := testPieceSquareKey(dragon.White, dragon.Pawn, from) ^ testPieceSquareKey(dragon.White, dragon.Pawn, to)

	if _, ok := ct.HasMoveFor(delta); ok {
		t.Fatal("expected pawn moves to never be inserted into the cuckoo table")
	}
}

func TestRepetitionTableAddRemove(t *testing.T) {
	rt := make(RepetitionTable)

	if n := rt.Add(0x1); n != 1 {
		t.Errorf("expected first Add to return 1, got %d", n)
	}
	if n := rt.Add(0x1); n != 2 {
		t.Errorf("expected second Add to return 2, got %d", n)
	}
	if n := rt.Remove(0x1); n != 1 {
		t.Errorf("expected Remove to return 1, got %d", n)
	}
	rt.Remove(0x1)
	if _, ok := rt[0x1]; ok {
		t.Error("expected the key to be deleted once its count reaches zero")
	}
}
