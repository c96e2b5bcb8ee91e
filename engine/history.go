// Move-ordering history tables: butterfly, continuation and capture history, all
// updated with the same "gravity" formula so a table's values stay bounded without
// ever needing an explicit decay pass.

package engine

import (
	dragon "github.com/Bubblyworld/dragontoothmg"
)

// historyMax bounds every history table's magnitude; the gravity formula below is
// self-limiting towards this bound as Δ shrinks relative to c.
const historyMax = 16384

// historyGravity applies c ← c + Δ − c·|Δ|/historyMax, the standard exponential-decay
// update that keeps a history score self-limiting towards ±historyMax without a
// separate aging pass: the further c already is from zero in Δ's direction, the more
// its own magnitude eats into the update.
func historyGravity(c int32, delta int32) int32 {
	if delta < 0 {
		return c + delta - c*(-delta)/historyMax
	}
	return c + delta - c*delta/historyMax
}

// ButterflyHistory scores quiet moves by (side to move, from, to), the classic
// "butterfly board" indexing that's the baseline quiet-move ordering signal.
type ButterflyHistory [2][64][64]int32

func (h *ButterflyHistory) Update(side dragon.Color, move dragon.Move, delta int32) {
	c := &h[side][move.From()][move.To()]
	*c = historyGravity(*c, delta)
}

func (h *ButterflyHistory) Score(side dragon.Color, move dragon.Move) int32 {
	return h[side][move.From()][move.To()]
}

// contHistOffsets are the ancestor-ply distances continuation history is kept at: the
// move immediately before this one, and the same side's two earlier replies. A search
// node keeps one ContinuationHistory table per offset, so a quiet move's ordering
// score reflects how it followed up each of those three plies independently rather
// than just the single immediate predecessor.
var contHistOffsets = [3]int{1, 3, 5}

// ContinuationHistory scores a quiet move by the (piece, to-square) of some earlier
// move, capturing "this reply tends to follow that move" patterns a plain butterfly
// table can't see. Which earlier move it's paired against depends on which of
// contHistOffsets' slots this table instance belongs to.
type ContinuationHistory [dragon.NoPieces][64][dragon.NoPieces][64]int32

func (h *ContinuationHistory) Update(prevPiece dragon.Piece, prevTo uint8, piece dragon.Piece, move dragon.Move, delta int32) {
	c := &h[prevPiece][prevTo][piece][move.To()]
	*c = historyGravity(*c, delta)
}

func (h *ContinuationHistory) Score(prevPiece dragon.Piece, prevTo uint8, piece dragon.Piece, move dragon.Move) int32 {
	return h[prevPiece][prevTo][piece][move.To()]
}

// CaptureHistory scores captures by (moving piece, captured piece, to-square); the
// picker adds this score to 64×SEE, so a large enough history value can reorder
// captures whose SEE differs, not only ties.
type CaptureHistory [dragon.NoPieces][dragon.NoPieces][64]int32

func (h *CaptureHistory) Update(piece, captured dragon.Piece, move dragon.Move, delta int32) {
	c := &h[piece][captured][move.To()]
	*c = historyGravity(*c, delta)
}

func (h *CaptureHistory) Score(piece, captured dragon.Piece, move dragon.Move) int32 {
	return h[piece][captured][move.To()]
}

// historyBonus/historyMalus scale the raw depth into a gravity delta, following the
// common "depth²-ish" shape: deeper cutoffs move a history entry further than
// shallow ones, but the gravity term already keeps any single update from blowing
// the table out of its bound.
func historyBonus(depth int) int32 {
	return int32(depth * depth)
}

func historyMalus(depth int) int32 {
	return -historyBonus(depth)
}
