package engine

import dragon "github.com/Bubblyworld/dragontoothmg"

// Oracle is the contract the search holds the evaluation function to. A real
// evaluator is expected to be an NNUE-style accumulator whose SIMD kernels and
// training path are entirely its own concern; the search only ever needs the three
// operations below. Evaluate must return centipawns relative to the side to move.
//
// OnMoveApplied/OnMoveUndone let an incremental oracle maintain per-node accumulator
// state across the search's make/unmake pairs without the search itself knowing
// anything about dirty pieces, king buckets, or accumulator stacks; a non-incremental
// oracle (ClassicalOracle below) is free to treat them as no-ops and recompute from
// scratch in Evaluate.
type Oracle interface {
	Evaluate(pos *Position) EvalCp
	OnMoveApplied(pos *Position, move dragon.Move, save *dragon.BoardSaveT)
	OnMoveUndone(pos *Position)
}

// DirtyPiece records one piece's board-level displacement for an incremental
// evaluator: a non-incremental oracle ignores this, but it's the shape every
// NNUE-style accumulator update needs (add-piece, remove-piece, or move-piece).
type DirtyPiece struct {
	Piece    dragon.Piece
	Color    dragon.Color
	From, To int8 // -1 means "no square" (piece appeared/vanished, e.g. capture or promotion)
}

// AccumulatorState is the shape of the incremental evaluation state an NNUE-style
// oracle refreshes on king moves ("king-bucket refresh") and updates cheaply
// everywhere else via dirty-piece deltas. Nothing in this package holds or passes
// one: Position carries only the board, the Oracle hooks receive the position, move
// and BoardSaveT, and no Evaluate result is cached.
type AccumulatorState struct {
	KingBucket [2]int8 // which king-bucket table each side's accumulator was computed against
	Dirty      []DirtyPiece
	Computed   bool
	Value      EvalCp // cached Evaluate() result for this node, once Computed
}
