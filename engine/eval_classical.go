package engine

import (
	"math/bits"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// ClassicalOracle is a material+PST stand-in for an NNUE-style evaluator, which is
// otherwise treated as an opaque black box behind the Oracle contract — its internal
// SIMD-accelerated accumulator math is entirely that evaluator's own concern. It
// satisfies the Oracle contract but recomputes from scratch in Evaluate rather than
// tracking accumulator deltas, a deliberate simplification recorded in DESIGN.md:
// only the protocol shape is load-bearing for the search, not an oracle's internals.
//
// Piece values and piece-square tables are credited to Sunfish's tables, inverted to
// match dragontoothmg's square ordering.
type ClassicalOracle struct{}

const (
	pawnVal   = 100
	knightVal = 300
	bishopVal = 300
	rookVal   = 500
	queenVal  = 900
)

var pieceVals = [7]EvalCp{0, pawnVal, knightVal, bishopVal, rookVal, queenVal, 0}

var zeroPosVals = [64]int8{}

// Sunfish-derived tables (white's perspective; black uses the vertically-flipped copy).
var whitePawnPosVals = [64]int8{
	0, 0, 0, 0, 0, 0, 0, 0,
	-31, 8, -7, -37, -36, -14, 3, -31,
	-22, 9, 5, -11, -10, -2, 3, -19,
	-26, 3, 10, 9, 6, 1, 0, -23,
	-17, 16, -2, 15, 14, 0, 15, -13,
	7, 29, 21, 44, 40, 31, 44, 7,
	78, 83, 86, 73, 102, 82, 85, 90,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var whiteKnightPosVals = [64]int8{
	-74, -23, -26, -24, -19, -35, -22, -69,
	-23, -15, 2, 0, 2, 0, -23, -20,
	-18, 10, 13, 22, 18, 15, 11, -14,
	-1, 5, 31, 21, 22, 35, 2, 0,
	24, 24, 45, 37, 33, 41, 25, 17,
	10, 67, 1, 74, 73, 27, 62, -2,
	-3, -6, 100, -36, 4, 62, -4, -14,
	-66, -53, -75, -75, -10, -55, -58, -70,
}

var whiteBishopPosVals = [64]int8{
	-7, 2, -15, -12, -14, -15, -10, -10,
	19, 20, 11, 6, 7, 6, 20, 16,
	14, 25, 24, 15, 8, 25, 20, 15,
	13, 10, 17, 23, 17, 16, 0, 7,
	25, 17, 20, 34, 26, 25, 15, 10,
	-9, 39, -32, 41, 52, -10, 28, -14,
	-11, 20, 35, -42, -39, 31, 2, -22,
	-59, -78, -82, -76, -23, -107, -37, -50,
}

var whiteRookPosVals = [64]int8{
	-30, -24, -18, 5, -2, -18, -31, -32,
	-53, -38, -31, -26, -29, -43, -44, -53,
	-42, -28, -42, -25, -25, -35, -26, -46,
	-28, -35, -16, -21, -13, -29, -46, -30,
	0, 5, 16, 13, 18, -4, -9, -6,
	19, 35, 28, 33, 45, 27, 25, 15,
	55, 29, 56, 67, 55, 62, 34, 60,
	35, 29, 33, 4, 37, 33, 56, 50,
}

var whiteQueenPosVals = [64]int8{
	-39, -30, -31, -13, -31, -36, -34, -42,
	-36, -18, 0, -19, -15, -15, -21, -38,
	-30, -6, -13, -11, -16, -11, -16, -27,
	-14, -15, -2, -5, -1, -10, -20, -22,
	1, -16, 22, 17, 25, 20, -13, -6,
	-2, 43, 32, 60, 72, 63, 43, 2,
	14, 32, 60, -10, 20, 76, 57, 24,
	6, 1, -8, -104, 69, 24, 88, 26,
}

var whiteKingPosVals = [64]int8{
	17, 30, -3, -14, 6, -1, 40, 18,
	-4, 3, -14, -50, -57, -18, 13, 4,
	-47, -42, -43, -79, -64, -32, -29, -32,
	-55, -43, -52, -28, -51, -47, -8, -50,
	-55, 50, 11, -4, -19, 13, 0, -49,
	-62, 12, -57, 44, -67, 28, 37, -31,
	-32, 10, 55, 56, 56, 55, 10, 3,
	4, 54, 47, -99, -99, 60, 83, -62,
}

var whitePiecePosVals = [7]*[64]int8{
	&zeroPosVals, &whitePawnPosVals, &whiteKnightPosVals, &whiteBishopPosVals,
	&whiteRookPosVals, &whiteQueenPosVals, &whiteKingPosVals,
}

func flip(t *[64]int8) *[64]int8 {
	var out [64]int8
	for sq := 0; sq < 64; sq++ {
		out[sq] = t[sq^56] // vertical mirror: a1<->a8 etc.
	}
	return &out
}

var blackPiecePosVals = [7]*[64]int8{
	&zeroPosVals,
	flip(&whitePawnPosVals), flip(&whiteKnightPosVals), flip(&whiteBishopPosVals),
	flip(&whiteRookPosVals), flip(&whiteQueenPosVals), flip(&whiteKingPosVals),
}

// Evaluate computes a full-board static evaluation from scratch and returns it
// relative to the side to move, as Oracle requires.
func (ClassicalOracle) Evaluate(pos *Position) EvalCp {
	white := staticEvalForColor(pos.board, dragon.White, &whitePiecePosVals)
	black := staticEvalForColor(pos.board, dragon.Black, &blackPiecePosVals)
	eval := white - black
	if pos.board.Wtomove {
		return eval
	}
	return -eval
}

func (ClassicalOracle) OnMoveApplied(pos *Position, move dragon.Move, save *dragon.BoardSaveT) {}
func (ClassicalOracle) OnMoveUndone(pos *Position)                                             {}

func staticEvalForColor(board *dragon.Board, color dragon.Color, pst *[7]*[64]int8) EvalCp {
	var material EvalCp
	var positional EvalCp
	for piece := dragon.Pawn; piece <= dragon.Queen; piece++ {
		bb := board.Bbs[color][piece]
		material += pieceVals[piece] * EvalCp(bits.OnesCount64(bb))
		positional += pstSum(bb, pst[piece])
	}
	positional += pstSum(board.Bbs[color][dragon.King], pst[dragon.King])
	return material + positional
}

func pstSum(bb uint64, table *[64]int8) EvalCp {
	var eval EvalCp
	for bb != 0 {
		sq := bits.TrailingZeros64(bb)
		bb &= bb - 1
		eval += EvalCp(table[sq])
	}
	return eval
}
