package engine

import (
	"math/bits"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// Position wraps a dragontoothmg board with the extra queries the search needs that
// the move-generator doesn't expose directly: static exchange evaluation and a cheap
// "is this move a capture" test. It holds only the board; it carries no accumulator
// or other incremental evaluation state.
type Position struct {
	board *dragon.Board
}

// NewPosition wraps an existing board. The caller retains ownership of board; Position
// never copies it except via MakeMove's BoardSaveT restore path.
func NewPosition(board *dragon.Board) *Position {
	return &Position{board: board}
}

func (p *Position) Board() *dragon.Board { return p.board }

func (p *Position) Hash() uint64 { return p.board.Hash() }

func (p *Position) SideToMove() dragon.Color {
	if p.board.Wtomove {
		return dragon.White
	}
	return dragon.Black
}

func (p *Position) InCheck() bool { return p.board.OurKingInCheck() }

func (p *Position) HalfMoveClock() int { return int(p.board.Halfmoveclock) }

// PieceAt returns the piece occupying sq, or (dragon.Nothing, false) if empty.
func (p *Position) PieceAt(sq uint8) (dragon.Piece, bool) {
	piece := p.board.PieceAt(sq)
	return piece, piece != dragon.Nothing
}

// ColorAt returns the colour of the piece at sq; only meaningful when a prior PieceAt
// call reported ok for the same square, since an empty square belongs to neither side's
// bitboard.
func (p *Position) ColorAt(sq uint8) dragon.Color {
	if p.board.Bbs[dragon.White][dragon.All]&(uint64(1)<<sq) != 0 {
		return dragon.White
	}
	return dragon.Black
}

// IsCapture reports whether applying move to p's current position would capture a
// piece — en-passant included, since en-passant's victim is a pawn like any other
// capture's.
func (p *Position) IsCapture(move dragon.Move) bool {
	to := move.To()
	if _, ok := p.PieceAt(to); ok {
		return true
	}
	return p.isEnPassantCapture(move)
}

func (p *Position) isEnPassantCapture(move dragon.Move) bool {
	from := move.From()
	to := move.To()
	piece, ok := p.PieceAt(from)
	if !ok || piece != dragon.Pawn {
		return false
	}
	return to == p.board.Enpassant && p.board.Enpassant != 0
}

// CapturedPiece returns the piece type a move captures and whether it was a capture
// at all; used by the picker's capture classification (engine/picker.go) and capture
// history updates. The picker orders captures by 64×SEE plus capture history; it
// applies no MVV-LVA term.
func (p *Position) CapturedPiece(move dragon.Move) (dragon.Piece, bool) {
	to := move.To()
	if piece, ok := p.PieceAt(to); ok {
		return piece, true
	}
	if p.isEnPassantCapture(move) {
		return dragon.Pawn, true
	}
	return dragon.Nothing, false
}

func (p *Position) occupied() uint64 {
	var occ uint64
	for piece := dragon.Pawn; piece <= dragon.King; piece++ {
		occ |= p.board.Bbs[dragon.White][piece] | p.board.Bbs[dragon.Black][piece]
	}
	return occ
}

// attackersTo returns the bitboard of every piece of colour attacker that attacks sq,
// given the occupancy occ (passed explicitly so SEE can shrink it as pieces are
// removed from the exchange without mutating the real board).
func (p *Position) attackersTo(sq uint8, attacker dragon.Color, occ uint64) uint64 {
	bbs := &p.board.Bbs[attacker]
	var attackers uint64

	attackers |= dragon.KnightMovesBitboard(sq) & bbs[dragon.Knight]
	attackers |= dragon.CalculateBishopMoveBitboard(sq, occ) & (bbs[dragon.Bishop] | bbs[dragon.Queen])
	attackers |= dragon.CalculateRookMoveBitboard(sq, occ) & (bbs[dragon.Rook] | bbs[dragon.Queen])
	attackers |= dragon.KingMovesBitboard(sq) & bbs[dragon.King]

	// Pawn attackers: a pawn of `attacker`'s colour threatens sq iff sq lies in that
	// pawn's capture scope, i.e. the reverse of computing sq's own attack squares.
	sqBit := uint64(1) << sq
	if attacker == dragon.White {
		attackers |= BPawnAttacks(sqBit) & bbs[dragon.Pawn]
	} else {
		attackers |= WPawnAttacks(sqBit) & bbs[dragon.Pawn]
	}

	return attackers
}

func leastValuableAttacker(attackers uint64, bbs *[dragon.NoPieces]uint64) (sq uint8, piece dragon.Piece, ok bool) {
	for piece = dragon.Pawn; piece <= dragon.King; piece++ {
		bb := attackers & bbs[piece]
		if bb != 0 {
			return uint8(bits.TrailingZeros64(bb)), piece, true
		}
	}
	return 0, dragon.Nothing, false
}

// See runs static exchange evaluation for move and returns the net material gain (in
// centipawns, positive favours the mover) of playing out the full capture sequence on
// the destination square. Grounded on the classic swap-off algorithm, built on
// dragontoothmg's own blocker-aware sliding-attack bitboards rather than a hand-rolled
// direction/distance table.
func (p *Position) See(move dragon.Move) int {
	to := move.To()
	from := move.From()

	victim, hasVictim := p.CapturedPiece(move)
	mover, _ := p.PieceAt(from)

	gain := make([]int, 0, 32)
	var gained int
	if hasVictim {
		gained = int(seeVal[victim])
	}
	gain = append(gain, gained)

	occ := p.occupied()
	occ &^= uint64(1) << from
	if p.isEnPassantCapture(move) {
		// the captured pawn sits behind `to`, not on it
		epVictimSq := to
		if p.SideToMove() == dragon.White {
			epVictimSq -= 8
		} else {
			epVictimSq += 8
		}
		occ &^= uint64(1) << epVictimSq
	}

	attacker := 1 - p.SideToMove()
	sideBbs := [2]*[dragon.NoPieces]uint64{&p.board.Bbs[dragon.White], &p.board.Bbs[dragon.Black]}
	lastVal := int(seeVal[mover])

	for {
		attackers := p.attackersTo(to, attacker, occ)
		attackers &= occ
		sq, piece, ok := leastValuableAttacker(attackers, sideBbs[attacker])
		if !ok {
			break
		}
		gained = lastVal - gain[len(gain)-1]
		gain = append(gain, gained)
		occ &^= uint64(1) << sq
		lastVal = int(seeVal[piece])
		attacker = 1 - attacker
	}

	// Fold the exchange from the far end back: each side may stop swapping whenever
	// continuing would lose material, i.e. minimax over the running totals.
	for i := len(gain) - 1; i > 0; i-- {
		if -gain[i] < gain[i-1] {
			gain[i-1] = -gain[i]
		}
	}
	return gain[0]
}

var seeVal = [dragon.NoPieces]int16{0, pawnVal, knightVal, bishopVal, rookVal, queenVal, 20000}
