package engine

import (
	dragon "github.com/Bubblyworld/dragontoothmg"
)

// CounterMoveTable remembers, for each (side to move, piece, destination square) that
// most recently made the opponent play a quiet reply that caused a beta cut, which
// reply it was — the "counter-move heuristic" slots in between killers and plain
// quiet moves in the picker's staged ordering. Indexed by the move that provoked the
// reply, not by ply, so it generalises across positions the way the butterfly history
// tables in engine/history.go do.
type CounterMoveTable struct {
	table [2][dragon.NoPieces][64]dragon.Move
}

func (ct *CounterMoveTable) Update(sideToMove dragon.Color, provoking dragon.Move, provokingPiece dragon.Piece, reply dragon.Move) {
	if provoking == NoMove || reply == NoMove {
		return
	}
	ct.table[sideToMove][provokingPiece][provoking.To()] = reply
}

func (ct *CounterMoveTable) Get(sideToMove dragon.Color, provoking dragon.Move, provokingPiece dragon.Piece) dragon.Move {
	if provoking == NoMove {
		return NoMove
	}
	return ct.table[sideToMove][provokingPiece][provoking.To()]
}
