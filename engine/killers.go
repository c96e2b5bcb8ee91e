// Killer-move table: per-ply, most-recently-seen quiet moves that caused a beta cut.

package engine

import (
	dragon "github.com/Bubblyworld/dragontoothmg"
)

// NKillersPerPly is fixed at two: two non-capture moves per ply, maintained as a
// two-slot most-recently-seen list, the conventional killer-move scheme rather than a
// deeper, depth-indexed variant.
const NKillersPerPly = 2

type KillerTable [MaxPly][NKillersPerPly]dragon.Move

// Add installs move as the most recent killer at height, pushing any existing
// killers down and dropping the oldest if move wasn't already present.
func (kt *KillerTable) Add(move dragon.Move, height int) {
	if move == NoMove {
		return
	}
	slots := &kt[height]
	if slots[0] == move {
		return
	}
	if slots[1] == move {
		slots[0], slots[1] = slots[1], slots[0]
		return
	}
	slots[1] = slots[0]
	slots[0] = move
}

// At returns the killer slots for height, most recent first.
func (kt *KillerTable) At(height int) *[NKillersPerPly]dragon.Move {
	return &kt[height]
}
