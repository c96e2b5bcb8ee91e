// Repetition tracking: exact-repetition counting over the played game history, plus
// upcoming-repetition detection via cuckoo hashing so the search can spot a forced
// draw-by-repetition before it actually occurs on the board.

package engine

import dragon "github.com/Bubblyworld/dragontoothmg"

// RepetitionTable counts how many times each zobrist hash has been reached: the
// caller's game-history entries seeded in before the search, plus every position
// reached by a move made in NegaMax's move loop. Search-tree entries are removed again
// as the search unwinds; the seeded history entries stay for the whole search.
type RepetitionTable map[uint64]int

// Add records zobrist as reached and returns its new occurrence count.
func (rt RepetitionTable) Add(zobrist uint64) int {
	count := rt[zobrist] + 1
	rt[zobrist] = count
	return count
}

// Remove undoes one occurrence of zobrist, deleting the key once it hits zero so the
// table never retains entries for positions no longer on the current path.
func (rt RepetitionTable) Remove(zobrist uint64) int {
	count := rt[zobrist] - 1
	if count > 0 {
		rt[zobrist] = count
	} else {
		delete(rt, zobrist)
	}
	return count
}

// rootDrawResult reports whether pos is already a forced draw before a single move
// of this search has been considered — the fifty-move clock already at 100, or pos
// itself already the third occurrence via history seeded in from the caller's game
// record — and if so builds the result the normal move loop would otherwise only
// reach after searching every move: a draw score paired with whatever legal move is
// on hand to actually play. The in-search repetition/fifty-move checks in NegaMax
// only ever look at height > 0, so without this the root itself being a draw was
// never detected at all.
func rootDrawResult(opts Options, pos *Position, history RepetitionTable) (SearchResult, bool) {
	fiftyMove := pos.HalfMoveClock() >= 100
	repeated := opts.UsePosRepetition && history[pos.Hash()] >= 2
	if !fiftyMove && !repeated {
		return SearchResult{}, false
	}
	legalMoves, _ := pos.board.GenerateLegalMoves2(false)
	if len(legalMoves) == 0 {
		return SearchResult{}, false
	}
	return SearchResult{Lines: []PVResult{{Score: Draw, PV: []dragon.Move{legalMoves[0]}}}}, true
}

// cuckooTableSize must be a power of two; it holds every reversible move's zobrist
// delta so an upcoming-repetition check is a pair of O(1) probes rather than a walk
// back through history. Sized generously since dragontoothmg's full legal move count
// across both colours is a few thousand at most.
const cuckooTableSize = 8192

// cuckooSlot pairs a zobrist delta with the move that produces it, cuckoo-hashed
// across two hash functions so a lookup never costs more than two probes.
type cuckooSlot struct {
	key  uint64
	move dragon.Move
}

// cuckooTable is built once at engine start, for an O(1) probe thereafter, from every
// piece type's reversible from/to zobrist deltas, and never mutated afterwards —
// concurrent Lazy-SMP workers only ever read it.
type cuckooTable struct {
	slots [cuckooTableSize]cuckooSlot
}

func cuckooHash1(key uint64) uint64 { return key & (cuckooTableSize - 1) }
func cuckooHash2(key uint64) uint64 {
	return (key >> 32) & (cuckooTableSize - 1)
}

// buildCuckooTable enumerates every (piece, color, from, to) reversible move's
// zobrist delta using the board's own per-square piece keys, and cuckoo-inserts each
// one. Reversible here means "undoing it is itself a legal-shaped move for the same
// piece" — pawn moves, castling and promotions are excluded, matching upcoming-
// repetition detection's usual scope (a pawn push or capture can never recur, so it
// can never be part of a repeated position).
func buildCuckooTable(pieceSquareKeys func(color dragon.Color, piece dragon.Piece, sq uint8) uint64) *cuckooTable {
	ct := &cuckooTable{}
	for color := dragon.White; color <= dragon.Black; color++ {
		for piece := dragon.Knight; piece <= dragon.King; piece++ {
			for from := uint8(0); from < 64; from++ {
				var reach uint64
				switch piece {
				case dragon.Knight:
					reach = dragon.KnightMovesBitboard(from)
				case dragon.Bishop:
					reach = dragon.CalculateBishopMoveBitboard(from, 0)
				case dragon.Rook:
					reach = dragon.CalculateRookMoveBitboard(from, 0)
				case dragon.Queen:
					reach = dragon.CalculateBishopMoveBitboard(from, 0) | dragon.CalculateRookMoveBitboard(from, 0)
				case dragon.King:
					reach = dragon.KingMovesBitboard(from)
				}
				for to := from + 1; to < 64; to++ {
					if reach&(uint64(1)<<to) == 0 {
						continue
					}
					delta := pieceSquareKeys(color, piece, from) ^ pieceSquareKeys(color, piece, to)
					move := dragon.Move(uint16(from) | uint16(to)<<6)
					ct.insert(delta, move)
				}
			}
		}
	}
	return ct
}

// insert places (key, move) into the table via cuckoo displacement, bounded to a
// handful of kicks since the table is built once, offline, well below capacity.
func (ct *cuckooTable) insert(key uint64, move dragon.Move) {
	for kicks := 0; kicks < 64; kicks++ {
		i := cuckooHash1(key)
		if ct.slots[i].move == NoMove {
			ct.slots[i] = cuckooSlot{key: key, move: move}
			return
		}
		ct.slots[i], key, move = cuckooSlot{key: key, move: move}, ct.slots[i].key, ct.slots[i].move

		j := cuckooHash2(key)
		if ct.slots[j].move == NoMove {
			ct.slots[j] = cuckooSlot{key: key, move: move}
			return
		}
		ct.slots[j], key, move = cuckooSlot{key: key, move: move}, ct.slots[j].key, ct.slots[j].move
	}
	// Silently drop the rare eviction loser: missing one reversible-move delta only
	// means the search falls back to the ordinary repetition walk for that move,
	// never a correctness issue.
}

// upcomingRepetition reports whether some single reversible move available right now
// would land on a position already reached earlier by the same side to move, using
// the cuckoo table so the check costs two O(1) probes per candidate ancestor rather
// than a walk back through the whole repetition history — catching a forced draw one
// ply before it would otherwise be detected by exact repetition counting alone.
func (s *Searcher) upcomingRepetition(pos *Position, height int) bool {
	limit := pos.HalfMoveClock()
	if height < limit {
		limit = height
	}
	for offset := 2; offset <= limit; offset += 2 {
		ancestor := s.nodes.Ancestor(height, offset)
		if ancestor == nil {
			break
		}
		delta := pos.Hash() ^ ancestor.Zobrist
		mv, ok := s.cuckoo.HasMoveFor(delta)
		if !ok {
			continue
		}
		if isReversibleNow(pos, mv) {
			return true
		}
	}
	return false
}

// isReversibleNow checks that mv is actually playable as a quiet move by the side to
// move right now: a piece of theirs sits on its origin square and the destination is
// empty, the two conditions buildCuckooTable's delta construction assumed.
func isReversibleNow(pos *Position, mv dragon.Move) bool {
	piece, ok := pos.PieceAt(mv.From())
	if !ok || piece == dragon.Pawn || pos.ColorAt(mv.From()) != pos.SideToMove() {
		return false
	}
	if _, occupied := pos.PieceAt(mv.To()); occupied {
		return false
	}
	return true
}

// HasMoveFor reports whether some single reversible move produces the zobrist delta
// needed to reach target from current, and if so returns it. The search uses this to
// ask, for the current node's ancestors at the right parity, "is there a move right
// now that would immediately repeat an ancestor position" without walking the whole
// history list.
func (ct *cuckooTable) HasMoveFor(delta uint64) (dragon.Move, bool) {
	if i := cuckooHash1(delta); ct.slots[i].key == delta && ct.slots[i].move != NoMove {
		return ct.slots[i].move, true
	}
	if j := cuckooHash2(delta); ct.slots[j].key == delta && ct.slots[j].move != NoMove {
		return ct.slots[j].move, true
	}
	return NoMove, false
}
