// Transposition table for the main search: a lock-free, bucketed, generation-aged
// hash table shared by every Lazy-SMP worker.

package engine

import (
	"sync/atomic"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// TTBound records whether a transposition-table entry's stored score is exact or
// only a bound.
type TTBound uint8

const (
	TTBoundNone TTBound = iota
	TTBoundExact
	TTBoundLower // from a beta cut-off
	TTBoundUpper // from an alpha cut-off
)

const ttBucketSize = 5

// ttEntry is written and read with a single pair of atomic 64-bit operations: key is
// always zobrist XOR the packed data word, never the zobrist itself. A reader XORs
// the loaded data back into the loaded key and compares the result to the zobrist
// it's probing for; a torn read — the writer's two stores landing on either side of
// the reader's two loads — makes that comparison fail harmlessly, so a torn read
// looks like a miss rather than corrupting the search.
type ttEntry struct {
	key  uint64
	data uint64
}

func packTTData(move dragon.Move, eval EvalCp, depth uint8, generation uint8, bound TTBound) uint64 {
	return uint64(uint16(move)) |
		uint64(uint16(eval))<<16 |
		uint64(depth)<<32 |
		uint64(generation)<<40 |
		uint64(bound)<<48
}

func unpackTTData(data uint64) (move dragon.Move, eval EvalCp, depth uint8, generation uint8, bound TTBound) {
	move = dragon.Move(uint16(data))
	eval = EvalCp(uint16(data >> 16))
	depth = uint8(data >> 32)
	generation = uint8(data >> 40)
	bound = TTBound(uint8(data >> 48))
	return
}

// ttBucket holds ttBucketSize entries sharing an index; the padding keeps
// neighbouring buckets from sharing a cache line under concurrent probing.
type ttBucket struct {
	entries [ttBucketSize]ttEntry
	_       [48]byte
}

const ttBucketBytes = ttBucketSize*16 + 48 // = 128

// Table is the shared transposition table every search worker probes and stores into
// directly via sync/atomic: no mutex guards it — concurrent writers may race each
// other, but never corrupt a single entry beyond what the key-xor-data check above
// already tolerates.
type Table struct {
	buckets    []ttBucket
	mask       uint64
	generation uint32
}

// NewTable allocates a table sized to the largest power-of-two bucket count that fits
// within hashMB megabytes.
func NewTable(hashMB int) *Table {
	numBuckets := (hashMB * 1024 * 1024) / ttBucketBytes
	if numBuckets < 1 {
		numBuckets = 1
	}
	pow := 1
	for pow*2 <= numBuckets {
		pow *= 2
	}
	return &Table{
		buckets: make([]ttBucket, pow),
		mask:    uint64(pow - 1),
	}
}

// NewGeneration ages the table forward one search; called once per Engine.Search so
// the replacement formula in Store can tell this search's entries from stale ones
// left by a previous search.
func (t *Table) NewGeneration() {
	t.generation++
}

// Clear wipes every entry and resets the generation counter, for Engine.NewGame.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i] = ttBucket{}
	}
	t.generation = 0
}

func (t *Table) bucketFor(zobrist uint64) *ttBucket {
	return &t.buckets[zobrist&t.mask]
}

// TTHit is what Probe hands back to the search.
type TTHit struct {
	Move  dragon.Move
	Eval  EvalCp
	Depth uint8
	Bound TTBound
	Found bool
}

// Probe looks up zobrist and returns the verified entry, if any. Callers still need
// scoreFromTT to translate Eval back from the table's root-independent mate encoding.
func (t *Table) Probe(zobrist uint64) TTHit {
	bucket := t.bucketFor(zobrist)
	for i := range bucket.entries {
		e := &bucket.entries[i]
		key := atomic.LoadUint64(&e.key)
		data := atomic.LoadUint64(&e.data)
		if key^data != zobrist {
			continue
		}
		move, eval, depth, _, bound := unpackTTData(data)
		return TTHit{Move: move, Eval: eval, Depth: depth, Bound: bound, Found: true}
	}
	return TTHit{}
}

// Store writes an entry for zobrist, replacing whichever of the bucket's
// ttBucketSize slots scores lowest under the replacement formula
// depth − 8·((generation−entry.generation)&63): an entry from an old generation is
// worth less regardless of its stored depth, so a new search's first few stores
// quickly evict stale entries left by prior searches. An entry whose key already
// matches zobrist is always reused in place. A store that carries no move of its own
// (a pure bound update) preserves whatever move the victim slot already held.
func (t *Table) Store(zobrist uint64, move dragon.Move, eval EvalCp, depth uint8, bound TTBound) {
	bucket := t.bucketFor(zobrist)

	var victim *ttEntry
	var victimData uint64
	victimScore := 1 << 30
	for i := range bucket.entries {
		e := &bucket.entries[i]
		key := atomic.LoadUint64(&e.key)
		data := atomic.LoadUint64(&e.data)

		if key^data == zobrist {
			victim = e
			victimData = data
			break
		}

		_, _, eDepth, eGen, _ := unpackTTData(data)
		score := int(eDepth) - 8*int((uint8(t.generation)-eGen)&63)
		if victim == nil || score < victimScore {
			victim = e
			victimScore = score
			victimData = data
		}
	}

	if move == NoMove {
		if oldMove, _, _, _, _ := unpackTTData(victimData); oldMove != NoMove {
			move = oldMove
		}
	}

	data := packTTData(move, eval, depth, uint8(t.generation), bound)
	atomic.StoreUint64(&victim.data, data)
	atomic.StoreUint64(&victim.key, zobrist^data)
}
