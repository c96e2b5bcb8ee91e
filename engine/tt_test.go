package engine

import (
	"testing"

	dragon "github.com/Bubblyworld/dragontoothmg"
	"github.com/matryer/is"
)

func TestTableStoreProbe(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1)

	tt.Store(0x1234, NoMove, 0, 0, TTBoundExact)
	hit := tt.Probe(0x1234)
	is.True(hit.Found)
	is.Equal(hit.Bound, TTBoundExact)
}

func TestTableMiss(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1)
	hit := tt.Probe(0xdeadbeef)
	is.True(!hit.Found)
}

func TestTablePreservesMoveOnBoundUpdate(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1)

	tt.Store(0x42, dragon.Move(7), 100, 4, TTBoundExact)
	tt.Store(0x42, NoMove, 50, 2, TTBoundUpper)

	hit := tt.Probe(0x42)
	is.True(hit.Found)
	is.Equal(hit.Move, dragon.Move(7))
}

func TestTableExactKeyMatchReusesSlot(t *testing.T) {
	is := is.New(t)
	tt := NewTable(0) // clamped to a single bucket, so every key below collides.

	tt.Store(0x99, dragon.Move(1), 10, 2, TTBoundExact)
	tt.Store(0x99, dragon.Move(2), 20, 8, TTBoundExact)

	hit := tt.Probe(0x99)
	is.Equal(hit.Move, dragon.Move(2))
	is.Equal(hit.Depth, uint8(8))
}

func TestNewGenerationAgesOutReplacement(t *testing.T) {
	is := is.New(t)
	tt := NewTable(0) // clamped to a single bucket of ttBucketSize slots.

	// Fill every slot in generation 0, depths 1..5, so the bucket is full.
	for i := 0; i < ttBucketSize; i++ {
		tt.Store(uint64(i+1), dragon.Move(i+1), 0, uint8(i+1), TTBoundExact)
	}

	// Age the table forward well past the depth range above: every old-generation
	// entry's replacement score is now dominated by the age penalty, so the entry
	// that stored the shallowest depth (key 1, depth 1) scores lowest and is the
	// one a new store evicts.
	for i := 0; i < 10; i++ {
		tt.NewGeneration()
	}

	tt.Store(0x999, dragon.Move(99), 0, 1, TTBoundExact)

	hit := tt.Probe(1)
	is.True(!hit.Found)
	for i := 1; i < ttBucketSize; i++ {
		hit := tt.Probe(uint64(i + 1))
		is.True(hit.Found)
	}
	hit = tt.Probe(0x999)
	is.True(hit.Found)
	is.Equal(hit.Move, dragon.Move(99))
}

func TestClearRemovesAllEntries(t *testing.T) {
	is := is.New(t)
	tt := NewTable(1)
	tt.Store(0x55, dragon.Move(1), 0, 4, TTBoundExact)
	tt.Clear()

	hit := tt.Probe(0x55)
	is.True(!hit.Found)
}
