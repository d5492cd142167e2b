package engine

import (
	"github.com/quartzchess/quartz/internal/board"
)

// Bound classifies a stored score relative to the (alpha, beta) window it
// was searched with.
type Bound uint8

const (
	BoundNone  Bound = iota // empty slot
	BoundExact              // exact minimax score
	BoundLower              // fail-high: score is a lower bound
	BoundUpper              // fail-low: score is an upper bound
)

// TTEntry is a 16-byte transposition table record.
type TTEntry struct {
	Key32      uint32     // upper 32 bits of the Zobrist key, for verification
	Score      int16      // search score in centipawns
	StaticEval int16      // static eval at the node, a hint for future pruning
	BestMove   board.Move // 4 bytes
	Depth      uint8
	Bound      Bound
	Age        uint8 // search generation
	_          uint8 // pad to 16 bytes
}

// TranspositionTable caches search results in a power-of-two sized array of
// single-entry buckets. It is owned by exactly one Search and needs no
// locking.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
	age     uint8
}

// NewTranspositionTable creates a table of the given size in megabytes.
func NewTranspositionTable(mb int) *TranspositionTable {
	tt := &TranspositionTable{}
	tt.Resize(mb)
	return tt
}

// Resize reallocates the table: the largest power-of-two entry count whose
// byte size fits in mb megabytes, never fewer than 1024 entries. All
// entries and the age counter are cleared.
func (tt *TranspositionTable) Resize(mb int) {
	if mb < 1 {
		mb = 1
	}
	const entrySize = 16
	n := uint64(mb) * 1024 * 1024 / entrySize
	n = roundDownPow2(n)
	if n < 1024 {
		n = 1024
	}
	tt.entries = make([]TTEntry, n)
	tt.mask = n - 1
	tt.age = 0
}

func roundDownPow2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n >> 1) + 1
}

// Clear zeroes all entries and resets the age.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.age = 0
}

// NewSearch advances the search generation. The counter wraps at 256.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

// EntryCount returns the number of slots.
func (tt *TranspositionTable) EntryCount() int {
	return len(tt.entries)
}

// Age returns the current search generation.
func (tt *TranspositionTable) Age() uint8 {
	return tt.age
}

func (tt *TranspositionTable) index(key uint64) uint64 {
	return key & tt.mask
}

func keyUpper(key uint64) uint32 {
	return uint32(key >> 32)
}

// Probe looks up the slot for key. A hit requires a non-empty bound and a
// matching upper-key tag.
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	slot := tt.entries[tt.index(key)]
	if slot.Bound != BoundNone && slot.Key32 == keyUpper(key) {
		return slot, true
	}
	return TTEntry{}, false
}

// Store writes an entry. The slot is replaced when it is empty, stale (from
// an older search), shallower than the new depth, or non-exact while the
// new entry is exact. Overwriting the same position with a null best move
// keeps the previously stored move.
func (tt *TranspositionTable) Store(key uint64, depth, score int, bound Bound, bestMove board.Move, staticEval int) {
	slot := &tt.entries[tt.index(key)]
	key32 := keyUpper(key)

	replace := slot.Bound == BoundNone ||
		slot.Age != tt.age ||
		depth >= int(slot.Depth) ||
		(bound == BoundExact && slot.Bound != BoundExact)
	if !replace {
		return
	}

	if slot.Key32 == key32 && bestMove == board.NoMove && slot.BestMove != board.NoMove {
		bestMove = slot.BestMove
	}

	slot.Key32 = key32
	slot.Score = int16(score)
	slot.StaticEval = int16(staticEval)
	slot.BestMove = bestMove
	slot.Depth = uint8(depth)
	slot.Bound = bound
	slot.Age = tt.age
}

// Hashfull samples the first min(1000, size) slots and reports, per mille,
// how many are occupied at the current age.
func (tt *TranspositionTable) Hashfull() int {
	sample := len(tt.entries)
	if sample > 1000 {
		sample = 1000
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.entries[i].Bound != BoundNone && tt.entries[i].Age == tt.age {
			used++
		}
	}
	return used * 1000 / sample
}
