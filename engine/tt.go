package engine

import (
	"math/bits"

	"golang.org/x/sync/errgroup"

	"shogi-engine/shogi"
)

// Bound flags for a transposition table entry.
const (
	BoundNone = iota
	BoundUpper
	BoundLower
	BoundExact
)

// MateValue is the score assigned to an immediate checkmate at ply 0;
// search returns Mate-ply for a forced mate found ply moves deep.
const MateValue = 32000

// mateThreshold: any score at or beyond this magnitude is treated as
// a mate score and gets ply-distance-adjusted when stored into or
// read out of the TT, so that mate-in-N compares correctly regardless
// of the ply at which it was found.
const mateThreshold = MateValue - shogi.MaxDepth

func adjustForStore(score, ply int) int {
	switch {
	case score >= mateThreshold:
		return score + ply
	case score <= -mateThreshold:
		return score - ply
	default:
		return score
	}
}

func adjustForProbe(score, ply int) int {
	switch {
	case score >= mateThreshold:
		return score - ply
	case score <= -mateThreshold:
		return score + ply
	default:
		return score
	}
}

// TTEntry is a fixed 8-byte transposition table slot: a 16-bit key
// prefix for collision detection, a 16-bit score, a 16-bit best move,
// an 8-bit depth, and an 8-bit bound flag.
type TTEntry struct {
	Key16 uint16
	Score int16
	Move  shogi.Move
	Depth uint8
	Flag  uint8
}

// TranspositionTable is a flat array of fixed-size entries, sized from
// a caller-supplied MiB budget and indexed by 128-bit multiplication,
// per spec §4.E. Replacement is unconditional — no depth-preferring or
// clustering scheme, a deliberate divergence from richer chess-engine
// designs in favor of the source shogi engine's simpler flat table.
type TranspositionTable struct {
	entries       []TTEntry
	pendingMiB    int
	pendingInit   bool
}

// Resize records a new size budget; allocation is deferred until
// Finalize.
func (t *TranspositionTable) Resize(mib int) {
	t.pendingMiB = mib
	t.pendingInit = true
}

// Finalize allocates and zeros the table if a resize is pending,
// reporting whether it did real work. Must be called before the first
// Probe or Put.
func (t *TranspositionTable) Finalize() bool {
	if !t.pendingInit {
		return false
	}
	count := (t.pendingMiB * 1024 * 1024) / 8
	if count < 1 {
		count = 1
	}
	t.entries = make([]TTEntry, count)
	t.pendingInit = false
	return true
}

func (t *TranspositionTable) index(key uint64) uint64 {
	hi, _ := bits.Mul64(key, uint64(len(t.entries)))
	return hi
}

// Probe looks up key. On a key-prefix match it returns the stored
// entry with its score un-adjusted from the mate-distance encoding.
func (t *TranspositionTable) Probe(key uint64, ply int) (TTEntry, bool) {
	if len(t.entries) == 0 {
		return TTEntry{}, false
	}
	idx := t.index(key)
	e := t.entries[idx]
	if e.Flag == BoundNone || e.Key16 != uint16(key) {
		return TTEntry{}, false
	}
	e.Score = int16(adjustForProbe(int(e.Score), ply))
	return e, true
}

// Put unconditionally replaces the slot key maps to.
func (t *TranspositionTable) Put(key uint64, score int, move shogi.Move, depth, ply int, flag uint8) {
	if len(t.entries) == 0 {
		return
	}
	idx := t.index(key)
	t.entries[idx] = TTEntry{
		Key16: uint16(key),
		Score: int16(adjustForStore(score, ply)),
		Move:  move,
		Depth: uint8(depth),
		Flag:  flag,
	}
}

// Clear zeros every entry, sharding the work across an errgroup of at
// most 16 chunks of at least 1<<16 entries each (one chunk for smaller
// tables) — the one place in the table a goroutine group usefully
// parallelizes work (zeroing a multi-MiB slice).
func (t *TranspositionTable) Clear() {
	n := len(t.entries)
	if n == 0 {
		return
	}
	const minShard = 1 << 16
	shards := n / minShard
	if shards < 1 {
		shards = 1
	}
	if shards > 16 {
		shards = 16
	}
	chunk := (n + shards - 1) / shards

	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		start, end := start, end
		g.Go(func() error {
			clear := t.entries[start:end]
			for i := range clear {
				clear[i] = TTEntry{}
			}
			return nil
		})
	}
	_ = g.Wait()
}

// FullPermille samples the first 1000 entries and reports how many
// carry a non-None bound flag.
func (t *TranspositionTable) FullPermille() int {
	n := len(t.entries)
	if n > 1000 {
		n = 1000
	}
	count := 0
	for i := 0; i < n; i++ {
		if t.entries[i].Flag != BoundNone {
			count++
		}
	}
	return count
}
