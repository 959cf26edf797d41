package engine

import (
	"testing"

	"shogi-engine/shogi"
)

func TestTranspositionTableProbePutRoundTrip(t *testing.T) {
	tt := &TranspositionTable{}
	tt.Resize(1)
	tt.Finalize()

	key := uint64(0xdeadbeefcafef00d)
	from, _ := shogi.ParseSquare("7g")
	to, _ := shogi.ParseSquare("7f")
	move := shogi.NewNormalMove(from, to)

	tt.Put(key, 123, move, 4, 0, BoundExact)
	entry, ok := tt.Probe(key, 0)
	if !ok {
		t.Fatalf("Probe after Put should hit")
	}
	if entry.Move != move || int(entry.Score) != 123 || entry.Flag != BoundExact {
		t.Fatalf("Probe returned %+v, want move=%s score=123 flag=Exact", entry, move)
	}
}

func TestTranspositionTableMateScoreRoundTrips(t *testing.T) {
	tt := &TranspositionTable{}
	tt.Resize(1)
	tt.Finalize()

	key := uint64(12345)
	mateScore := MateValue - 3 // a mate found 3 plies into a search rooted deeper
	tt.Put(key, mateScore, shogi.NullMove, 10, 5, BoundExact)

	entry, ok := tt.Probe(key, 5)
	if !ok {
		t.Fatalf("Probe should hit")
	}
	if int(entry.Score) != mateScore {
		t.Fatalf("mate score round-trip at the same ply = %d, want %d", entry.Score, mateScore)
	}
}

func TestTranspositionTableClearZeroesEntries(t *testing.T) {
	tt := &TranspositionTable{}
	tt.Resize(1)
	tt.Finalize()
	tt.Put(42, 1, shogi.NullMove, 1, 0, BoundExact)
	if tt.FullPermille() == 0 {
		t.Fatalf("expected at least one populated entry before Clear")
	}
	tt.Clear()
	if tt.FullPermille() != 0 {
		t.Fatalf("expected zero populated entries after Clear, got %d", tt.FullPermille())
	}
}

func TestTranspositionTableProbeMissBeforeFinalize(t *testing.T) {
	tt := &TranspositionTable{}
	if _, ok := tt.Probe(1, 0); ok {
		t.Fatalf("Probe on an unfinalized table should miss, not hit")
	}
}
