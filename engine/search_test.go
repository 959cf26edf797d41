package engine

import (
	"testing"
	"time"

	"shogi-engine/shogi"
)

func newTestSearcher(threads int) (*Searcher, *TranspositionTable) {
	tt := &TranspositionTable{}
	tt.Resize(1)
	s := NewSearcher(threads, tt, NopReporter{})
	return s, tt
}

func TestSearchFindsMateInOne(t *testing.T) {
	// Black to move: the white king is cornered at 1a behind its own
	// pawns on 2a/2b, and a black gold on 2c has a clear diagonal onto
	// 1b, defended by a black silver on 1c. Moving the gold to 1b
	// checks the king with no flight, capture, or block available.
	sfen := "7pk/7p1/7GS/9/9/9/9/9/K8 b - 1"
	pos, err := shogi.FromSFEN(sfen)
	if err != nil {
		t.Fatalf("FromSFEN: %v", err)
	}

	s, _ := newTestSearcher(1)
	defer s.Close()

	bm := s.StartSearch(pos, nil, 4, InfiniteLimiter{}, false, false)
	want := MateValue - 1
	if bm.Score != want {
		t.Fatalf("mate-in-1 search returned score %d, want %d", bm.Score, want)
	}
}

func TestSearchReturnsALegalRootMove(t *testing.T) {
	s, _ := newTestSearcher(2)
	defer s.Close()

	pos := shogi.Startpos()
	bm := s.StartSearch(pos, nil, 3, InfiniteLimiter{}, false, false)
	if bm.Move.IsNull() {
		t.Fatalf("search from startpos returned a null move")
	}
	if !pos.IsLegal(bm.Move) {
		t.Fatalf("search returned illegal root move %s", bm.Move)
	}
}

func TestSearcherStopHaltsAnInfiniteSearch(t *testing.T) {
	s, _ := newTestSearcher(1)
	defer s.Close()

	pos := shogi.Startpos()
	done := make(chan BestMove, 1)
	go func() {
		done <- s.StartSearch(pos, nil, shogi.MaxDepth, InfiniteLimiter{}, true, false)
	}()

	time.Sleep(20 * time.Millisecond)
	s.Stop()

	select {
	case bm := <-done:
		if bm.Move.IsNull() {
			t.Fatalf("stopped search should still report a best move")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("StartSearch did not return after Stop")
	}
}

func TestLmrReductionGrowsWithDepthAndMoveNumber(t *testing.T) {
	if r := lmrReduction(1, 1); r != 0 {
		t.Fatalf("lmrReduction(1,1) = %d, want 0", r)
	}
	small := lmrReduction(4, 8)
	large := lmrReduction(20, 40)
	if large < small {
		t.Fatalf("lmrReduction should grow with depth and move number: got %d at (20,40) < %d at (4,8)", large, small)
	}
}
