// Command bench runs a fixed search over a small set of benchmark
// positions and reports total nodes and speed — a reproducible
// single-number smoke test, the shogi-engine analogue of the teacher's
// now-superseded cmd/benchrun.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"shogi-engine/engine"
	"shogi-engine/shogi"
)

// benchPositions are a fixed, checked-in set of SFENs spanning the
// opening, a tactical middlegame, and an endgame, so bench results are
// comparable across runs.
var benchPositions = []string{
	shogi.StartSFEN,
	"8l/1l+R2P3/p2pBG1pp/kps1p4/Nn1P2G2/P1P1P2PP/1PS6/1KSG3+r1/LN2+p3L w Sbgn3p 124",
	"4k4/9/9/9/9/9/9/9/4K4 b - 1",
}

func main() {
	depth := flag.Int("depth", 10, "fixed search depth per position")
	hashMiB := flag.Int("hash", 32, "transposition table size in MiB")
	threads := flag.Int("threads", 1, "worker goroutine count")
	flag.Parse()

	tt := &engine.TranspositionTable{}
	tt.Resize(*hashMiB)
	s := engine.NewSearcher(*threads, tt, engine.NopReporter{})
	defer s.Close()

	var totalNodes uint64
	start := time.Now()

	for _, sfen := range benchPositions {
		pos, err := shogi.FromSFEN(sfen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid sfen %q: %v\n", sfen, err)
			os.Exit(1)
		}
		tt.Clear()
		bm := s.StartSearch(pos, nil, *depth, engine.InfiniteLimiter{}, false, false)
		fmt.Printf("%s -> %s (score %d)\n", sfen, bm.Move, bm.Score)
		totalNodes += s.TotalNodes()
	}

	elapsed := time.Since(start)
	fmt.Printf("%d nodes in %s (%.0f nps)\n", totalNodes, elapsed, float64(totalNodes)/elapsed.Seconds())
}
