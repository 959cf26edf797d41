// Command perft counts legal-move leaves from a position, optionally
// divided by root move, for cross-checking the move generator against
// reference engines.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"shogi-engine/shogi"
)

func main() {
	sfen := flag.String("sfen", shogi.StartSFEN, "SFEN position to search from")
	depth := flag.Int("depth", 4, "perft depth")
	divide := flag.Bool("divide", false, "print per-root-move leaf counts instead of a single total")
	flag.Parse()

	pos, err := shogi.FromSFEN(*sfen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid sfen: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	if *divide {
		counts := pos.PerftDivide(*depth)
		var total uint64
		for m, n := range counts {
			fmt.Printf("%s: %d\n", m.String(), n)
			total += n
		}
		elapsed := time.Since(start)
		fmt.Printf("total %d nodes in %s (%.0f nps)\n", total, elapsed, float64(total)/elapsed.Seconds())
		return
	}

	nodes := pos.Perft(*depth)
	elapsed := time.Since(start)
	fmt.Printf("perft(%d) = %d in %s (%.0f nps)\n", *depth, nodes, elapsed, float64(nodes)/elapsed.Seconds())
}
