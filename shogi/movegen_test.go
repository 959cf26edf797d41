package shogi

import "testing"

func TestPerftStartpos(t *testing.T) {
	// Only the two depths fixed by spec §8 are asserted; shallower
	// depths are left to TestPerftDivideSumsToTotal's consistency check
	// rather than a second hand-derived literal.
	cases := []struct {
		depth int
		want  uint64
	}{
		{3, 19836},
		{4, 362353},
	}
	pos := Startpos()
	for _, c := range cases {
		got := pos.Perft(c.depth)
		if got != c.want {
			t.Errorf("perft(startpos, %d) = %d, want %d", c.depth, got, c.want)
		}
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	pos := Startpos()
	div := pos.PerftDivide(3)
	var total uint64
	for _, n := range div {
		total += n
	}
	if want := pos.Perft(3); total != want {
		t.Fatalf("divide sum = %d, want %d", total, want)
	}
}

func TestComplexMidgameRoundTrip(t *testing.T) {
	sfen := "8l/1l+R2P3/p2pBG1pp/kps1p4/Nn1P2G2/P1P1P2PP/1PS6/1KSG3+r1/LN2+p3L w Sbgn3p 124"
	pos, err := FromSFEN(sfen)
	if err != nil {
		t.Fatalf("FromSFEN: %v", err)
	}
	if got := pos.SFEN(); got != sfen {
		t.Errorf("round-trip SFEN = %q, want %q", got, sfen)
	}
}

func TestNifuRejectsDoublePawnDrop(t *testing.T) {
	// Black already has an unpromoted pawn on file 5; a drop of another
	// pawn anywhere on file 5 must be illegal.
	pos, err := FromSFEN("4k4/9/9/9/4P4/9/9/9/4K4 b P 1")
	if err != nil {
		t.Fatalf("FromSFEN: %v", err)
	}
	to, err := ParseSquare("5e")
	if err != nil {
		t.Fatalf("ParseSquare: %v", err)
	}
	drop := NewDropMove(Pawn, to)
	if pos.IsPseudolegal(drop) {
		t.Fatalf("nifu drop %s should be rejected as pseudolegal", drop)
	}
}

func TestPawnDropMateIsIllegal(t *testing.T) {
	// White's king is cornered at 1a with its own lance on 2a and
	// silver on 2b (neither able to reach 1b), and Black's gold on 1c
	// guards 1b. A black pawn dropped on 1b checks the king, the king
	// cannot flee (both other neighbors are occupied) or capture (the
	// gold defends the square) — uchifuzume, and so must be illegal
	// despite being otherwise pseudolegal.
	pos, err := FromSFEN("7lk/7s1/8G/9/9/9/9/9/K8 b P 1")
	if err != nil {
		t.Fatalf("FromSFEN: %v", err)
	}
	to, err := ParseSquare("1b")
	if err != nil {
		t.Fatalf("ParseSquare: %v", err)
	}
	drop := NewDropMove(Pawn, to)
	if !pos.IsPseudolegal(drop) {
		t.Fatalf("%s should be pseudolegal", drop)
	}
	if pos.IsLegal(drop) {
		t.Fatalf("pawn-drop mate %s should be illegal", drop)
	}
}
