package shogi

import "testing"

func TestSEEWinningCaptureMeetsZeroThreshold(t *testing.T) {
	// Black rook on 5e captures an undefended white pawn on 5c: a clean
	// material gain, so SEE must clear a threshold of 0.
	pos, err := FromSFEN("4k4/9/4p4/9/4R4/9/9/9/4K4 b - 1")
	if err != nil {
		t.Fatalf("FromSFEN: %v", err)
	}
	from, _ := ParseSquare("5e")
	to, _ := ParseSquare("5c")
	m := NewNormalMove(from, to)
	if !pos.SEE(m, 0) {
		t.Fatalf("%s should clear SEE threshold 0 (free pawn capture)", m)
	}
}

func TestSEEEvenTradeFailsPositiveThreshold(t *testing.T) {
	// Black pawn on 5d captures a white pawn on 5c, but a white rook on
	// 5h recaptures through the vacated 5d, so Black nets nothing.
	pos, err := FromSFEN("4k4/9/4p4/4P4/9/9/9/4r4/4K4 b - 1")
	if err != nil {
		t.Fatalf("FromSFEN: %v", err)
	}
	from, _ := ParseSquare("5d")
	to, _ := ParseSquare("5c")
	m := NewNormalMove(from, to)
	if pos.SEE(m, 1) {
		t.Fatalf("%s should not clear SEE threshold 1 once the rook recaptures", m)
	}
}
