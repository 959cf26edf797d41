package shogi

import "testing"

func TestStartposRoundTrip(t *testing.T) {
	pos := Startpos()
	if got := pos.SFEN(); got != StartSFEN {
		t.Fatalf("Startpos().SFEN() = %q, want %q", got, StartSFEN)
	}
}

func TestFromSFENRejectsMalformedRecords(t *testing.T) {
	cases := []string{
		"",
		"not-a-board b - 1",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1 b - 1", // only 8 ranks
	}
	for _, sfen := range cases {
		if _, err := FromSFEN(sfen); err == nil {
			t.Errorf("FromSFEN(%q) should have failed", sfen)
		}
	}
}

func TestFromSFENAcceptsThreeFieldForm(t *testing.T) {
	pos, err := FromSFEN(StartSFEN[:len(StartSFEN)-2]) // drop " 1"
	if err != nil {
		t.Fatalf("three-field SFEN should parse: %v", err)
	}
	if pos.MoveCount() != 1 {
		t.Errorf("omitted move count should default to 1, got %d", pos.MoveCount())
	}
}

func TestFromSFENRejectsMissingKing(t *testing.T) {
	_, err := FromSFEN("9/9/9/9/9/9/9/9/9 b - 1")
	if err == nil {
		t.Fatalf("a board with no kings should fail to parse")
	}
}

func TestHandsSFENRoundTrip(t *testing.T) {
	sfen := "4k4/9/9/9/9/9/9/9/4K4 b RB2g3s4n4l17p 1"
	pos, err := FromSFEN(sfen)
	if err != nil {
		t.Fatalf("FromSFEN: %v", err)
	}
	if got := pos.SFEN(); got != sfen {
		t.Errorf("hand round-trip = %q, want %q", got, sfen)
	}
}
