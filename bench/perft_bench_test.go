package bench

import (
	"testing"

	"shogi-engine/shogi"
)

func benchPerft(b *testing.B, sfen string, depth int) {
	pos, err := shogi.FromSFEN(sfen)
	if err != nil {
		b.Fatalf("FromSFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.Perft(depth)
	}
}

func BenchmarkPerft_Startpos_D3(b *testing.B) {
	benchPerft(b, shogi.StartSFEN, 3)
}

func BenchmarkPerft_Startpos_D4(b *testing.B) {
	benchPerft(b, shogi.StartSFEN, 4)
}
