package shogi

// betweenRay[a][b] holds the squares strictly between a and b when a
// rook or bishop could travel from a to b on an empty board; empty
// otherwise. intersectingRay[a][b] holds the full line through a and b
// (both endpoints included, extended to the board edges), used to test
// that a pinned piece stays on its pin line.
var (
	betweenRay      [SquareCount][SquareCount]Bitboard
	intersectingRay [SquareCount][SquareCount]Bitboard
)

var lineDirs = []dir{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func init() {
	for a := Square(0); a < SquareCount; a++ {
		for _, d := range lineDirs {
			var line []Square
			cur := a
			for {
				next, ok := stepSquare(cur, d)
				if !ok {
					break
				}
				line = append(line, next)
				cur = next
			}
			var full Bitboard
			full = full.WithSquare(a)
			for _, sq := range line {
				full = full.WithSquare(sq)
			}
			back := dir{-d.df, -d.dr}
			for cur = a; ; {
				next, ok := stepSquare(cur, back)
				if !ok {
					break
				}
				full = full.WithSquare(next)
				cur = next
			}
			for i, b := range line {
				var between Bitboard
				for _, sq := range line[:i] {
					between = between.WithSquare(sq)
				}
				betweenRay[a][b] = between
				intersectingRay[a][b] = full
			}
		}
	}
}

// BetweenRay returns the squares strictly between a and b.
func BetweenRay(a, b Square) Bitboard { return betweenRay[a][b] }

// IntersectingRay returns the full line through a and b.
func IntersectingRay(a, b Square) Bitboard { return intersectingRay[a][b] }
