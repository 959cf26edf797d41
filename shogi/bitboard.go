package shogi

import "math/bits"

// Bitboard is a 128-bit value whose low 81 bits represent board
// squares (square = rankIdx*9 + fileIdx); squares 0..63 live in Lo,
// squares 64..80 live in the low 17 bits of Hi.
type Bitboard struct {
	Lo uint64
	Hi uint64
}

const hiValidMask = (uint64(1) << 17) - 1

var (
	fileMask [9]Bitboard
	rankMask [9]Bitboard
	sqMask   [SquareCount]Bitboard

	promotionZone [2]Bitboard // squares in the last three ranks from each color's perspective
	lastRank      [2]Bitboard
	lastTwoRanks  [2]Bitboard

	boardFull Bitboard
)

func init() {
	for f := 0; f < 9; f++ {
		for r := 0; r < 9; r++ {
			fileMask[f] = fileMask[f].Or(bbOfSquare(NewSquare(f, r)))
		}
	}
	for r := 0; r < 9; r++ {
		for f := 0; f < 9; f++ {
			rankMask[r] = rankMask[r].Or(bbOfSquare(NewSquare(f, r)))
		}
	}
	for s := Square(0); s < SquareCount; s++ {
		sqMask[s] = bbOfSquare(s)
		boardFull = boardFull.Or(sqMask[s])
	}
	// Black advances toward rankIdx 8; its promotion zone is rankIdx {6,7,8}.
	promotionZone[Black] = rankMask[6].Or(rankMask[7]).Or(rankMask[8])
	lastRank[Black] = rankMask[8]
	lastTwoRanks[Black] = rankMask[7].Or(rankMask[8])
	// White advances toward rankIdx 0; its promotion zone is rankIdx {0,1,2}.
	promotionZone[White] = rankMask[0].Or(rankMask[1]).Or(rankMask[2])
	lastRank[White] = rankMask[0]
	lastTwoRanks[White] = rankMask[0].Or(rankMask[1])
}

func bbOfSquare(s Square) Bitboard {
	idx := int(s)
	if idx < 64 {
		return Bitboard{Lo: uint64(1) << uint(idx)}
	}
	return Bitboard{Hi: uint64(1) << uint(idx-64)}
}

// FileOf returns the bitboard of all squares sharing sq's file.
func FileOf(sq Square) Bitboard { return fileMask[sq.FileIdx()] }

// RankOf returns the bitboard of all squares sharing sq's rank.
func RankOf(sq Square) Bitboard { return rankMask[sq.RankIdx()] }

// PromotionZone returns the three-rank promotion zone for color c.
func PromotionZone(c Color) Bitboard { return promotionZone[c] }

// LastRank returns the single rank a pawn/lance must promote on for c.
func LastRank(c Color) Bitboard { return lastRank[c] }

// LastTwoRanks returns the two ranks a knight must promote within for c.
func LastTwoRanks(c Color) Bitboard { return lastTwoRanks[c] }

// Get reports whether sq is set.
func (b Bitboard) Get(sq Square) bool {
	if int(sq) < 64 {
		return b.Lo&(uint64(1)<<uint(sq)) != 0
	}
	return b.Hi&(uint64(1)<<uint(int(sq)-64)) != 0
}

// WithSquare returns b with sq set.
func (b Bitboard) WithSquare(sq Square) Bitboard { return b.Or(bbOfSquare(sq)) }

// WithoutSquare returns b with sq cleared.
func (b Bitboard) WithoutSquare(sq Square) Bitboard { return b.AndNot(bbOfSquare(sq)) }

func (b Bitboard) And(o Bitboard) Bitboard    { return Bitboard{b.Lo & o.Lo, b.Hi & o.Hi} }
func (b Bitboard) Or(o Bitboard) Bitboard     { return Bitboard{b.Lo | o.Lo, b.Hi | o.Hi} }
func (b Bitboard) Xor(o Bitboard) Bitboard    { return Bitboard{b.Lo ^ o.Lo, b.Hi ^ o.Hi} }
func (b Bitboard) AndNot(o Bitboard) Bitboard { return Bitboard{b.Lo &^ o.Lo, b.Hi &^ o.Hi} }
func (b Bitboard) Not() Bitboard {
	return Bitboard{^b.Lo, ^b.Hi & hiValidMask}
}

func (b Bitboard) IsEmpty() bool  { return b.Lo == 0 && b.Hi == 0 }
func (b Bitboard) IsNotEmpty() bool { return !b.IsEmpty() }

func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// LSB returns the lowest-indexed set square, or NoSquare if empty.
func (b Bitboard) LSB() Square {
	if b.Lo != 0 {
		return Square(bits.TrailingZeros64(b.Lo))
	}
	if b.Hi != 0 {
		return Square(64 + bits.TrailingZeros64(b.Hi))
	}
	return NoSquare
}

// PopLSB returns the lowest-indexed set square and the board with that
// bit cleared.
func (b Bitboard) PopLSB() (Square, Bitboard) {
	sq := b.LSB()
	if sq == NoSquare {
		return NoSquare, b
	}
	return sq, b.WithoutSquare(sq)
}

// ShiftLeft shifts the whole 81-bit board up by n bit positions
// (0 <= n < 64), discarding overflow past bit 80.
func (b Bitboard) ShiftLeft(n uint) Bitboard {
	if n == 0 {
		return b
	}
	newHi := (b.Hi << n) | (b.Lo >> (64 - n))
	newLo := b.Lo << n
	return Bitboard{newLo, newHi & hiValidMask}
}

// ShiftRight shifts the whole 81-bit board down by n bit positions.
func (b Bitboard) ShiftRight(n uint) Bitboard {
	if n == 0 {
		return b
	}
	newLo := (b.Lo >> n) | (b.Hi << (64 - n))
	newHi := b.Hi >> n
	return Bitboard{newLo, newHi & hiValidMask}
}

// directional shifts, masking the edge file before shifting so pieces
// never wrap around the board.
func (b Bitboard) North() Bitboard { return b.ShiftLeft(9) }
func (b Bitboard) South() Bitboard { return b.ShiftRight(9) }
func (b Bitboard) East() Bitboard  { return b.AndNot(fileMask[8]).ShiftLeft(1) }
func (b Bitboard) West() Bitboard  { return b.AndNot(fileMask[0]).ShiftRight(1) }
func (b Bitboard) NorthEast() Bitboard { return b.AndNot(fileMask[8]).ShiftLeft(10) }
func (b Bitboard) NorthWest() Bitboard { return b.AndNot(fileMask[0]).ShiftLeft(8) }
func (b Bitboard) SouthEast() Bitboard { return b.AndNot(fileMask[8]).ShiftRight(8) }
func (b Bitboard) SouthWest() Bitboard { return b.AndNot(fileMask[0]).ShiftRight(10) }

// Forward/Backward follow the mover's own perspective: Black moves
// toward increasing rankIdx, White toward decreasing rankIdx.
func (b Bitboard) Forward(c Color) Bitboard {
	if c == Black {
		return b.North()
	}
	return b.South()
}

// FillFile returns, for every file containing at least one set square
// in b, the whole file. Used by the pawn-drop nifu rule.
func (b Bitboard) FillFile() Bitboard {
	var out Bitboard
	for f := 0; f < 9; f++ {
		if b.And(fileMask[f]).IsNotEmpty() {
			out = out.Or(fileMask[f])
		}
	}
	return out
}

// Squares returns every set square, ascending, as a slice (for tests
// and debugging; not used on search-hot paths).
func (b Bitboard) Squares() []Square {
	var out []Square
	for b.IsNotEmpty() {
		var sq Square
		sq, b = b.PopLSB()
		out = append(out, sq)
	}
	return out
}
