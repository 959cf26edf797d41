package shogi

// DroppablePieceCount is the number of piece types that can ever sit in
// a hand: pawn, lance, knight, silver, gold, bishop, rook.
const DroppablePieceCount = 7

// DroppableTypes lists the droppable piece types in SFEN hand order
// (Rook Bishop Gold Silver Knight Lance Pawn), matching §6's textual
// ordering; index into it is also the drop-piece index used by Move.
var DroppableTypes = [DroppablePieceCount]PieceType{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

func dropIndexOf(pt PieceType) int {
	for i, t := range DroppableTypes {
		if t == pt {
			return i
		}
	}
	return -1
}

// handShift/handBits record the packed layout: pawn gets 5 bits (cap
// 18), lance/knight/silver/gold get 3 bits each (cap 4), bishop/rook
// get 2 bits each (cap 2). Total 5 + 4*3 + 2*2 = 21 bits, fits in 32.
var handShift = map[PieceType]uint{
	Pawn: 0, Lance: 5, Knight: 8, Silver: 11, Gold: 14, Bishop: 17, Rook: 19,
}

var handMax = map[PieceType]uint32{
	Pawn: 18, Lance: 4, Knight: 4, Silver: 4, Gold: 4, Bishop: 2, Rook: 2,
}

var handMaskBits = map[PieceType]uint32{
	Pawn: 0x1F, Lance: 0x7, Knight: 0x7, Silver: 0x7, Gold: 0x7, Bishop: 0x3, Rook: 0x3,
}

// Hand is a packed count of uncaptured unpromoted pieces held off-board
// by one color.
type Hand uint32

// Count returns the number of pt held. pt must be a droppable type.
func (h Hand) Count(pt PieceType) int {
	sh, ok := handShift[pt]
	if !ok {
		return 0
	}
	return int((uint32(h) >> sh) & handMaskBits[pt])
}

// Set returns a Hand with pt's count set to n (not clamped; callers
// must respect the per-type cap).
func (h Hand) Set(pt PieceType, n int) Hand {
	sh, ok := handShift[pt]
	if !ok {
		return h
	}
	mask := handMaskBits[pt] << sh
	return Hand((uint32(h) &^ mask) | (uint32(n) << sh))
}

// Increment returns the hand with pt's count raised by one and that
// new count.
func (h Hand) Increment(pt PieceType) (Hand, int) {
	n := h.Count(pt) + 1
	return h.Set(pt, n), n
}

// Decrement returns the hand with pt's count lowered by one and that
// new count. Panics if the count was already zero (programmer error —
// callers must check before dropping).
func (h Hand) Decrement(pt PieceType) (Hand, int) {
	n := h.Count(pt)
	if n == 0 {
		panic("shogi: decrementing empty hand slot")
	}
	n--
	return h.Set(pt, n), n
}

// IsEmpty reports whether every slot is zero.
func (h Hand) IsEmpty() bool { return h == 0 }

// Max returns the cap for pt.
func (pt PieceType) Max() int {
	if m, ok := handMax[pt]; ok {
		return int(m)
	}
	return 0
}
