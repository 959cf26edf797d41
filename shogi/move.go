package shogi

import "fmt"

// Move is a 16-bit opaque token. Bits 0..6 hold the destination
// square; bits 7..13 hold either the origin square (normal/promotion
// moves) or a drop-piece index into DroppableTypes (drop moves); bit
// 14 is the promotion flag; bit 15 is the drop flag. The zero value is
// the null move.
type Move uint16

const NullMove Move = 0

const (
	moveToMask   = 0x7F
	moveFromShift = 7
	moveFromMask  = 0x7F
	movePromoBit  = 1 << 14
	moveDropBit   = 1 << 15
)

// NewNormalMove builds a non-promoting from/to move.
func NewNormalMove(from, to Square) Move {
	return Move(uint16(to)&moveToMask | (uint16(from)&moveFromMask)<<moveFromShift)
}

// NewPromotionMove builds a promoting from/to move.
func NewPromotionMove(from, to Square) Move {
	return NewNormalMove(from, to) | movePromoBit
}

// NewDropMove builds a drop of pt onto to. pt must be droppable.
func NewDropMove(pt PieceType, to Square) Move {
	idx := dropIndexOf(pt)
	if idx < 0 {
		panic(fmt.Sprintf("shogi: piece type %v cannot be dropped", pt))
	}
	return Move(uint16(to)&moveToMask|(uint16(idx)&moveFromMask)<<moveFromShift) | moveDropBit
}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool { return m == NullMove }

// IsDrop reports whether m is a drop move.
func (m Move) IsDrop() bool { return m&moveDropBit != 0 }

// IsPromotion reports whether m carries the promotion flag. Never true
// for a drop.
func (m Move) IsPromotion() bool { return !m.IsDrop() && m&movePromoBit != 0 }

// To returns the destination square.
func (m Move) To() Square { return Square(m & moveToMask) }

// From returns the origin square. Only valid when !IsDrop().
func (m Move) From() Square { return Square((m >> moveFromShift) & moveFromMask) }

// DropPiece returns the dropped piece type. Only valid when IsDrop().
func (m Move) DropPiece() PieceType {
	idx := int((m >> moveFromShift) & moveFromMask)
	return DroppableTypes[idx]
}

// String renders m in USI move-text form.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	if m.IsDrop() {
		return fmt.Sprintf("%s*%s", m.DropPiece().String(), m.To().String())
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += "+"
	}
	return s
}

// ParseMoveUSI parses a USI move-text token (e.g. "7g7f", "7g7f+",
// "P*3d") into a Move. It does not validate legality, only shape.
func ParseMoveUSI(s string) (Move, error) {
	if s == "0000" || s == "resign" {
		return NullMove, nil
	}
	if len(s) >= 4 && s[1] == '*' {
		pt, ok := pieceTypeFromLetter(s[0])
		if !ok || pt == King {
			return NullMove, fmt.Errorf("shogi: invalid drop piece in move %q", s)
		}
		to, err := ParseSquare(s[2:4])
		if err != nil {
			return NullMove, err
		}
		return NewDropMove(pt, to), nil
	}
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("shogi: invalid move text %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, err
	}
	if len(s) == 5 {
		if s[4] != '+' {
			return NullMove, fmt.Errorf("shogi: invalid move suffix in %q", s)
		}
		return NewPromotionMove(from, to), nil
	}
	return NewNormalMove(from, to), nil
}

// MaxMoves bounds a MoveList's capacity.
const MaxMoves = 600

// MoveList is a fixed-capacity sequence of moves.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

func (l *MoveList) Add(m Move) {
	l.moves[l.n] = m
	l.n++
}

func (l *MoveList) Len() int       { return l.n }
func (l *MoveList) At(i int) Move  { return l.moves[i] }
func (l *MoveList) Reset()         { l.n = 0 }
func (l *MoveList) Slice() []Move  { return l.moves[:l.n] }

func (l *MoveList) Contains(m Move) bool {
	for i := 0; i < l.n; i++ {
		if l.moves[i] == m {
			return true
		}
	}
	return false
}

// MaxDepth bounds recursion depth and PvList capacity.
const MaxDepth = 128

// PvList is a fixed-capacity principal-variation buffer.
type PvList struct {
	moves [MaxDepth]Move
	n     int
}

func (p *PvList) Len() int      { return p.n }
func (p *PvList) At(i int) Move { return p.moves[i] }
func (p *PvList) Reset()        { p.n = 0 }

// SetFrom stores m followed by child's moves, truncating to capacity.
func (p *PvList) SetFrom(m Move, child *PvList) {
	p.n = 0
	p.moves[p.n] = m
	p.n++
	for i := 0; i < child.n && p.n < MaxDepth; i++ {
		p.moves[p.n] = child.moves[i]
		p.n++
	}
}

func (p *PvList) Slice() []Move { return p.moves[:p.n] }

func (p *PvList) String() string {
	s := ""
	for i := 0; i < p.n; i++ {
		if i > 0 {
			s += " "
		}
		s += p.moves[i].String()
	}
	return s
}
