package shogi

// SennichiteResult is the outcome of testSennichite at a search node.
type SennichiteResult int

const (
	SennichiteNone SennichiteResult = iota
	SennichiteDraw
	SennichiteWin
)

// Position is the full shogi state machine. It is treated as
// value-typed: the only way to advance it is ApplyMove/ApplyNullMove,
// each of which returns a new Position, leaving the receiver
// untouched.
type Position struct {
	byColor [2]Bitboard
	byType  [PieceTypeCount]Bitboard
	mailbox [SquareCount]Piece

	hand [2]Hand
	keys PositionKeys

	stm       Color
	moveCount int

	consecutiveChecks [2]int
	checkers          Bitboard
	pinned            Bitboard
}

// Occupancy returns the union of both colors' pieces.
func (p *Position) Occupancy() Bitboard { return p.byColor[Black].Or(p.byColor[White]) }

// ColorBB returns every square occupied by color c.
func (p *Position) ColorBB(c Color) Bitboard { return p.byColor[c] }

// PieceBB returns every square occupied by a c-colored pt.
func (p *Position) PieceBB(c Color, pt PieceType) Bitboard { return p.byColor[c].And(p.byType[pt]) }

// PieceOn returns the piece (possibly NoPiece) on sq.
func (p *Position) PieceOn(sq Square) Piece { return p.mailbox[sq] }

// Hand returns color c's hand.
func (p *Position) Hand(c Color) Hand { return p.hand[c] }

// SideToMove returns whose turn it is.
func (p *Position) SideToMove() Color { return p.stm }

// MoveCount returns the running move counter (incremented every ply,
// echoing spec §4.C step 5's literal instruction).
func (p *Position) MoveCount() int { return p.moveCount }

// Key returns the current Zobrist-style hash.
func (p *Position) Key() uint64 { return p.keys.Key }

// Checkers returns the side-to-move king's attackers.
func (p *Position) Checkers() Bitboard { return p.checkers }

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.checkers.IsNotEmpty() }

// Pinned returns the side-to-move's pieces pinned against its king.
func (p *Position) Pinned() Bitboard { return p.pinned }

// ConsecutiveChecks returns c's running count of consecutive plies in
// which c's opponent delivered check to c (used by testSennichite).
func (p *Position) ConsecutiveChecks(c Color) int { return p.consecutiveChecks[c] }

func (p *Position) kingSquare(c Color) Square { return p.PieceBB(c, King).LSB() }

// KingSquare exposes kingSquare for callers outside the package (SEE,
// search, tests).
func (p *Position) KingSquare(c Color) Square { return p.kingSquare(c) }

func (p *Position) placePiece(c Color, pt PieceType, sq Square) {
	p.byColor[c] = p.byColor[c].WithSquare(sq)
	p.byType[pt] = p.byType[pt].WithSquare(sq)
	p.mailbox[sq] = NewPiece(c, pt)
	p.keys = p.keys.TogglePiece(c, pt, sq)
}

func (p *Position) removePiece(c Color, pt PieceType, sq Square) {
	p.byColor[c] = p.byColor[c].WithoutSquare(sq)
	p.byType[pt] = p.byType[pt].WithoutSquare(sq)
	p.mailbox[sq] = NoPiece
	p.keys = p.keys.TogglePiece(c, pt, sq)
}

// AttackersTo returns every attackerColor piece attacking sq given
// occupancy occ, via the standard reversed-attack-pattern trick: a
// piece of type pt and color attackerColor on square s attacks sq iff
// sq lies in PieceAttacks(pt, attackerColor, s, occ); equivalently s
// lies in PieceAttacks(pt, attackerColor.Flip(), sq, occ), since every
// attack pattern in this package is symmetric under that reversal.
func (p *Position) AttackersTo(sq Square, attackerColor Color, occ Bitboard) Bitboard {
	var out Bitboard
	for pt := PieceType(0); pt < PieceTypeCount; pt++ {
		// Masking by occ (not just the static board) matters once a
		// caller passes an occ that has shrunk mid-simulation — SEE's
		// exchange loop removes squares as pieces are "captured", and
		// without this mask an already-removed attacker could be
		// rediscovered on a later iteration.
		bb := p.PieceBB(attackerColor, pt).And(occ)
		if bb.IsEmpty() {
			continue
		}
		out = out.Or(bb.And(PieceAttacks(pt, attackerColor.Flip(), sq, occ)))
	}
	return out
}

// IsAttacked reports whether any attackerColor piece attacks sq.
func (p *Position) IsAttacked(sq Square, attackerColor Color, occ Bitboard) bool {
	return p.AttackersTo(sq, attackerColor, occ).IsNotEmpty()
}

var pinSliderTypes = []PieceType{Lance, Bishop, Rook, PromotedBishop, PromotedRook}

func (p *Position) computePinned(c Color) Bitboard {
	enemy := c.Flip()
	king := p.kingSquare(c)
	if king == NoSquare {
		return Bitboard{}
	}
	var pinned Bitboard
	for _, pt := range pinSliderTypes {
		bb := p.PieceBB(enemy, pt)
		for bb.IsNotEmpty() {
			var s Square
			s, bb = bb.PopLSB()
			unblocked := PieceAttacks(pt, enemy, s, Bitboard{})
			if !unblocked.Get(king) {
				continue
			}
			between := BetweenRay(s, king).And(p.Occupancy())
			if between.PopCount() != 1 {
				continue
			}
			blocker := between.LSB()
			if p.mailbox[blocker].Color() == c {
				pinned = pinned.WithSquare(blocker)
			}
		}
	}
	return pinned
}

func (p *Position) refreshCheckAndPinState() {
	p.checkers = p.AttackersTo(p.kingSquare(p.stm), p.stm.Flip(), p.Occupancy())
	p.pinned = p.computePinned(p.stm)
}

// ApplyMove returns the position reached by playing m (assumed
// pseudolegal; callers must have filtered with IsLegal first — per
// spec §4.C, illegal moves are never applied).
func (p Position) ApplyMove(m Move) Position {
	np := p
	mover := p.stm

	if m.IsDrop() {
		pt := m.DropPiece()
		to := m.To()
		old := np.hand[mover].Count(pt)
		np.hand[mover], _ = np.hand[mover].Decrement(pt)
		np.keys = np.keys.ChangeHand(mover, pt, old, old-1)
		np.placePiece(mover, pt, to)
	} else {
		from, to := m.From(), m.To()
		moving := np.mailbox[from]
		pt := moving.Type()

		if captured := np.mailbox[to]; !captured.IsNone() {
			capType := captured.Type().Unpromoted()
			np.removePiece(captured.Color(), captured.Type(), to)
			old := np.hand[mover].Count(capType)
			np.hand[mover], _ = np.hand[mover].Increment(capType)
			np.keys = np.keys.ChangeHand(mover, capType, old, old+1)
		}

		np.removePiece(mover, pt, from)
		destType := pt
		if m.IsPromotion() {
			destType = pt.Promoted()
		}
		np.placePiece(mover, destType, to)
	}

	np.moveCount++
	np.stm = mover.Flip()
	np.keys = np.keys.ToggleSide()
	np.refreshCheckAndPinState()
	if np.checkers.IsNotEmpty() {
		np.consecutiveChecks[np.stm]++
	} else {
		np.consecutiveChecks[np.stm] = 0
	}
	return np
}

// ApplyNullMove flips the side to move without touching the board.
// Consecutive-check bookkeeping is untouched, per spec §4.C.
func (p Position) ApplyNullMove() Position {
	np := p
	np.stm = p.stm.Flip()
	np.keys = np.keys.ToggleSide()
	np.refreshCheckAndPinState()
	return np
}

// IsCapture reports whether m would capture a piece.
func (p *Position) IsCapture(m Move) bool {
	if m.IsDrop() {
		return false
	}
	return !p.mailbox[m.To()].IsNone()
}

func mandatoryPromotionZone(pt PieceType, c Color) Bitboard {
	switch pt {
	case Pawn, Lance:
		return LastRank(c)
	case Knight:
		return LastTwoRanks(c)
	default:
		return Bitboard{}
	}
}

// dropRestriction reports whether dropping pt at to is forbidden by a
// type-specific drop rule, independent of board occupancy (nifu and
// last-rank/last-two-rank bans). hand/occupancy checks are the
// caller's responsibility.
func dropRestriction(p *Position, c Color, pt PieceType, to Square) bool {
	switch pt {
	case Pawn:
		if LastRank(c).Get(to) {
			return true
		}
		if p.PieceBB(c, Pawn).FillFile().Get(to) {
			return true // nifu
		}
	case Lance:
		if LastRank(c).Get(to) {
			return true
		}
	case Knight:
		if LastTwoRanks(c).Get(to) {
			return true
		}
	}
	return false
}

// IsPseudolegal checks shape, ownership, promotion validity, and drop
// restrictions, but not whether the mover is left in check.
func (p *Position) IsPseudolegal(m Move) bool {
	if m.IsNull() || !m.To().IsValid() {
		return false
	}
	c := p.stm
	to := m.To()

	if m.IsDrop() {
		pt := m.DropPiece()
		if p.hand[c].Count(pt) == 0 {
			return false
		}
		if !p.mailbox[to].IsNone() {
			return false
		}
		return !dropRestriction(p, c, pt, to)
	}

	from := m.From()
	if !from.IsValid() {
		return false
	}
	moving := p.mailbox[from]
	if moving.IsNone() || moving.Color() != c {
		return false
	}
	target := p.mailbox[to]
	if !target.IsNone() && target.Color() == c {
		return false
	}
	if !target.IsNone() && target.Type() == King {
		return false
	}

	pt := moving.Type()
	if m.IsPromotion() {
		if !pt.CanPromote() {
			return false
		}
		if !PromotionZone(c).Get(from) && !PromotionZone(c).Get(to) {
			return false
		}
	} else if mandatoryPromotionZone(pt, c).Get(to) {
		return false
	}

	return PieceAttacks(pt, c, from, p.Occupancy()).Get(to)
}

// IsLegal assumes IsPseudolegal(m) and additionally rejects moves that
// leave the mover in check, including the pawn-drop-mate special case.
func (p *Position) IsLegal(m Move) bool {
	c := p.stm
	king := p.kingSquare(c)
	nCheckers := p.checkers.PopCount()

	if m.IsDrop() {
		if nCheckers > 1 {
			return false
		}
		if nCheckers == 1 {
			checkerSq := p.checkers.LSB()
			if !BetweenRay(king, checkerSq).Get(m.To()) {
				return false
			}
		}
		if m.DropPiece() == Pawn {
			next := p.ApplyMove(m)
			if next.InCheck() && !next.hasAnyLegalMove() {
				return false
			}
		}
		return true
	}

	from, to := m.From(), m.To()
	if from == king {
		occWithoutKing := p.Occupancy().WithoutSquare(from)
		return !p.IsAttacked(to, c.Flip(), occWithoutKing)
	}

	if nCheckers > 1 {
		return false
	}
	if p.pinned.Get(from) {
		if !IntersectingRay(from, king).Get(to) {
			return false
		}
	}
	if nCheckers == 1 {
		checkerSq := p.checkers.LSB()
		if !BetweenRay(king, checkerSq).Get(to) && to != checkerSq {
			return false
		}
	}
	return true
}

// hasAnyLegalMove is the slow pawn-drop-mate check: does the side to
// move (the player facing the dropped pawn's check) have any reply?
func (p *Position) hasAnyLegalMove() bool {
	var list MoveList
	p.GenerateAll(&list)
	for i := 0; i < list.Len(); i++ {
		if p.IsLegal(list.At(i)) {
			return true
		}
	}
	return false
}

// RegenKey recomputes the Zobrist-style hash from scratch (piece
// placement, hand counts, side to move) and returns it, without
// mutating p. Used by tests to verify spec §8 property 1 and by SFEN
// parsing to establish the initial key.
func (p *Position) RegenKey() uint64 {
	var k PositionKeys
	for sq := Square(0); sq < SquareCount; sq++ {
		pc := p.mailbox[sq]
		if !pc.IsNone() {
			k = k.TogglePiece(pc.Color(), pc.Type(), sq)
		}
	}
	for c := Black; c <= White; c++ {
		for _, pt := range DroppableTypes {
			cnt := p.hand[c].Count(pt)
			if cnt > 0 {
				k.Key ^= handKey(c, pt, cnt)
			}
		}
	}
	if p.stm == White {
		k = k.ToggleSide()
	}
	return k.Key
}

// TestSennichite inspects keyHistory (every second entry, same side to
// move as the current node) up to limit plies back for repetitions of
// the current key, per spec §4.C.
func (p *Position) TestSennichite(keyHistory []uint64, cuteChessWorkaround bool, limit int) SennichiteResult {
	if limit <= 0 {
		limit = 16
	}
	count := 1
	end := len(keyHistory) - limit
	if end < 0 {
		end = 0
	}
	// keyHistory's last entry is p's own key (the caller appends it
	// before calling in); start two plies further back to land on the
	// nearest entry with the same side to move, skipping both self
	// (len-1) and the opposite-parity entry right before it (len-2).
	for i := len(keyHistory) - 3; i >= end; i -= 2 {
		if keyHistory[i] == p.keys.Key {
			count++
		}
	}
	if count < 4 {
		return SennichiteNone
	}
	if cuteChessWorkaround {
		if p.InCheck() {
			return SennichiteWin
		}
		return SennichiteDraw
	}
	if p.consecutiveChecks[p.stm] >= 2 {
		return SennichiteWin
	}
	return SennichiteDraw
}
