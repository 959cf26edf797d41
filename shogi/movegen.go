package shogi

// allPieceTypes lists every on-board piece type except king, which is
// generated separately (it alone survives check-evasion's king-only
// short-circuit).
var allPieceTypes = []PieceType{
	Pawn, PromotedPawn, Lance, PromotedLance, Knight, PromotedKnight,
	Silver, PromotedSilver, Gold, Bishop, Rook, PromotedBishop, PromotedRook,
}

// generatePieceMoves emits every pseudo-legal normal/promotion move for
// c-colored pieces of type pt whose destination lies in destMask,
// following spec §4.D's three-step per-piece-kind algorithm.
func generatePieceMoves(dst *MoveList, p *Position, c Color, pt PieceType, destMask Bitboard) {
	occ := p.Occupancy()
	srcs := p.PieceBB(c, pt)
	canPromote := pt.CanPromote()
	zone := PromotionZone(c)
	mandatory := mandatoryPromotionZone(pt, c)

	for srcs.IsNotEmpty() {
		var src Square
		src, srcs = srcs.PopLSB()
		dests := PieceAttacks(pt, c, src, occ).And(destMask)
		fromInZone := zone.Get(src)
		for dests.IsNotEmpty() {
			var to Square
			to, dests = dests.PopLSB()
			if canPromote && mandatory.Get(to) {
				dst.Add(NewPromotionMove(src, to))
				continue
			}
			dst.Add(NewNormalMove(src, to))
			if canPromote && (fromInZone || zone.Get(to)) {
				dst.Add(NewPromotionMove(src, to))
			}
		}
	}
}

// generateDrops emits every pseudo-legal drop whose destination lies
// in destMask (destMask must already be restricted to empty squares by
// the caller for correctness; generateDrops re-checks emptiness anyway
// as a safety net).
func generateDrops(dst *MoveList, p *Position, c Color, destMask Bitboard) {
	empty := p.Occupancy().Not().And(boardFull)
	mask := destMask.And(empty)
	for _, pt := range DroppableTypes {
		if p.hand[c].Count(pt) == 0 {
			continue
		}
		candidates := mask
		for candidates.IsNotEmpty() {
			var to Square
			to, candidates = candidates.PopLSB()
			if dropRestriction(p, c, pt, to) {
				continue
			}
			dst.Add(NewDropMove(pt, to))
		}
	}
}

// generateKingMoves emits the king's normal moves (kings never
// promote, never drop).
func generateKingMoves(dst *MoveList, p *Position, c Color, destMask Bitboard) {
	src := p.kingSquare(c)
	if src == NoSquare {
		return
	}
	dests := KingAttacks(src).And(destMask)
	for dests.IsNotEmpty() {
		var to Square
		to, dests = dests.PopLSB()
		dst.Add(NewNormalMove(src, to))
	}
}

// GenerateAll emits every pseudo-legal move for the side to move,
// applying the check-evasion short-circuit of spec §4.D: in check,
// king moves come first, and — with exactly one checker — non-king
// destinations are restricted to the between-ray (plus the checker's
// own square) while drops are restricted to the between-ray alone;
// with two or more checkers only king moves are generated.
func (p *Position) GenerateAll(dst *MoveList) {
	c := p.stm
	own := p.ColorBB(c)
	generalMask := own.Not().And(boardFull)

	if p.checkers.IsEmpty() {
		generateKingMoves(dst, p, c, generalMask)
		for _, pt := range allPieceTypes {
			generatePieceMoves(dst, p, c, pt, generalMask)
		}
		generateDrops(dst, p, c, generalMask)
		return
	}

	generateKingMoves(dst, p, c, generalMask)
	if p.checkers.PopCount() > 1 {
		return
	}
	checkerSq := p.checkers.LSB()
	king := p.kingSquare(c)
	blockMask := BetweenRay(king, checkerSq).WithSquare(checkerSq).And(generalMask)
	for _, pt := range allPieceTypes {
		generatePieceMoves(dst, p, c, pt, blockMask)
	}
	generateDrops(dst, p, c, BetweenRay(king, checkerSq))
}

// GenerateCaptures emits every pseudo-legal capturing move (no drops —
// a drop can never capture).
func (p *Position) GenerateCaptures(dst *MoveList) {
	c := p.stm
	destMask := p.ColorBB(c.Flip())
	generateKingMoves(dst, p, c, destMask)
	for _, pt := range allPieceTypes {
		generatePieceMoves(dst, p, c, pt, destMask)
	}
}

// GenerateNonCaptures emits every pseudo-legal non-capturing move,
// including drops.
func (p *Position) GenerateNonCaptures(dst *MoveList) {
	c := p.stm
	empty := p.Occupancy().Not().And(boardFull)
	generateKingMoves(dst, p, c, empty)
	for _, pt := range allPieceTypes {
		generatePieceMoves(dst, p, c, pt, empty)
	}
	generateDrops(dst, p, c, empty)
}

// GenerateRecaptures emits every pseudo-legal move landing exactly on
// sq (used by quiescence's re-entry stage once a capture square is
// already known).
func (p *Position) GenerateRecaptures(dst *MoveList, sq Square) {
	c := p.stm
	destMask := sqMask[sq]
	generateKingMoves(dst, p, c, destMask)
	for _, pt := range allPieceTypes {
		generatePieceMoves(dst, p, c, pt, destMask)
	}
}

// Perft counts legal-move leaves at depth d, per spec §8 property 8.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var list MoveList
	p.GenerateAll(&list)
	var total uint64
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if !p.IsLegal(m) {
			continue
		}
		if depth == 1 {
			total++
			continue
		}
		next := p.ApplyMove(m)
		total += next.Perft(depth - 1)
	}
	return total
}

// PerftDivide returns, for every legal root move, the subtree leaf
// count at depth-1 — useful for isolating a movegen bug against a
// reference engine, one root branch at a time.
func (p *Position) PerftDivide(depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	var list MoveList
	p.GenerateAll(&list)
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if !p.IsLegal(m) {
			continue
		}
		if depth <= 1 {
			out[m] = 1
			continue
		}
		next := p.ApplyMove(m)
		out[m] = next.Perft(depth - 1)
	}
	return out
}
