package shogi

// seeValue is the fixed piece-value table used only by the static
// exchange evaluator — distinct from the search's static evaluation
// weights (spec §4.F).
var seeValueTable = map[PieceType]int{
	Pawn: 100, Lance: 300, Knight: 400, Silver: 500, Gold: 600,
	Bishop: 800, Rook: 1000,
	PromotedPawn: 600, PromotedLance: 600, PromotedKnight: 600, PromotedSilver: 600,
	PromotedBishop: 1000, PromotedRook: 1200,
	King: 20000,
}

func seeValue(pt PieceType) int { return seeValueTable[pt] }

// leastValuableAttacker returns the cheapest attacker of color side
// within attackers, or (NoSquare, ...) if attackers is empty.
func (p *Position) leastValuableAttacker(side Color, attackers Bitboard) (Square, PieceType, bool) {
	bb := attackers.And(p.ColorBB(side))
	if bb.IsEmpty() {
		return NoSquare, 0, false
	}
	best := NoSquare
	bestVal := 1 << 30
	bestType := PieceType(0)
	for bb.IsNotEmpty() {
		var sq Square
		sq, bb = bb.PopLSB()
		pt := p.mailbox[sq].Type()
		v := seeValue(pt)
		if v < bestVal {
			bestVal, best, bestType = v, sq, pt
		}
	}
	return best, bestType, true
}

// SEE simulates the capture sequence on move's destination square,
// alternating sides and always using the least valuable attacker,
// revealing x-ray attackers as pieces are removed, and stopping a side
// early if its only remaining attacker is a king that would recapture
// into a still-attacked square. It reports whether the initiating
// side's net material gain is at least threshold.
func (p *Position) SEE(m Move, threshold int) bool {
	to := m.To()

	var occ Bitboard = p.Occupancy()
	var gain0 int
	var onSquareValue int
	initiator := p.stm

	if m.IsDrop() {
		onSquareValue = seeValue(m.DropPiece())
	} else {
		from := m.From()
		attackerType := p.mailbox[from].Type()
		if victim := p.mailbox[to]; !victim.IsNone() {
			gain0 = seeValue(victim.Type())
		}
		occ = occ.WithoutSquare(from)
		if m.IsPromotion() {
			attackerType = attackerType.Promoted()
		}
		onSquareValue = seeValue(attackerType)
	}

	gains := []int{gain0}
	side := initiator.Flip()
	lastValue := onSquareValue

	for {
		attackers := p.AttackersTo(to, side, occ)
		sq, pt, ok := p.leastValuableAttacker(side, attackers)
		if !ok {
			break
		}
		if pt == King {
			afterOcc := occ.WithoutSquare(sq)
			if p.IsAttacked(to, side.Flip(), afterOcc) {
				break
			}
		}
		gains = append(gains, lastValue-gains[len(gains)-1])
		occ = occ.WithoutSquare(sq)
		lastValue = seeValue(pt)
		side = side.Flip()
	}

	for i := len(gains) - 1; i > 0; i-- {
		if -gains[i] < gains[i-1] {
			gains[i-1] = -gains[i]
		}
	}
	return gains[0] >= threshold
}
