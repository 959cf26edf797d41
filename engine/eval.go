package engine

import "shogi-engine/shogi"

// materialValue is the search's evaluation weight table — distinct
// from shogi.SEE's fixed exchange-value table, per spec §4.F.
var materialValue = map[shogi.PieceType]int{
	shogi.Pawn: 90, shogi.Lance: 315, shogi.Knight: 405, shogi.Silver: 495,
	shogi.Gold: 540, shogi.Bishop: 855, shogi.Rook: 990, shogi.King: 0,
	shogi.PromotedPawn: 540, shogi.PromotedLance: 540, shogi.PromotedKnight: 540,
	shogi.PromotedSilver: 540, shogi.PromotedBishop: 945, shogi.PromotedRook: 1395,
}

// handValue mirrors materialValue for pieces held off-board (dropped
// pieces are worth the same as their board-resident unpromoted form).
func handValue(pt shogi.PieceType) int { return materialValue[pt.Unpromoted()] }

// kingSafetyScale sets how strongly a thin ring of defenders around
// one's own king is rewarded, raised to kingSafetyPower to penalize
// sparse shields nonlinearly harder than dense ones.
const (
	kingSafetyScale = 48
	kingSafetyPower = 2
)

// winScore bounds the non-mate evaluation range; only genuine mate
// scores (see tt.go's MateValue) may cross it, per spec §4.F.
const winScore = MateValue - 2*shogi.MaxDepth

func clampScore(score int) int {
	if score > winScore-1 {
		return winScore - 1
	}
	if score < -(winScore - 1) {
		return -(winScore - 1)
	}
	return score
}

// kingSafety returns a small bonus for c based on the fraction of the
// eight squares around c's king occupied by c's own pieces.
func kingSafety(pos *shogi.Position, c shogi.Color) int {
	king := pos.KingSquare(c)
	if king == shogi.NoSquare {
		return 0
	}
	ring := shogi.KingAttacks(king)
	friendly := ring.And(pos.ColorBB(c)).PopCount()
	total := ring.PopCount()
	if total == 0 {
		return 0
	}
	frac := float64(friendly) / float64(total)
	bonus := 1.0
	for i := 0; i < kingSafetyPower; i++ {
		bonus *= frac
	}
	return int(bonus * kingSafetyScale)
}

// Evaluate returns a deterministic, side-to-move-relative score:
// material imbalance (board plus both hands) plus a lightweight
// king-safety term, clamped so only mate scores cross winScore.
func Evaluate(pos *shogi.Position) int {
	score := 0
	for pt, v := range materialValue {
		diff := pos.PieceBB(shogi.Black, pt).PopCount() - pos.PieceBB(shogi.White, pt).PopCount()
		score += diff * v
	}
	for _, pt := range shogi.DroppableTypes {
		diff := pos.Hand(shogi.Black).Count(pt) - pos.Hand(shogi.White).Count(pt)
		score += diff * handValue(pt)
	}
	score += kingSafety(pos, shogi.Black) - kingSafety(pos, shogi.White)

	if pos.SideToMove() == shogi.White {
		score = -score
	}
	return clampScore(score)
}
