package engine

import (
	"testing"
	"time"
)

func TestNodeLimiterStopsAtBudget(t *testing.T) {
	l := NodeLimiter{MaxNodes: 1000}
	if l.StopHard(999, 0) {
		t.Fatalf("should not stop below budget")
	}
	if !l.StopHard(1000, 0) {
		t.Fatalf("should stop at budget")
	}
	if l.StopSoft(500, 0) != l.StopHard(500, 0) {
		t.Fatalf("NodeLimiter.StopSoft must delegate straight to StopHard")
	}
}

func TestMoveTimeLimiterStopsAfterDeadline(t *testing.T) {
	l := MoveTimeLimiter{MaxTime: 50 * time.Millisecond}
	if l.StopSoft(0, 10*time.Millisecond) {
		t.Fatalf("should not stop before the deadline")
	}
	if !l.StopSoft(0, 60*time.Millisecond) {
		t.Fatalf("should stop past the deadline")
	}
}

func TestTimeManagerBudgetPicksTheSmallerBound(t *testing.T) {
	l := TimeManager{Remaining: 10 * time.Second, Increment: 0, Overhead: 1 * time.Second}
	// remaining-overhead = 9s, remaining*0.05 = 500ms -> budget should
	// be the 500ms bound.
	got := l.budget()
	if got != 500*time.Millisecond {
		t.Fatalf("budget() = %v, want 500ms", got)
	}
}

func TestCompoundLimiterStopsOnFirstChild(t *testing.T) {
	l := CompoundLimiter{Children: []Limiter{
		NodeLimiter{MaxNodes: 1 << 40},
		MoveTimeLimiter{MaxTime: 10 * time.Millisecond},
	}}
	if l.StopSoft(0, 0) {
		t.Fatalf("should not stop immediately")
	}
	if !l.StopSoft(0, 20*time.Millisecond) {
		t.Fatalf("should stop once the move-time child fires")
	}
}

func TestInfiniteLimiterNeverStops(t *testing.T) {
	l := InfiniteLimiter{}
	if l.StopSoft(1<<62, 365*24*time.Hour) || l.StopHard(1<<62, 365*24*time.Hour) {
		t.Fatalf("InfiniteLimiter must never request a stop")
	}
}
