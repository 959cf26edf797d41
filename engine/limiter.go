package engine

import "time"

// Limiter is queried by the searcher twice per use: StopSoft between
// iterative-deepening iterations, StopHard inside the move loop
// (throttled by the caller to every HardCheckInterval nodes so it
// doesn't pay for a clock syscall on every node). Re-architected as a
// plain interface over four concrete types per spec §9's instruction
// to drop the source's virtual-dispatch ISearchLimiter hierarchy in
// favor of a tagged variant.
type Limiter interface {
	StopSoft(nodes uint64, elapsed time.Duration) bool
	StopHard(nodes uint64, elapsed time.Duration) bool
}

// NodeLimiter stops once a fixed node budget is reached. StopSoft
// delegates straight to StopHard with no extra throttling — resolving
// spec §9's open question in the direction the source's own structure
// implies: node limits are an O(1) counter compare, cheap enough to
// check every iteration without a syscall.
type NodeLimiter struct {
	MaxNodes uint64
}

func (l NodeLimiter) StopHard(nodes uint64, _ time.Duration) bool { return nodes >= l.MaxNodes }
func (l NodeLimiter) StopSoft(nodes uint64, elapsed time.Duration) bool {
	return l.StopHard(nodes, elapsed)
}

// MoveTimeLimiter stops once a fixed wall-clock budget for this move
// elapses.
type MoveTimeLimiter struct {
	Start   time.Time
	MaxTime time.Duration
}

func (l MoveTimeLimiter) elapsed() time.Duration { return time.Since(l.Start) }

func (l MoveTimeLimiter) StopSoft(_ uint64, elapsed time.Duration) bool {
	return elapsed >= l.MaxTime
}
func (l MoveTimeLimiter) StopHard(nodes uint64, elapsed time.Duration) bool {
	return l.StopSoft(nodes, elapsed)
}

// TimeManager derives a per-move budget from the clock remaining on
// the game clock and the per-move increment, per spec §4.F's table:
// elapsed >= min(remaining-overhead, remaining*0.05 + increment*0.5).
type TimeManager struct {
	Start     time.Time
	Remaining time.Duration
	Increment time.Duration
	Overhead  time.Duration
}

func (l TimeManager) budget() time.Duration {
	a := l.Remaining - l.Overhead
	b := time.Duration(float64(l.Remaining)*0.05) + time.Duration(float64(l.Increment)*0.5)
	if a < b {
		return a
	}
	return b
}

func (l TimeManager) StopSoft(_ uint64, elapsed time.Duration) bool {
	return elapsed >= l.budget()
}
func (l TimeManager) StopHard(nodes uint64, elapsed time.Duration) bool {
	return l.StopSoft(nodes, elapsed)
}

// CompoundLimiter stops as soon as any one of its children would.
type CompoundLimiter struct {
	Children []Limiter
}

func (l CompoundLimiter) StopSoft(nodes uint64, elapsed time.Duration) bool {
	for _, c := range l.Children {
		if c.StopSoft(nodes, elapsed) {
			return true
		}
	}
	return false
}

func (l CompoundLimiter) StopHard(nodes uint64, elapsed time.Duration) bool {
	for _, c := range l.Children {
		if c.StopHard(nodes, elapsed) {
			return true
		}
	}
	return false
}

// InfiniteLimiter never stops on its own (a search running under
// "infinite" mode, stopped only by an explicit Stop() call).
type InfiniteLimiter struct{}

func (InfiniteLimiter) StopSoft(uint64, time.Duration) bool { return false }
func (InfiniteLimiter) StopHard(uint64, time.Duration) bool { return false }
