package engine

import (
	"sync/atomic"

	"shogi-engine/shogi"
)

// stackFrame holds the per-ply principal-variation buffer used while
// unwinding the search — the Go equivalent of the source's StackFrame.
type stackFrame struct {
	pv shogi.PvList
}

// ThreadData is one worker's entire private state: its own copy of the
// root position, key history, node/seldepth counters, and search
// stack. Per spec §5, nothing here is shared between threads.
type ThreadData struct {
	id       int
	nodes    uint64 // atomic
	seldepth int32  // atomic

	maxDepth       int
	rootPos        shogi.Position
	keyHistory     []uint64
	rootDepth      int
	depthCompleted int
	lastScore      int
	lastPv         shogi.PvList

	stack [shogi.MaxDepth + 1]stackFrame
}

func (td *ThreadData) isMainThread() bool { return td.id == 0 }

func (td *ThreadData) incNodes() uint64       { return atomic.AddUint64(&td.nodes, 1) }
func (td *ThreadData) loadNodes() uint64      { return atomic.LoadUint64(&td.nodes) }
func (td *ThreadData) resetNodes()            { atomic.StoreUint64(&td.nodes, 0) }
func (td *ThreadData) loadSeldepth() int      { return int(atomic.LoadInt32(&td.seldepth)) }
func (td *ThreadData) resetSeldepth()         { atomic.StoreInt32(&td.seldepth, 0) }
func (td *ThreadData) updateSeldepth(ply int) {
	for {
		cur := atomic.LoadInt32(&td.seldepth)
		if int32(ply) <= cur {
			return
		}
		if atomic.CompareAndSwapInt32(&td.seldepth, cur, int32(ply)) {
			return
		}
	}
}

// reset prepares a thread for a fresh search from pos, with history
// keyHistory behind it.
func (td *ThreadData) reset(pos shogi.Position, keyHistory []uint64, maxDepth int) {
	td.rootPos = pos
	td.keyHistory = append(td.keyHistory[:0], keyHistory...)
	td.resetNodes()
	td.resetSeldepth()
	td.maxDepth = maxDepth
	td.depthCompleted = 0
	td.lastScore = 0
	td.lastPv.Reset()
}

// applyMove plays m from pos, extends this thread's key history, and
// returns the resulting position plus a closure that pops the history
// back off — the Go stand-in for the source's scope-exit
// ThreadPosGuard, since Go has no destructors; callers invoke it once
// the child search returns.
func (td *ThreadData) applyMove(pos *shogi.Position, m shogi.Move) (shogi.Position, func()) {
	next := pos.ApplyMove(m)
	td.keyHistory = append(td.keyHistory, next.Key())
	return next, func() { td.keyHistory = td.keyHistory[:len(td.keyHistory)-1] }
}
