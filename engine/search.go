package engine

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"shogi-engine/shogi"
)

// HardCheckInterval throttles the inner-loop stopHard check to avoid
// paying for a clock syscall on every node, per spec §5.
const HardCheckInterval = 2048

// lmrTable[d][m] precomputes the late-move-reduction formula of spec
// §4.F: floor(0.2 + ln(d)*ln(m)/3.5), for d, m in [1, 256) x [1, 64) —
// computed once at package init, matching the teacher's habit of
// precomputing tuning tables at load rather than on every probe.
var lmrTable [256][64]int8

func init() {
	for d := 1; d < 256; d++ {
		for m := 1; m < 64; m++ {
			r := 0.2 + math.Log(float64(d))*math.Log(float64(m))/3.5
			if r < 0 {
				r = 0
			}
			lmrTable[d][m] = int8(math.Floor(r))
		}
	}
}

func lmrReduction(depth, moveNumber int) int {
	if depth < 1 {
		depth = 1
	} else if depth > 255 {
		depth = 255
	}
	if moveNumber < 1 {
		moveNumber = 1
	} else if moveNumber > 63 {
		moveNumber = 63
	}
	return int(lmrTable[depth][moveNumber])
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Searcher coordinates a pool of worker goroutines, a shared
// transposition table, and a shared stop flag through three reusable
// barriers, per spec §4.F/§5. Each worker otherwise owns its own
// Position, key history, and search stack — nothing else is shared.
type Searcher struct {
	tt      *TranspositionTable
	threads []*ThreadData
	g       errgroup.Group

	searchMutex sync.Mutex
	startTime   time.Time

	resetBarrier     *Barrier
	idleBarrier      *Barrier
	searchEndBarrier *Barrier

	stopMu         sync.Mutex
	stopCond       *sync.Cond
	runningThreads atomic.Int32

	stop     atomic.Bool
	quit     atomic.Bool
	infinite atomic.Bool

	limiter             Limiter
	rootMoves           shogi.MoveList
	cuteChessWorkaround bool

	reporter   Reporter
	numThreads int
	launched   bool
}

// NewSearcher builds a Searcher with numThreads worker goroutines
// sharing tt, reporting progress through reporter.
func NewSearcher(numThreads int, tt *TranspositionTable, reporter Reporter) *Searcher {
	if numThreads < 1 {
		numThreads = 1
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	s := &Searcher{tt: tt, reporter: reporter, numThreads: numThreads}
	s.stopCond = sync.NewCond(&s.stopMu)
	s.allocateThreadState(numThreads)
	s.launch()
	return s
}

func (s *Searcher) allocateThreadState(n int) {
	s.threads = make([]*ThreadData, n)
	for i := range s.threads {
		s.threads[i] = &ThreadData{id: i}
	}
	s.resetBarrier = NewBarrier(n + 1)
	s.idleBarrier = NewBarrier(n + 1)
	s.searchEndBarrier = NewBarrier(n)
}

func (s *Searcher) launch() {
	s.quit.Store(false)
	s.g = errgroup.Group{}
	for i := 0; i < s.numThreads; i++ {
		id := i
		s.g.Go(func() error { return s.workerLoop(id) })
	}
	s.launched = true
}

func (s *Searcher) shutdownLocked() {
	if !s.launched {
		return
	}
	s.quit.Store(true)
	s.resetBarrier.Wait()
	s.idleBarrier.Wait()
	_ = s.g.Wait()
	s.launched = false
}

// SetThreads changes the worker-pool size. Forbidden while a search is
// in progress, per spec §5.
func (s *Searcher) SetThreads(n int) {
	s.searchMutex.Lock()
	defer s.searchMutex.Unlock()
	if n < 1 {
		n = 1
	}
	s.shutdownLocked()
	s.numThreads = n
	s.allocateThreadState(n)
	s.launch()
}

// Close permanently stops every worker goroutine.
func (s *Searcher) Close() {
	s.searchMutex.Lock()
	defer s.searchMutex.Unlock()
	s.shutdownLocked()
}

func (s *Searcher) workerLoop(id int) error {
	for {
		s.resetBarrier.Wait()
		s.idleBarrier.Wait()
		if s.quit.Load() {
			return nil
		}
		s.runIterativeDeepening(s.threads[id])
		s.searchEndBarrier.Wait()
		if s.runningThreads.Add(-1) == 0 {
			s.stopMu.Lock()
			s.stopCond.Broadcast()
			s.stopMu.Unlock()
		}
	}
}

// StartSearch arms the limiter, copies pos and keyHistory into every
// worker, releases the pool, and blocks until the search concludes
// (by exhausting maxDepth, by the limiter, or by a concurrent Stop
// call), returning the recorded best move. This folds spec §4.F's
// start-of-search path and its "main coordinator blocks for the
// lifetime of a search" description into one synchronous call, the
// natural shape for a Go caller (as opposed to the source's
// fire-and-poll startSearch/isSearching pair).
func (s *Searcher) StartSearch(pos shogi.Position, keyHistory []uint64, maxDepth int, limiter Limiter, infinite, cuteChessWorkaround bool) BestMove {
	s.searchMutex.Lock()
	defer s.searchMutex.Unlock()

	s.resetBarrier.Wait()

	s.tt.Finalize()
	s.limiter = limiter
	s.infinite.Store(infinite)
	s.cuteChessWorkaround = cuteChessWorkaround
	s.startTime = time.Now()

	s.rootMoves.Reset()
	var all shogi.MoveList
	pos.GenerateAll(&all)
	for i := 0; i < all.Len(); i++ {
		m := all.At(i)
		if pos.IsLegal(m) {
			s.rootMoves.Add(m)
		}
	}

	for _, td := range s.threads {
		td.reset(pos, keyHistory, maxDepth)
	}

	s.stop.Store(false)
	s.runningThreads.Store(int32(s.numThreads))

	s.idleBarrier.Wait()

	s.stopMu.Lock()
	for s.runningThreads.Load() != 0 {
		s.stopCond.Wait()
	}
	s.stopMu.Unlock()

	return s.collectBestMove()
}

// Stop requests cancellation and blocks until every worker has
// observed it and exited its search.
func (s *Searcher) Stop() {
	s.stop.Store(true)
	s.stopMu.Lock()
	for s.runningThreads.Load() != 0 {
		s.stopCond.Wait()
	}
	s.stopMu.Unlock()
}

// TotalNodes sums the node counters across every worker thread.
func (s *Searcher) TotalNodes() uint64 {
	var total uint64
	for _, td := range s.threads {
		total += td.loadNodes()
	}
	return total
}

func (s *Searcher) collectBestMove() BestMove {
	main := s.threads[0]
	var mv shogi.Move
	if main.lastPv.Len() > 0 {
		mv = main.lastPv.At(0)
	}
	bm := BestMove{Move: mv, Score: main.lastScore}
	s.reporter.BestMove(bm)
	return bm
}

func (s *Searcher) runIterativeDeepening(td *ThreadData) {
	pos := td.rootPos
	for depth := 1; ; depth++ {
		td.resetSeldepth()
		td.rootDepth = depth
		score := s.search(td, &pos, depth, 0, -MateValue, MateValue, true, true)
		if s.stop.Load() {
			break
		}
		td.depthCompleted = depth
		td.lastScore = score
		td.lastPv = td.stack[0].pv

		if depth >= td.maxDepth {
			break
		}
		if td.isMainThread() {
			elapsed := time.Since(s.startTime)
			if !s.infinite.Load() && s.limiter != nil && s.limiter.StopSoft(td.loadNodes(), elapsed) {
				s.stop.Store(true)
				break
			}
			s.report(td)
		}
	}
}

func (s *Searcher) report(td *ThreadData) {
	info := SearchInfo{
		Depth:    td.depthCompleted,
		SelDepth: td.loadSeldepth(),
		Nodes:    td.loadNodes(),
		PV:       td.lastPv,
		HashFull: s.tt.FullPermille(),
	}
	if absInt(td.lastScore) >= mateThreshold {
		plies := MateValue - absInt(td.lastScore)
		if td.lastScore < 0 {
			plies = -plies
		}
		info.MateIn = plies
	} else {
		info.Score = td.lastScore
	}
	s.reporter.Info(info)
}

// search implements spec §4.F's nine-step contract. It is the one
// function both root and non-root, pv and non-pv calls share; rootNode
// implies pvNode (root callers must pass both true).
func (s *Searcher) search(td *ThreadData, pos *shogi.Position, depth, ply int, alpha, beta int, pvNode, rootNode bool) int {
	td.stack[ply].pv.Reset()

	// 1. hard-check throttle.
	if !rootNode && td.isMainThread() && depth > 1 && td.loadNodes()%HardCheckInterval == 0 {
		if !s.infinite.Load() && s.limiter != nil && s.limiter.StopHard(td.loadNodes(), time.Since(s.startTime)) {
			s.stop.Store(true)
			return 0
		}
	}
	if s.stop.Load() {
		return 0
	}

	// 2. quiescence handoff.
	if depth <= 0 {
		return s.quiescence(td, pos, ply, alpha, beta)
	}

	// 3. node/seldepth counting.
	td.incNodes()
	if pvNode {
		td.updateSeldepth(ply)
	}

	// 4. ply >= MaxDepth guard.
	if ply >= shogi.MaxDepth {
		if pos.InCheck() {
			return 0
		}
		return Evaluate(pos)
	}

	key := pos.Key()

	// 5. TT probe; cutoff branch excluded at PV nodes.
	var ttMove shogi.Move
	if entry, ok := s.tt.Probe(key, ply); ok {
		ttMove = entry.Move
		if !pvNode && int(entry.Depth) >= depth {
			switch entry.Flag {
			case BoundExact:
				return int(entry.Score)
			case BoundUpper:
				if int(entry.Score) <= alpha {
					return int(entry.Score)
				}
			case BoundLower:
				if int(entry.Score) >= beta {
					return int(entry.Score)
				}
			}
		}
	}

	inCheck := pos.InCheck()
	staticEval := Evaluate(pos)

	// 6. reverse futility pruning.
	if !pvNode && !inCheck && depth <= 4 && staticEval-120*depth >= beta {
		return staticEval
	}

	// 7. move loop.
	picker := shogi.NewMovePicker(pos, ttMove)
	bestScore := -MateValue
	bestMove := shogi.NullMove
	flag := uint8(BoundUpper)
	legalCount := 0

	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if !pos.IsLegal(m) {
			continue
		}
		if rootNode && !s.rootMoves.Contains(m) {
			continue
		}
		legalCount++
		isCapture := pos.IsCapture(m)

		child, pop := td.applyMove(pos, m)
		sres := child.TestSennichite(td.keyHistory, s.cuteChessWorkaround, 16)

		var score int
		switch sres {
		case shogi.SennichiteWin:
			pop()
			continue
		case shogi.SennichiteDraw:
			score = int(td.loadNodes()%4) - 2
			pop()
		default:
			score = s.searchMoveWithPVS(td, &child, depth, ply, alpha, beta, legalCount, isCapture, pvNode, rootNode)
			pop()
		}

		if s.stop.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				flag = BoundExact
				td.stack[ply].pv.SetFrom(m, &td.stack[ply+1].pv)
				if score >= beta {
					flag = BoundLower
					break
				}
			}
		}
	}

	// 8. no legal move: checkmate from the mover's side.
	if legalCount == 0 {
		return -MateValue + ply
	}

	// 9. TT store.
	s.tt.Put(key, bestScore, bestMove, depth, ply, flag)
	return bestScore
}

// searchMoveWithPVS applies the three-stage principal-variation
// re-search pattern with late-move reductions of spec §4.F, returning
// a score already negated into the parent's perspective.
func (s *Searcher) searchMoveWithPVS(td *ThreadData, child *shogi.Position, depth, ply, alpha, beta, moveNumber int, isCapture, pvNode, rootNode bool) int {
	newDepth := depth - 1

	threshold := 5
	if rootNode {
		threshold = 7
	}
	doLMR := depth >= 2 && moveNumber > threshold && !isCapture

	if doLMR {
		r := lmrReduction(depth, moveNumber)
		if pvNode {
			r++
		}
		reducedDepth := clampInt(newDepth-r, 1, newDepth)
		score := -s.search(td, child, reducedDepth, ply+1, -(alpha + 1), -alpha, false, false)
		if score <= alpha {
			return score
		}
		score = -s.search(td, child, newDepth, ply+1, -(alpha + 1), -alpha, false, false)
		if score <= alpha || !pvNode {
			return score
		}
		return -s.search(td, child, newDepth, ply+1, -beta, -alpha, true, false)
	}

	if pvNode && moveNumber == 1 {
		return -s.search(td, child, newDepth, ply+1, -beta, -alpha, true, false)
	}

	score := -s.search(td, child, newDepth, ply+1, -(alpha + 1), -alpha, false, false)
	if score > alpha && pvNode {
		score = -s.search(td, child, newDepth, ply+1, -beta, -alpha, true, false)
	}
	return score
}

// quiescence explores only captures (spec §4.F): standing pat as a
// lower bound, SEE-based pruning of losing captures, early exit on a
// beta cutoff.
func (s *Searcher) quiescence(td *ThreadData, pos *shogi.Position, ply int, alpha, beta int) int {
	td.incNodes()

	standPat := Evaluate(pos)
	if standPat >= beta {
		return standPat
	}
	best := standPat
	if standPat > alpha {
		alpha = standPat
	}
	if ply >= shogi.MaxDepth {
		return best
	}

	picker := shogi.NewQsearchPicker(pos, shogi.NoSquare)
	for {
		m, ok := picker.Next()
		if !ok {
			break
		}
		if !pos.IsLegal(m) {
			continue
		}
		if !pos.SEE(m, 0) {
			continue
		}

		child, pop := td.applyMove(pos, m)
		score := -s.quiescence(td, &child, ply+1, -beta, -alpha)
		pop()

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				if score >= beta {
					break
				}
			}
		}
	}
	return best
}
