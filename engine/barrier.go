// Package engine implements the transposition table, search limiters,
// and the multi-threaded principal-variation searcher built on top of
// package shogi's board primitives.
package engine

import "sync"

// Barrier is a reusable arrive-and-wait rendezvous for a fixed number
// of parties, standing in for the source's std::barrier (Go has no
// native equivalent). Resizing is only safe between searches, never
// while parties are waiting — matching spec §5's "barriers are
// reusable and re-sized when the thread count changes, which is
// forbidden mid-search."
type Barrier struct {
	mu       sync.Mutex
	cond     *sync.Cond
	parties  int
	waiting  int
	generation int
}

// NewBarrier creates a barrier for the given number of parties.
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Resize changes the party count. Callers must guarantee no goroutine
// is currently blocked in Wait.
func (b *Barrier) Resize(parties int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.parties = parties
	b.waiting = 0
}

// Wait blocks until every party has called Wait for the current
// generation, then releases them all together.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()
	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
}
