package engine

import "shogi-engine/shogi"

// SearchInfo is one "info" snapshot emitted during iterative
// deepening — the abstract printSearchInfo message of spec §6, left
// unbound to any text protocol (protocol text handling is out of
// scope; see SPEC_FULL.md).
type SearchInfo struct {
	Depth       int
	SelDepth    int
	Nodes       uint64
	Score       int
	MateIn      int // 0 if Score is a centipawn score, else plies to mate (negative = being mated)
	PV          shogi.PvList
	HashFull    int
}

// BestMove is the final report handed to the reporter when a search
// concludes.
type BestMove struct {
	Move  shogi.Move
	Score int
}

// Reporter receives search progress and the final best move. Passed
// to the Searcher at construction instead of referring to a global
// "current protocol handler", per spec §9's explicit design note.
type Reporter interface {
	Info(SearchInfo)
	BestMove(BestMove)
	InfoString(string)
}

// NopReporter discards every report; useful for tests and for
// Searcher instances driven programmatically rather than from a text
// protocol.
type NopReporter struct{}

func (NopReporter) Info(SearchInfo)    {}
func (NopReporter) BestMove(BestMove)  {}
func (NopReporter) InfoString(string)  {}
