package shogi

// pickStage enumerates the move-picker's state machine stages (spec
// §4.D, §9 — an explicit enum+state struct rather than a native
// coroutine).
type pickStage int

const (
	stageTtMove pickStage = iota
	stageGenerate
	stageAll
	stageEnd
)

const (
	stageQsearchGenerateCaptures pickStage = iota + 100
	stageQsearchCaptures
	stageQsearchEnd
)

// MovePicker yields pseudo-legal moves one at a time, the TT move
// first (if pseudolegal), skipping it on replay to avoid a duplicate.
// It is not a sorter: beyond the TT-first rule, order follows
// generation order.
type MovePicker struct {
	pos      *Position
	ttMove   Move
	stage    pickStage
	list     MoveList
	idx      int
	recapSq  Square
}

// NewMovePicker starts the full-search staging sequence
// TtMove → Generate → All → End.
func NewMovePicker(pos *Position, ttMove Move) *MovePicker {
	return &MovePicker{pos: pos, ttMove: ttMove, stage: stageTtMove}
}

// NewQsearchPicker starts the quiescence staging sequence
// QsearchGenerateCaptures → QsearchCaptures → End. If recaptureSq is
// valid, only moves landing on it are produced (the
// QsearchGenerateRecaptures re-entry point).
func NewQsearchPicker(pos *Position, recaptureSq Square) *MovePicker {
	return &MovePicker{pos: pos, stage: stageQsearchGenerateCaptures, recapSq: recaptureSq}
}

// Next returns the next pseudo-legal move and true, or (NullMove,
// false) once exhausted.
func (mp *MovePicker) Next() (Move, bool) {
	for {
		switch mp.stage {
		case stageTtMove:
			mp.stage = stageGenerate
			if !mp.ttMove.IsNull() && mp.pos.IsPseudolegal(mp.ttMove) {
				return mp.ttMove, true
			}
		case stageGenerate:
			mp.pos.GenerateAll(&mp.list)
			mp.idx = 0
			mp.stage = stageAll
		case stageAll:
			for mp.idx < mp.list.Len() {
				m := mp.list.At(mp.idx)
				mp.idx++
				if m == mp.ttMove {
					continue
				}
				return m, true
			}
			mp.stage = stageEnd
		case stageQsearchGenerateCaptures:
			if mp.recapSq.IsValid() {
				mp.pos.GenerateRecaptures(&mp.list, mp.recapSq)
			} else {
				mp.pos.GenerateCaptures(&mp.list)
			}
			mp.idx = 0
			mp.stage = stageQsearchCaptures
		case stageQsearchCaptures:
			if mp.idx < mp.list.Len() {
				m := mp.list.At(mp.idx)
				mp.idx++
				return m, true
			}
			mp.stage = stageQsearchEnd
		case stageEnd, stageQsearchEnd:
			return NullMove, false
		}
	}
}
