/*
Package selection implements the interaction state machines behind the
calendar grid: multi-day pointer range selection and drag-and-drop.

PURPOSE:
  The UI layer feeds raw gestures (pointer down / enter / up over day
  cells, drag start / drop / end) into these machines and gets back
  finalized intents: a sorted multi-day selection, an assignment, a move,
  or a removal. The machines hold no references to planner state; they
  only deal in ISO day strings and category ids.

MACHINES:
  PointerMachine (machine.go): Idle -> Selecting -> Idle. A pointer-down
  on a day cell classifies intent from the horizontal hit position and
  whether the cell already bears an event; while selecting, each
  pointer-enter recomputes the inclusive date range; pointer-up finalizes.

  DragMachine (drag.go): NoDrag -> CategoryDragging|DayDragging -> NoDrag.
  Payloads are a tagged union decoded once at the drop boundary.

The two machines are independent; a pointer interaction is either a
selection gesture or a native drag, which the input model already keeps
mutually exclusive.
*/
package selection

import (
	"sort"

	"github.com/warp/timeoff-planner/planner"
)

// =============================================================================
// POINTER SELECTION MACHINE
// =============================================================================

// Mode classifies what a pointer-down starts.
type Mode int

const (
	// ModeCreate starts a free-form multi-day selection (empty cell, or
	// the middle band of a filled cell).
	ModeCreate Mode = iota
	// ModeExtendLeft grows a filled day's category leftward.
	ModeExtendLeft
	// ModeExtendRight grows a filled day's category rightward.
	ModeExtendRight
)

// Hit-zone fractions of a filled cell's width: the outer 30% on each
// side extends, the middle 40% selects.
const (
	extendLeftMax  = 0.3
	extendRightMin = 0.7
)

// Result is a finalized selection: the chosen dates in chronological
// order and, for extend gestures, the category to apply.
type Result struct {
	Dates  []string
	SwapTo string
	Half   bool
}

// PointerMachine tracks one in-progress range selection. Zero value is
// ready to use (Idle).
type PointerMachine struct {
	selecting bool
	mode      Mode
	anchor    string
	current   string
	swapTo    string
}

// Selecting reports whether a pointer-down has started a selection that
// has not yet been released.
func (m *PointerMachine) Selecting() bool { return m.selecting }

// Mode returns the classification of the active selection.
func (m *PointerMachine) Mode() Mode { return m.mode }

// PointerDown begins a selection on a day cell. relX is the horizontal
// hit position within the cell in [0,1]; eventCatID is the id of the
// category already on the cell, or "" for an empty cell.
func (m *PointerMachine) PointerDown(date string, relX float64, eventCatID string) {
	if _, ok := planner.ParseDay(date); !ok {
		return
	}
	m.selecting = true
	m.anchor = date
	m.current = date
	m.swapTo = ""
	m.mode = ModeCreate

	if eventCatID == "" {
		return
	}
	switch {
	case relX < extendLeftMax:
		m.mode = ModeExtendLeft
		m.swapTo = eventCatID
	case relX > extendRightMin:
		m.mode = ModeExtendRight
		m.swapTo = eventCatID
	}
}

// PointerEnter extends the selection to the entered day. Ignored when no
// selection is active. The walk direction is inferred from the dates, so
// dragging backwards past the anchor works.
func (m *PointerMachine) PointerEnter(date string) {
	if !m.selecting {
		return
	}
	if _, ok := planner.ParseDay(date); !ok {
		return
	}
	m.current = date
}

// Selected returns the dates currently covered, anchor to current
// inclusive, in chronological order.
func (m *PointerMachine) Selected() []string {
	if !m.selecting {
		return nil
	}
	return planner.RangeDays(m.anchor, m.current)
}

// PointerUp finalizes the selection. releaseDate, when non-empty, is the
// date under the release point and is included even if it was never
// entered (fast pointer movement skips enter events). The final set is
// deduplicated and sorted; an empty set yields ok=false. State resets to
// Idle unconditionally.
func (m *PointerMachine) PointerUp(releaseDate string) (Result, bool) {
	if !m.selecting {
		return Result{}, false
	}
	if _, ok := planner.ParseDay(releaseDate); ok {
		m.current = releaseDate
	}
	dates := dedupeSorted(planner.RangeDays(m.anchor, m.current))

	mode, swapTo := m.mode, m.swapTo
	m.reset()

	if len(dates) == 0 {
		return Result{}, false
	}
	res := Result{Dates: dates}
	if mode == ModeExtendLeft || mode == ModeExtendRight {
		res.SwapTo = swapTo
	}
	return res, true
}

// Cancel abandons the selection without producing a result.
func (m *PointerMachine) Cancel() { m.reset() }

func (m *PointerMachine) reset() {
	*m = PointerMachine{}
}

func dedupeSorted(dates []string) []string {
	if len(dates) == 0 {
		return nil
	}
	sort.Strings(dates) // ISO day strings sort chronologically
	out := dates[:1]
	for _, d := range dates[1:] {
		if d != out[len(out)-1] {
			out = append(out, d)
		}
	}
	return out
}
