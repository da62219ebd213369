/*
engine.go - Validated mutations over the active year

PURPOSE:
  Every state change goes through one pipeline:

    validate -> clone active year -> mutate clone -> recompute usage
             -> commit -> persistence hook

  Mutations never touch the live YearData until the whole operation has
  succeeded, so a rejected operation leaves no partial state. The usage
  recompute happens before commit, so remaining balances read after any
  operation are consistent by construction.

EDGE POLICY:
  Operations that reference a category id not present in the current list
  are silent no-ops (stale ids from concurrent edits in the same session
  must not crash or error). Capacity is checked on Assign and on the
  half->full direction of ToggleHalf; SwapCategory and BulkApply
  intentionally overwrite without a capacity check, matching how editing
  an existing day behaves.

SEE ALSO:
  - usage.go:     recompute + capacity tolerance
  - yearstore.go: year switching, import/export (same commit pipeline)
*/
package planner

import (
	"strings"
)

// Engine applies validated mutations to a Store. OnCommit, when set, runs
// after every successful mutation; the composition root wires it to
// persistence so "mutate then save" cannot be forgotten at a call site.
type Engine struct {
	Store    *Store
	OnCommit func(*Store)
}

// NewEngine wraps an existing store.
func NewEngine(s *Store) *Engine {
	return &Engine{Store: s}
}

// apply runs one mutation through the pipeline. If mutate returns
// (false, nil) the operation was a recognized no-op: nothing commits and
// no hook fires.
func (e *Engine) apply(mutate func(yd *YearData) (bool, error)) error {
	clone := e.Store.Active().Clone()
	changed, err := mutate(clone)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	RecomputeUsage(clone.Categories, clone.Events)
	e.Store.Years[e.Store.Year] = clone
	e.commit()
	return nil
}

func (e *Engine) commit() {
	if e.OnCommit != nil {
		e.OnCommit(e.Store)
	}
}

// =============================================================================
// DAY ASSIGNMENT
// =============================================================================

// Assign creates (or overwrites) a full-day event on date for the given
// category, rejecting the assignment when the category has less than one
// day remaining.
func (e *Engine) Assign(date, catID string) error {
	return e.apply(func(yd *YearData) (bool, error) {
		cat := yd.Category(catID)
		if cat == nil {
			return false, nil
		}
		prospective := CountUsed(yd.Events, catID).Add(fullDay)
		if overCapacity(prospective, cat.Qty) {
			return false, &CapacityError{CategoryID: catID, Remaining: Remaining(*cat), Requested: 1}
		}
		yd.Events[date] = Event{CatID: catID, Half: false}
		return true, nil
	})
}

// MoveDay relocates the event from one date to another. Total usage is
// unchanged, so no allowance re-check happens. Moving a date onto itself,
// or moving from a date with no event, is a no-op.
func (e *Engine) MoveDay(from, to string) error {
	return e.apply(func(yd *YearData) (bool, error) {
		if from == to {
			return false, nil
		}
		ev, ok := yd.Events[from]
		if !ok {
			return false, nil
		}
		delete(yd.Events, from)
		yd.Events[to] = ev
		return true, nil
	})
}

// ToggleHalf flips the half-day flag of an existing event. Switching
// half->full increases usage by 0.5 and re-validates capacity with the
// same tolerance as Assign; full->half always succeeds.
func (e *Engine) ToggleHalf(date string, half bool) error {
	return e.apply(func(yd *YearData) (bool, error) {
		ev, ok := yd.Events[date]
		if !ok {
			return false, ErrNoEvent
		}
		if ev.Half == half {
			return false, nil
		}
		if !half {
			if cat := yd.Category(ev.CatID); cat != nil {
				prospective := CountUsed(yd.Events, ev.CatID).Sub(halfDay).Add(fullDay)
				if overCapacity(prospective, cat.Qty) {
					return false, &CapacityError{CategoryID: ev.CatID, Remaining: Remaining(*cat), Requested: 0.5}
				}
			}
		}
		ev.Half = half
		yd.Events[date] = ev
		return true, nil
	})
}

// SwapCategory sets the event at date to the given category and half-day
// flag unconditionally. Editing an existing day is never blocked by the
// target category's capacity.
func (e *Engine) SwapCategory(date, catID string, half bool) error {
	return e.apply(func(yd *YearData) (bool, error) {
		if yd.Category(catID) == nil {
			return false, nil
		}
		yd.Events[date] = Event{CatID: catID, Half: half}
		return true, nil
	})
}

// RemoveDay deletes the event at date, if any.
func (e *Engine) RemoveDay(date string) error {
	return e.RemoveDays([]string{date})
}

// RemoveDays deletes every listed event.
func (e *Engine) RemoveDays(dates []string) error {
	return e.apply(func(yd *YearData) (bool, error) {
		changed := false
		for _, d := range dates {
			if _, ok := yd.Events[d]; ok {
				delete(yd.Events, d)
				changed = true
			}
		}
		return changed, nil
	})
}

// BulkApply writes {catID, half} to every weekday in dates with swap
// semantics (unconditional overwrite). Weekend dates are dropped. An
// empty catID makes the whole operation a no-op.
func (e *Engine) BulkApply(dates []string, catID string, half bool) error {
	return e.apply(func(yd *YearData) (bool, error) {
		if catID == "" || yd.Category(catID) == nil {
			return false, nil
		}
		changed := false
		for _, d := range dates {
			if IsWeekendDay(d) {
				continue
			}
			yd.Events[d] = Event{CatID: catID, Half: half}
			changed = true
		}
		return changed, nil
	})
}

// ClearEvents removes every event in the active year.
func (e *Engine) ClearEvents() error {
	return e.apply(func(yd *YearData) (bool, error) {
		if len(yd.Events) == 0 {
			return false, nil
		}
		yd.Events = map[string]Event{}
		return true, nil
	})
}

// =============================================================================
// CATEGORY LIFECYCLE
// =============================================================================

func validateCategory(name string, qty float64) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if qty <= 0 {
		return &ValidationError{Field: "qty", Message: "must be greater than zero"}
	}
	return nil
}

// AddCategory creates a category with a generated immutable id.
func (e *Engine) AddCategory(name string, qty float64, color string) (Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategory(name, qty); err != nil {
		return Category{}, err
	}
	if color == "" {
		color = Palette[0]
	}
	cat := Category{ID: NewCategoryID(), Name: name, Qty: qty, Color: color}
	err := e.apply(func(yd *YearData) (bool, error) {
		yd.Categories = append(yd.Categories, cat)
		return true, nil
	})
	return cat, err
}

// UpdateCategory edits name, allowance and color. An empty color keeps
// the current one. Unknown ids are a no-op.
func (e *Engine) UpdateCategory(id, name string, qty float64, color string) error {
	name = strings.TrimSpace(name)
	if err := validateCategory(name, qty); err != nil {
		return err
	}
	return e.apply(func(yd *YearData) (bool, error) {
		cat := yd.Category(id)
		if cat == nil {
			return false, nil
		}
		cat.Name = name
		cat.Qty = qty
		if color != "" {
			cat.Color = color
		}
		return true, nil
	})
}

// DeleteCategory removes the category and cascades to every event that
// references it.
func (e *Engine) DeleteCategory(id string) error {
	return e.apply(func(yd *YearData) (bool, error) {
		idx := -1
		for i := range yd.Categories {
			if yd.Categories[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false, nil
		}
		yd.Categories = append(yd.Categories[:idx], yd.Categories[idx+1:]...)
		for d, ev := range yd.Events {
			if ev.CatID == id {
				delete(yd.Events, d)
			}
		}
		return true, nil
	})
}

// =============================================================================
// YEAR SWITCHING (store-level mutation, same commit discipline)
// =============================================================================

// SwitchYear makes y the active year, creating and holiday-populating its
// snapshot on first visit.
func (e *Engine) SwitchYear(y int) error {
	if e.Store.Year == y {
		return nil
	}
	e.Store.Year = y
	yd, ok := e.Store.Years[y]
	if !ok {
		yd = DefaultYearData()
		e.Store.Years[y] = yd
	}
	EnsureHolidaysPopulated(yd, y)
	RecomputeUsage(yd.Categories, yd.Events)
	e.commit()
	return nil
}

// ImportYear installs an exported (or legacy) single-year blob and
// persists the result. Rejected blobs leave the store untouched.
func (e *Engine) ImportYear(blob []byte) error {
	if err := e.Store.ImportYear(blob); err != nil {
		return err
	}
	e.commit()
	return nil
}
