/*
Package planner provides the core time-off planning engine.

PURPOSE:
  This package contains the data model and algorithms for a personal
  time-off planner: leave categories with yearly allowances, calendar-day
  assignments (full or half day), per-year archives with one-time holiday
  pre-population, and a validated mutation engine that keeps derived usage
  totals consistent.

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: A named leave bucket with a fixed yearly allowance
  - Event: The assignment of one calendar date to one category
  - YearData: The categories + events snapshot for one calendar year
  - Store: The per-year archive plus the active year

DESIGN PRINCIPLES:
  1. Derived, never patched: Category.Used is always recomputed from the
     event set (see usage.go), persisted only as a cache
  2. Precision: allowance arithmetic goes through decimal.Decimal
  3. Snapshot mutations: every change operates on a cloned year and
     commits atomically (see engine.go)

SEE ALSO:
  - dates.go:     ISO day parsing, weekend rule, month enumeration
  - usage.go:     Usage recompute and remaining-allowance calculation
  - engine.go:    Validated mutations (assign, move, swap, bulk apply)
  - yearstore.go: Load/migrate/serialize and year switching
  - holidays.go:  Fixed holiday table and idempotent pre-population
*/
package planner

import (
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// CATEGORY - Leave bucket with a yearly allowance
// =============================================================================

// Category is a leave type with a fixed yearly allowance.
// ID is immutable once created and unique within a store.
// Used is derived from the event set; the persisted value is a cache only.
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Used  float64 `json:"used"`
	Color string  `json:"color"`
}

// HolidayCategoryID is the reserved id of the auto-populated Holiday
// category. Holiday lookup also matches by case-insensitive name so that
// imported blobs with a renamed id still work.
const HolidayCategoryID = "cat_holiday"

// NewCategoryID generates an immutable category id.
func NewCategoryID() string {
	return "cat_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// =============================================================================
// EVENT - One calendar date assigned to one category
// =============================================================================

// Event assigns a date to a category. Half marks a half-day, which
// consumes 0.5 allowance units instead of 1. At most one event exists per
// date; a date with no entry means "no time off".
type Event struct {
	CatID string `json:"catId"`
	Half  bool   `json:"half"`
}

// =============================================================================
// YEAR DATA - Snapshot for a single calendar year
// =============================================================================

// YearData holds one year's categories and events. Events are keyed by
// ISO day strings (YYYY-MM-DD). HolidaysPopulated records that the
// one-time holiday pre-population ran, so a holiday day the user removed
// is never re-added.
type YearData struct {
	Categories        []Category       `json:"categories"`
	Events            map[string]Event `json:"events"`
	HolidaysPopulated bool             `json:"holidaysPopulated,omitempty"`
}

// NewYearData returns an empty year.
func NewYearData() *YearData {
	return &YearData{Events: map[string]Event{}}
}

// Clone returns a deep copy. Mutations in engine.go always operate on a
// clone so a rejected operation leaves the live year untouched.
func (yd *YearData) Clone() *YearData {
	cats := make([]Category, len(yd.Categories))
	copy(cats, yd.Categories)
	events := make(map[string]Event, len(yd.Events))
	for d, ev := range yd.Events {
		events[d] = ev
	}
	return &YearData{Categories: cats, Events: events, HolidaysPopulated: yd.HolidaysPopulated}
}

// Category returns the category with the given id, or nil.
func (yd *YearData) Category(id string) *Category {
	for i := range yd.Categories {
		if yd.Categories[i].ID == id {
			return &yd.Categories[i]
		}
	}
	return nil
}

// =============================================================================
// STORE - Per-year archive plus the active year
// =============================================================================

// Store is the whole planner state: the active year number and every
// YearData the user has touched. The active year's content is
// Years[Year]; switching years swaps which snapshot is live.
type Store struct {
	Year  int
	Years map[int]*YearData
}

// Active returns the live YearData, creating an empty one if the active
// slot is missing (defensive: a well-formed store always has it).
func (s *Store) Active() *YearData {
	yd, ok := s.Years[s.Year]
	if !ok {
		yd = NewYearData()
		s.Years[s.Year] = yd
	}
	return yd
}

// Clone returns a deep copy of the whole store.
func (s *Store) Clone() *Store {
	years := make(map[int]*YearData, len(s.Years))
	for y, yd := range s.Years {
		years[y] = yd.Clone()
	}
	return &Store{Year: s.Year, Years: years}
}

// =============================================================================
// PALETTE - Category colors offered by the frontend picker
// =============================================================================

var Palette = []string{
	"#60a5fa", "#7c3aed", "#f97316", "#ef4444", "#34d399",
	"#f59e0b", "#10b981", "#0ea5e9", "#a78bfa", "#f472b6",
}

// ContrastColor picks a readable text color for a hex background using
// relative luminance with a 0.55 threshold.
func ContrastColor(hex string) string {
	h := strings.TrimPrefix(hex, "#")
	if len(h) < 6 {
		return "#ffffff"
	}
	r := hexByte(h[0:2])
	g := hexByte(h[2:4])
	b := hexByte(h[4:6])
	lum := (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 255
	if lum > 0.55 {
		return "#042029"
	}
	return "#ffffff"
}

func hexByte(s string) int {
	v := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v += int(c - '0')
		case c >= 'a' && c <= 'f':
			v += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v += int(c-'A') + 10
		}
	}
	return v
}
