/*
yearstore.go - Persistence format, migration, export/import

PURPOSE:
  The store round-trips through one JSON blob shape:

    { "year": 2025,
      "years": { "2025": { "categories": [...], "events": {...},
                           "holidaysPopulated": true } },
      "categories": [...],   // mirror of years[year].categories
      "events": {...} }      // mirror of years[year].events

  The top-level mirrors exist for compatibility with the legacy flat
  shape {year, categories, events}; serialization always writes them,
  loading ignores them unless the years map is missing (legacy blob), in
  which case the flat content is wrapped as the sole years entry.

  Single-year export uses the flat shape with an explicit year and the
  filename convention timeoff-<year>.json.

FAILURE POLICY:
  An unparseable or structurally invalid persisted blob falls back to a
  freshly generated default store for the current calendar year. Imports
  are stricter: a document without a categories array is rejected with
  ErrMalformedData and the store is left untouched.
*/
package planner

import (
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	defaultHolidayQty = 10
	defaultPTOQty     = 15
	defaultSickQty    = 10
)

// DefaultCategories returns the three starter categories.
func DefaultCategories() []Category {
	return []Category{
		{ID: HolidayCategoryID, Name: "Holiday", Qty: defaultHolidayQty, Color: Palette[9]},
		{ID: "cat_pto", Name: "PTO", Qty: defaultPTOQty, Color: Palette[0]},
		{ID: "cat_sick", Name: "Sick", Qty: defaultSickQty, Color: Palette[4]},
	}
}

// DefaultYearData returns a fresh year seeded with the starter
// categories and no events. Holiday population runs separately.
func DefaultYearData() *YearData {
	return &YearData{Categories: DefaultCategories(), Events: map[string]Event{}}
}

// DefaultStore builds the fallback store for a year, holidays populated.
func DefaultStore(year int) *Store {
	yd := DefaultYearData()
	EnsureHolidaysPopulated(yd, year)
	RecomputeUsage(yd.Categories, yd.Events)
	return &Store{Year: year, Years: map[int]*YearData{year: yd}}
}

// =============================================================================
// BLOB SHAPES
// =============================================================================

type storeBlob struct {
	Year       int                  `json:"year"`
	Years      map[string]*YearData `json:"years,omitempty"`
	Categories []Category           `json:"categories"`
	Events     map[string]Event     `json:"events"`
}

// yearBlob is the single-year export shape. Year 0 marks a legacy blob
// without an explicit year.
type yearBlob struct {
	Year       int              `json:"year,omitempty"`
	Categories []Category       `json:"categories"`
	Events     map[string]Event `json:"events"`
}

// =============================================================================
// LOAD / MIGRATE
// =============================================================================

// LoadOrMigrate builds a store from a persisted blob. It accepts the
// current {year, years} shape and the legacy flat {year, categories,
// events} shape; anything else falls back to the default store for
// currentYear. The returned store always has holidays populated for its
// active year and usage recomputed.
func LoadOrMigrate(blob []byte, currentYear int) *Store {
	var b storeBlob
	if len(blob) == 0 || json.Unmarshal(blob, &b) != nil {
		return DefaultStore(currentYear)
	}

	s := &Store{Year: b.Year, Years: map[int]*YearData{}}
	switch {
	case len(b.Years) > 0:
		for k, yd := range b.Years {
			y, err := strconv.Atoi(k)
			if err != nil || yd == nil {
				continue
			}
			if yd.Events == nil {
				yd.Events = map[string]Event{}
			}
			s.Years[y] = yd
		}
	case b.Categories != nil:
		// Legacy flat shape: wrap as the sole years entry.
		events := b.Events
		if events == nil {
			events = map[string]Event{}
		}
		s.Years[b.Year] = &YearData{Categories: b.Categories, Events: events}
	}

	if s.Year == 0 || len(s.Years) == 0 {
		return DefaultStore(currentYear)
	}
	if _, ok := s.Years[s.Year]; !ok {
		s.Years[s.Year] = DefaultYearData()
	}

	active := s.Active()
	EnsureHolidaysPopulated(active, s.Year)
	RecomputeUsage(active.Categories, active.Events)
	return s
}

// Serialize renders the store as the persisted blob, including the
// top-level mirrors of the active year.
func (s *Store) Serialize() ([]byte, error) {
	active := s.Active()
	years := make(map[string]*YearData, len(s.Years))
	for y, yd := range s.Years {
		years[strconv.Itoa(y)] = yd
	}
	return json.MarshalIndent(storeBlob{
		Year:       s.Year,
		Years:      years,
		Categories: active.Categories,
		Events:     active.Events,
	}, "", "  ")
}

// =============================================================================
// EXPORT / IMPORT (single year)
// =============================================================================

// ExportFileName returns the download name for a year's export.
func ExportFileName(year int) string {
	return fmt.Sprintf("timeoff-%d.json", year)
}

// ExportYear renders the active year as a standalone blob.
func (s *Store) ExportYear() ([]byte, error) {
	active := s.Active()
	return json.MarshalIndent(yearBlob{
		Year:       s.Year,
		Categories: active.Categories,
		Events:     active.Events,
	}, "", "  ")
}

// ImportYear installs an exported (or legacy) blob into the store. A blob
// bearing an explicit year lands in that year's slot and becomes active;
// a legacy blob without one replaces the current active year. Documents
// lacking a categories array are rejected and the store is untouched.
func (s *Store) ImportYear(blob []byte) error {
	var b yearBlob
	if err := json.Unmarshal(blob, &b); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	if b.Categories == nil {
		return fmt.Errorf("%w: missing categories", ErrMalformedData)
	}
	if b.Events == nil {
		b.Events = map[string]Event{}
	}

	year := b.Year
	if year == 0 {
		year = s.Year
	}
	yd := &YearData{Categories: b.Categories, Events: b.Events, HolidaysPopulated: true}
	RecomputeUsage(yd.Categories, yd.Events)
	s.Years[year] = yd
	s.Year = year
	return nil
}
