/*
holidays.go - Fixed holiday table and one-time pre-population

PURPOSE:
  When a year becomes active for the first time its snapshot is seeded
  with the observed US federal holidays as full-day events in a reserved
  "Holiday" category. Population runs at most once per year: the
  HolidaysPopulated flag is set even when the table has nothing for the
  year, and a holiday day the user later removes or reassigns is never
  re-added.

TABLE:
  Observed dates (shifted off weekends where applicable) for 2025-2030.
  Years outside the table simply get no holiday events.
*/
package planner

import "strings"

// holidayTable maps year -> observed holiday dates, in calendar order.
var holidayTable = map[int][]string{
	2025: {
		"2025-01-01", // New Year's Day
		"2025-01-20", // Martin Luther King Jr. Day
		"2025-02-17", // Presidents' Day
		"2025-05-26", // Memorial Day
		"2025-06-19", // Juneteenth
		"2025-07-04", // Independence Day
		"2025-09-01", // Labor Day
		"2025-11-11", // Veterans Day
		"2025-11-27", // Thanksgiving
		"2025-12-25", // Christmas
	},
	2026: {
		"2026-01-01",
		"2026-01-19",
		"2026-02-16",
		"2026-05-25",
		"2026-06-19",
		"2026-07-03", // observed, July 4 is a Saturday
		"2026-09-07",
		"2026-11-11",
		"2026-11-26",
		"2026-12-25",
	},
	2027: {
		"2027-01-01",
		"2027-01-18",
		"2027-02-15",
		"2027-05-31",
		"2027-06-18", // observed, June 19 is a Saturday
		"2027-07-05", // observed, July 4 is a Sunday
		"2027-09-06",
		"2027-11-11",
		"2027-11-25",
		"2027-12-24", // observed, Dec 25 is a Saturday
	},
	2028: {
		"2028-01-03", // observed, Jan 1 is a Saturday
		"2028-01-17",
		"2028-02-21",
		"2028-05-29",
		"2028-06-19",
		"2028-07-04",
		"2028-09-04",
		"2028-11-10", // observed, Nov 11 is a Saturday
		"2028-11-23",
		"2028-12-25",
	},
	2029: {
		"2029-01-01",
		"2029-01-15",
		"2029-02-19",
		"2029-05-28",
		"2029-06-19",
		"2029-07-04",
		"2029-09-03",
		"2029-11-12", // observed, Nov 11 is a Sunday
		"2029-11-22",
		"2029-12-25",
	},
	2030: {
		"2030-01-01",
		"2030-01-21",
		"2030-02-18",
		"2030-05-27",
		"2030-06-19",
		"2030-07-04",
		"2030-09-02",
		"2030-11-11",
		"2030-11-28",
		"2030-12-25",
	},
}

// HolidayDates returns the observed holiday dates for a year, or nil for
// years outside the table.
func HolidayDates(year int) []string {
	return holidayTable[year]
}

// EnsureHolidaysPopulated seeds holiday events into a year exactly once.
// It reports whether anything was added (so callers know to persist).
//
// The Holiday category is found by the reserved id or by case-insensitive
// name, and created with the default allowance and color if absent.
// Already-assigned dates are left alone. The flag is always set, even
// when the table has no dates for the year.
func EnsureHolidaysPopulated(yd *YearData, year int) bool {
	if yd.HolidaysPopulated {
		return false
	}
	yd.HolidaysPopulated = true

	dates := HolidayDates(year)
	if len(dates) == 0 {
		return false
	}

	cat := findHolidayCategory(yd)
	if cat == nil {
		yd.Categories = append(yd.Categories, Category{
			ID:    HolidayCategoryID,
			Name:  "Holiday",
			Qty:   defaultHolidayQty,
			Color: Palette[9],
		})
		cat = &yd.Categories[len(yd.Categories)-1]
	}

	added := false
	for _, d := range dates {
		if _, taken := yd.Events[d]; taken {
			continue
		}
		yd.Events[d] = Event{CatID: cat.ID, Half: false}
		added = true
	}
	return added
}

func findHolidayCategory(yd *YearData) *Category {
	for i := range yd.Categories {
		if yd.Categories[i].ID == HolidayCategoryID || strings.EqualFold(yd.Categories[i].Name, "Holiday") {
			return &yd.Categories[i]
		}
	}
	return nil
}
