package planner

import (
	"fmt"
	"time"
)

// =============================================================================
// ISO DAY - Calendar-day parsing and formatting
// =============================================================================

const dayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into a local-time date. The date is
// constructed in the local zone, never UTC, so a day string never shifts
// across a timezone boundary. An empty or malformed string returns
// ok=false.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return time.Time{}, false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local), true
}

// FormatDay formats a date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// Day builds an ISO day string directly from its parts.
func Day(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// IsWeekend reports whether a date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWeekendDay is IsWeekend over an ISO day string. Unparseable strings
// are not weekends.
func IsWeekendDay(day string) bool {
	t, ok := ParseDay(day)
	return ok && IsWeekend(t)
}

// =============================================================================
// MONTH ENUMERATION - Calendar grid cells
// =============================================================================

// MonthCell is one cell of a 7-column month grid. Blank leading cells
// (Blank=true) align the first day of the month to its weekday in a
// Sunday-start week.
type MonthCell struct {
	Blank   bool
	Date    string
	Day     int
	Weekday time.Weekday
}

// EnumerateMonth produces the ordered cells for one month, including the
// leading blanks.
func EnumerateMonth(year int, month time.Month) []MonthCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lead := int(first.Weekday())
	days := daysInMonth(year, month)

	cells := make([]MonthCell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, MonthCell{Blank: true})
	}
	for d := 1; d <= days; d++ {
		t := time.Date(year, month, d, 0, 0, 0, 0, time.Local)
		cells = append(cells, MonthCell{Date: FormatDay(t), Day: d, Weekday: t.Weekday()})
	}
	return cells
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// =============================================================================
// DAY RANGES
// =============================================================================

// RangeDays walks day-by-day from one ISO date to another, inclusive, in
// whichever direction the endpoints imply. The result is always in
// chronological order. Unparseable endpoints yield nil.
func RangeDays(from, to string) []string {
	a, ok := ParseDay(from)
	if !ok {
		return nil
	}
	b, ok := ParseDay(to)
	if !ok {
		return nil
	}
	if a.After(b) {
		a, b = b, a
	}
	var days []string
	for d := a; !d.After(b); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDay(d))
	}
	return days
}
