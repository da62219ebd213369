/*
usage.go - Derived usage accounting

PURPOSE:
  Category.Used is never authoritative. After any structural change to
  events or categories it is recomputed in full from the event set; it is
  never incrementally patched, which is what prevents drift between the
  displayed remaining balance and the actual assignments.

PRECISION:
  Sums run through decimal.Decimal. Half days contribute exactly 0.5;
  summing many of them must not accumulate float error before the
  capacity comparison in engine.go.
*/
package planner

import (
	"github.com/shopspring/decimal"
)

var (
	fullDay = decimal.NewFromInt(1)
	halfDay = decimal.RequireFromString("0.5")

	// CapacityTolerance absorbs float noise in allowance comparisons:
	// an assignment is rejected only when it would push usage strictly
	// past qty + 0.001.
	CapacityTolerance = decimal.RequireFromString("0.001")
)

// CountUsed sums the allowance consumed by events of one category:
// 0.5 per half-day event, 1 per full-day event.
func CountUsed(events map[string]Event, catID string) decimal.Decimal {
	sum := decimal.Zero
	for _, ev := range events {
		if ev.CatID != catID {
			continue
		}
		if ev.Half {
			sum = sum.Add(halfDay)
		} else {
			sum = sum.Add(fullDay)
		}
	}
	return sum
}

// RecomputeUsage rewrites every category's Used from the event set.
// Call it after every structural mutation; engine.go's commit pipeline
// does so unconditionally.
func RecomputeUsage(categories []Category, events map[string]Event) {
	for i := range categories {
		used, _ := CountUsed(events, categories[i].ID).Float64()
		categories[i].Used = used
	}
}

// Remaining returns qty - used, floored at zero.
func Remaining(c Category) float64 {
	r := c.Qty - c.Used
	if r < 0 {
		return 0
	}
	return r
}

// overCapacity reports whether a prospective usage total exceeds the
// allowance beyond tolerance.
func overCapacity(prospectiveUsed decimal.Decimal, qty float64) bool {
	return prospectiveUsed.GreaterThan(decimal.NewFromFloat(qty).Add(CapacityTolerance))
}

// FormatQty renders a quantity for display: one decimal place while the
// category's usage carries a half day, a plain integer otherwise.
func FormatQty(value, used float64) string {
	d := decimal.NewFromFloat(used)
	if !d.Sub(d.Round(0)).Abs().LessThanOrEqual(CapacityTolerance) {
		return decimal.NewFromFloat(value).StringFixed(1)
	}
	return decimal.NewFromFloat(value).Round(0).String()
}
