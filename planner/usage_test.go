package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/timeoff-planner/planner"
)

func TestCountUsed_FullAndHalfDays(t *testing.T) {
	events := map[string]planner.Event{
		"2025-03-10": {CatID: "pto"},
		"2025-03-11": {CatID: "pto", Half: true},
		"2025-03-12": {CatID: "sick"},
	}

	assert.Equal(t, "1.5", planner.CountUsed(events, "pto").String())
	assert.Equal(t, "1", planner.CountUsed(events, "sick").String())
	assert.Equal(t, "0", planner.CountUsed(events, "nope").String())
}

func TestRecomputeUsage_DerivedFromEvents(t *testing.T) {
	// GIVEN: stale Used values on the categories
	cats := []planner.Category{
		{ID: "pto", Name: "PTO", Qty: 15, Used: 99},
		{ID: "sick", Name: "Sick", Qty: 10, Used: 99},
	}
	events := map[string]planner.Event{
		"2025-03-10": {CatID: "pto"},
		"2025-03-11": {CatID: "pto", Half: true},
	}

	// WHEN: usage is recomputed
	planner.RecomputeUsage(cats, events)

	// THEN: Used reflects the events, not the stale values
	assert.Equal(t, 1.5, cats[0].Used)
	assert.Equal(t, 0.0, cats[1].Used)
}

func TestRemaining_FlooredAtZero(t *testing.T) {
	assert.Equal(t, 8.5, planner.Remaining(planner.Category{Qty: 10, Used: 1.5}))
	assert.Equal(t, 0.0, planner.Remaining(planner.Category{Qty: 10, Used: 12}))
}

func TestFormatQty_HalfDaysShowOneDecimal(t *testing.T) {
	// Whole-day usage reads as an integer; once usage carries a half day
	// the quantity shifts to one-decimal form so "7.5" and "15.0" line up.
	assert.Equal(t, "15", planner.FormatQty(15, 3))
	assert.Equal(t, "15.0", planner.FormatQty(15, 7.5))
	assert.Equal(t, "7.5", planner.FormatQty(7.5, 7.5))
	assert.Equal(t, "10", planner.FormatQty(10, 0))
}

func TestContrastColor_LuminanceThreshold(t *testing.T) {
	assert.Equal(t, "#042029", planner.ContrastColor("#f59e0b")) // amber is light
	assert.Equal(t, "#ffffff", planner.ContrastColor("#0f172a")) // near-black is dark
	assert.Equal(t, "#ffffff", planner.ContrastColor("bad"))
}
