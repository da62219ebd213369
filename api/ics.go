package api

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/warp/timeoff-planner/planner"
)

const icsProductID = "-//warp//timeoff-planner//EN"

// ExportICS renders the active year's assigned days as an iCalendar file
// of all-day events, one VEVENT per assigned date, summary set to the
// category name with a half-day marker.
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	state := h.engine.Store.Clone()
	h.mu.Unlock()

	active := state.Active()
	dates := make([]string, 0, len(active.Events))
	for d := range active.Events {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(fmt.Sprintf("Time off %d", state.Year))

	now := time.Now().UTC()
	for _, d := range dates {
		day, ok := planner.ParseDay(d)
		if !ok {
			continue
		}
		ev := active.Events[d]
		summary := "Time off"
		if cat := active.Category(ev.CatID); cat != nil {
			summary = cat.Name
		}
		if ev.Half {
			summary += " (half day)"
		}

		vevent := cal.AddEvent(fmt.Sprintf("%s@timeoff-planner", d))
		vevent.SetDtStampTime(now)
		vevent.SetAllDayStartAt(day)
		vevent.SetAllDayEndAt(day.AddDate(0, 0, 1))
		vevent.SetSummary(summary)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=timeoff-%d.ics", state.Year))
	if _, err := fmt.Fprint(w, cal.Serialize()); err != nil {
		// Nothing else to do once the response has started.
		return
	}
}
