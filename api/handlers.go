/*
handlers.go - HTTP handlers for the planner API

PURPOSE:
  Every planner engine operation, the year store and the export/import
  surface, exposed as JSON endpoints for the bundled frontend. Handlers
  are thin: decode, call the engine, map errors, encode.

CONCURRENCY:
  The planner core is single-threaded by design; the handler serializes
  all operations behind one mutex so concurrent HTTP requests cannot
  interleave mutations.

ERROR MAPPING:
  planner client errors (validation, capacity, malformed data, missing
  event) -> 400 with a code; everything else -> 500.

SEE ALSO:
  - dto.go: request/response types
  - server.go: routes
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/timeoff-planner/planner"
	"github.com/warp/timeoff-planner/selection"
)

// Handler owns the planner state and its persistence.
type Handler struct {
	mu     sync.Mutex
	engine *planner.Engine
	store  planner.StateStore
}

// NewHandler wires an engine over the given state with saves going to st
// after every successful mutation.
func NewHandler(state *planner.Store, st planner.StateStore) *Handler {
	engine := planner.NewEngine(state)
	engine.OnCommit = func(s *planner.Store) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Save(ctx, s); err != nil {
			log.Printf("Failed to persist planner state: %v", err)
		}
	}
	return &Handler{engine: engine, store: st}
}

// =============================================================================
// STATE
// =============================================================================

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	dto := toStateDTO(h.engine.Store)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, dto)
}

// GetCalendar returns the 12 month grids for the active (or requested)
// year.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	year := h.engine.Store.Year
	h.mu.Unlock()

	if q := r.URL.Query().Get("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year", "bad_year")
			return
		}
		year = y
	}

	months := make([]MonthDTO, 0, 12)
	for m := time.January; m <= time.December; m++ {
		cells := planner.EnumerateMonth(year, m)
		dto := MonthDTO{Month: int(m), Cells: make([]MonthCellDTO, len(cells))}
		for i, c := range cells {
			if c.Blank {
				dto.Cells[i] = MonthCellDTO{Blank: true}
				continue
			}
			dto.Cells[i] = MonthCellDTO{
				Date:    c.Date,
				Day:     c.Day,
				Weekend: c.Weekday == time.Saturday || c.Weekday == time.Sunday,
			}
		}
		months = append(months, dto)
	}
	writeJSON(w, http.StatusOK, months)
}

func (h *Handler) SwitchYear(w http.ResponseWriter, r *http.Request) {
	var req SwitchYearRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Year < 1900 || req.Year > 2200 {
		writeError(w, http.StatusBadRequest, "invalid year", "bad_year")
		return
	}
	h.withEngine(w, func() error { return h.engine.SwitchYear(req.Year) })
}

// =============================================================================
// CATEGORIES
// =============================================================================

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decode(w, r, &req) {
		return
	}
	h.mu.Lock()
	cat, err := h.engine.AddCategory(req.Name, req.Qty, req.Color)
	h.mu.Unlock()
	if err != nil {
		writePlannerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryDTO(cat))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	h.withEngine(w, func() error { return h.engine.UpdateCategory(id, req.Name, req.Qty, req.Color) })
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.withEngine(w, func() error { return h.engine.DeleteCategory(id) })
}

// =============================================================================
// DAY OPERATIONS
// =============================================================================

func (h *Handler) AssignDay(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if !decode(w, r, &req) {
		return
	}
	h.withEngine(w, func() error { return h.engine.Assign(req.Date, req.CatID) })
}

func (h *Handler) MoveDay(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !decode(w, r, &req) {
		return
	}
	h.withEngine(w, func() error { return h.engine.MoveDay(req.From, req.To) })
}

func (h *Handler) ToggleHalf(w http.ResponseWriter, r *http.Request) {
	var req HalfRequest
	if !decode(w, r, &req) {
		return
	}
	h.withEngine(w, func() error { return h.engine.ToggleHalf(req.Date, req.Half) })
}

func (h *Handler) SwapCategory(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if !decode(w, r, &req) {
		return
	}
	h.withEngine(w, func() error { return h.engine.SwapCategory(req.Date, req.CatID, req.Half) })
}

func (h *Handler) RemoveDays(w http.ResponseWriter, r *http.Request) {
	var req RemoveRequest
	if !decode(w, r, &req) {
		return
	}
	h.withEngine(w, func() error { return h.engine.RemoveDays(req.Dates) })
}

func (h *Handler) BulkApply(w http.ResponseWriter, r *http.Request) {
	var req BulkApplyRequest
	if !decode(w, r, &req) {
		return
	}
	h.withEngine(w, func() error { return h.engine.BulkApply(req.Dates, req.CatID, req.Half) })
}

// DropDay resolves a drag payload at the drop boundary and applies the
// resulting intent: category payloads assign, day payloads move (or
// remove, on the trash target). Unresolvable drops are a successful
// no-op, matching drag-end semantics in the UI.
func (h *Handler) DropDay(w http.ResponseWriter, r *http.Request) {
	var req DropRequest
	if !decode(w, r, &req) {
		return
	}
	payload, ok := selection.ParsePayload(req.Payload)
	if !ok {
		h.respondState(w)
		return
	}

	var m selection.DragMachine
	switch payload.Kind {
	case selection.PayloadCategory:
		m.StartCategory(payload.CatID)
	case selection.PayloadDay:
		m.StartDay(payload.Date)
	}

	var action selection.Action
	if req.Trash {
		action, ok = m.DropOnTrash()
	} else {
		action, ok = m.DropOnDay(req.Date)
	}
	if !ok {
		h.respondState(w)
		return
	}

	h.withEngine(w, func() error {
		switch action.Kind {
		case selection.ActionAssign:
			return h.engine.Assign(action.Date, action.Category)
		case selection.ActionMove:
			return h.engine.MoveDay(action.From, action.To)
		case selection.ActionRemove:
			return h.engine.RemoveDay(action.Date)
		}
		return nil
	})
}

func (h *Handler) ClearEvents(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, func() error { return h.engine.ClearEvents() })
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	blob, err := h.engine.Store.ExportYear()
	year := h.engine.Store.Year
	h.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "export_failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", planner.ExportFileName(year)))
	w.Write(blob)
}

func (h *Handler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	blob, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body", "bad_body")
		return
	}
	h.mu.Lock()
	err = h.engine.ImportYear(blob)
	dto := toStateDTO(h.engine.Store)
	h.mu.Unlock()
	if err != nil {
		writePlannerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

// withEngine runs one engine operation under the handler lock and
// answers with the refreshed state.
func (h *Handler) withEngine(w http.ResponseWriter, op func() error) {
	h.mu.Lock()
	err := op()
	dto := toStateDTO(h.engine.Store)
	h.mu.Unlock()
	if err != nil {
		writePlannerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) respondState(w http.ResponseWriter) {
	h.mu.Lock()
	dto := toStateDTO(h.engine.Store)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, dto)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "bad_json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

func writePlannerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, planner.ErrCapacityExceeded):
		writeError(w, http.StatusBadRequest, err.Error(), "capacity_exceeded")
	case errors.Is(err, planner.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error(), "validation_failed")
	case errors.Is(err, planner.ErrMalformedData):
		writeError(w, http.StatusBadRequest, "Invalid file", "invalid_file")
	case errors.Is(err, planner.ErrNoEvent):
		writeError(w, http.StatusBadRequest, err.Error(), "no_event")
	default:
		writeError(w, http.StatusInternalServerError, err.Error(), "internal")
	}
}
