/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the planner's
  internal model from the external contract. Responses carry derived
  display hints (remaining balance, contrast text color, formatted
  quantities) so the frontend never re-implements accounting.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation lives in the planner engine, not here. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"sort"

	"github.com/warp/timeoff-planner/planner"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// CategoryDTO is a category plus derived display fields.
type CategoryDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Qty        float64 `json:"qty"`
	Used       float64 `json:"used"`
	Remaining  float64 `json:"remaining"`
	Color      string  `json:"color"`
	TextColor  string  `json:"text_color"`
	QtyDisplay string  `json:"qty_display"`
}

// StateDTO is the full view the frontend renders: the active year's
// content plus every year the store knows about.
type StateDTO struct {
	ActiveYear int                      `json:"year"`
	Categories []CategoryDTO            `json:"categories"`
	Events     map[string]planner.Event `json:"events"`
	Years      []int                    `json:"years"`
}

// MonthDTO is one month of calendar cells for grid rendering.
type MonthDTO struct {
	Month int            `json:"month"`
	Cells []MonthCellDTO `json:"cells"`
}

// MonthCellDTO is one grid cell; blank cells align the first weekday.
type MonthCellDTO struct {
	Blank   bool   `json:"blank,omitempty"`
	Date    string `json:"date,omitempty"`
	Day     int    `json:"day,omitempty"`
	Weekend bool   `json:"weekend,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

type CategoryRequest struct {
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Color string  `json:"color,omitempty"`
}

type SwitchYearRequest struct {
	Year int `json:"year"`
}

type AssignRequest struct {
	Date  string `json:"date"`
	CatID string `json:"catId"`
}

type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type HalfRequest struct {
	Date string `json:"date"`
	Half bool   `json:"half"`
}

type SwapRequest struct {
	Date  string `json:"date"`
	CatID string `json:"catId"`
	Half  bool   `json:"half"`
}

type RemoveRequest struct {
	Dates []string `json:"dates"`
}

type BulkApplyRequest struct {
	Dates []string `json:"dates"`
	CatID string   `json:"catId"`
	Half  bool     `json:"half"`
}

// DropRequest carries a raw drag payload to resolve at the drop boundary.
// Trash marks a drop on the trash target instead of a day cell.
type DropRequest struct {
	Payload string `json:"payload"`
	Date    string `json:"date,omitempty"`
	Trash   bool   `json:"trash,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toCategoryDTO(c planner.Category) CategoryDTO {
	return CategoryDTO{
		ID:         c.ID,
		Name:       c.Name,
		Qty:        c.Qty,
		Used:       c.Used,
		Remaining:  planner.Remaining(c),
		Color:      c.Color,
		TextColor:  planner.ContrastColor(c.Color),
		QtyDisplay: planner.FormatQty(planner.Remaining(c), c.Used),
	}
}

func toStateDTO(s *planner.Store) StateDTO {
	active := s.Active()
	cats := make([]CategoryDTO, len(active.Categories))
	for i, c := range active.Categories {
		cats[i] = toCategoryDTO(c)
	}
	years := make([]int, 0, len(s.Years))
	for y := range s.Years {
		years = append(years, y)
	}
	sort.Ints(years)
	return StateDTO{
		ActiveYear: s.Year,
		Categories: cats,
		Events:     active.Events,
		Years:      years,
	}
}
