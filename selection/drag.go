package selection

import (
	"fmt"
	"strings"
)

// =============================================================================
// DRAG PAYLOAD - Tagged union carried through the platform drag data
// =============================================================================

// PayloadKind discriminates what is being dragged.
type PayloadKind int

const (
	PayloadCategory PayloadKind = iota // a category swatch, dropped to assign
	PayloadDay                        // an existing filled day, dropped to move or trash
)

// Payload is the decoded drag payload.
type Payload struct {
	Kind  PayloadKind
	CatID string // set for PayloadCategory
	Date  string // set for PayloadDay
}

const (
	categoryPrefix = "category:"
	dayPrefix      = "day:"
)

// Encode renders the payload into the wire string stored in the
// platform's drag data.
func (p Payload) Encode() string {
	if p.Kind == PayloadDay {
		return dayPrefix + p.Date
	}
	return categoryPrefix + p.CatID
}

// ParsePayload decodes a drag wire string once, at the drop boundary.
// A bare token with no prefix is treated as a category id, which is what
// earlier builds of the planner put on the wire.
func ParsePayload(s string) (Payload, bool) {
	switch {
	case s == "":
		return Payload{}, false
	case strings.HasPrefix(s, categoryPrefix):
		id := s[len(categoryPrefix):]
		return Payload{Kind: PayloadCategory, CatID: id}, id != ""
	case strings.HasPrefix(s, dayPrefix):
		d := s[len(dayPrefix):]
		return Payload{Kind: PayloadDay, Date: d}, d != ""
	default:
		return Payload{Kind: PayloadCategory, CatID: s}, true
	}
}

// =============================================================================
// DRAG MACHINE - NoDrag -> CategoryDragging | DayDragging -> NoDrag
// =============================================================================

// ActionKind is the intent produced by a completed drop.
type ActionKind int

const (
	ActionAssign ActionKind = iota // assign Category to Date
	ActionMove                     // move event From -> To
	ActionRemove                   // remove event at Date (trash drop)
)

// Action is the mutation intent a drop resolves to. The caller hands it
// to the day-assignment engine.
type Action struct {
	Kind     ActionKind
	Category string
	Date     string
	From     string
	To       string
}

func (a Action) String() string {
	switch a.Kind {
	case ActionAssign:
		return fmt.Sprintf("assign %s to %s", a.Category, a.Date)
	case ActionMove:
		return fmt.Sprintf("move %s to %s", a.From, a.To)
	default:
		return fmt.Sprintf("remove %s", a.Date)
	}
}

// DragMachine tracks one drag gesture. Zero value is NoDrag.
type DragMachine struct {
	active  bool
	payload Payload
}

// Dragging reports whether a drag is in progress.
func (m *DragMachine) Dragging() bool { return m.active }

// Payload returns the active payload; only meaningful while Dragging.
func (m *DragMachine) Payload() Payload { return m.payload }

// StartCategory begins dragging a category swatch.
func (m *DragMachine) StartCategory(catID string) {
	if catID == "" {
		return
	}
	m.active = true
	m.payload = Payload{Kind: PayloadCategory, CatID: catID}
}

// StartDay begins dragging an existing filled day.
func (m *DragMachine) StartDay(date string) {
	if date == "" {
		return
	}
	m.active = true
	m.payload = Payload{Kind: PayloadDay, Date: date}
}

// DropOnDay completes the drag over a day cell. Dropping a day onto its
// own date is a no-op (ok=false). The machine resets either way.
func (m *DragMachine) DropOnDay(date string) (Action, bool) {
	p, active := m.payload, m.active
	m.End()
	if !active || date == "" {
		return Action{}, false
	}
	switch p.Kind {
	case PayloadCategory:
		return Action{Kind: ActionAssign, Category: p.CatID, Date: date}, true
	case PayloadDay:
		if p.Date == date {
			return Action{}, false
		}
		return Action{Kind: ActionMove, From: p.Date, To: date}, true
	}
	return Action{}, false
}

// DropOnTrash completes the drag over the trash target. Only a dragged
// day resolves to a removal; a category swatch dropped on the trash is
// discarded.
func (m *DragMachine) DropOnTrash() (Action, bool) {
	p, active := m.payload, m.active
	m.End()
	if !active || p.Kind != PayloadDay {
		return Action{}, false
	}
	return Action{Kind: ActionRemove, Date: p.Date}, true
}

// End clears transient drag state. The UI calls this on drag-end
// regardless of whether a drop landed anywhere, covering platform
// cancellation (escape key, drop outside any target).
func (m *DragMachine) End() {
	*m = DragMachine{}
}
