package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timeoff-planner/selection"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
		want selection.Payload
	}{
		{
			name: "category",
			in:   "category:cat_pto",
			ok:   true,
			want: selection.Payload{Kind: selection.PayloadCategory, CatID: "cat_pto"},
		},
		{
			name: "day",
			in:   "day:2025-03-10",
			ok:   true,
			want: selection.Payload{Kind: selection.PayloadDay, Date: "2025-03-10"},
		},
		{
			name: "bare token is a legacy category id",
			in:   "cat_pto",
			ok:   true,
			want: selection.Payload{Kind: selection.PayloadCategory, CatID: "cat_pto"},
		},
		{name: "empty", in: "", ok: false},
		{name: "empty category", in: "category:", ok: false},
		{name: "empty day", in: "day:", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selection.ParsePayload(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPayload_EncodeParseRoundTrip(t *testing.T) {
	for _, p := range []selection.Payload{
		{Kind: selection.PayloadCategory, CatID: "cat_pto"},
		{Kind: selection.PayloadDay, Date: "2025-03-10"},
	} {
		got, ok := selection.ParsePayload(p.Encode())
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestDragMachine_CategoryDropAssigns(t *testing.T) {
	var m selection.DragMachine
	m.StartCategory("cat_pto")
	require.True(t, m.Dragging())

	act, ok := m.DropOnDay("2025-03-10")

	require.True(t, ok)
	assert.Equal(t, selection.ActionAssign, act.Kind)
	assert.Equal(t, "cat_pto", act.Category)
	assert.Equal(t, "2025-03-10", act.Date)
	assert.False(t, m.Dragging())
}

func TestDragMachine_DayDropMoves(t *testing.T) {
	var m selection.DragMachine
	m.StartDay("2025-03-10")

	act, ok := m.DropOnDay("2025-04-01")

	require.True(t, ok)
	assert.Equal(t, selection.ActionMove, act.Kind)
	assert.Equal(t, "2025-03-10", act.From)
	assert.Equal(t, "2025-04-01", act.To)
}

func TestDragMachine_DayDroppedOnItself_NoOp(t *testing.T) {
	var m selection.DragMachine
	m.StartDay("2025-03-10")

	_, ok := m.DropOnDay("2025-03-10")

	assert.False(t, ok)
	assert.False(t, m.Dragging())
}

func TestDragMachine_TrashRemovesDaysOnly(t *testing.T) {
	// GIVEN: a dragged day
	// WHEN: it lands on the trash
	// THEN: the drop resolves to a removal

	var m selection.DragMachine
	m.StartDay("2025-03-10")
	act, ok := m.DropOnTrash()
	require.True(t, ok)
	assert.Equal(t, selection.ActionRemove, act.Kind)
	assert.Equal(t, "2025-03-10", act.Date)

	// A category swatch on the trash is discarded.
	m.StartCategory("cat_pto")
	_, ok = m.DropOnTrash()
	assert.False(t, ok)
	assert.False(t, m.Dragging())
}

func TestDragMachine_DropWithoutStart(t *testing.T) {
	var m selection.DragMachine

	_, ok := m.DropOnDay("2025-03-10")
	assert.False(t, ok)

	_, ok = m.DropOnTrash()
	assert.False(t, ok)
}

func TestDragMachine_EndCancels(t *testing.T) {
	var m selection.DragMachine
	m.StartCategory("cat_pto")

	m.End()

	assert.False(t, m.Dragging())
	_, ok := m.DropOnDay("2025-03-10")
	assert.False(t, ok)
}

func TestDragMachine_EmptyStartsIgnored(t *testing.T) {
	var m selection.DragMachine

	m.StartCategory("")
	assert.False(t, m.Dragging())

	m.StartDay("")
	assert.False(t, m.Dragging())
}
