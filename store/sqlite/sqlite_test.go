package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timeoff-planner/planner"
	"github.com/warp/timeoff-planner/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoad_FreshDatabase_ReturnsNil(t *testing.T) {
	st := newTestStore(t)

	state, err := st.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	// GIVEN: a two-year store with events in both
	// WHEN: saved and loaded back
	// THEN: the loaded store matches, year by year

	st := newTestStore(t)
	ctx := context.Background()

	state := planner.DefaultStore(2025)
	e := planner.NewEngine(state)
	require.NoError(t, e.Assign("2025-03-10", "cat_pto"))
	require.NoError(t, e.ToggleHalf("2025-03-10", true))
	require.NoError(t, e.SwitchYear(2026))
	require.NoError(t, e.Assign("2026-02-02", "cat_sick"))

	require.NoError(t, st.Save(ctx, state))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year)
	require.Len(t, got.Years, 2)
	assert.Equal(t, state.Years[2025].Events, got.Years[2025].Events)
	assert.Equal(t, state.Years[2025].Categories, got.Years[2025].Categories)
	assert.Equal(t, state.Years[2026].Events, got.Years[2026].Events)
	assert.True(t, got.Years[2026].HolidaysPopulated)
}

func TestSave_ReplacesPreviousState(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := planner.DefaultStore(2025)
	require.NoError(t, st.Save(ctx, first))

	second := planner.DefaultStore(2027)
	require.NoError(t, st.Save(ctx, second))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2027, got.Year)
	assert.NotContains(t, got.Years, 2025)
}

func TestSave_Repeatedly_Idempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	state := planner.DefaultStore(2025)
	require.NoError(t, st.Save(ctx, state))
	require.NoError(t, st.Save(ctx, state))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, state.Active().Events, got.Active().Events)
}

func TestStore_ImplementsStateStore(t *testing.T) {
	var _ planner.StateStore = newTestStore(t)
}
