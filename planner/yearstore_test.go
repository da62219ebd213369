package planner_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/timeoff-planner/planner"
)

// =============================================================================
// LOAD / MIGRATE
// =============================================================================

func TestLoadOrMigrate_CurrentShape(t *testing.T) {
	blob := []byte(`{
		"year": 2025,
		"years": {
			"2025": {
				"categories": [{"id":"cat_pto","name":"PTO","qty":15,"used":0,"color":"#60a5fa"}],
				"events": {"2025-03-10": {"catId":"cat_pto","half":true}},
				"holidaysPopulated": true
			},
			"2024": {
				"categories": [{"id":"cat_pto","name":"PTO","qty":15,"used":0,"color":"#60a5fa"}],
				"events": {},
				"holidaysPopulated": true
			}
		}
	}`)

	s := planner.LoadOrMigrate(blob, 2026)

	assert.Equal(t, 2025, s.Year)
	require.Len(t, s.Years, 2)
	yd := s.Active()
	require.Contains(t, yd.Events, "2025-03-10")
	// Usage is recomputed on load, never trusted from the blob.
	assert.Equal(t, 0.5, yd.Category("cat_pto").Used)
}

func TestLoadOrMigrate_LegacyFlatShape(t *testing.T) {
	// GIVEN: a blob from before per-year archives existed
	// WHEN: it is loaded
	// THEN: it becomes the sole entry of the years map

	blob := []byte(`{
		"year": 2024,
		"categories": [
			{"id":"cat_holiday","name":"Holiday","qty":10,"used":0,"color":"#f472b6"},
			{"id":"cat_pto","name":"PTO","qty":15,"used":0,"color":"#60a5fa"}
		],
		"events": {"2024-08-05": {"catId":"cat_pto","half":false}}
	}`)

	s := planner.LoadOrMigrate(blob, 2026)

	assert.Equal(t, 2024, s.Year)
	require.Len(t, s.Years, 1)
	yd := s.Active()
	assert.Contains(t, yd.Events, "2024-08-05")
	assert.Equal(t, 1.0, yd.Category("cat_pto").Used)
}

func TestLoadOrMigrate_GarbageFallsBackToDefaults(t *testing.T) {
	for _, blob := range [][]byte{
		nil,
		[]byte(""),
		[]byte("not json"),
		[]byte(`{"year": 0}`),
		[]byte(`{"years": {}}`),
	} {
		s := planner.LoadOrMigrate(blob, 2025)

		assert.Equal(t, 2025, s.Year)
		yd := s.Active()
		assert.Len(t, yd.Categories, 3)
		assert.True(t, yd.HolidaysPopulated)
		assert.Len(t, yd.Events, 10)
	}
}

func TestLoadOrMigrate_MissingActiveSlotRecreated(t *testing.T) {
	blob := []byte(`{
		"year": 2026,
		"years": {
			"2025": {"categories": [{"id":"cat_pto","name":"PTO","qty":15,"used":0,"color":"#60a5fa"}], "events": {}}
		}
	}`)

	s := planner.LoadOrMigrate(blob, 2026)

	assert.Equal(t, 2026, s.Year)
	yd := s.Active()
	require.NotNil(t, yd.Category(planner.HolidayCategoryID))
	assert.True(t, yd.HolidaysPopulated)
	// The non-active archive year is carried over untouched.
	assert.Contains(t, s.Years, 2025)
}

func TestSerialize_RoundTripsThroughLoad(t *testing.T) {
	orig := planner.DefaultStore(2025)
	e := planner.NewEngine(orig)
	require.NoError(t, e.Assign("2025-03-10", "cat_pto"))
	require.NoError(t, e.ToggleHalf("2025-03-10", true))

	blob, err := orig.Serialize()
	require.NoError(t, err)

	got := planner.LoadOrMigrate(blob, 2030)
	assert.Equal(t, orig.Year, got.Year)
	assert.Equal(t, orig.Active().Events, got.Active().Events)
	assert.Equal(t, orig.Active().Categories, got.Active().Categories)
}

func TestSerialize_WritesActiveYearMirrors(t *testing.T) {
	// The top-level categories/events mirrors keep the blob readable by
	// consumers of the legacy flat shape.
	s := planner.DefaultStore(2025)

	blob, err := s.Serialize()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(blob, &raw))
	assert.Contains(t, raw, "years")
	assert.Contains(t, raw, "categories")
	assert.Contains(t, raw, "events")
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "timeoff-2025.json", planner.ExportFileName(2025))
}

func TestExportImport_RoundTrip(t *testing.T) {
	// GIVEN: a 2025 store with assignments
	// WHEN: its export is imported into a fresh store
	// THEN: categories, events and the active year match

	src := planner.DefaultStore(2025)
	e := planner.NewEngine(src)
	require.NoError(t, e.Assign("2025-03-10", "cat_pto"))

	blob, err := src.ExportYear()
	require.NoError(t, err)

	dst := planner.DefaultStore(2026)
	require.NoError(t, dst.ImportYear(blob))

	assert.Equal(t, 2025, dst.Year)
	assert.Equal(t, src.Active().Events, dst.Active().Events)
	assert.Equal(t, src.Active().Categories, dst.Active().Categories)
	// The pre-import active year stays archived.
	assert.Contains(t, dst.Years, 2026)
}

func TestImportYear_LegacyBlobWithoutYear_ReplacesActive(t *testing.T) {
	blob := []byte(`{
		"categories": [{"id":"cat_pto","name":"PTO","qty":15,"used":0,"color":"#60a5fa"}],
		"events": {"2025-03-10": {"catId":"cat_pto","half":false}}
	}`)
	s := planner.DefaultStore(2025)

	require.NoError(t, s.ImportYear(blob))

	assert.Equal(t, 2025, s.Year)
	yd := s.Active()
	assert.Len(t, yd.Categories, 1)
	assert.Equal(t, 1.0, yd.Category("cat_pto").Used)
	// Imported years never re-run holiday population.
	assert.True(t, yd.HolidaysPopulated)
}

func TestImportYear_RejectsMalformedDocuments(t *testing.T) {
	s := planner.DefaultStore(2025)
	before := s.Active().Clone()

	for _, blob := range [][]byte{
		[]byte("not json"),
		[]byte(`{"events": {}}`),                // no categories
		[]byte(`{"year": 2025, "events": {}}`),  // still no categories
	} {
		err := s.ImportYear(blob)
		assert.ErrorIs(t, err, planner.ErrMalformedData)
	}

	assert.Equal(t, before.Events, s.Active().Events)
	assert.Equal(t, before.Categories, s.Active().Categories)
}

func TestImportYear_MissingEventsDefaultsEmpty(t *testing.T) {
	blob := []byte(`{"year": 2027, "categories": []}`)
	s := planner.DefaultStore(2025)

	err := s.ImportYear(blob)

	// An empty categories array is present, so the document is accepted.
	require.NoError(t, err)
	assert.Equal(t, 2027, s.Year)
	assert.Empty(t, s.Active().Events)
}
