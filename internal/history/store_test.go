package history

import (
	"testing"
	"time"

	"github.com/inzamam-khan123/tbres/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() schema.SolveInput {
	return schema.SolveInput{
		Inventory: map[schema.PartType]int{schema.PartE: 2, schema.PartR2: 2},
		Chips:     9,
		Minimums:  []int{0},
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// RecordSolveRun should return 0 for NoneBackend
	runID, err := store.RecordSolveRun(time.Now(), sampleInput(), schema.OutcomeSuccess, 5100, time.Second)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	runs, err := store.GetAllSolveRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	// Preset lookups report not found rather than erroring out
	_, err = store.GetPreset("anything")
	assert.ErrorIs(t, err, ErrPresetNotFound)

	assert.NoError(t, store.SavePreset(schema.Preset{Name: "noop"}))
	assert.NoError(t, store.Close())
}

func TestHistoryStore_SQLite(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Record two runs with distinct outcomes
	runID, err := store.RecordSolveRun(time.Now(), sampleInput(), schema.OutcomeSuccess, 5100, 17*time.Millisecond)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	secondID, err := store.RecordSolveRun(time.Now(), sampleInput(), schema.OutcomeInfeasible, 0, 3*time.Millisecond)
	require.NoError(t, err)
	assert.Greater(t, secondID, runID)

	runs, err := store.GetAllSolveRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, string(schema.OutcomeSuccess), runs[0].Outcome)
	assert.InDelta(t, 5100.0, runs[0].TotalScore, 0.001)
	assert.Equal(t, int32(9), runs[0].Chips)
	assert.Equal(t, int32(1), runs[0].Slots)
	assert.Contains(t, runs[0].Parts, `"E":2`)
	require.NotNil(t, runs[0].DurationMs)
	assert.Equal(t, int32(17), *runs[0].DurationMs)
	assert.Equal(t, string(schema.OutcomeInfeasible), runs[1].Outcome)
}

func TestHistoryStore_Presets(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	preset := schema.Preset{
		Name: "raid-night",
		SolveInput: schema.SolveInput{
			Inventory: map[schema.PartType]int{schema.PartE: 1, schema.PartR4: 2, schema.PartR2: 3},
			Chips:     15,
			Minimums:  []int{3000, 2000},
		},
	}

	t.Run("save and get round trip", func(t *testing.T) {
		require.NoError(t, store.SavePreset(preset))

		got, err := store.GetPreset("raid-night")
		require.NoError(t, err)
		assert.Equal(t, preset.Name, got.Name)
		assert.Equal(t, preset.Inventory, got.Inventory)
		assert.Equal(t, preset.Chips, got.Chips)
		assert.Equal(t, preset.Minimums, got.Minimums)
	})

	t.Run("save overwrites existing", func(t *testing.T) {
		updated := preset
		updated.Chips = 30
		require.NoError(t, store.SavePreset(updated))

		got, err := store.GetPreset("raid-night")
		require.NoError(t, err)
		assert.Equal(t, 30, got.Chips)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		require.NoError(t, store.SavePreset(schema.Preset{
			Name: "alt-run",
			SolveInput: schema.SolveInput{
				Inventory: map[schema.PartType]int{schema.PartY: 3},
				Minimums:  []int{0},
			},
		}))

		presets, err := store.ListPresets()
		require.NoError(t, err)
		require.Len(t, presets, 2)
		assert.Equal(t, "alt-run", presets[0].Name)
		assert.Equal(t, "raid-night", presets[1].Name)
	})

	t.Run("delete removes preset", func(t *testing.T) {
		require.NoError(t, store.DeletePreset("alt-run"))
		_, err := store.GetPreset("alt-run")
		assert.ErrorIs(t, err, ErrPresetNotFound)
	})

	t.Run("delete missing reports not found", func(t *testing.T) {
		assert.ErrorIs(t, store.DeletePreset("missing"), ErrPresetNotFound)
	})
}

func TestHistoryStore_GetStatus(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	t.Run("empty store", func(t *testing.T) {
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
		assert.True(t, status.Connected)
		assert.Zero(t, status.TotalRuns)
		assert.Zero(t, status.TotalPresets)
	})

	t.Run("populated store", func(t *testing.T) {
		first, err := store.RecordSolveRun(time.Now().Add(-time.Hour), sampleInput(), schema.OutcomeSuccess, 5100, time.Second)
		require.NoError(t, err)
		last, err := store.RecordSolveRun(time.Now(), sampleInput(), schema.OutcomeSuccess, 4800, time.Second)
		require.NoError(t, err)
		require.NoError(t, store.SavePreset(schema.Preset{
			Name: "status-check",
			SolveInput: schema.SolveInput{
				Inventory: map[schema.PartType]int{schema.PartE: 3},
				Minimums:  []int{0},
			},
		}))

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, 2, status.TotalRuns)
		assert.Equal(t, 1, status.TotalPresets)
		assert.Less(t, first, last)
		assert.Equal(t, last, status.LastRunID)
		assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
		assert.Equal(t, int64(2), status.TableSizes[solveRunsTable])
		assert.Equal(t, int64(1), status.TableSizes[presetsTable])
	})
}

func TestHistoryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}
