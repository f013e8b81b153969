// Package parquet provides data structures and functions for exporting tbres
// solve history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/inzamam-khan123/tbres/schema"
	"github.com/parquet-go/parquet-go"
)

// SolveRun represents a single recorded solve with its inputs and outcome.
// This struct maps to the tbres_solve_runs database table.
type SolveRun struct {
	// RunID is the unique identifier for this solve run
	RunID int64 `parquet:"run_id,snappy"`

	// RunTime is when the solve was executed (stored as TIMESTAMP with nanosecond precision)
	RunTime time.Time `parquet:"run_time,snappy"`

	// Parts contains the JSON-encoded inventory used for the solve
	Parts string `parquet:"parts,snappy"`

	// Chips is the shared budget available to the solve
	Chips int32 `parquet:"chips,snappy"`

	// Slots is the number of slots requested
	Slots int32 `parquet:"slots,snappy"`

	// Minimums contains the JSON-encoded per-slot minimum scores
	Minimums string `parquet:"minimums,snappy"`

	// Outcome is the recorded solve outcome (success or infeasible)
	Outcome string `parquet:"outcome,snappy"`

	// TotalScore is the optimal total score, zero when infeasible
	TotalScore float64 `parquet:"total_score,snappy"`

	// DurationMs is the solve duration in milliseconds (nullable)
	DurationMs *int32 `parquet:"duration_ms,optional,snappy"`
}

// PresetEntry represents a stored preset.
// This struct maps to the tbres_presets database table.
type PresetEntry struct {
	// Name is the unique preset name
	Name string `parquet:"preset_name,snappy"`

	// Parts contains the JSON-encoded inventory
	Parts string `parquet:"parts,snappy"`

	// Chips is the shared budget stored with the preset
	Chips int32 `parquet:"chips,snappy"`

	// Minimums contains the JSON-encoded per-slot minimum scores
	Minimums string `parquet:"minimums,snappy"`
}

// WriteSolveRunsParquet writes a slice of SolveRun structs to a Parquet file.
func WriteSolveRunsParquet(data []SolveRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SolveRun struct tags
	writer := parquet.NewGenericWriter[SolveRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePresetsParquet writes a slice of PresetEntry structs to a Parquet file.
func WritePresetsParquet(data []PresetEntry, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the PresetEntry struct tags
	writer := parquet.NewGenericWriter[PresetEntry](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertSolveRunRecords converts schema.SolveRunRecord to SolveRun for Parquet export.
func ConvertSolveRunRecords(records []schema.SolveRunRecord) []SolveRun {
	result := make([]SolveRun, len(records))
	for i, record := range records {
		result[i] = SolveRun{
			RunID:      record.RunID,
			RunTime:    record.RunTime,
			Parts:      record.Parts,
			Chips:      record.Chips,
			Slots:      record.Slots,
			Minimums:   record.Minimums,
			Outcome:    record.Outcome,
			TotalScore: record.TotalScore,
			DurationMs: record.DurationMs,
		}
	}
	return result
}

// ConvertPresets converts schema.Preset values to PresetEntry for Parquet export.
// Serialization mirrors the history store's JSON encoding so exported rows
// round-trip with what the database holds.
func ConvertPresets(presets []schema.Preset) ([]PresetEntry, error) {
	result := make([]PresetEntry, len(presets))
	for i, p := range presets {
		parts, err := encodeJSON(p.Inventory)
		if err != nil {
			return nil, fmt.Errorf("failed to encode preset %q parts: %w", p.Name, err)
		}
		minimums, err := encodeJSON(p.Minimums)
		if err != nil {
			return nil, fmt.Errorf("failed to encode preset %q minimums: %w", p.Name, err)
		}
		result[i] = PresetEntry{
			Name:     p.Name,
			Parts:    parts,
			Chips:    int32(p.Chips),
			Minimums: minimums,
		}
	}
	return result, nil
}

// encodeJSON marshals a value to a compact JSON string.
func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
