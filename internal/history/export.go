package history

import (
	"errors"
	"fmt"

	"github.com/inzamam-khan123/tbres/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of solve history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := GetManager().GetHistoryStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 && status.TotalPresets == 0 {
		return errors.New("no solve history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total solve runs: %d\n", status.TotalRuns)
	fmt.Printf("Total presets: %d\n", status.TotalPresets)

	// Retrieve all solve runs
	runs, err := store.GetAllSolveRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve solve runs: %w", err)
	}

	// Retrieve all presets
	presets, err := store.ListPresets()
	if err != nil {
		return fmt.Errorf("failed to retrieve presets: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertSolveRunRecords(runs)
	parquetPresets, err := parquet.ConvertPresets(presets)
	if err != nil {
		return fmt.Errorf("failed to convert presets: %w", err)
	}

	// Write solve runs to Parquet
	runsFile := outputFile + ".solve_runs.parquet"
	if err := parquet.WriteSolveRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write solve runs: %w", err)
	}
	fmt.Printf("Exported %d solve runs to: %s\n", len(parquetRuns), runsFile)

	// Write presets to Parquet
	presetsFile := outputFile + ".presets.parquet"
	if err := parquet.WritePresetsParquet(parquetPresets, presetsFile); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}
	fmt.Printf("Exported %d presets to: %s\n", len(parquetPresets), presetsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
