package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/internal/history"
	"github.com/inzamam-khan123/tbres/internal/outwriter"
	"github.com/inzamam-khan123/tbres/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history and preset
// operations. This is used by commands that need store access without full
// shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the store with the loaded config
	if err := history.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	// Output-related config values used by the print helpers
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = viper.GetInt("precision")
	cfg.Width = viper.GetInt("width")

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	color.NoColor = !colors

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for the migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on solve history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded solve runs",
	Long: `Manage the solve history recorded by the solve command.

Every solve records its inputs, outcome, total score and duration in the
configured backend. This enables reviewing past runs and exporting them for
analytics.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recorded solve runs
  status  - Show history statistics and connection info
  clear   - Remove all recorded data
  export  - Export runs and presets to Parquet
  migrate - Run database schema migrations

Examples:
  # Review past solves
  tbres history list

  # Export for analysis in pandas/DuckDB
  tbres history export --output-file tbres-data`,
}

// historyListCmd lists recorded solve runs.
var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show recorded solve runs",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := history.GetManager().GetHistoryStore().GetAllSolveRuns()
		if err != nil {
			contract.LogFatal("Failed to list solve runs", err)
		}
		if err := outwriter.PrintSolveRuns(runs, cfg); err != nil {
			contract.LogFatal("Failed to print solve runs", err)
		}
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show detailed information about the solve history store.

Displays:
- Backend type and connection status
- Total number of recorded solve runs and saved presets
- Last and oldest solve run timestamps
- Database table sizes

Examples:
  # Check history status
  tbres history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := history.GetManager().GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		if err := outwriter.PrintHistoryStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print history status", err)
		}
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded solve runs and saved presets",
	Long: `Delete all solve history from the configured backend.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

Examples:
  # Export before clearing
  tbres history export --output-file backup
  tbres history clear

  # Clear a MySQL backend (set connection string via env variable)
  TBRES_HISTORY_BACKEND=mysql TBRES_HISTORY_DB_CONNECT="..." tbres history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyExportCmd exports solve history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export solve runs and presets to Parquet for analytics",
	Long: `Export all recorded solve history to Parquet format.

Exports two datasets:
- Solve runs - inputs, outcome, total score and duration per run
- Presets - all saved solve scenarios

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all data
  tbres history export --output-file tbres-data

  # Use with DuckDB for analysis
  tbres history export --output-file data
  duckdb -c "SELECT * FROM read_parquet('data.solve_runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the solve history store.

Migrations allow:
- Upgrading to new schema versions when tbres is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  tbres history migrate

  # Migrate to specific version
  tbres history migrate --target-version 2

  # Rollback to initial state
  tbres history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
