// Package history persists solve runs and presets across invocations.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/schema"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

// Table names for history tracking.
const (
	solveRunsTable = "tbres_solve_runs"
	presetsTable   = "tbres_presets"
)

// ErrPresetNotFound is returned when a named preset does not exist in the store.
var ErrPresetNotFound = errors.New("preset not found")

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite3"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled history
		return &HistoryStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Check that the server is running and connection parameters are valid", backend, err)
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createHistoryTables creates the history tracking tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{solveRunsTable, getCreateSolveRunsQuery(backend)},
		{presetsTable, getCreatePresetsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateSolveRunsQuery returns the CREATE TABLE query for tbres_solve_runs.
func getCreateSolveRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(solveRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_time DATETIME(6) NOT NULL,
				parts TEXT NOT NULL,
				chips INT NOT NULL,
				slots INT NOT NULL,
				minimums TEXT NOT NULL,
				outcome VARCHAR(50) NOT NULL,
				total_score DOUBLE NOT NULL,
				duration_ms INT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				run_time TIMESTAMPTZ NOT NULL,
				parts TEXT NOT NULL,
				chips INT NOT NULL,
				slots INT NOT NULL,
				minimums TEXT NOT NULL,
				outcome TEXT NOT NULL,
				total_score DOUBLE PRECISION NOT NULL,
				duration_ms INT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_time TEXT NOT NULL,
				parts TEXT NOT NULL,
				chips INTEGER NOT NULL,
				slots INTEGER NOT NULL,
				minimums TEXT NOT NULL,
				outcome TEXT NOT NULL,
				total_score REAL NOT NULL,
				duration_ms INTEGER
			);
		`, quotedTableName)
	}
}

// getCreatePresetsQuery returns the CREATE TABLE query for tbres_presets.
func getCreatePresetsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(presetsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				preset_name VARCHAR(255) PRIMARY KEY,
				parts TEXT NOT NULL,
				chips INT NOT NULL,
				minimums TEXT NOT NULL,
				created_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				preset_name TEXT PRIMARY KEY,
				parts TEXT NOT NULL,
				chips INT NOT NULL,
				minimums TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				preset_name TEXT PRIMARY KEY,
				parts TEXT NOT NULL,
				chips INTEGER NOT NULL,
				minimums TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// RecordSolveRun stores the outcome of one solve and returns its run ID.
func (hs *HistoryStoreImpl) RecordSolveRun(runTime time.Time, input schema.SolveInput, outcome schema.SolveOutcome, totalScore float64, duration time.Duration) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	partsJSON, err := json.Marshal(input.Inventory)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal inventory: %w", err)
	}
	minimumsJSON, err := json.Marshal(input.Minimums)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal minimums: %w", err)
	}

	quotedTableName := quoteTableName(solveRunsTable, hs.backend)
	durationMs := duration.Milliseconds()

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_time, parts, chips, slots, minimums, outcome, total_score, duration_ms)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, runTime, string(partsJSON), input.Chips, input.Slots(),
			string(minimumsJSON), string(outcome), totalScore, durationMs).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_time, parts, chips, slots, minimums, outcome, total_score, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, formatTime(runTime, hs.backend), string(partsJSON), input.Chips, input.Slots(),
			string(minimumsJSON), string(outcome), totalScore, durationMs)
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert solve run: %w", err)
	}

	return runID, nil
}

// GetAllSolveRuns retrieves all solve runs from the store.
func (hs *HistoryStoreImpl) GetAllSolveRuns() ([]schema.SolveRunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(solveRunsTable, hs.backend)
	query := fmt.Sprintf("SELECT run_id, run_time, parts, chips, slots, minimums, outcome, total_score, duration_ms FROM %s ORDER BY run_id", quotedTableName)

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query solve runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SolveRunRecord

	for rows.Next() {
		var record schema.SolveRunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var runTimeStr string
			if err := rows.Scan(&record.RunID, &runTimeStr, &record.Parts, &record.Chips, &record.Slots,
				&record.Minimums, &record.Outcome, &record.TotalScore, &record.DurationMs); err != nil {
				return nil, fmt.Errorf("failed to scan solve run: %w", err)
			}
			runTime, err := time.Parse(time.RFC3339Nano, runTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse run_time: %w", err)
			}
			record.RunTime = runTime
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.RunTime, &record.Parts, &record.Chips, &record.Slots,
				&record.Minimums, &record.Outcome, &record.TotalScore, &record.DurationMs); err != nil {
				return nil, fmt.Errorf("failed to scan solve run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating solve runs: %w", err)
	}

	return results, nil
}

// SavePreset inserts or replaces a named preset.
func (hs *HistoryStoreImpl) SavePreset(p schema.Preset) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	partsJSON, err := json.Marshal(p.Inventory)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	minimumsJSON, err := json.Marshal(p.Minimums)
	if err != nil {
		return fmt.Errorf("failed to marshal minimums: %w", err)
	}

	quotedTableName := quoteTableName(presetsTable, hs.backend)
	createdAt := formatTime(time.Now(), hs.backend)

	var query string
	switch hs.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (preset_name, parts, chips, minimums, created_at) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE parts = new.parts, chips = new.chips, minimums = new.minimums, created_at = new.created_at`, quotedTableName)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (preset_name, parts, chips, minimums, created_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (preset_name) DO UPDATE SET parts = EXCLUDED.parts, chips = EXCLUDED.chips, minimums = EXCLUDED.minimums, created_at = EXCLUDED.created_at`, quotedTableName)
	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (preset_name, parts, chips, minimums, created_at) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
	}

	if _, err := hs.db.Exec(query, p.Name, string(partsJSON), p.Chips, string(minimumsJSON), createdAt); err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}
	return nil
}

// GetPreset returns the stored preset with the given name.
func (hs *HistoryStoreImpl) GetPreset(name string) (schema.Preset, error) {
	// Not found for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return schema.Preset{}, ErrPresetNotFound
	}

	quotedTableName := quoteTableName(presetsTable, hs.backend)
	placeholder := hs.getPlaceholder()
	query := fmt.Sprintf("SELECT preset_name, parts, chips, minimums FROM %s WHERE preset_name = %s", quotedTableName, placeholder)

	var record schema.PresetRecord
	row := hs.db.QueryRow(query, name)
	if err := row.Scan(&record.Name, &record.Parts, &record.Chips, &record.Minimums); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schema.Preset{}, ErrPresetNotFound
		}
		return schema.Preset{}, fmt.Errorf("failed to get preset: %w", err)
	}

	return decodePresetRecord(record)
}

// ListPresets returns all stored presets ordered by name.
func (hs *HistoryStoreImpl) ListPresets() ([]schema.Preset, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(presetsTable, hs.backend)
	query := fmt.Sprintf("SELECT preset_name, parts, chips, minimums FROM %s ORDER BY preset_name", quotedTableName)

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.Preset
	for rows.Next() {
		var record schema.PresetRecord
		if err := rows.Scan(&record.Name, &record.Parts, &record.Chips, &record.Minimums); err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		p, err := decodePresetRecord(record)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating presets: %w", err)
	}

	return results, nil
}

// DeletePreset removes the stored preset with the given name.
func (hs *HistoryStoreImpl) DeletePreset(name string) error {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return ErrPresetNotFound
	}

	quotedTableName := quoteTableName(presetsTable, hs.backend)
	placeholder := hs.getPlaceholder()
	query := fmt.Sprintf("DELETE FROM %s WHERE preset_name = %s", quotedTableName, placeholder)

	result, err := hs.db.Exec(query, name)
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrPresetNotFound
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(solveRunsTable, hs.backend))
	row := hs.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT run_id, run_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(solveRunsTable, hs.backend))
		row = hs.db.QueryRow(lastRunQuery)

		switch hs.backend {
		case schema.SQLiteBackend:
			var lastRunID int64
			var lastRunTimeStr string
			if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			status.LastRunID = lastRunID
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT run_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(solveRunsTable, hs.backend))
		row = hs.db.QueryRow(oldestRunQuery)

		switch hs.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}
	}

	// Get total presets
	presetsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(presetsTable, hs.backend))
	row = hs.db.QueryRow(presetsQuery)
	if err := row.Scan(&status.TotalPresets); err != nil {
		return status, fmt.Errorf("failed to get total presets: %w", err)
	}

	// Get table sizes
	tables := []string{solveRunsTable, presetsTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, hs.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		row = hs.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// getPlaceholder returns the parameter placeholder for the backend.
func (hs *HistoryStoreImpl) getPlaceholder() string {
	switch hs.backend {
	case schema.PostgreSQLBackend:
		return "$1"
	default: // SQLite and MySQL
		return "?"
	}
}

// decodePresetRecord converts a stored preset row back into a Preset.
func decodePresetRecord(record schema.PresetRecord) (schema.Preset, error) {
	p := schema.Preset{Name: record.Name}
	if err := json.Unmarshal([]byte(record.Parts), &p.Inventory); err != nil {
		return schema.Preset{}, fmt.Errorf("malformed preset parts for %q: %w", record.Name, err)
	}
	if err := json.Unmarshal([]byte(record.Minimums), &p.Minimums); err != nil {
		return schema.Preset{}, fmt.Errorf("malformed preset minimums for %q: %w", record.Name, err)
	}
	p.Chips = int(record.Chips)
	return p, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
