package schema

import "time"

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalPresets  int              `json:"total_presets"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// SolveRunRecord represents a row from the tbres_solve_runs table.
type SolveRunRecord struct {
	RunID      int64
	RunTime    time.Time
	Parts      string // JSON-encoded inventory
	Chips      int32
	Slots      int32
	Minimums   string // JSON-encoded minimums
	Outcome    string
	TotalScore float64
	DurationMs *int32
}

// PresetRecord represents a row from the tbres_presets table.
type PresetRecord struct {
	Name      string
	Parts     string // JSON-encoded inventory
	Chips     int32
	Minimums  string // JSON-encoded minimums
	CreatedAt time.Time
}
