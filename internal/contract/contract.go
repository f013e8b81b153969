// Package contract holds the shared configuration, interfaces and helpers
// that connect the tbres CLI, solver core and persistence layers.
package contract

import (
	"context"
	"time"

	"github.com/inzamam-khan123/tbres/schema"
)

// HistoryStore persists solve runs and named presets.
type HistoryStore interface {
	// RecordSolveRun stores the outcome of one solve and returns its run ID.
	RecordSolveRun(runTime time.Time, input schema.SolveInput, outcome schema.SolveOutcome, totalScore float64, duration time.Duration) (int64, error)

	// GetAllSolveRuns retrieves every recorded solve run.
	GetAllSolveRuns() ([]schema.SolveRunRecord, error)

	// SavePreset inserts or replaces a named preset.
	SavePreset(p schema.Preset) error

	// GetPreset returns the stored preset with the given name.
	GetPreset(name string) (schema.Preset, error)

	// ListPresets returns all stored presets ordered by name.
	ListPresets() ([]schema.Preset, error)

	// DeletePreset removes the stored preset with the given name.
	DeletePreset(name string) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// HistoryManager guards access to the history store during initialization.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// FeedbackSink accepts free-text notes for an external channel. Sink failures
// must never affect the solve path, so implementations only report errors and
// callers treat them as warnings.
type FeedbackSink interface {
	Submit(ctx context.Context, text string) error
}

// ProgressFunc observes candidate generation. It receives the number of
// triples enumerated so far and the total triple count. Implementations must
// be fast; the generator calls them inline.
type ProgressFunc func(done, total int)
