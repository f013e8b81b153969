package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/internal/history"
	"github.com/inzamam-khan123/tbres/internal/outwriter"
	"github.com/inzamam-khan123/tbres/schema"
)

// ExecutorFunc defines the function signature for executing commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// RunSolve validates the input, enumerates candidates and runs the exact
// search. It returns ErrInfeasible when no assignment satisfies the
// constraints, and other errors for invalid inputs.
func RunSolve(input schema.SolveInput, rules schema.Ruleset, progress contract.ProgressFunc) (schema.SolveResult, error) {
	if err := ValidateInput(input, rules); err != nil {
		return schema.SolveResult{}, err
	}
	candidates := GenerateCandidates(input.Instances(), rules, progress)
	return Solve(candidates, input.Minimums, input.Chips)
}

// ExecuteSolve is the entry point for the 'solve' command. It resolves any
// preset reference, runs the solve, records the run in history and prints the
// result. An infeasible search is a valid outcome, not a command failure.
func ExecuteSolve(_ context.Context, cfg *contract.Config) error {
	if err := ResolvePreset(cfg); err != nil {
		return err
	}
	for _, w := range InputWarnings(cfg.Input) {
		contract.LogWarn("solve input", errors.New(w))
	}

	var progress contract.ProgressFunc
	if cfg.ShowProgress {
		progress = stderrProgress
	}

	start := time.Now()
	result, err := RunSolve(cfg.Input, cfg.Rules, progress)
	duration := time.Since(start)

	outcome := schema.OutcomeSuccess
	if errors.Is(err, ErrInfeasible) {
		outcome = schema.OutcomeInfeasible
	} else if err != nil {
		return err
	}

	recordRun(cfg, outcome, result.TotalScore, duration)
	return outwriter.PrintSolveResult(result, outcome, cfg, duration)
}

// ResolvePreset replaces the config input with the named preset, if any.
// Builtin presets win over stored ones so the shipped samples stay stable.
func ResolvePreset(cfg *contract.Config) error {
	if cfg.PresetName == "" {
		return nil
	}
	if p, ok := schema.FindBuiltinPreset(cfg.PresetName); ok {
		cfg.Input = p.SolveInput
		return nil
	}
	store := history.GetManager().GetHistoryStore()
	p, err := store.GetPreset(cfg.PresetName)
	if err != nil {
		return fmt.Errorf("preset %q: %w", cfg.PresetName, err)
	}
	cfg.Input = p.SolveInput
	return nil
}

// recordRun persists the solve outcome. History failures never fail a solve.
func recordRun(cfg *contract.Config, outcome schema.SolveOutcome, total float64, duration time.Duration) {
	if cfg.HistoryBackend == schema.NoneBackend {
		return
	}
	store := history.GetManager().GetHistoryStore()
	if _, err := store.RecordSolveRun(time.Now(), cfg.Input, outcome, total, duration); err != nil {
		contract.LogWarn("recording solve run", err)
	}
}

// stderrProgress writes generation progress on one reused terminal line.
func stderrProgress(done, total int) {
	_, _ = fmt.Fprintf(os.Stderr, "\rEnumerating triples: %d/%d", done, total)
	if done == total {
		_, _ = fmt.Fprintln(os.Stderr)
	}
}
