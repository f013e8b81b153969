package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// infeasibleExplanation mirrors what an unsolvable configuration usually means.
const infeasibleExplanation = "No solution was found. This usually means you do not have enough parts, " +
	"chips, or your minimum score requirements are too high for the available resources. " +
	"Try lowering your requirements or increasing your available parts and chips."

// PrintSolveResult outputs a solve outcome, dispatching based on the output format configured.
// An infeasible outcome carries no assignments and is printed as a definitive answer.
func PrintSolveResult(result schema.SolveResult, outcome schema.SolveOutcome, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSolveJSONResult(result, outcome, cfg, duration); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSolveCSVResult(result, outcome, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSolveTable(result, outcome, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSolveTable generates and writes the human-readable result.
func writeSolveTable(result schema.SolveResult, outcome schema.SolveOutcome, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	label := contract.GetPlainOutcomeLabel(outcome == schema.OutcomeSuccess)
	if cfg.UseColors {
		label = contract.GetColorOutcomeLabel(outcome == schema.OutcomeSuccess)
	}

	if outcome != schema.OutcomeSuccess {
		if _, err := fmt.Fprintf(writer, "%s: %s\n", label, infeasibleExplanation); err != nil {
			return err
		}
		_, err := fmt.Fprintf(writer, "Solve completed in %v. History backend: %s\n", duration, cfg.HistoryBackend)
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Slot", "Parts Used", "Multiplier", "Chips", "Score"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	partsWidth := getMaxPartsColumnWidth(cfg)
	var data [][]string
	for _, a := range result.Assignments {
		data = append(data, []string{
			fmt.Sprintf("Slot %d", a.Slot+1),
			truncateMiddle(formatPartsUsed(a.Types), partsWidth),
			fmt.Sprintf("%.1fx", a.Multiplier),
			strconv.Itoa(a.Cost),
			strconv.Itoa(a.DisplayScore()),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "%s: total score %d across %d slots\n", label, result.DisplayTotal(), len(result.Assignments)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Solve completed in %v. History backend: %s\n", duration, cfg.HistoryBackend)
	return err
}

// writeSolveCSVResult writes the solve input and output as one CSV document,
// with an INPUTS section followed by an OUTPUT section and a total row.
func writeSolveCSVResult(result schema.SolveResult, outcome schema.SolveOutcome, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()

		records := [][]string{
			{"INPUTS"},
			{"Parameter", "Value"},
			{"Number of slots", strconv.Itoa(cfg.Input.Slots())},
			{"Total chips available", strconv.Itoa(cfg.Input.Chips)},
			{""},
			{"Parts"},
			{"Part", "Count"},
		}
		for _, pt := range schema.AllPartTypes {
			records = append(records, []string{string(pt), strconv.Itoa(cfg.Input.Inventory[pt])})
		}
		records = append(records, []string{""}, []string{"Minimum score per slot"}, []string{"Slot", "Min Score"})
		for i, minScore := range cfg.Input.Minimums {
			records = append(records, []string{fmt.Sprintf("Slot %d", i+1), strconv.Itoa(minScore)})
		}

		records = append(records, []string{""}, []string{"OUTPUT"})
		records = append(records, []string{"Outcome", contract.GetPlainOutcomeLabel(outcome == schema.OutcomeSuccess)})
		if outcome == schema.OutcomeSuccess {
			records = append(records, []string{"Slot", "Parts Used", "Multiplier", "Chips", "Score"})
			for _, a := range result.Assignments {
				records = append(records, []string{
					fmt.Sprintf("Slot %d", a.Slot+1),
					formatPartsUsed(a.Types),
					fmt.Sprintf("%.1fx", a.Multiplier),
					strconv.Itoa(a.Cost),
					strconv.Itoa(a.DisplayScore()),
				})
			}
			records = append(records, []string{""}, []string{"Total Score", "", "", strconv.Itoa(result.DisplayTotal())})
		}

		for _, rec := range records {
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote CSV")
}

// writeSolveJSONResult writes the solve outcome in JSON format.
func writeSolveJSONResult(result schema.SolveResult, outcome schema.SolveOutcome, cfg *contract.Config, duration time.Duration) error {
	type JSONSolveResult struct {
		Outcome     string                  `json:"outcome"`
		Input       schema.SolveInput       `json:"input"`
		Assignments []schema.SlotAssignment `json:"assignments,omitempty"`
		TotalScore  int                     `json:"total_score"`
		DurationMs  int64                   `json:"duration_ms"`
	}

	output := JSONSolveResult{
		Outcome:    contract.GetPlainOutcomeLabel(outcome == schema.OutcomeSuccess),
		Input:      cfg.Input,
		DurationMs: duration.Milliseconds(),
	}
	if outcome == schema.OutcomeSuccess {
		output.Assignments = result.Assignments
		output.TotalScore = result.DisplayTotal()
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// formatPartsUsed renders a group's part types the way results display them.
func formatPartsUsed(types [schema.PartsPerGroup]schema.PartType) string {
	parts := make([]string, 0, len(types))
	for _, pt := range types {
		parts = append(parts, string(pt))
	}
	return strings.Join(parts, ", ")
}
