package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSolveRuns outputs recorded solve runs, dispatching based on the output format configured.
func PrintSolveRuns(runs []schema.SolveRunRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"run_id", "run_time", "parts", "chips", "slots", "minimums", "outcome", "total_score", "duration_ms"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, r := range runs {
					rec := []string{
						strconv.FormatInt(r.RunID, 10),
						r.RunTime.Format(contract.DateTimeFormat),
						r.Parts,
						strconv.Itoa(int(r.Chips)),
						strconv.Itoa(int(r.Slots)),
						r.Minimums,
						r.Outcome,
						fmtFloat(r.TotalScore),
						formatDurationMs(r.DurationMs),
					}
					if err := csvWriter.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSolveRunTable(runs, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeSolveRunTable generates and writes the human-readable run history.
func writeSolveRunTable(runs []schema.SolveRunRecord, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "Time", "Parts", "Chips", "Slots", "Outcome", "Total", "Duration"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.RunTime.Format(contract.DateTimeFormat),
			truncateMiddle(r.Parts, 30),
			strconv.Itoa(int(r.Chips)),
			strconv.Itoa(int(r.Slots)),
			r.Outcome,
			fmtFloat(r.TotalScore),
			formatDurationMs(r.DurationMs),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d solve runs\n", len(runs))
	return err
}

// PrintHistoryStatus outputs the history store status, dispatching based on the output format configured.
func PrintHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeHistoryStatusText(status, w)
	}, "Wrote status")
}

// writeHistoryStatusText writes a compact key-value status report.
func writeHistoryStatusText(status schema.HistoryStatus, w io.Writer) error {
	lines := []string{
		fmt.Sprintf("Backend:       %s", status.Backend),
		fmt.Sprintf("Connected:     %t", status.Connected),
		fmt.Sprintf("Solve runs:    %d", status.TotalRuns),
		fmt.Sprintf("Presets:       %d", status.TotalPresets),
	}
	if status.TotalRuns > 0 {
		lines = append(lines,
			fmt.Sprintf("Last run:      #%d at %s", status.LastRunID, status.LastRunTime.Format(contract.DateTimeFormat)),
			fmt.Sprintf("Oldest run:    %s", status.OldestRunTime.Format(contract.DateTimeFormat)),
		)
	}
	for name, size := range status.TableSizes {
		lines = append(lines, fmt.Sprintf("Rows in %s: %d", name, size))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatDurationMs renders an optional millisecond duration.
func formatDurationMs(ms *int32) string {
	if ms == nil {
		return "-"
	}
	return (time.Duration(*ms) * time.Millisecond).String()
}
