package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintPresets outputs presets, dispatching based on the output format configured.
func PrintPresets(presets []schema.Preset, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, presets)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"name", "parts", "chips", "slots", "minimums"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				for _, p := range presets {
					rec := []string{
						p.Name,
						schema.FormatInventory(p.Inventory),
						strconv.Itoa(p.Chips),
						strconv.Itoa(p.Slots()),
						schema.FormatMinimums(p.Minimums),
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
			return writePresetTable(presets, w)
		}, "Wrote table")
	}
}

// writePresetTable generates and writes the human-readable preset list.
func writePresetTable(presets []schema.Preset, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Name", "Parts", "Chips", "Slots", "Minimums"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range presets {
		data = append(data, []string{
			p.Name,
			schema.FormatInventory(p.Inventory),
			strconv.Itoa(p.Chips),
			strconv.Itoa(p.Slots()),
			schema.FormatMinimums(p.Minimums),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d presets\n", len(presets))
	return err
}
