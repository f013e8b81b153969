package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/internal/history"
	"github.com/inzamam-khan123/tbres/internal/outwriter"
	"github.com/inzamam-khan123/tbres/schema"
	"github.com/spf13/cobra"
)

// presetCmd focused on preset management.
//
// Note: Preset subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by the solve command. This avoids solve input
// parsing for simple preset operations.
var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage named solve scenarios",
	Long: `Manage named presets that bundle an inventory, a chips budget and slot minimums.

Two kinds of presets exist:
- Builtin presets shipped with tbres (default, sample1, sample2). These are
  read-only and always available.
- Saved presets stored in the history backend. These are yours to create,
  overwrite and delete.

Subcommands:
  list   - Show builtin and saved presets
  show   - Show one preset by name
  save   - Save a preset from explicit solve inputs
  delete - Delete a saved preset
  export - Export saved presets to a JSON file
  import - Import presets from a JSON file

Examples:
  # See what is available
  tbres preset list

  # Save tonight's inventory for reuse
  tbres preset save raid-night --parts "E:2,R4:1,R2:6" --chips 23 --mins "4500,3500"

  # Solve it later
  tbres solve --preset raid-night`,
}

// presetListCmd lists builtin and saved presets.
var presetListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show builtin and saved presets",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		presets := make([]schema.Preset, 0, len(schema.BuiltinPresets))
		presets = append(presets, schema.BuiltinPresets...)

		saved, err := history.GetManager().GetHistoryStore().ListPresets()
		if err != nil {
			contract.LogFatal("Failed to list saved presets", err)
		}
		presets = append(presets, saved...)

		if err := outwriter.PrintPresets(presets, cfg); err != nil {
			contract.LogFatal("Failed to print presets", err)
		}
	},
}

// presetShowCmd shows a single preset.
var presetShowCmd = &cobra.Command{
	Use:     "show NAME",
	Short:   "Show one preset by name",
	Args:    cobra.ExactArgs(1),
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		preset, err := resolvePresetByName(args[0])
		if err != nil {
			contract.LogFatal("Failed to resolve preset", err)
		}
		if err := outwriter.PrintPresets([]schema.Preset{preset}, cfg); err != nil {
			contract.LogFatal("Failed to print preset", err)
		}
	},
}

// presetSaveCmd saves a preset from explicit solve inputs.
var presetSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save a preset from explicit solve inputs",
	Long: `Store a named preset in the history backend for later solves.

Builtin preset names (default, sample1, sample2) are reserved. Saving an
existing name overwrites the stored preset.

Examples:
  # Two slots with minimums
  tbres preset save raid-night --parts "E:2,R4:1,R2:6" --chips 23 --mins "4500,3500"

  # One slot, no minimum
  tbres preset save quick --parts "E:1,R2:2" --chips 9`,
	Args:    cobra.ExactArgs(1),
	PreRunE: historySetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		if schema.IsBuiltinPreset(name) {
			contract.LogFatal("Cannot save preset", fmt.Errorf("'%s' is a builtin preset name", name))
		}

		partsStr, _ := cmd.Flags().GetString("parts")
		chips, _ := cmd.Flags().GetInt("chips")
		minsStr, _ := cmd.Flags().GetString("mins")

		inventory, err := schema.ParseInventory(partsStr)
		if err != nil {
			contract.LogFatal("Invalid --parts value", err)
		}
		minimums, err := schema.ParseMinimums(minsStr)
		if err != nil {
			contract.LogFatal("Invalid --mins value", err)
		}
		if chips < 0 {
			contract.LogFatal("Invalid --chips value", fmt.Errorf("chips cannot be negative (received %d)", chips))
		}
		if len(minimums) == 0 {
			minimums = []int{0}
		}

		preset := schema.Preset{
			Name: name,
			SolveInput: schema.SolveInput{
				Inventory: inventory,
				Chips:     chips,
				Minimums:  minimums,
			},
		}
		if err := history.GetManager().GetHistoryStore().SavePreset(preset); err != nil {
			contract.LogFatal("Failed to save preset", err)
		}
		fmt.Printf("Preset '%s' saved.\n", name)
	},
}

// presetDeleteCmd deletes a saved preset.
var presetDeleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Short:   "Delete a saved preset",
	Args:    cobra.ExactArgs(1),
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		name := args[0]
		if schema.IsBuiltinPreset(name) {
			contract.LogFatal("Cannot delete preset", fmt.Errorf("'%s' is a builtin preset", name))
		}
		if err := history.GetManager().GetHistoryStore().DeletePreset(name); err != nil {
			contract.LogFatal("Failed to delete preset", err)
		}
		fmt.Printf("Preset '%s' deleted.\n", name)
	},
}

// presetExportCmd exports saved presets to a JSON file.
var presetExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Export saved presets to a JSON file",
	Long: `Write all saved presets to a JSON file.

Builtin presets are not exported since every tbres install already has them.

Examples:
  # Back up saved presets
  tbres preset export my-presets.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		presets, err := history.GetManager().GetHistoryStore().ListPresets()
		if err != nil {
			contract.LogFatal("Failed to list saved presets", err)
		}
		if len(presets) == 0 {
			contract.LogFatal("Nothing to export", fmt.Errorf("no saved presets found"))
		}

		data, err := json.MarshalIndent(presets, "", "  ")
		if err != nil {
			contract.LogFatal("Failed to encode presets", err)
		}
		if err := os.WriteFile(args[0], append(data, '\n'), 0o644); err != nil {
			contract.LogFatal("Failed to write preset file", err)
		}
		fmt.Printf("Exported %d presets to: %s\n", len(presets), args[0])
	},
}

// presetImportCmd imports presets from a JSON file.
var presetImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import presets from a JSON file",
	Long: `Load presets from a JSON file and save them to the history backend.

The whole file is validated before anything is stored, so a malformed file
leaves existing presets untouched. Presets that collide with builtin names
are rejected.

Examples:
  # Restore a preset backup
  tbres preset import my-presets.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			contract.LogFatal("Failed to read preset file", err)
		}

		var presets []schema.Preset
		if err := json.Unmarshal(data, &presets); err != nil {
			contract.LogFatal("Malformed preset file", err)
		}
		for _, p := range presets {
			if err := validateImportedPreset(p); err != nil {
				contract.LogFatal("Invalid preset in file", err)
			}
		}

		store := history.GetManager().GetHistoryStore()
		for _, p := range presets {
			if err := store.SavePreset(p); err != nil {
				contract.LogFatal(fmt.Sprintf("Failed to save preset '%s'", p.Name), err)
			}
		}
		fmt.Printf("Imported %d presets from: %s\n", len(presets), args[0])
	},
}

// resolvePresetByName finds a builtin preset first, then a saved one.
func resolvePresetByName(name string) (schema.Preset, error) {
	if p, ok := schema.FindBuiltinPreset(name); ok {
		return p, nil
	}
	return history.GetManager().GetHistoryStore().GetPreset(name)
}

// validateImportedPreset rejects preset entries that could never solve.
func validateImportedPreset(p schema.Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if schema.IsBuiltinPreset(p.Name) {
		return fmt.Errorf("preset '%s' collides with a builtin preset", p.Name)
	}
	for t, n := range p.Inventory {
		if _, ok := schema.ValidPartTypes[t]; !ok {
			return fmt.Errorf("preset '%s' has unknown part type '%s'", p.Name, t)
		}
		if n < 0 {
			return fmt.Errorf("preset '%s' has negative count for part type %s", p.Name, t)
		}
	}
	if p.Chips < 0 {
		return fmt.Errorf("preset '%s' has negative chips", p.Name)
	}
	for i, m := range p.Minimums {
		if m < 0 {
			return fmt.Errorf("preset '%s' has negative minimum at slot %d", p.Name, i)
		}
	}
	return nil
}

func init() {
	presetSaveCmd.Flags().String("parts", "", "Part inventory as TYPE:COUNT pairs (e.g. 'E:2,R4:1,R2:6')")
	presetSaveCmd.Flags().Int("chips", 0, "Total chips budget shared across all slots")
	presetSaveCmd.Flags().String("mins", "", "Comma-separated minimum score per slot")
}
