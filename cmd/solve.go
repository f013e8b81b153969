package cmd

import (
	"github.com/inzamam-khan123/tbres/core"
	"github.com/spf13/cobra"
)

// solveCmd finds the optimal slot assignment for an inventory.
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Find the best triple-per-slot assignment for your inventory",
	Long: `Assign disjoint triples of parts to TB slots under a shared chips budget.

Each slot receives exactly three part instances plus a chips investment that
selects a score multiplier. The solver searches every assignment and either
proves the printed total score is optimal or reports that no assignment can
satisfy the slot minimums within the budget.

Inventory format: comma-separated TYPE:COUNT pairs.
Part types (by base value): E, R4, R3, R2, R1, R, Y3, Y2, Y1, Y.

Examples:
  # One slot, no minimum, 9 chips to spend
  tbres solve --parts "E:2,R2:2" --chips 9

  # Three slots with per-slot minimum scores
  tbres solve --parts "E:2,R4:1,R2:6,R1:2,R:2" --chips 23 --mins "4500,3500,3000"

  # Two slots without minimums
  tbres solve --parts "E:1,R4:2,R2:3" --chips 15 --slots 2

  # Solve a shipped sample scenario
  tbres solve --preset sample1

  # Machine-readable output
  tbres solve --preset sample2 --output json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteSolve(rootCtx, cfg)
	},
}
