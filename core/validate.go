package core

import (
	"fmt"

	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/schema"
)

// ValidateInput rejects inputs that can never produce a feasible assignment
// or that the solver cannot represent. These are input errors, distinct from
// the ErrInfeasible outcome of an exhaustive search.
func ValidateInput(input schema.SolveInput, rules schema.Ruleset) error {
	slots := input.Slots()
	if slots == 0 {
		return fmt.Errorf("at least one slot minimum is required")
	}
	if slots > contract.MaxSlots {
		return fmt.Errorf("cannot solve for more than %d slots (received %d)", contract.MaxSlots, slots)
	}

	count := input.InstanceCount()
	if count > contract.MaxInstances {
		return fmt.Errorf("inventory has %d part instances, maximum is %d", count, contract.MaxInstances)
	}
	if need := slots * schema.PartsPerGroup; count < need {
		return fmt.Errorf("%d slots need at least %d part instances, inventory has %d", slots, need, count)
	}

	ceiling := rules.MaxGroupScore(input.Instances())
	for slot, minScore := range input.Minimums {
		if minScore < 0 {
			return fmt.Errorf("slot %d minimum cannot be negative (received %d)", slot, minScore)
		}
		if float64(minScore) > ceiling {
			return fmt.Errorf("slot %d minimum %d exceeds the best possible group score %d", slot, minScore, int(ceiling))
		}
	}
	return nil
}

// InputWarnings returns non-fatal observations about the input. A solve
// proceeds regardless; the conditions just make strong results unlikely.
func InputWarnings(input schema.SolveInput) []string {
	var warnings []string
	if input.Chips < input.Slots() {
		warnings = append(warnings,
			fmt.Sprintf("chips budget %d is below the slot count %d, most slots will use the 1.0x multiplier", input.Chips, input.Slots()))
	}
	return warnings
}
