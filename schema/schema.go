// Package schema has configs, models and rule constants for all parts of tbres.
package schema

// PartType identifies a category of part with a fixed base value.
type PartType string

// PartsPerGroup is the number of part instances that form one resonance group.
const PartsPerGroup = 3

// Candidate is one (3-instance, multiplier-choice) pairing considered by the
// solver. Indices refer to positions in the expanded instance list and are
// only meaningful within a single solve.
type Candidate struct {
	Indices    [PartsPerGroup]int
	Types      [PartsPerGroup]PartType
	Cost       int
	Multiplier float64
	Score      float64
}

// SlotAssignment is the chosen candidate group for one slot.
type SlotAssignment struct {
	Slot       int                      `json:"slot"`
	Types      [PartsPerGroup]PartType  `json:"parts"`
	Cost       int                      `json:"cost"`
	Multiplier float64                  `json:"multiplier"`
	Score      float64                  `json:"score"`
}

// DisplayScore returns the score truncated to an integer for presentation.
func (a SlotAssignment) DisplayScore() int {
	return int(a.Score)
}

// SolveResult holds the per-slot assignments of a successful solve.
type SolveResult struct {
	Assignments []SlotAssignment `json:"assignments"`
	TotalScore  float64          `json:"total_score"`
}

// DisplayTotal returns the total score truncated to an integer for presentation.
func (r SolveResult) DisplayTotal() int {
	return int(r.TotalScore)
}

// SolveInput is the plain-value input contract for one solve.
type SolveInput struct {
	Inventory map[PartType]int `json:"parts"`
	Chips     int              `json:"chips"`
	Minimums  []int            `json:"minimums"`
}

// Slots returns the number of slots requested, one per minimum.
func (in SolveInput) Slots() int {
	return len(in.Minimums)
}

// InstanceCount returns the total number of part instances in the inventory.
func (in SolveInput) InstanceCount() int {
	total := 0
	for _, n := range in.Inventory {
		total += n
	}
	return total
}

// Instances expands the inventory into a flat instance list. The order follows
// AllPartTypes so instance indices stay stable within one run.
func (in SolveInput) Instances() []PartType {
	out := make([]PartType, 0, in.InstanceCount())
	for _, t := range AllPartTypes {
		for range in.Inventory[t] {
			out = append(out, t)
		}
	}
	return out
}

// Preset is a named, reusable solve input.
type Preset struct {
	Name string `json:"name"`
	SolveInput
}
