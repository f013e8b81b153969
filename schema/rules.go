package schema

// All part types supported, ordered from highest to lowest base value.
const (
	PartE  PartType = "E"
	PartR4 PartType = "R4"
	PartR3 PartType = "R3"
	PartR2 PartType = "R2"
	PartR1 PartType = "R1"
	PartR  PartType = "R"
	PartY3 PartType = "Y3"
	PartY2 PartType = "Y2"
	PartY1 PartType = "Y1"
	PartY  PartType = "Y"
)

// AllPartTypes lists every part type in display and expansion order.
var AllPartTypes = []PartType{
	PartE, PartR4, PartR3, PartR2, PartR1, PartR, PartY3, PartY2, PartY1, PartY,
}

// ValidPartTypes lists all valid part types.
var ValidPartTypes = map[PartType]struct{}{
	PartE: {}, PartR4: {}, PartR3: {}, PartR2: {}, PartR1: {},
	PartR: {}, PartY3: {}, PartY2: {}, PartY1: {}, PartY: {},
}

// MultiplierEntry is one row of the chip cost to score multiplier table.
type MultiplierEntry struct {
	Cost   int     `json:"cost"`
	Factor float64 `json:"factor"`
}

// Ruleset carries the immutable scoring rules for a solve: the base value of
// each part type and the ordered chip cost to multiplier table. A Ruleset is
// passed by value and never mutated, so independent solves cannot interfere.
type Ruleset struct {
	BaseValues  map[PartType]int
	Multipliers []MultiplierEntry
}

// DefaultRuleset returns the standard rules.
func DefaultRuleset() Ruleset {
	return Ruleset{
		BaseValues: map[PartType]int{
			PartE:  1000,
			PartR4: 850,
			PartR3: 700,
			PartR2: 550,
			PartR1: 400,
			PartR:  300,
			PartY3: 200,
			PartY2: 150,
			PartY1: 100,
			PartY:  50,
		},
		Multipliers: []MultiplierEntry{
			{0, 1.0}, {1, 1.2}, {2, 1.4}, {4, 1.6}, {6, 1.8},
			{9, 2.0}, {12, 2.2}, {16, 2.4}, {20, 2.6}, {25, 2.8},
			{30, 3.0}, {36, 3.2}, {42, 3.4}, {48, 3.6}, {54, 3.8},
			{60, 4.0}, {66, 4.2}, {72, 4.4}, {78, 4.6}, {84, 4.8},
			{90, 5.0},
		},
	}
}

// BaseValue returns the base value for a part type, or 0 for unknown types.
func (rs Ruleset) BaseValue(t PartType) int {
	return rs.BaseValues[t]
}

// MaxMultiplier returns the largest multiplier factor in the table.
func (rs Ruleset) MaxMultiplier() float64 {
	maxFactor := 0.0
	for _, m := range rs.Multipliers {
		if m.Factor > maxFactor {
			maxFactor = m.Factor
		}
	}
	return maxFactor
}

// MaxGroupScore returns the highest score any single group drawn from the
// given instances could reach: the three largest base values times the
// largest multiplier. Used to reject impossibly high slot minimums up front.
func (rs Ruleset) MaxGroupScore(instances []PartType) float64 {
	var top [PartsPerGroup]int
	for _, t := range instances {
		v := rs.BaseValue(t)
		for i := range top {
			if v > top[i] {
				top[i], v = v, top[i]
			}
		}
	}
	base := 0
	for _, v := range top {
		base += v
	}
	return float64(base) * rs.MaxMultiplier()
}
