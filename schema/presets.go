package schema

// BuiltinPresets are the presets shipped with tbres. They are always
// available and cannot be deleted or overwritten in the history store.
var BuiltinPresets = []Preset{
	{
		Name: "default",
		SolveInput: SolveInput{
			Inventory: map[PartType]int{},
			Chips:     0,
			Minimums:  []int{0, 0, 0},
		},
	},
	{
		Name: "sample1",
		SolveInput: SolveInput{
			Inventory: map[PartType]int{
				PartE: 2, PartR4: 1, PartR2: 6, PartR1: 2, PartR: 2,
			},
			Chips:    23,
			Minimums: []int{4500, 3500, 3000},
		},
	},
	{
		Name: "sample2",
		SolveInput: SolveInput{
			Inventory: map[PartType]int{
				PartE: 1, PartR4: 2, PartR3: 1, PartR2: 3, PartR1: 1, PartR: 1,
			},
			Chips:    15,
			Minimums: []int{3000, 2000},
		},
	},
}

// FindBuiltinPreset returns the builtin preset with the given name, if any.
func FindBuiltinPreset(name string) (Preset, bool) {
	for _, p := range BuiltinPresets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// IsBuiltinPreset reports whether the name belongs to a builtin preset.
func IsBuiltinPreset(name string) bool {
	_, ok := FindBuiltinPreset(name)
	return ok
}
