package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseInventory tests inventory string parsing.
func TestParseInventory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[PartType]int
		wantErr  bool
	}{
		{
			name:     "empty string",
			input:    "",
			expected: map[PartType]int{},
		},
		{
			name:     "single entry",
			input:    "E:2",
			expected: map[PartType]int{PartE: 2},
		},
		{
			name:     "multiple entries",
			input:    "E:2,R2:6,Y:1",
			expected: map[PartType]int{PartE: 2, PartR2: 6, PartY: 1},
		},
		{
			name:     "lowercase and whitespace",
			input:    " e:1 , r4:3 ",
			expected: map[PartType]int{PartE: 1, PartR4: 3},
		},
		{
			name:     "duplicate types accumulate",
			input:    "E:1,E:2",
			expected: map[PartType]int{PartE: 3},
		},
		{
			name:    "unknown type",
			input:   "Z:1",
			wantErr: true,
		},
		{
			name:    "negative count",
			input:   "E:-1",
			wantErr: true,
		},
		{
			name:    "missing count",
			input:   "E",
			wantErr: true,
		},
		{
			name:    "non-numeric count",
			input:   "E:two",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := ParseInventory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, inv)
		})
	}
}

// TestParseMinimums tests minimum list parsing.
func TestParseMinimums(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
		wantErr  bool
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "4500", expected: []int{4500}},
		{name: "multiple", input: "4500,3500,3000", expected: []int{4500, 3500, 3000}},
		{name: "whitespace", input: " 100 , 200 ", expected: []int{100, 200}},
		{name: "negative", input: "-1", wantErr: true},
		{name: "non-numeric", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mins, err := ParseMinimums(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mins)
		})
	}
}

// TestFormatInventoryRoundTrip verifies formatting follows AllPartTypes order.
func TestFormatInventoryRoundTrip(t *testing.T) {
	inv := map[PartType]int{PartR2: 6, PartE: 2, PartY: 1}
	s := FormatInventory(inv)
	assert.Equal(t, "E:2,R2:6,Y:1", s)

	parsed, err := ParseInventory(s)
	require.NoError(t, err)
	assert.Equal(t, inv, parsed)
}

// TestSolveInputInstances verifies expansion order and counts.
func TestSolveInputInstances(t *testing.T) {
	in := SolveInput{
		Inventory: map[PartType]int{PartR2: 2, PartE: 2},
		Chips:     9,
		Minimums:  []int{0},
	}

	assert.Equal(t, 4, in.InstanceCount())
	assert.Equal(t, 1, in.Slots())
	assert.Equal(t, []PartType{PartE, PartE, PartR2, PartR2}, in.Instances())
}
