package core

import (
	"testing"

	"github.com/inzamam-khan123/tbres/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripleCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 0},
		{n: 2, want: 0},
		{n: 3, want: 1},
		{n: 4, want: 4},
		{n: 6, want: 20},
		{n: 10, want: 120},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TripleCount(tt.n), "n=%d", tt.n)
	}
}

func TestGenerateCandidates(t *testing.T) {
	rules := schema.DefaultRuleset()

	t.Run("count is triples times table size", func(t *testing.T) {
		input := schema.SolveInput{Inventory: map[schema.PartType]int{
			schema.PartE: 2, schema.PartR2: 2, schema.PartY: 2,
		}}
		got := GenerateCandidates(input.Instances(), rules, nil)
		assert.Len(t, got, TripleCount(6)*len(rules.Multipliers))
	})

	t.Run("scores are base sum times factor", func(t *testing.T) {
		input := schema.SolveInput{Inventory: map[schema.PartType]int{
			schema.PartE: 1, schema.PartR4: 1, schema.PartY: 1,
		}}
		got := GenerateCandidates(input.Instances(), rules, nil)
		require.Len(t, got, len(rules.Multipliers))
		for _, c := range got {
			base := 0
			for _, pt := range c.Types {
				base += rules.BaseValue(pt)
			}
			assert.Equal(t, 1900, base)
			assert.InDelta(t, float64(base)*c.Multiplier, c.Score, 0.001)
		}
	})

	t.Run("indices are distinct and in range", func(t *testing.T) {
		input := schema.SolveInput{Inventory: map[schema.PartType]int{schema.PartR: 4}}
		for _, c := range GenerateCandidates(input.Instances(), rules, nil) {
			assert.Less(t, c.Indices[0], c.Indices[1])
			assert.Less(t, c.Indices[1], c.Indices[2])
			assert.Less(t, c.Indices[2], 4)
		}
	})

	t.Run("fewer than three instances yields nothing", func(t *testing.T) {
		input := schema.SolveInput{Inventory: map[schema.PartType]int{schema.PartE: 2}}
		assert.Empty(t, GenerateCandidates(input.Instances(), rules, nil))
	})

	t.Run("progress reports final count", func(t *testing.T) {
		input := schema.SolveInput{Inventory: map[schema.PartType]int{schema.PartR: 12}}
		var lastDone, lastTotal, calls int
		GenerateCandidates(input.Instances(), rules, func(done, total int) {
			lastDone, lastTotal = done, total
			calls++
		})
		assert.Equal(t, TripleCount(12), lastDone)
		assert.Equal(t, TripleCount(12), lastTotal)
		assert.Equal(t, TripleCount(12)/100+1, calls)
	})
}

func BenchmarkGenerateCandidates(b *testing.B) {
	rules := schema.DefaultRuleset()
	input := schema.SolveInput{Inventory: map[schema.PartType]int{
		schema.PartE: 4, schema.PartR4: 4, schema.PartR2: 4, schema.PartY: 4,
	}}
	instances := input.Instances()
	for b.Loop() {
		GenerateCandidates(instances, rules, nil)
	}
}
