// Package core has core logic for candidate generation and exact solving.
package core

import (
	"github.com/inzamam-khan123/tbres/internal/contract"
	"github.com/inzamam-khan123/tbres/schema"
)

// TripleCount returns C(n, 3), the number of unordered instance triples.
func TripleCount(n int) int {
	if n < schema.PartsPerGroup {
		return 0
	}
	return n * (n - 1) * (n - 2) / 6
}

// GenerateCandidates enumerates every unordered triple of instances combined
// with every multiplier table entry. Each pairing becomes one Candidate whose
// score is the triple's base value sum times the multiplier factor.
//
// The progress callback, when non-nil, fires every ProgressInterval triples
// and once more at the end.
func GenerateCandidates(instances []schema.PartType, rules schema.Ruleset, progress contract.ProgressFunc) []schema.Candidate {
	n := len(instances)
	total := TripleCount(n)
	candidates := make([]schema.Candidate, 0, total*len(rules.Multipliers))

	// Base values resolved once per instance instead of per triple.
	values := make([]int, n)
	for i, t := range instances {
		values[i] = rules.BaseValue(t)
	}

	done := 0
	for i := range n {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				base := values[i] + values[j] + values[k]
				indices := [schema.PartsPerGroup]int{i, j, k}
				types := [schema.PartsPerGroup]schema.PartType{instances[i], instances[j], instances[k]}
				for _, m := range rules.Multipliers {
					candidates = append(candidates, schema.Candidate{
						Indices:    indices,
						Types:      types,
						Cost:       m.Cost,
						Multiplier: m.Factor,
						Score:      float64(base) * m.Factor,
					})
				}
				done++
				if progress != nil && done%contract.ProgressInterval == 0 {
					progress(done, total)
				}
			}
		}
	}
	if progress != nil && done%contract.ProgressInterval != 0 {
		progress(done, total)
	}
	return candidates
}
