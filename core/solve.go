package core

import (
	"errors"
	"sort"

	"github.com/inzamam-khan123/tbres/schema"
)

// ErrInfeasible means the search space was exhausted without finding any
// assignment that satisfies every slot minimum, instance disjointness and the
// chips budget. It is a definitive answer, not a failure of the solver.
var ErrInfeasible = errors.New("no feasible assignment exists")

// slotCandidates holds the eligible candidates for one slot, sorted by score
// descending so the branch and bound search tries the strongest groups first.
type slotCandidates struct {
	slot       int
	candidates []schema.Candidate
	maxScore   float64
	minCost    int
}

// solver carries the shared state of one branch and bound search.
type solver struct {
	slots []slotCandidates

	// Suffix bounds over slots[i:]. suffixMax is the admissible upper bound
	// on remaining score; suffixMinCost is the cheapest possible remaining
	// spend. Both are len(slots)+1 with a zero sentinel at the end.
	suffixMax     []float64
	suffixMinCost []int

	best     float64
	found    bool
	picks    []schema.Candidate
	bestPick []schema.Candidate
}

// Solve finds a provably optimal assignment of disjoint candidate groups to
// slots under the chips budget, or returns ErrInfeasible when none exists.
// Every candidate must come from an instance list of at most
// contract.MaxInstances entries so instance usage fits in a 64-bit mask.
func Solve(candidates []schema.Candidate, minimums []int, chips int) (schema.SolveResult, error) {
	numSlots := len(minimums)
	if numSlots == 0 {
		return schema.SolveResult{}, nil
	}

	s := &solver{
		slots:         make([]slotCandidates, 0, numSlots),
		suffixMax:     make([]float64, numSlots+1),
		suffixMinCost: make([]int, numSlots+1),
		picks:         make([]schema.Candidate, numSlots),
		bestPick:      make([]schema.Candidate, numSlots),
	}

	for slot, minScore := range minimums {
		sc := slotCandidates{slot: slot, minCost: -1}
		for _, c := range candidates {
			if c.Score < float64(minScore) || c.Cost > chips {
				continue
			}
			sc.candidates = append(sc.candidates, c)
			if c.Score > sc.maxScore {
				sc.maxScore = c.Score
			}
			if sc.minCost < 0 || c.Cost < sc.minCost {
				sc.minCost = c.Cost
			}
		}
		if len(sc.candidates) == 0 {
			return schema.SolveResult{}, ErrInfeasible
		}
		sort.SliceStable(sc.candidates, func(i, j int) bool {
			return sc.candidates[i].Score > sc.candidates[j].Score
		})
		s.slots = append(s.slots, sc)
	}

	// Most constrained slots first shrinks the tree; results are mapped
	// back to the original slot order afterwards.
	sort.SliceStable(s.slots, func(i, j int) bool {
		return len(s.slots[i].candidates) < len(s.slots[j].candidates)
	})

	for i := numSlots - 1; i >= 0; i-- {
		s.suffixMax[i] = s.suffixMax[i+1] + s.slots[i].maxScore
		s.suffixMinCost[i] = s.suffixMinCost[i+1] + s.slots[i].minCost
	}

	s.search(0, 0, chips, 0)
	if !s.found {
		return schema.SolveResult{}, ErrInfeasible
	}

	result := schema.SolveResult{
		Assignments: make([]schema.SlotAssignment, numSlots),
		TotalScore:  s.best,
	}
	for i, sc := range s.slots {
		c := s.bestPick[i]
		result.Assignments[sc.slot] = schema.SlotAssignment{
			Slot:       sc.slot,
			Types:      c.Types,
			Cost:       c.Cost,
			Multiplier: c.Multiplier,
			Score:      c.Score,
		}
	}
	return result, nil
}

// search fills slots depth first. usedMask tracks consumed instance indices.
func (s *solver) search(depth int, usedMask uint64, budget int, acc float64) {
	if depth == len(s.slots) {
		if !s.found || acc > s.best {
			s.found = true
			s.best = acc
			copy(s.bestPick, s.picks)
		}
		return
	}
	if s.found && acc+s.suffixMax[depth] <= s.best {
		return
	}
	if budget < s.suffixMinCost[depth] {
		return
	}

	restMinCost := s.suffixMinCost[depth+1]
	for _, c := range s.slots[depth].candidates {
		// Candidates are sorted by score, so once even this slot's best
		// remaining pick cannot beat the incumbent the branch is dead.
		if s.found && acc+c.Score+s.suffixMax[depth+1] <= s.best {
			return
		}
		if c.Cost+restMinCost > budget {
			continue
		}
		mask := uint64(1)<<c.Indices[0] | uint64(1)<<c.Indices[1] | uint64(1)<<c.Indices[2]
		if usedMask&mask != 0 {
			continue
		}
		s.picks[depth] = c
		s.search(depth+1, usedMask|mask, budget-c.Cost, acc+c.Score)
	}
}
