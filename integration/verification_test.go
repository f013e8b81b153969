//go:build integration

// Package integration contains integration tests for tbres.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"encoding/json"
	"math"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solveOutput mirrors the JSON document printed by tbres solve --output json.
type solveOutput struct {
	Outcome string `json:"outcome"`
	Input   struct {
		Parts    map[string]int `json:"parts"`
		Chips    int            `json:"chips"`
		Minimums []int          `json:"minimums"`
	} `json:"input"`
	Assignments []struct {
		Slot       int      `json:"slot"`
		Parts      []string `json:"parts"`
		Cost       int      `json:"cost"`
		Multiplier float64  `json:"multiplier"`
		Score      float64  `json:"score"`
	} `json:"assignments"`
	TotalScore int `json:"total_score"`
}

// baseValues and multiplierTable replicate the published scoring rules so the
// CLI output can be verified from first principles.
var baseValues = map[string]int{
	"E": 1000, "R4": 850, "R3": 700, "R2": 550, "R1": 400,
	"R": 300, "Y3": 200, "Y2": 150, "Y1": 100, "Y": 50,
}

var multiplierTable = map[int]float64{
	0: 1.0, 1: 1.2, 2: 1.4, 4: 1.6, 6: 1.8, 9: 2.0, 12: 2.2, 16: 2.4,
	20: 2.6, 25: 2.8, 30: 3.0, 36: 3.2, 42: 3.4, 48: 3.6, 54: 3.8,
	60: 4.0, 66: 4.2, 72: 4.4, 78: 4.6, 84: 4.8, 90: 5.0,
}

// TestSolveVerification runs tbres solve and checks every printed assignment
// against the scoring rules.
func TestSolveVerification(t *testing.T) {
	tbresPath := buildTbres(t)

	cases := []struct {
		name      string
		args      []string
		wantTotal int
	}{
		{
			name:      "single slot",
			args:      []string{"--parts", "E:2,R2:2", "--chips", "9"},
			wantTotal: 5100,
		},
		{
			name: "sample1 preset",
			args: []string{"--preset", "sample1"},
		},
		{
			name: "sample2 preset",
			args: []string{"--preset", "sample2"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := runSolveJSON(t, tbresPath, tc.args)
			require.Equal(t, "success", out.Outcome)

			verifySolveOutput(t, out)
			if tc.wantTotal > 0 {
				assert.Equal(t, tc.wantTotal, out.TotalScore)
			}
		})
	}
}

// verifySolveOutput recomputes scores, budget usage and instance usage from
// the solve output alone.
func verifySolveOutput(t *testing.T, out solveOutput) {
	require.Len(t, out.Assignments, len(out.Input.Minimums))

	usedChips := 0
	usedParts := map[string]int{}
	total := 0.0

	for i, a := range out.Assignments {
		require.Len(t, a.Parts, 3)
		assert.Equal(t, i, a.Slot)

		// Multiplier must be the table entry for the cost
		factor, ok := multiplierTable[a.Cost]
		require.True(t, ok, "cost %d is not a multiplier table entry", a.Cost)
		assert.InDelta(t, factor, a.Multiplier, 0.001)

		// Score must be base sum times multiplier
		base := 0
		for _, p := range a.Parts {
			v, ok := baseValues[p]
			require.True(t, ok, "unknown part type %s", p)
			base += v
			usedParts[p]++
		}
		assert.InDelta(t, float64(base)*factor, a.Score, 0.001)

		// Slot minimum must be honored
		assert.GreaterOrEqual(t, a.Score, float64(out.Input.Minimums[i]))

		usedChips += a.Cost
		total += a.Score
	}

	// Shared budget must be honored
	assert.LessOrEqual(t, usedChips, out.Input.Chips)

	// No part instance may be used twice
	for p, n := range usedParts {
		assert.LessOrEqual(t, n, out.Input.Parts[p], "too many %s instances used", p)
	}

	assert.Equal(t, int(math.Floor(total)), out.TotalScore)
}

// runSolveJSON invokes tbres solve with JSON output and decodes the result.
func runSolveJSON(t *testing.T, tbresPath string, args []string) solveOutput {
	fullArgs := append([]string{"solve", "--output", "json", "--history-backend", "none"}, args...)
	cmd := exec.Command(tbresPath, fullArgs...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run(), "tbres solve failed")

	var out solveOutput
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	return out
}

// buildTbres builds a throwaway tbres binary for the test.
func buildTbres(t *testing.T) string {
	tbresPath, err := filepath.Abs(filepath.Join(t.TempDir(), "tbres"))
	require.NoError(t, err)

	buildCmd := exec.Command("go", "build", "-o", tbresPath, "./cmd/tbres")
	buildCmd.Dir = ".." // Project root
	require.NoError(t, buildCmd.Run())

	return tbresPath
}
