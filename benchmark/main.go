// Package main provides a performance benchmarking tool for the tbres CLI.
// It measures solve times across scenarios of increasing inventory size,
// running each scenario multiple times, treating the first successful run as
// cold and averaging the rest as warm, generating CSV output for performance
// analysis and documentation.
//
// Prerequisites:
// - tbres binary installed and available in PATH
//
// Usage: go run benchmark/main.go
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	Scenario      string
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkScenario is one solve configuration to time.
type BenchmarkScenario struct {
	Name  string
	Parts string
	Chips string
	Mins  string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	Scenarios     []BenchmarkScenario
}

func main() {
	config := BenchmarkConfig{
		Timeout:       5 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		Scenarios: []BenchmarkScenario{
			{"small-1slot", "E:2,R2:2", "9", ""},
			{"sample1-3slot", "E:2,R4:1,R2:6,R1:2,R:2", "23", "4500,3500,3000"},
			{"sample2-2slot", "E:1,R4:2,R3:1,R2:3,R1:1,R:1", "15", "3000,2000"},
			{"medium-4slot", "E:3,R4:3,R3:3,R2:3,R1:3,R:3", "40", "5000,4000,3000,2000"},
			{"large-5slot", "E:4,R4:4,R3:4,R2:4,R1:4,R:4,Y3:4,Y2:4", "60", "5000,4500,4000,3500,3000"},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the history using tbres history clear
	fmt.Printf("Clearing history...\n")
	clearCmd := exec.Command("tbres", "history", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear history: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("History cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the tbres binary exists
func checkPrerequisites() error {
	if _, err := exec.LookPath("tbres"); err != nil {
		return fmt.Errorf("tbres binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark scenarios
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d scenarios, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.Scenarios), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	for _, scenario := range config.Scenarios {
		results = append(results, runBenchmarkSuite(config, scenario))
	}

	return results
}

// runBenchmarkSuite runs both no-history and history benchmarks for a scenario
func runBenchmarkSuite(config BenchmarkConfig, scenario BenchmarkScenario) BenchmarkResult {
	fmt.Printf("Running solve benchmark for %s\n", scenario.Name)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, scenario, historyBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: History runs
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Scenario:      scenario.Name,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes a tbres solve multiple times with the specified history backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, scenario BenchmarkScenario, historyBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"solve", "--history-backend", historyBackend, "--parts", scenario.Parts, "--chips", scenario.Chips}
	if scenario.Mins != "" {
		args = append(args, "--mins", scenario.Mins)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("tbres", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates a completed solve
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Solve completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/tbres_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"scenario", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Scenario, result.NoHistoryTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-14s: No-history: %s, Cold: %s, Warm: %s\n", result.Scenario, result.NoHistoryTime, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
