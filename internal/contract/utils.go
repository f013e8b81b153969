package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Outcome label constants.
const (
	SuccessValue    = "Optimal"    // a provably optimal assignment was found
	InfeasibleValue = "Infeasible" // no assignment satisfies all constraints
)

// Color variables for console output.
var (
	SuccessColor    = color.New(color.FgGreen, color.Bold) // successColor marks a solved configuration.
	InfeasibleColor = color.New(color.FgRed, color.Bold)   // infeasibleColor marks a definitive no-solution result.
	WarnColor       = color.New(color.FgYellow)            // warnColor marks non-fatal input concerns.
)

// GetPlainOutcomeLabel returns a plain text label for a solve outcome.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainOutcomeLabel(success bool) string {
	if success {
		return SuccessValue
	}
	return InfeasibleValue
}

// GetColorOutcomeLabel returns a colored text label for console output.
func GetColorOutcomeLabel(success bool) string {
	text := GetPlainOutcomeLabel(success)
	if success {
		return SuccessColor.Sprint(text)
	}
	return InfeasibleColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It returns os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tbres_history.db"
	}
	return filepath.Join(homeDir, ".tbres_history.db")
}

// GetFeedbackFilePath returns the default path of the feedback log file.
func GetFeedbackFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tbres_feedback.log"
	}
	return filepath.Join(homeDir, ".tbres_feedback.log")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
