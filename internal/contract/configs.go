package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/inzamam-khan123/tbres/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	DefaultSlots     = 1

	// MaxInstances bounds the expanded inventory size. The solver tracks
	// used instances in a 64-bit mask, and C(N,3) candidate growth makes
	// larger inventories intractable for exact optimization anyway.
	MaxInstances = 64

	// MaxSlots bounds the number of slots per solve.
	MaxSlots = 20

	// ProgressInterval is how many enumerated triples pass between
	// progress callbacks during candidate generation.
	ProgressInterval = 100
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a solve.
// This struct remains the "final, validated" config.
type Config struct {
	Input      schema.SolveInput
	PresetName string
	Rules      schema.Ruleset

	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)
	UseColors    bool
	ShowProgress bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	FeedbackURL  string
	FeedbackFile string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	FeedbackURL      string `mapstructure:"feedback-url"`
	FeedbackFile     string `mapstructure:"feedback-file"`

	// --- Fields from solveCmd.Flags() ---
	Parts    string `mapstructure:"parts"`
	Chips    int    `mapstructure:"chips"`
	Mins     string `mapstructure:"mins"`
	Slots    int    `mapstructure:"slots"`
	Preset   string `mapstructure:"preset"`
	Progress bool   `mapstructure:"progress"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Input.Inventory != nil {
		clone.Input.Inventory = make(map[schema.PartType]int, len(c.Input.Inventory))
		for t, n := range c.Input.Inventory {
			clone.Input.Inventory[t] = n
		}
	}
	if c.Input.Minimums != nil {
		clone.Input.Minimums = make([]int, len(c.Input.Minimums))
		copy(clone.Input.Minimums, c.Input.Minimums)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSolveInput(cfg, input); err != nil {
		return err
	}
	cfg.Rules = schema.DefaultRuleset()
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-solve fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.ShowProgress = input.Progress

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 2. Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// --- 3. Feedback channel ---
	cfg.FeedbackURL = strings.TrimSpace(input.FeedbackURL)
	cfg.FeedbackFile = strings.TrimSpace(input.FeedbackFile)

	return nil
}

// processSolveInput parses the inventory, budget and slot minimums.
// When --preset is set, the raw part flags are ignored; preset resolution
// happens later against builtin presets and the history store.
func processSolveInput(cfg *Config, input *ConfigRawInput) error {
	cfg.PresetName = strings.TrimSpace(input.Preset)
	if cfg.PresetName != "" {
		return nil
	}

	inventory, err := schema.ParseInventory(input.Parts)
	if err != nil {
		return fmt.Errorf("invalid --parts value: %w", err)
	}

	if input.Chips < 0 {
		return fmt.Errorf("chips cannot be negative (received %d)", input.Chips)
	}

	minimums, err := schema.ParseMinimums(input.Mins)
	if err != nil {
		return fmt.Errorf("invalid --mins value: %w", err)
	}

	slots := input.Slots
	if slots < 0 {
		return fmt.Errorf("slots cannot be negative (received %d)", slots)
	}
	if len(minimums) > 0 {
		if slots > 0 && slots != len(minimums) {
			return fmt.Errorf("--slots is %d but --mins lists %d minimums", slots, len(minimums))
		}
	} else {
		if slots == 0 {
			slots = DefaultSlots
		}
		minimums = make([]int, slots)
	}

	if len(minimums) > MaxSlots {
		return fmt.Errorf("cannot request more than %d slots (received %d)", MaxSlots, len(minimums))
	}

	cfg.Input = schema.SolveInput{
		Inventory: inventory,
		Chips:     input.Chips,
		Minimums:  minimums,
	}
	return nil
}
