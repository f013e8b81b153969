package contract

import (
	"testing"

	"github.com/inzamam-khan123/tbres/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defaultRawInput returns a raw input matching the flag defaults.
func defaultRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:         string(schema.TextOut),
		Precision:      DefaultPrecision,
		Color:          "yes",
		HistoryBackend: string(schema.SQLiteBackend),
	}
}

// TestProcessAndValidate covers the happy paths of config processing.
func TestProcessAndValidate(t *testing.T) {
	t.Run("parts and mins", func(t *testing.T) {
		input := defaultRawInput()
		input.Parts = "E:2,R2:2"
		input.Chips = 9
		input.Mins = "4500,3500"

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))

		assert.Equal(t, map[schema.PartType]int{schema.PartE: 2, schema.PartR2: 2}, cfg.Input.Inventory)
		assert.Equal(t, 9, cfg.Input.Chips)
		assert.Equal(t, []int{4500, 3500}, cfg.Input.Minimums)
		assert.Equal(t, 2, cfg.Input.Slots())
		assert.NotEmpty(t, cfg.Rules.Multipliers)
	})

	t.Run("slots without mins defaults to zero minimums", func(t *testing.T) {
		input := defaultRawInput()
		input.Parts = "E:3"
		input.Slots = 3

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, []int{0, 0, 0}, cfg.Input.Minimums)
	})

	t.Run("no slots or mins defaults to one slot", func(t *testing.T) {
		input := defaultRawInput()
		input.Parts = "E:3"

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, []int{0}, cfg.Input.Minimums)
	})

	t.Run("preset defers part parsing", func(t *testing.T) {
		input := defaultRawInput()
		input.Preset = "sample1"

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, "sample1", cfg.PresetName)
		assert.Nil(t, cfg.Input.Inventory)
	})
}

// TestProcessAndValidateErrors covers rejection of malformed raw input.
func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{
			name:   "bad output mode",
			mutate: func(in *ConfigRawInput) { in.Output = "yaml" },
		},
		{
			name:   "bad precision",
			mutate: func(in *ConfigRawInput) { in.Precision = 5 },
		},
		{
			name:   "bad color",
			mutate: func(in *ConfigRawInput) { in.Color = "maybe" },
		},
		{
			name:   "bad backend",
			mutate: func(in *ConfigRawInput) { in.HistoryBackend = "oracle" },
		},
		{
			name:   "mysql without connection string",
			mutate: func(in *ConfigRawInput) { in.HistoryBackend = "mysql" },
		},
		{
			name:   "bad parts",
			mutate: func(in *ConfigRawInput) { in.Parts = "Z:1" },
		},
		{
			name:   "negative chips",
			mutate: func(in *ConfigRawInput) { in.Chips = -1 },
		},
		{
			name:   "bad mins",
			mutate: func(in *ConfigRawInput) { in.Mins = "a,b" },
		},
		{
			name:   "slots and mins mismatch",
			mutate: func(in *ConfigRawInput) { in.Slots = 3; in.Mins = "100,200" },
		},
		{
			name:   "negative slots",
			mutate: func(in *ConfigRawInput) { in.Slots = -2 },
		},
		{
			name:   "too many slots",
			mutate: func(in *ConfigRawInput) { in.Slots = MaxSlots + 1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := defaultRawInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

// TestValidateDatabaseConnectionString covers backend connection formats.
func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{name: "sqlite empty ok", backend: schema.SQLiteBackend},
		{name: "none empty ok", backend: schema.NoneBackend},
		{name: "mysql valid", backend: schema.MySQLBackend, connStr: "user:pass@tcp(localhost:3306)/tbres"},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, connStr: "user:pass/tbres", wantErr: true},
		{name: "postgres valid", backend: schema.PostgreSQLBackend, connStr: "host=localhost port=5432 dbname=tbres"},
		{name: "postgres missing dbname", backend: schema.PostgreSQLBackend, connStr: "host=localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestConfigClone ensures clones do not share mutable state.
func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Input: schema.SolveInput{
			Inventory: map[schema.PartType]int{schema.PartE: 2},
			Chips:     9,
			Minimums:  []int{100},
		},
	}

	clone := cfg.Clone()
	clone.Input.Inventory[schema.PartR] = 5
	clone.Input.Minimums[0] = 999

	assert.NotContains(t, cfg.Input.Inventory, schema.PartR)
	assert.Equal(t, 100, cfg.Input.Minimums[0])
}
