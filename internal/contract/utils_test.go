package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainOutcomeLabel(t *testing.T) {
	assert.Equal(t, SuccessValue, GetPlainOutcomeLabel(true))
	assert.Equal(t, InfeasibleValue, GetPlainOutcomeLabel(false))
}

func TestGetColorOutcomeLabel(t *testing.T) {
	assert.Contains(t, GetColorOutcomeLabel(true), SuccessValue)
	assert.Contains(t, GetColorOutcomeLabel(false), InfeasibleValue)
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{input: "yes", want: true},
		{input: "TRUE", want: true},
		{input: "1", want: true},
		{input: "no", want: false},
		{input: "False", want: false},
		{input: "0", want: false},
		{input: "maybe", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultFilePaths(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetHistoryDBFilePath(), ".tbres_history.db"))
	assert.True(t, strings.HasSuffix(GetFeedbackFilePath(), ".tbres_feedback.log"))
}
