package discovery

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/launchpad/internal/presale"
)

func TestParseBranches(t *testing.T) {
	p := NewDateParser(presale.IST)

	tests := []struct {
		name    string
		in      interface{}
		want    time.Time
		outcome Outcome
	}{
		{
			name:    "wizard afternoon",
			in:      "07/03/2025 02:30 PM",
			want:    time.Date(2025, 3, 7, 14, 30, 0, 0, presale.IST),
			outcome: OutcomeWizardFormat,
		},
		{
			name:    "wizard midnight",
			in:      "07/03/2025 12:15 AM",
			want:    time.Date(2025, 3, 7, 0, 15, 0, 0, presale.IST),
			outcome: OutcomeWizardFormat,
		},
		{
			name:    "wizard noon",
			in:      "07/03/2025 12:15 PM",
			want:    time.Date(2025, 3, 7, 12, 15, 0, 0, presale.IST),
			outcome: OutcomeWizardFormat,
		},
		{
			name:    "locale",
			in:      "8/24/2024, 6:35:00 AM",
			want:    time.Date(2024, 8, 24, 6, 35, 0, 0, presale.IST),
			outcome: OutcomeLocaleFormat,
		},
		{
			name:    "generic",
			in:      "2025-03-07T10:00:00Z",
			want:    time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC),
			outcome: OutcomeGeneric,
		},
		{
			name:    "seconds string",
			in:      "1700000000",
			want:    time.Unix(1700000000, 0),
			outcome: OutcomeUnixSeconds,
		},
		{
			name:    "millis number",
			in:      float64(1700000000000),
			want:    time.Unix(1700000000, 0),
			outcome: OutcomeUnixMillis,
		},
		{
			name:    "json number seconds",
			in:      json.Number("1700000000"),
			want:    time.Unix(1700000000, 0),
			outcome: OutcomeUnixSeconds,
		},
		{
			name:    "exponent seconds",
			in:      json.Number("1.7e9"),
			want:    time.Unix(1700000000, 0),
			outcome: OutcomeUnixSeconds,
		},
		{
			name:    "exponent millis string",
			in:      "1.7E12",
			want:    time.Unix(1700000000, 0),
			outcome: OutcomeUnixMillis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "want %s got %s", tt.want, got.Time)
			assert.Equal(t, tt.outcome, got.Outcome)
		})
	}
}

func TestSecondsAndMillisAgree(t *testing.T) {
	p := NewDateParser(presale.IST)

	secs, err := p.Parse(float64(1700000000))
	require.NoError(t, err)
	millis, err := p.Parse(float64(1700000000000))
	require.NoError(t, err)

	assert.True(t, secs.Time.Equal(millis.Time))
	assert.Equal(t, OutcomeUnixSeconds, secs.Outcome)
	assert.Equal(t, OutcomeUnixMillis, millis.Outcome)
}

func TestParseFailures(t *testing.T) {
	p := NewDateParser(presale.IST)

	tests := []struct {
		name string
		in   interface{}
		err  error
	}{
		{"nil", nil, ErrEmptyValue},
		{"blank", "  ", ErrEmptyValue},
		{"garbage", "not a date", ErrUnparseable},
		{"nan", "NaN", ErrUnparseable},
		{"year 1999", "1999-06-01", ErrYearOutOfRange},
		{"year 2031", "01/01/2031 10:00 AM", ErrYearOutOfRange},
		{"epoch zero", float64(1), ErrYearOutOfRange},
		{"unsupported type", true, ErrUnparseable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.in)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
