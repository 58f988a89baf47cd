package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Line(t *testing.T) {
	file := File{FullPath: "src/lib.rs", ShortPath: "lib.rs", Root: "src"}

	tests := []struct {
		name   string
		report Report
		want   string
	}{
		{
			name:   "mutated",
			report: Report{File: file, Outcome: Mutated},
			want:   "src/lib.rs\tMutated",
		},
		{
			name:   "skipped",
			report: Report{File: file, Outcome: Skipped},
			want:   "src/lib.rs\tSkipped",
		},
		{
			name:   "error carries cause",
			report: Report{File: file, Outcome: Error, Err: errors.New("ResolutionNotFound")},
			want:   "src/lib.rs\tError: ResolutionNotFound",
		},
		{
			name:   "dry run",
			report: Report{File: file, Outcome: Mutated, DryRun: true},
			want:   "src/lib.rs\tMutated (dry-run)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.Line())
		})
	}
}

func TestOutcome_TextRoundTrip(t *testing.T) {
	for _, outcome := range []Outcome{Mutated, Skipped, Missing, Error} {
		text, err := outcome.MarshalText()
		require.NoError(t, err)

		var parsed Outcome
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, outcome, parsed)
	}

	var parsed Outcome
	assert.Error(t, parsed.UnmarshalText([]byte("Exploded")))
	assert.Equal(t, "Outcome(42)", Outcome(42).String())
}

func TestSummary_Add(t *testing.T) {
	var summary Summary

	summary.Add(Report{Outcome: Mutated})
	summary.Add(Report{Outcome: Mutated})
	summary.Add(Report{Outcome: Skipped})

	assert.Equal(t, 3, summary.Total())
	assert.False(t, summary.Failed())

	summary.Add(Report{Outcome: Error})
	assert.True(t, summary.Failed())
	assert.Equal(t, Summary{Mutated: 2, Skipped: 1, Errors: 1}, summary)
}

func TestSummary_FailedOnMissing(t *testing.T) {
	summary := Summary{Skipped: 4, Missing: 1}
	assert.True(t, summary.Failed())
}
