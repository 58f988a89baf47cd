package model

import "fmt"

// Outcome is the per-file result of a run.
type Outcome int

const (
	// Mutated indicates the preamble was inserted.
	Mutated Outcome = iota
	// Skipped indicates the file already carried a preamble.
	Skipped
	// Missing indicates the file lacks a preamble (check mode only).
	Missing
	// Error indicates the file could not be processed.
	Error
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Mutated:
		return "Mutated"
	case Skipped:
		return "Skipped"
	case Missing:
		return "Missing"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// MarshalText lets reports serialize outcomes by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses an outcome name produced by MarshalText.
func (o *Outcome) UnmarshalText(text []byte) error {
	for _, candidate := range []Outcome{Mutated, Skipped, Missing, Error} {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown outcome %q", text)
}

// Report represents the result of processing a single file.
type Report struct {
	File    File
	Outcome Outcome
	Anchor  Path   // directory whose template was applied, if any
	DryRun  bool   // the write was suppressed
	Diff    string // unified diff of the change, dry-run only
	Err     error
}

// Line renders the report as the single stdout line for the file.
func (r Report) Line() string {
	switch {
	case r.Outcome == Error && r.Err != nil:
		return fmt.Sprintf("%s\t%s: %v", r.File.FullPath, r.Outcome, r.Err)
	case r.DryRun:
		return fmt.Sprintf("%s\t%s (dry-run)", r.File.FullPath, r.Outcome)
	default:
		return fmt.Sprintf("%s\t%s", r.File.FullPath, r.Outcome)
	}
}

// Summary aggregates outcome counts for a run.
type Summary struct {
	Mutated int `yaml:"mutated"`
	Skipped int `yaml:"skipped"`
	Missing int `yaml:"missing"`
	Errors  int `yaml:"errors"`
}

// Add records a report in the summary.
func (s *Summary) Add(r Report) {
	switch r.Outcome {
	case Mutated:
		s.Mutated++
	case Skipped:
		s.Skipped++
	case Missing:
		s.Missing++
	case Error:
		s.Errors++
	}
}

// Total returns the number of files accounted for.
func (s Summary) Total() int {
	return s.Mutated + s.Skipped + s.Missing + s.Errors
}

// Failed reports whether the run should exit non-zero.
func (s Summary) Failed() bool {
	return s.Errors > 0 || s.Missing > 0
}
