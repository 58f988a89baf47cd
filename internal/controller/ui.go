// Package controller provides output adapters for displaying preamble run results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "preamble.dev/pkg/preamble/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeApply StartMode = iota
	ModeCheck
)

// String implements fmt.Stringer.
func (s StartMode) String() string {
	if s == ModeCheck {
		return "check"
	}

	return "apply"
}

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithApplyMode sets the UI to apply mode.
func WithApplyMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeApply
	}
}

// WithCheckMode sets the UI to read-only check mode.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	config := StartConfig{mode: ModeApply}
	for _, option := range options {
		option(&config)
	}

	return config
}

// UI defines the interface for reporting a run.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayRunInfo(ctx context.Context, config m.RunConfig)
	DisplayDiscovered(ctx context.Context, count int)
	DisplayReport(ctx context.Context, report m.Report)
	DisplaySummary(ctx context.Context, summary m.Summary)
}

// NewUI picks the interactive TUI when tty is true and the plain line UI
// otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
