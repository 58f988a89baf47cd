package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "preamble.dev/pkg/preamble/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream. It prints one
// tab-separated line per processed file, which keeps the output pipeable.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = newStartConfig(options...).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayRunInfo is a no-op: the plain output carries only report lines and
// the summary so it stays machine-readable.
func (s *SimpleUI) DisplayRunInfo(_ context.Context, _ m.RunConfig) {}

// DisplayDiscovered is a no-op for the plain output.
func (s *SimpleUI) DisplayDiscovered(_ context.Context, _ int) {}

// DisplayReport prints the report line for one file, followed by its diff
// when one was produced.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", report.Line())

	if report.Diff != "" {
		s.printf("%s\n", report.Diff)
	}
}

// DisplaySummary prints the outcome counts as a table.
func (s *SimpleUI) DisplaySummary(_ context.Context, summary m.Summary) {
	s.printf("\n%s", renderSummaryTable(summary, s.mode))
}

func renderSummaryTable(summary m.Summary, mode StartMode) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Outcome", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	if mode == ModeCheck {
		table.Append([]string{m.Missing.String(), fmt.Sprintf("%d", summary.Missing)})
	} else {
		table.Append([]string{m.Mutated.String(), fmt.Sprintf("%d", summary.Mutated)})
	}

	table.Append([]string{m.Skipped.String(), fmt.Sprintf("%d", summary.Skipped)})
	table.Append([]string{m.Error.String(), fmt.Sprintf("%d", summary.Errors)})

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.Total())})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
