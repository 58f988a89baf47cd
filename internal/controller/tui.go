package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "preamble.dev/pkg/preamble/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea: report lines scroll above a live
// progress bar.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := newStartConfig(options...)

	t.program = tea.NewProgram(
		newRunModel(config.mode),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			slog.Error("TUI stopped", "error", err)
		}
	}()

	return nil
}

// Close stops the program and waits for it to restore the terminal.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.once.Do(func() {
		t.program.Quit()
		<-t.done
	})
}

// DisplayRunInfo shows the run parameters in the header.
func (t *TUI) DisplayRunInfo(_ context.Context, config m.RunConfig) {
	t.send(runInfoMsg{config: config})
}

// DisplayDiscovered updates the number of files queued for processing.
func (t *TUI) DisplayDiscovered(_ context.Context, count int) {
	t.send(discoveredMsg(count))
}

// DisplayReport prints a styled report line above the progress bar.
func (t *TUI) DisplayReport(_ context.Context, report m.Report) {
	t.send(reportMsg{report: report})
}

// DisplaySummary freezes the view on the final counts.
func (t *TUI) DisplaySummary(_ context.Context, summary m.Summary) {
	t.send(summaryMsg{summary: summary})
}

func (t *TUI) send(msg tea.Msg) {
	if t.program == nil {
		return
	}

	select {
	case <-t.done:
	default:
		t.program.Send(msg)
	}
}

type runInfoMsg struct{ config m.RunConfig }

type discoveredMsg int

type reportMsg struct{ report m.Report }

type summaryMsg struct{ summary m.Summary }

// runModel is the Bubble Tea model backing TUI.
type runModel struct {
	mode       StartMode
	header     string
	spinner    spinner.Model
	progress   progress.Model
	discovered int
	summary    m.Summary
	finished   bool
}

func newRunModel(mode StartMode) runModel {
	return runModel{
		mode:     mode,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runInfoMsg:
		rm.header = formatRunInfo(rm.mode, msg.config)
		return rm, nil
	case discoveredMsg:
		rm.discovered = int(msg)
		return rm, nil
	case reportMsg:
		rm.summary.Add(msg.report)
		return rm, tea.Println(styleReport(msg.report))
	case summaryMsg:
		rm.summary = msg.summary
		rm.finished = true

		return rm, nil
	case spinner.TickMsg:
		var cmd tea.Cmd

		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) View() string {
	var b strings.Builder

	if rm.header != "" {
		b.WriteString(titleStyle.Render(rm.header))
		b.WriteString("\n")
	}

	if rm.finished {
		b.WriteString(rm.renderCounts())
		b.WriteString("\n")

		return b.String()
	}

	done := rm.summary.Total()

	percent := 0.0
	if rm.discovered > 0 {
		percent = min(float64(done)/float64(rm.discovered), 1)
	}

	fmt.Fprintf(&b, "%s %s %d/%d\n", rm.spinner.View(), rm.progress.ViewAs(percent), done, rm.discovered)
	b.WriteString(rm.renderCounts())
	b.WriteString("\n")

	return b.String()
}

func (rm runModel) renderCounts() string {
	parts := make([]string, 0, 3)

	if rm.mode == ModeCheck {
		parts = append(parts, missingStyle.Render(fmt.Sprintf("missing %d", rm.summary.Missing)))
	} else {
		parts = append(parts, mutatedStyle.Render(fmt.Sprintf("mutated %d", rm.summary.Mutated)))
	}

	parts = append(parts,
		skippedStyle.Render(fmt.Sprintf("skipped %d", rm.summary.Skipped)),
		errorStyle.Render(fmt.Sprintf("errors %d", rm.summary.Errors)),
	)

	return strings.Join(parts, faintStyle.Render(" · "))
}

func formatRunInfo(mode StartMode, config m.RunConfig) string {
	roots := make([]string, 0, len(config.Roots))
	for _, root := range config.Roots {
		roots = append(roots, string(root))
	}

	return fmt.Sprintf("preamble %s: %s (%s mode, %d worker(s))", mode, strings.Join(roots, " "), config.Mode, config.Threads)
}

func styleReport(report m.Report) string {
	line := report.Line()

	var styled string

	switch report.Outcome {
	case m.Mutated:
		styled = mutatedStyle.Render(line)
	case m.Skipped:
		styled = skippedStyle.Render(line)
	case m.Missing:
		styled = missingStyle.Render(line)
	default:
		styled = errorStyle.Render(line)
	}

	if report.Diff != "" {
		styled += "\n" + report.Diff
	}

	return styled
}
