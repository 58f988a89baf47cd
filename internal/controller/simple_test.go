package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "preamble.dev/pkg/preamble/internal/model"
)

func newBufferedSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	ui, buf := newBufferedSimpleUI()
	ctx := context.Background()

	require.NoError(t, ui.Start(ctx, WithApplyMode()))

	ui.DisplayReport(ctx, m.Report{File: m.File{FullPath: "lib/a.rs"}, Outcome: m.Mutated})
	ui.DisplayReport(ctx, m.Report{File: m.File{FullPath: "lib/b.rs"}, Outcome: m.Skipped})
	ui.DisplayReport(ctx, m.Report{File: m.File{FullPath: "tools/c.rs"}, Outcome: m.Error, Err: errors.New("ResolutionNotFound")})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"lib/a.rs\tMutated",
		"lib/b.rs\tSkipped",
		"tools/c.rs\tError: ResolutionNotFound",
	}, lines)
}

func TestSimpleUI_DisplayReportWithDiff(t *testing.T) {
	ui, buf := newBufferedSimpleUI()

	ui.DisplayReport(context.Background(), m.Report{
		File:    m.File{FullPath: "a.rs"},
		Outcome: m.Mutated,
		DryRun:  true,
		Diff:    "+// Copyright (c) Acme\n",
	})

	assert.Contains(t, buf.String(), "a.rs\tMutated (dry-run)\n")
	assert.Contains(t, buf.String(), "+// Copyright (c) Acme")
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	tests := []struct {
		name         string
		option       StartOption
		summary      m.Summary
		wantContains []string
		wantMissing  []string
	}{
		{
			name:         "apply",
			option:       WithApplyMode(),
			summary:      m.Summary{Mutated: 3, Skipped: 2, Errors: 1},
			wantContains: []string{"MUTATED", "SKIPPED", "ERROR", "TOTAL", "3", "6"},
			wantMissing:  []string{"MISSING"},
		},
		{
			name:         "check",
			option:       WithCheckMode(),
			summary:      m.Summary{Missing: 4, Skipped: 1},
			wantContains: []string{"MISSING", "SKIPPED", "4", "5"},
			wantMissing:  []string{"MUTATED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newBufferedSimpleUI()
			require.NoError(t, ui.Start(context.Background(), tt.option))

			ui.DisplaySummary(context.Background(), tt.summary)

			output := strings.ToUpper(buf.String())
			for _, want := range tt.wantContains {
				assert.Contains(t, output, want)
			}

			for _, unwanted := range tt.wantMissing {
				assert.NotContains(t, output, unwanted)
			}
		})
	}
}

func TestSimpleUI_StartCancelled(t *testing.T) {
	ui, _ := newBufferedSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, ui.Start(ctx))
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
