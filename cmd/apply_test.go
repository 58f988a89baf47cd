package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"preamble.dev/pkg/preamble/internal/domain"
	domainmocks "preamble.dev/pkg/preamble/internal/domain/mocks"
	m "preamble.dev/pkg/preamble/internal/model"
)

// useWorkflow routes command execution to wf for the duration of the test.
func useWorkflow(t *testing.T, wf domain.Workflow) {
	t.Helper()

	original := newWorkflow
	newWorkflow = func(*cobra.Command, m.RunConfig) domain.Workflow { return wf }

	t.Cleanup(func() { newWorkflow = original })
}

func newTestRootCmd(t *testing.T, sub ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(sub...)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}

func testLogArgs(t *testing.T) []string {
	return []string{"--log", filepath.Join(t.TempDir(), "preamble.log")}
}

func TestApplyCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t, newApplyCmd())

	mockWorkflow.On("Apply", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		config := args.Config
		return len(config.Roots) == 1 && config.Roots[0] == m.Path(".") &&
			config.Mode == m.ModeDynamic &&
			config.Threads == defaultRunParallel &&
			config.TemplateName == defaultTemplateName &&
			config.IgnoreEnabled &&
			!config.DryRun &&
			len(config.Extensions) == 1 && config.Extensions[0] == ".rs" &&
			config.CommentTokens["rs"] == "// " &&
			args.Report == ""
	})).Return(m.Summary{Mutated: 2, Skipped: 1}, nil)

	cmd.SetArgs(append([]string{"apply"}, testLogArgs(t)...))
	require.NoError(t, cmd.Execute())

	mockWorkflow.AssertExpectations(t)
}

func TestApplyCmd_Flags(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t, newApplyCmd())

	mockWorkflow.EXPECT().Apply(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		config := args.Config
		return len(config.Roots) == 2 &&
			config.Roots[0] == m.Path("crates") && config.Roots[1] == m.Path("tools") &&
			config.Mode == m.ModeFixed &&
			config.TemplatePath == m.Path("licenses/MIT") &&
			config.Threads == 3 &&
			len(config.Extensions) == 2 &&
			!config.IgnoreEnabled &&
			config.DryRun && config.ShowDiff &&
			len(config.ExcludePrefixes) == 1 && config.ExcludePrefixes[0] == "build" &&
			args.Report == m.Path("out/report.yaml")
	})).Return(m.Summary{Mutated: 1}, nil)

	args := []string{
		"apply",
		"--ext", "rs,go",
		"--mode", "fixed",
		"--template", "licenses/MIT",
		"--exclude-prefix", "build",
		"--parallel", "3",
		"--no-ignore",
		"--dry-run", "--diff",
		"--report", "out/report.yaml",
		"crates", "tools",
	}
	cmd.SetArgs(append(args, testLogArgs(t)...))
	require.NoError(t, cmd.Execute())
}

func TestApplyCmd_FailedFilesExitNonZero(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t, newApplyCmd())

	mockWorkflow.EXPECT().Apply(mock.Anything, mock.Anything).Return(m.Summary{Mutated: 1, Errors: 2}, nil)

	cmd.SetArgs(append([]string{"apply", "."}, testLogArgs(t)...))
	err := cmd.Execute()
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Summary.Errors)
	assert.Equal(t, 1, exitCode(err))
}

func TestApplyCmd_FatalErrorPropagates(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	cmd, _ := newTestRootCmd(t, newApplyCmd())

	mockWorkflow.EXPECT().Apply(mock.Anything, mock.Anything).Return(m.Summary{}, domain.ErrTemplateLoad)

	cmd.SetArgs(append([]string{"apply"}, testLogArgs(t)...))
	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrTemplateLoad)
	assert.Equal(t, 2, exitCode(err))
}

func TestApplyCmd_InvalidModeNeverRuns(t *testing.T) {
	useWorkflow(t, domainmocks.NewMockWorkflow(t))

	cmd, _ := newTestRootCmd(t, newApplyCmd())

	cmd.SetArgs(append([]string{"apply", "--mode", "static"}, testLogArgs(t)...))
	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestApplyCmd_FixedModeNeedsTemplate(t *testing.T) {
	useWorkflow(t, domainmocks.NewMockWorkflow(t))

	cmd, _ := newTestRootCmd(t, newApplyCmd())

	cmd.SetArgs(append([]string{"apply", "--mode", "fixed"}, testLogArgs(t)...))
	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestApplyCmd_WorkflowBuiltFromRunConfig(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	var built m.RunConfig
	original := newWorkflow
	newWorkflow = func(_ *cobra.Command, config m.RunConfig) domain.Workflow {
		built = config
		return mockWorkflow
	}
	t.Cleanup(func() { newWorkflow = original })

	cmd, _ := newTestRootCmd(t, newApplyCmd())

	mockWorkflow.EXPECT().Apply(mock.Anything, mock.Anything).Return(m.Summary{}, nil)

	cmd.SetArgs(append([]string{"apply", "--template-name", "HEADER.txt"}, testLogArgs(t)...))
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "HEADER.txt", built.TemplateName)
	assert.Equal(t, defaultIgnoreCommand, built.IgnoreCommand)
}

func TestApplyCmd_CustomTemplateNameEndToEnd(t *testing.T) {
	original := newWorkflow
	newWorkflow = defaultWorkflow
	t.Cleanup(func() { newWorkflow = original })

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "HEADER.txt"), []byte("Copyright (c) Acme\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, defaultTemplateName), []byte("Copyright (c) Wrong\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.rs"), []byte("fn a() {}\n"), 0o644))

	cmd, out := newTestRootCmd(t, newApplyCmd())

	args := []string{"apply", "--template-name", "HEADER.txt", "--no-ignore", "--stop-at", root, root}
	cmd.SetArgs(append(args, testLogArgs(t)...))
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(filepath.Join(root, "src", "a.rs"))
	require.NoError(t, err)
	assert.Equal(t, "// Copyright (c) Acme\n\nfn a() {}\n", string(got))
	assert.Contains(t, out.String(), "Mutated")
}
