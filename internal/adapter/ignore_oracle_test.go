package adapter

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitIgnoreOracle_MissingTool(t *testing.T) {
	oracle := NewGitIgnoreOracle("preamble-no-such-vcs-binary")

	ignored, err := oracle.IsIgnored(context.Background(), filepath.Join(t.TempDir(), "lib.rs"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOracleUnavailable)
	assert.False(t, ignored)
}

func TestGitIgnoreOracle_Repository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	repo := t.TempDir()

	gitInit := exec.Command("git", "init", "-q", repo)
	if out, err := gitInit.CombinedOutput(); err != nil {
		t.Skipf("git init failed: %v: %s", err, out)
	}

	writeTestFile(t, filepath.Join(repo, ".gitignore"), "generated.rs\n")
	writeTestFile(t, filepath.Join(repo, "generated.rs"), "fn g() {}\n")
	writeTestFile(t, filepath.Join(repo, "lib.rs"), "fn main() {}\n")

	oracle := NewGitIgnoreOracle("")

	ignored, err := oracle.IsIgnored(context.Background(), filepath.Join(repo, "generated.rs"))
	require.NoError(t, err)
	assert.True(t, ignored)

	ignored, err = oracle.IsIgnored(context.Background(), filepath.Join(repo, "lib.rs"))
	require.NoError(t, err)
	assert.False(t, ignored)
}

func TestNopIgnoreOracle(t *testing.T) {
	ignored, err := NopIgnoreOracle{}.IsIgnored(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ignored)
}
