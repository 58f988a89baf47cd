package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrOracleUnavailable is returned when the version-control tool cannot answer.
var ErrOracleUnavailable = errors.New("ignore oracle unavailable")

// IgnoreOracle answers whether the host version-control system ignores a path.
type IgnoreOracle interface {
	IsIgnored(ctx context.Context, path string) (bool, error)
}

// GitIgnoreOracle shells out to `git check-ignore` for each query.
type GitIgnoreOracle struct {
	command string
}

// NewGitIgnoreOracle constructs an oracle that runs command (normally "git").
func NewGitIgnoreOracle(command string) *GitIgnoreOracle {
	if strings.TrimSpace(command) == "" {
		command = "git"
	}

	return &GitIgnoreOracle{command: command}
}

// IsIgnored runs `git check-ignore -q` from the file's directory.
// Exit status 0 means ignored, 1 means not ignored; anything else, including
// a missing binary or a path outside a work tree, is ErrOracleUnavailable.
func (o *GitIgnoreOracle) IsIgnored(ctx context.Context, path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}

	// #nosec G204 - the command is operator configuration, the path is an argument
	cmd := exec.CommandContext(ctx, o.command, "check-ignore", "-q", "--", abs)
	cmd.Dir = filepath.Dir(abs)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return false, fmt.Errorf("%w: %s", ErrOracleUnavailable, msg)
	}

	return false, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
}

// NopIgnoreOracle never reports a path as ignored.
type NopIgnoreOracle struct{}

// IsIgnored implements IgnoreOracle.
func (NopIgnoreOracle) IsIgnored(context.Context, string) (bool, error) {
	return false, nil
}
