package model

import (
	"strings"
)

// ResolverMode selects how a file's preamble is located.
type ResolverMode string

const (
	// ModeDynamic searches ancestor directories of each file for a template.
	ModeDynamic ResolverMode = "dynamic"
	// ModeFixed applies a single template loaded once for the whole run.
	ModeFixed ResolverMode = "fixed"
)

// ParseResolverMode converts a config value into a ResolverMode.
func ParseResolverMode(value string) (ResolverMode, bool) {
	switch ResolverMode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeDynamic, "":
		return ModeDynamic, true
	case ModeFixed:
		return ModeFixed, true
	default:
		return "", false
	}
}

// RunConfig is the immutable configuration of a single run. Components receive
// it by value and never consult global state.
type RunConfig struct {
	Roots             []Path
	Extensions        []string
	ExcludePrefixes   []string
	ExcludeSubstrings []string
	Markers           []string
	CommentTokens     map[string]string

	Mode         ResolverMode
	TemplatePath Path   // fixed mode only
	TemplateName string // anchor file name looked up in dynamic mode
	StopAt       Path   // optional upper boundary for the ancestor search

	IgnoreEnabled bool
	IgnoreCommand string // VCS binary consulted by the ignore oracle
	Threads       int
	DryRun        bool
	ShowDiff      bool // dry-run only: attach a unified diff to each report
}

// MatchesExtension reports whether path carries one of the configured extensions.
// An empty extension list matches every file.
func (c RunConfig) MatchesExtension(path Path) bool {
	if len(c.Extensions) == 0 {
		return true
	}

	ext := strings.ToLower(path.Ext())
	for _, want := range c.Extensions {
		if ext == normalizeExtension(want) {
			return true
		}
	}

	return false
}

// CommentToken returns the line-comment token configured for the path's extension.
func (c RunConfig) CommentToken(path Path) (string, bool) {
	ext := strings.ToLower(path.Ext())
	for key, token := range c.CommentTokens {
		if normalizeExtension(key) == ext {
			return token, true
		}
	}

	return "", false
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
