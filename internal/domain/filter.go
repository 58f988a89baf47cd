package domain

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"preamble.dev/pkg/preamble/internal/adapter"
	m "preamble.dev/pkg/preamble/internal/model"
)

// InclusionFilter decides whether a candidate file takes part in the run.
type InclusionFilter interface {
	// Include evaluates, in order, the prefix denylist, the substring
	// denylist and the ignore oracle, stopping at the first exclusion.
	Include(ctx context.Context, file m.File) bool
	// Denied reports whether the in-memory denylists alone exclude shortPath.
	Denied(shortPath m.Path) bool
}

type inclusionFilter struct {
	prefixes   []string
	substrings []string
	oracle     adapter.IgnoreOracle

	warnOnce sync.Once
}

// NewInclusionFilter builds a filter from the run configuration. A nil oracle
// or a config with ignore checks disabled never consults version control.
func NewInclusionFilter(config m.RunConfig, oracle adapter.IgnoreOracle) InclusionFilter {
	if oracle == nil || !config.IgnoreEnabled {
		oracle = adapter.NopIgnoreOracle{}
	}

	return &inclusionFilter{
		prefixes:   normalizeRules(config.ExcludePrefixes),
		substrings: normalizeRules(config.ExcludeSubstrings),
		oracle:     oracle,
	}
}

func (f *inclusionFilter) Include(ctx context.Context, file m.File) bool {
	short := string(file.ShortPath)

	if f.matchesPrefix(short) {
		slog.Debug("Excluded by prefix", "path", file.FullPath)
		return false
	}

	if f.matchesSubstring(rooted(short)) {
		slog.Debug("Excluded by substring", "path", file.FullPath)
		return false
	}

	ignored, err := f.oracle.IsIgnored(ctx, string(file.FullPath))
	if err != nil {
		f.warnOracle(file, newFileError(file.FullPath, ErrFilterOracle, err))
		return true
	}

	if ignored {
		slog.Debug("Excluded by version control", "path", file.FullPath)
		return false
	}

	return true
}

func (f *inclusionFilter) Denied(shortPath m.Path) bool {
	short := string(shortPath)

	// Directories also get a trailing separator so that "/target/" catches
	// the directory itself.
	return f.matchesPrefix(short) || f.matchesSubstring(rooted(short)+"/")
}

// rooted prefixes short with a separator so substring rules with a leading
// "/" match entries directly below the root.
func rooted(short string) string {
	return "/" + short
}

func (f *inclusionFilter) matchesPrefix(short string) bool {
	for _, prefix := range f.prefixes {
		if strings.HasPrefix(short, prefix) {
			return true
		}
	}

	return false
}

func (f *inclusionFilter) matchesSubstring(short string) bool {
	for _, substring := range f.substrings {
		if strings.Contains(short, substring) {
			return true
		}
	}

	return false
}

// warnOracle logs oracle failures. A missing tool is reported once per run;
// other failures are logged per path.
func (f *inclusionFilter) warnOracle(file m.File, err error) {
	if errors.Is(err, adapter.ErrOracleUnavailable) {
		f.warnOnce.Do(func() {
			slog.Warn("Ignore oracle unavailable, treating files as not ignored", "error", err)
		})

		slog.Debug("Ignore oracle failed", "path", file.FullPath, "error", err)

		return
	}

	slog.Warn("Ignore oracle failed, treating file as not ignored", "path", file.FullPath, "error", err)
}

func normalizeRules(rules []string) []string {
	normalized := make([]string, 0, len(rules))

	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		rule = strings.TrimPrefix(rule, "./")

		if rule == "" {
			continue
		}

		normalized = append(normalized, rule)
	}

	return normalized
}
