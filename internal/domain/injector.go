package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"preamble.dev/pkg/preamble/internal/adapter"
	m "preamble.dev/pkg/preamble/internal/model"
)

// errReadOnly is the cause recorded when a file lacks write permission.
var errReadOnly = errors.New("file is read-only")

// Injector prepends a commented preamble to files that lack one.
type Injector interface {
	// Inject rewrites file with tmpl prepended unless it already carries a
	// marker. The returned report is Mutated, Skipped or Error.
	Inject(ctx context.Context, file m.File, tmpl m.Template) m.Report
	// Inspect performs the same checks without writing. The returned report
	// is Missing, Skipped or Error.
	Inspect(ctx context.Context, file m.File, tmpl m.Template) m.Report
}

type injector struct {
	fsAdapter adapter.SourceFSAdapter
	config    m.RunConfig
}

// NewInjector creates an Injector writing through fsAdapter.
func NewInjector(fsAdapter adapter.SourceFSAdapter, config m.RunConfig) Injector {
	return &injector{
		fsAdapter: fsAdapter,
		config:    config,
	}
}

// pending is a file that has been read and found to need a preamble.
type pending struct {
	info     os.FileInfo
	original []byte
	updated  []byte
}

func (in *injector) Inject(ctx context.Context, file m.File, tmpl m.Template) m.Report {
	report := m.Report{File: file, Anchor: tmpl.Anchor}

	work, outcome, err := in.prepare(ctx, file, tmpl)
	if err != nil || outcome == m.Skipped {
		return finish(report, outcome, err)
	}

	if in.config.DryRun {
		report.DryRun = true
		if in.config.ShowDiff {
			report.Diff = unifiedDiff(file.FullPath, work.original, work.updated)
		}

		return finish(report, m.Mutated, nil)
	}

	if work.info.Mode().Perm()&0o200 == 0 {
		return finish(report, m.Error, newFileError(file.FullPath, ErrWrite, errReadOnly))
	}

	if err := in.fsAdapter.WriteFileAtomic(ctx, file.FullPath, work.updated, work.info.Mode().Perm()); err != nil {
		slog.Error("Failed to write file", "path", file.FullPath, "error", err)
		return finish(report, m.Error, newFileError(file.FullPath, ErrWrite, err))
	}

	slog.Debug("Inserted preamble", "path", file.FullPath, "anchor", tmpl.Anchor)

	return finish(report, m.Mutated, nil)
}

func (in *injector) Inspect(ctx context.Context, file m.File, tmpl m.Template) m.Report {
	report := m.Report{File: file, Anchor: tmpl.Anchor}

	_, outcome, err := in.prepare(ctx, file, tmpl)
	if err != nil || outcome == m.Skipped {
		return finish(report, outcome, err)
	}

	return finish(report, m.Missing, nil)
}

// prepare reads the file and builds its new content. It returns Skipped when
// the file already carries a marker.
func (in *injector) prepare(ctx context.Context, file m.File, tmpl m.Template) (pending, m.Outcome, error) {
	token, ok := in.config.CommentToken(file.FullPath)
	if !ok {
		return pending{}, m.Error, newFileError(file.FullPath, ErrUnsupportedSyntax, fmt.Errorf("%q", file.FullPath.Ext()))
	}

	info, err := in.fsAdapter.FileInfo(ctx, file.FullPath)
	if err != nil {
		return pending{}, m.Error, newFileError(file.FullPath, ErrRead, err)
	}

	content, err := in.fsAdapter.ReadFile(ctx, file.FullPath)
	if err != nil {
		return pending{}, m.Error, newFileError(file.FullPath, ErrRead, err)
	}

	if ContainsMarker(content, in.markers(tmpl)) {
		return pending{}, m.Skipped, nil
	}

	newline := DetectNewline(content)
	block := CommentBlock(tmpl.Text, token, newline)

	return pending{
		info:     info,
		original: content,
		updated:  Prepend(content, block, newline),
	}, m.Mutated, nil
}

// markers returns the configured markers plus the first line of the resolved
// template, so a file carrying its own preamble is always recognized.
func (in *injector) markers(tmpl m.Template) []string {
	markers := make([]string, 0, len(in.config.Markers)+1)
	markers = append(markers, in.config.Markers...)

	if marker := templateMarker(tmpl.Text); marker != "" {
		markers = append(markers, marker)
	}

	return markers
}

func finish(report m.Report, outcome m.Outcome, err error) m.Report {
	if err != nil {
		report.Outcome = m.Error
		report.Err = err

		return report
	}

	report.Outcome = outcome

	return report
}

func unifiedDiff(path m.Path, before, after []byte) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: string(path),
		ToFile:   string(path) + " (with preamble)",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		slog.Debug("Failed to render diff", "path", path, "error", err)
		return ""
	}

	return text
}
