// Package domain contains the preamble propagation engine: enumeration,
// inclusion filtering, preamble resolution and injection.
package domain

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"preamble.dev/pkg/preamble/internal/adapter"
	m "preamble.dev/pkg/preamble/internal/model"
)

// vcsDirs are never descended into.
var vcsDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Enumerator streams candidate files found under a root.
type Enumerator interface {
	// Enumerate walks root and sends every file matching the configured
	// extensions. Unreadable directories are reported on the error channel
	// and skipped; the walk continues with their siblings. Both channels are
	// closed when the walk finishes.
	Enumerate(ctx context.Context, root m.Path) (<-chan m.File, <-chan error)
}

// DirPruner reports whether a directory (relative to its root) can be
// skipped entirely.
type DirPruner func(shortPath m.Path) bool

type enumerator struct {
	fsAdapter adapter.SourceFSAdapter
	config    m.RunConfig
	prune     DirPruner
	buffer    int
}

// NewEnumerator creates an Enumerator. prune may be nil.
func NewEnumerator(fsAdapter adapter.SourceFSAdapter, config m.RunConfig, prune DirPruner) Enumerator {
	buffer := config.Threads
	if buffer <= 0 {
		buffer = 1
	}

	return &enumerator{
		fsAdapter: fsAdapter,
		config:    config,
		prune:     prune,
		buffer:    buffer,
	}
}

func (e *enumerator) Enumerate(ctx context.Context, root m.Path) (<-chan m.File, <-chan error) {
	files := make(chan m.File, e.buffer)
	errs := make(chan error, e.buffer)

	go func() {
		defer close(files)
		defer close(errs)

		err := e.fsAdapter.Walk(ctx, root, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if entry == nil || path == string(root) {
					return walkErr
				}

				slog.Warn("Skipping unreadable subtree", "path", path, "error", walkErr)

				if !send(ctx, errs, error(newFileError(m.Path(path), ErrEnumeration, walkErr))) {
					return ctx.Err()
				}

				if entry.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			if entry.IsDir() {
				return e.visitDir(ctx, root, path, entry)
			}

			if !entry.Type().IsRegular() {
				return nil
			}

			file := e.newFile(ctx, root, path)
			if !e.config.MatchesExtension(file.FullPath) {
				return nil
			}

			if !send(ctx, files, file) {
				return ctx.Err()
			}

			return nil
		})
		if err != nil {
			slog.Error("Enumeration aborted", "root", root, "error", err)
			send(ctx, errs, fmt.Errorf("%w: %s: %w", ErrEnumeration, root, err))
		}
	}()

	return files, errs
}

func (e *enumerator) visitDir(ctx context.Context, root m.Path, path string, entry fs.DirEntry) error {
	if path == string(root) {
		return nil
	}

	if vcsDirs[entry.Name()] {
		return filepath.SkipDir
	}

	if e.prune != nil && e.prune(e.newFile(ctx, root, path).ShortPath) {
		slog.Debug("Pruned directory", "path", path)
		return filepath.SkipDir
	}

	return nil
}

// newFile keeps the full path as ShortPath when it cannot be made relative
// to root.
func (e *enumerator) newFile(ctx context.Context, root m.Path, path string) m.File {
	short := path

	if rel, err := e.fsAdapter.RelPath(ctx, root, m.Path(path)); err == nil {
		short = string(rel)
	} else {
		slog.Debug("Relative path unavailable", "root", root, "path", path, "error", err)
	}

	return m.File{
		FullPath:  m.Path(path),
		ShortPath: m.Path(filepath.ToSlash(short)),
		Root:      root,
	}
}

// send delivers v unless ctx is cancelled first.
func send[T any](ctx context.Context, ch chan<- T, v T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- v:
		return true
	}
}
