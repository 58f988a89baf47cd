package adapter

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	m "preamble.dev/pkg/preamble/internal/model"
)

// DefaultTemplateName is the anchor file looked up in each ancestor directory.
const DefaultTemplateName = "LICENSE_HEADER"

// TemplateStore answers whether a directory anchors a preamble template and
// loads it. The resolver only talks to this capability, so it can run against
// an in-memory tree in tests.
type TemplateStore interface {
	HasTemplateAt(ctx context.Context, dir m.Path) (bool, error)
	LoadTemplateAt(ctx context.Context, dir m.Path) (string, error)
	LoadTemplateFile(ctx context.Context, path m.Path) (string, error)
}

// LocalTemplateStore reads templates named name from the local filesystem.
type LocalTemplateStore struct {
	name string
}

// NewLocalTemplateStore returns a store that looks for files called name.
// An empty name falls back to DefaultTemplateName.
func NewLocalTemplateStore(name string) *LocalTemplateStore {
	if name == "" {
		name = DefaultTemplateName
	}

	return &LocalTemplateStore{name: name}
}

// Name returns the anchor file name this store looks for.
func (s *LocalTemplateStore) Name() string {
	return s.name
}

// HasTemplateAt reports whether dir contains a regular template file.
func (s *LocalTemplateStore) HasTemplateAt(ctx context.Context, dir m.Path) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(filepath.Join(string(dir), s.name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return info.Mode().IsRegular(), nil
}

// LoadTemplateAt returns the template text anchored at dir.
func (s *LocalTemplateStore) LoadTemplateAt(ctx context.Context, dir m.Path) (string, error) {
	return s.LoadTemplateFile(ctx, m.Path(filepath.Join(string(dir), s.name)))
}

// LoadTemplateFile returns the text of an explicit template file.
func (s *LocalTemplateStore) LoadTemplateFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// #nosec G304 - template paths come from configuration
	content, err := os.ReadFile(string(path))
	if err != nil {
		return "", err
	}

	return string(content), nil
}
