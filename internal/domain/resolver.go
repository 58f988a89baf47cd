package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"preamble.dev/pkg/preamble/internal/adapter"
	m "preamble.dev/pkg/preamble/internal/model"
)

// DefaultResolverCacheSize bounds the number of cached anchors and directory lookups.
const DefaultResolverCacheSize = 4096

// Resolver finds the preamble template that applies to a file.
type Resolver interface {
	// Prepare loads anything the resolver needs up front. In fixed mode it
	// loads the run's template and fails with ErrTemplateLoad if it cannot.
	Prepare(ctx context.Context) error
	// Resolve returns the template for path or an error wrapping
	// ErrResolutionNotFound when no anchor applies.
	Resolve(ctx context.Context, path m.Path) (m.Template, error)
}

// locator maps a file to the template file that governs it.
type locator func(ctx context.Context, path m.Path) (anchor m.Path, templateFile m.Path, err error)

type resolver struct {
	store  adapter.TemplateStore
	config m.RunConfig
	locate locator

	templates *lru.Cache[m.Path, string]
	dirs      *lru.Cache[m.Path, bool]
	group     singleflight.Group
}

// NewResolver builds a resolver for the configured mode. Both modes share the
// same cached loading path and differ only in how the anchor is located.
func NewResolver(store adapter.TemplateStore, config m.RunConfig, cacheSize int) (Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultResolverCacheSize
	}

	templates, err := lru.New[m.Path, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create template cache: %w", err)
	}

	dirs, err := lru.New[m.Path, bool](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create directory cache: %w", err)
	}

	r := &resolver{
		store:     store,
		config:    config,
		templates: templates,
		dirs:      dirs,
	}

	switch config.Mode {
	case m.ModeFixed:
		if strings.TrimSpace(string(config.TemplatePath)) == "" {
			return nil, fmt.Errorf("%w: fixed mode requires a template path", ErrConfig)
		}

		r.locate = r.locateFixed
	case m.ModeDynamic, "":
		r.locate = r.locateAncestor
	default:
		return nil, fmt.Errorf("%w: unknown resolver mode %q", ErrConfig, config.Mode)
	}

	return r, nil
}

func (r *resolver) Prepare(ctx context.Context) error {
	if r.config.Mode != m.ModeFixed {
		return nil
	}

	anchor, templateFile, err := r.locateFixed(ctx, "")
	if err != nil {
		return err
	}

	if _, err := r.load(ctx, anchor, templateFile); err != nil {
		return err
	}

	return nil
}

func (r *resolver) Resolve(ctx context.Context, path m.Path) (m.Template, error) {
	anchor, templateFile, err := r.locate(ctx, path)
	if err != nil {
		return m.Template{}, err
	}

	text, err := r.load(ctx, anchor, templateFile)
	if err != nil {
		return m.Template{}, err
	}

	return m.Template{Anchor: anchor, Text: text}, nil
}

func (r *resolver) locateFixed(_ context.Context, _ m.Path) (m.Path, m.Path, error) {
	abs, err := filepath.Abs(string(r.config.TemplatePath))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrTemplateLoad, err)
	}

	return m.Path(filepath.Dir(abs)), m.Path(abs), nil
}

// locateAncestor walks from the file's parent directory upwards and returns
// the first directory carrying a template. The walk stops after checking the
// configured boundary or the filesystem root.
func (r *resolver) locateAncestor(ctx context.Context, path m.Path) (m.Path, m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", "", newFileError(path, ErrResolutionNotFound, err)
	}

	stop := r.stopBoundary()
	dir := filepath.Dir(abs)

	for {
		found, err := r.hasTemplate(ctx, m.Path(dir))
		if err != nil {
			return "", "", newFileError(path, ErrResolutionNotFound, fmt.Errorf("inspect %s: %w", dir, err))
		}

		if found {
			return m.Path(dir), "", nil
		}

		if dir == stop {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return "", "", newFileError(path, ErrResolutionNotFound, nil)
}

func (r *resolver) stopBoundary() string {
	if r.config.StopAt == "" {
		return ""
	}

	abs, err := filepath.Abs(string(r.config.StopAt))
	if err != nil {
		return filepath.Clean(string(r.config.StopAt))
	}

	return abs
}

func (r *resolver) hasTemplate(ctx context.Context, dir m.Path) (bool, error) {
	if found, ok := r.dirs.Get(dir); ok {
		return found, nil
	}

	found, err := r.store.HasTemplateAt(ctx, dir)
	if err != nil {
		return false, err
	}

	r.dirs.Add(dir, found)

	return found, nil
}

// load returns the cached template text for anchor, loading it at most once
// even under concurrent callers. An empty templateFile means "the anchor's own
// template".
func (r *resolver) load(ctx context.Context, anchor, templateFile m.Path) (string, error) {
	key := anchor
	if templateFile != "" {
		key = templateFile
	}

	if text, ok := r.templates.Get(key); ok {
		return text, nil
	}

	value, err, _ := r.group.Do(string(key), func() (interface{}, error) {
		if text, ok := r.templates.Get(key); ok {
			return text, nil
		}

		var (
			text string
			err  error
		)

		if templateFile != "" {
			text, err = r.store.LoadTemplateFile(ctx, templateFile)
		} else {
			text, err = r.store.LoadTemplateAt(ctx, anchor)
		}

		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrTemplateLoad, key, err)
		}

		if err := validateTemplate(text); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrTemplateLoad, key, err)
		}

		// Keep whichever text won the race so every caller sees identical bytes.
		if previous, ok, _ := r.templates.PeekOrAdd(key, text); ok {
			return previous, nil
		}

		slog.Debug("Loaded preamble template", "anchor", anchor, "file", templateFile)

		return text, nil
	})
	if err != nil {
		return "", err
	}

	return value.(string), nil
}

func validateTemplate(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("template is empty")
	}

	if !utf8.ValidString(text) {
		return fmt.Errorf("template is not valid UTF-8")
	}

	return nil
}
