package domain

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	m "preamble.dev/pkg/preamble/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(content)
}

// testConfig returns a dynamic-mode config bounded to root.
func testConfig(root string) m.RunConfig {
	return m.RunConfig{
		Roots:         []m.Path{m.Path(root)},
		Extensions:    []string{".rs"},
		Markers:       []string{"Copyright (c)"},
		CommentTokens: map[string]string{"rs": "// ", "py": "# "},
		Mode:          m.ModeDynamic,
		TemplateName:  "LICENSE_HEADER",
		StopAt:        m.Path(root),
		Threads:       2,
	}
}

// memoryTemplateStore is an in-memory tree of anchor directories.
type memoryTemplateStore struct {
	mu        sync.Mutex
	anchors   map[m.Path]string
	files     map[m.Path]string
	hasCalls  map[m.Path]int
	loadCalls map[m.Path]int
}

func newMemoryTemplateStore() *memoryTemplateStore {
	return &memoryTemplateStore{
		anchors:   map[m.Path]string{},
		files:     map[m.Path]string{},
		hasCalls:  map[m.Path]int{},
		loadCalls: map[m.Path]int{},
	}
}

func (s *memoryTemplateStore) HasTemplateAt(_ context.Context, dir m.Path) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hasCalls[dir]++
	_, ok := s.anchors[dir]

	return ok, nil
}

func (s *memoryTemplateStore) LoadTemplateAt(_ context.Context, dir m.Path) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadCalls[dir]++
	text, ok := s.anchors[dir]
	if !ok {
		return "", os.ErrNotExist
	}

	return text, nil
}

func (s *memoryTemplateStore) LoadTemplateFile(_ context.Context, path m.Path) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadCalls[path]++
	text, ok := s.files[path]
	if !ok {
		return "", os.ErrNotExist
	}

	return text, nil
}

func (s *memoryTemplateStore) loads(key m.Path) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCalls[key]
}

// enumerate drains enumerator over root and returns sorted short paths.
func enumerate(t *testing.T, enumerator Enumerator, root string) ([]string, []error) {
	t.Helper()

	files, errs := enumerator.Enumerate(context.Background(), m.Path(root))

	var (
		paths    []string
		failures []error
	)

	for files != nil || errs != nil {
		select {
		case file, ok := <-files:
			if !ok {
				files = nil
				continue
			}

			paths = append(paths, string(file.ShortPath))
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}

			failures = append(failures, err)
		}
	}

	sort.Strings(paths)

	return paths, failures
}
