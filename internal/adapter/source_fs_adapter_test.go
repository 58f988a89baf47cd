package adapter

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	m "preamble.dev/pkg/preamble/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "lib.rs"), "fn main() {}\n")

	nestedDir := filepath.Join(root, "nested")
	mustMkdir(t, nestedDir)
	child := filepath.Join(nestedDir, "child.rs")
	writeTestFile(t, child, "fn child() {}\n")

	var visited []string
	err := adapter.Walk(context.Background(), m.Path(root), func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		visited = append(visited, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	for _, want := range []string{root, nestedDir, child, filepath.Join(root, "lib.rs")} {
		if !containsPath(visited, want) {
			t.Fatalf("Walk() did not visit %s, visited %v", want, visited)
		}
	}
}

func TestLocalSourceFSAdapter_WalkCancelled(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "lib.rs"), "fn main() {}\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := adapter.Walk(ctx, m.Path(root), func(string, fs.DirEntry, error) error {
		t.Fatal("callback must not run after cancellation")
		return nil
	})
	if err == nil {
		t.Fatal("Walk() expected context error")
	}
}

func TestLocalSourceFSAdapter_WriteFileAtomic(t *testing.T) {
	t.Run("replaces content and keeps permissions", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		dir := t.TempDir()
		path := filepath.Join(dir, "lib.rs")
		writeTestFile(t, path, "fn main() {}\n")

		err := adapter.WriteFileAtomic(context.Background(), m.Path(path), []byte("// header\n\nfn main() {}\n"), 0o640)
		if err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != "// header\n\nfn main() {}\n" {
			t.Fatalf("unexpected content %q", got)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}

			if info.Mode().Perm() != 0o640 {
				t.Fatalf("perm = %v, want 0640", info.Mode().Perm())
			}
		}
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		dir := t.TempDir()
		path := filepath.Join(dir, "lib.rs")
		writeTestFile(t, path, "original\n")

		if err := adapter.WriteFileAtomic(context.Background(), m.Path(path), []byte("updated\n"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}

		for _, entry := range entries {
			if strings.Contains(entry.Name(), ".tmp.") {
				t.Fatalf("temporary file %s left behind", entry.Name())
			}
		}

		if len(entries) != 1 {
			t.Fatalf("expected exactly one file, got %d", len(entries))
		}
	})

	t.Run("missing directory leaves nothing", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		path := filepath.Join(t.TempDir(), "gone", "lib.rs")

		err := adapter.WriteFileAtomic(context.Background(), m.Path(path), []byte("x"), 0o644)
		if err == nil {
			t.Fatal("WriteFileAtomic() expected error for missing directory")
		}
	})
}

func TestLocalSourceFSAdapter_ReadFileAndInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	writeTestFile(t, path, "fn main() {}\n")

	content, err := adapter.ReadFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(content) != "fn main() {}\n" {
		t.Fatalf("ReadFile() = %q", content)
	}

	info, err := adapter.FileInfo(context.Background(), m.Path(dir))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if !info.IsDir() {
		t.Fatal("FileInfo() expected a directory")
	}

	rel, err := adapter.RelPath(context.Background(), m.Path(dir), m.Path(path))
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if rel != "lib.rs" {
		t.Fatalf("RelPath() = %q", rel)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
