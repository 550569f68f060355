package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcher_Debounced(t *testing.T) {
	dir := t.TempDir()
	mesh := filepath.Join(dir, "model.obj")
	other := filepath.Join(dir, "other.obj")
	for _, p := range []string{mesh, other} {
		if err := os.WriteFile(p, []byte("v 0 0 0\n"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	fw, err := NewFileWatcher(50*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 8)
	if err := fw.Watch([]string{mesh, ""}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	fw.Start()

	// several quick writes collapse into one callback
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(mesh, []byte("v 1 1 1\n"), 0644); err != nil {
			t.Fatalf("failed to rewrite mesh: %v", err)
		}
	}
	// unwatched sibling in the same directory is ignored
	if err := os.WriteFile(other, []byte("v 2 2 2\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite other: %v", err)
	}

	select {
	case p := <-changed:
		want, _ := filepath.Abs(mesh)
		if p != want {
			t.Errorf("expected callback for %s, got %s", want, p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}

	select {
	case p := <-changed:
		t.Errorf("unexpected extra callback for %s", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_MissingDir(t *testing.T) {
	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	if err := fw.Watch([]string{"/nonexistent/dir/model.obj"}, func(string) {}); err == nil {
		t.Error("expected error watching a missing directory")
	}
}

func TestFileWatcher_CloseTwice(t *testing.T) {
	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	fw.Start()

	if err := fw.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
