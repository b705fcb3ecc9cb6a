// # internal/watcher/watcher_test.go
package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 4)
	w, err := NewWatcher(100*time.Millisecond, []string{"node_modules"}, []string{"*.min.js"}, false, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	testFile := filepath.Join(tmpDir, "app.js")
	if err := os.WriteFile(testFile, []byte("import './a';"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changedFiles:
		found := false
		for _, p := range paths {
			if p == testFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %s in changed files %v", testFile, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timed out waiting for file change event")
	}
}

func TestWatcher_Exclusions(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 4)
	w, err := NewWatcher(100*time.Millisecond, nil, []string{"*.min.js"}, false, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	// None of these should produce a batch: unsupported extension,
	// excluded glob, test file.
	for _, name := range []string{"notes.txt", "bundle.min.js", "util.test.js"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case paths := <-changedFiles:
		t.Errorf("Excluded files triggered event: %v", paths)
	case <-time.After(400 * time.Millisecond):
		// Expected
	}
}

func TestWatcher_Debounce(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 4)
	w, err := NewWatcher(150*time.Millisecond, nil, nil, false, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch([]string{tmpDir}); err != nil {
		t.Fatal(err)
	}

	// Burst of writes inside the debounce window collapses to one batch.
	for _, name := range []string{"a.js", "b.js", "c.js"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case paths := <-changedFiles:
		if len(paths) < 2 {
			t.Errorf("Expected batched paths, got %v", paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timed out waiting for debounced batch")
	}

	select {
	case paths := <-changedFiles:
		t.Errorf("Expected a single debounced batch, got extra %v", paths)
	case <-time.After(300 * time.Millisecond):
		// Expected
	}
}

func TestWatcher_InvalidGlob(t *testing.T) {
	if _, err := NewWatcher(time.Millisecond, []string{"[bad"}, nil, false, func([]string) {}); err == nil {
		t.Fatal("Expected error for invalid glob")
	}
}
