package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	tmpDir := t.TempDir()

	changedFiles := make(chan []string, 1)
	w, err := New(100*time.Millisecond, []string{"venv*"}, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(tmpDir); err != nil {
		t.Fatal(err)
	}

	viewFile := filepath.Join(tmpDir, "views.py")
	os.WriteFile(viewFile, []byte("# views\n"), 0o644)

	select {
	case paths := <-changedFiles:
		found := false
		for _, p := range paths {
			if p == viewFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %s in changed files %v", viewFile, paths)
		}
	case <-time.After(2 * time.Second):
		t.Error("Timed out waiting for file change event")
	}

	// Non-Python files never trigger a rescan.
	os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("ignore"), 0o644)

	select {
	case paths := <-changedFiles:
		for _, p := range paths {
			if filepath.Ext(p) != ".py" {
				t.Errorf("Non-python file triggered event: %s", p)
			}
		}
	case <-time.After(500 * time.Millisecond):
		// Expected
	}
}

func TestWatcher_ExcludedDir(t *testing.T) {
	tmpDir := t.TempDir()
	excluded := filepath.Join(tmpDir, "venv")
	if err := os.MkdirAll(excluded, 0o755); err != nil {
		t.Fatal(err)
	}

	changedFiles := make(chan []string, 1)
	w, err := New(50*time.Millisecond, []string{"venv*"}, func(paths []string) {
		changedFiles <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(tmpDir); err != nil {
		t.Fatal(err)
	}

	os.WriteFile(filepath.Join(excluded, "settings.py"), []byte("# vendored\n"), 0o644)

	select {
	case paths := <-changedFiles:
		t.Errorf("Excluded directory triggered event: %v", paths)
	case <-time.After(400 * time.Millisecond):
		// Expected
	}
}
