package util

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSortedUnique(t *testing.T) {
	got := SortedUnique([]string{"b", "a", "b", "c", "a"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if got := SortedUnique(nil); len(got) != 0 {
		t.Errorf("Expected empty result for nil input, got %v", got)
	}
}

func TestLimiterAllow(t *testing.T) {
	l := NewLimiter(1, 2)
	if !l.Allow(1) || !l.Allow(1) {
		t.Error("Expected burst of 2 to be allowed")
	}
	if l.Allow(1) {
		t.Error("Expected third immediate event to be rate-limited")
	}
}

func TestWriteFileWithDirs(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "nested", "dir", "out.json")

	if err := WriteFileWithDirs(target, []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFileWithDirs failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("Unexpected content: %s", data)
	}
}
