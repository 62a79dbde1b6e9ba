package motd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "motd.txt"))
}

func TestLinesMissingFile(t *testing.T) {
	s := testStore(t)
	lines, err := s.Lines()
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Lines() = %v, want empty", lines)
	}
}

func TestAppendAndRead(t *testing.T) {
	s := testStore(t)
	if err := s.Append("first"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Append("second"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	lines, err := s.Lines()
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	want := []string{"first", "second"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines() = %v, want %v", lines, want)
	}
}

func TestLinesFiltersBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motd.txt")
	if err := os.WriteFile(path, []byte("one\n\n  \ntwo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)

	lines, err := s.Lines()
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	want := []string{"one", "two"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines() = %v, want %v", lines, want)
	}
}

func TestRemove(t *testing.T) {
	s := testStore(t)
	for _, line := range []string{"a", "b", "c"} {
		if err := s.Append(line); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := s.Remove(2)
	if err != nil {
		t.Fatalf("Remove(2) error = %v", err)
	}
	if removed != "b" {
		t.Errorf("Remove(2) = %q, want %q", removed, "b")
	}

	lines, _ := s.Lines()
	want := []string{"a", "c"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines() after remove = %v, want %v", lines, want)
	}
}

func TestRemoveOutOfRangeLeavesStoreUnchanged(t *testing.T) {
	s := testStore(t)
	if err := s.Append("only"); err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{0, -1, 2} {
		if _, err := s.Remove(n); err != ErrLineOutOfRange {
			t.Errorf("Remove(%d) error = %v, want ErrLineOutOfRange", n, err)
		}
	}

	lines, _ := s.Lines()
	if !reflect.DeepEqual(lines, []string{"only"}) {
		t.Errorf("Lines() = %v, want [only]", lines)
	}
}

func TestClear(t *testing.T) {
	s := testStore(t)
	if err := s.Append("gone soon"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	lines, err := s.Lines()
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Lines() after clear = %v, want empty", lines)
	}
}

func TestAppendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "motd.txt")
	s := NewStore(path)
	if err := s.Append("hello"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("motd file not created: %v", err)
	}
}
