package shell

import (
	"fmt"
	"reflect"
	"testing"
)

func TestHistoryAppendDeduplicatesConsecutive(t *testing.T) {
	h := NewHistory(10)
	h.Append("ls")
	h.Append("ls")
	h.Append("help")
	h.Append("ls")

	want := []string{"ls", "help", "ls"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistoryEvictsOldestAtCapacity(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Append(fmt.Sprintf("cmd%d", i))
	}

	want := []string{"cmd3", "cmd4", "cmd5"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistoryUpDownWalk(t *testing.T) {
	h := NewHistory(10)
	h.Append("a")
	h.Append("b")
	h.Append("c")

	steps := []struct {
		up   bool
		want string
	}{
		{true, "c"},
		{true, "b"},
		{true, "a"},
		{true, "a"}, // clamped at the oldest entry
		{false, "b"},
		{false, "c"},
		{false, ""}, // past the end: blank new-entry position
		{false, ""}, // clamped there
	}
	for i, step := range steps {
		var got string
		var ok bool
		if step.up {
			got, ok = h.Up()
		} else {
			got, ok = h.Down()
		}
		if !ok {
			t.Fatalf("step %d: ok = false on non-empty history", i)
		}
		if got != step.want {
			t.Errorf("step %d: got %q, want %q", i, got, step.want)
		}
	}
}

func TestHistoryUpDownEmpty(t *testing.T) {
	h := NewHistory(10)
	if _, ok := h.Up(); ok {
		t.Error("Up() on empty history: ok = true, want false")
	}
	if _, ok := h.Down(); ok {
		t.Error("Down() on empty history: ok = true, want false")
	}
}

func TestHistoryAppendResetsCursor(t *testing.T) {
	h := NewHistory(10)
	h.Append("a")
	h.Append("b")
	h.Up()
	h.Up()
	h.Append("c")

	if got, _ := h.Up(); got != "c" {
		t.Errorf("Up() after Append = %q, want %q", got, "c")
	}
}

func TestHistorySetEntriesKeepsMostRecent(t *testing.T) {
	h := NewHistory(2)
	h.SetEntries([]string{"a", "b", "c"})

	want := []string{"b", "c"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if got, _ := h.Up(); got != "c" {
		t.Errorf("Up() after SetEntries = %q, want %q", got, "c")
	}
}

func TestHistoryDefaultSize(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistorySize+5; i++ {
		h.Append(fmt.Sprintf("cmd%d", i))
	}
	if h.Len() != DefaultHistorySize {
		t.Errorf("Len() = %d, want %d", h.Len(), DefaultHistorySize)
	}
}
