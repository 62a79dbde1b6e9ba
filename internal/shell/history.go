package shell

// DefaultHistorySize bounds the command history when the site config
// does not say otherwise.
const DefaultHistorySize = 100

// History is the bounded command history with a recall cursor.
//
// Invariants: a repeat of the most recent entry is not re-appended; the
// cursor stays in [0, len]; cursor == len means the blank "new entry"
// position past the end.
type History struct {
	max     int
	entries []string
	cursor  int
}

// NewHistory creates a history bounded to max entries. A non-positive
// max falls back to DefaultHistorySize.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{max: max}
}

// SetEntries replaces the history with previously persisted entries,
// keeping only the most recent max, and resets the cursor past the end.
func (h *History) SetEntries(entries []string) {
	if len(entries) > h.max {
		entries = entries[len(entries)-h.max:]
	}
	h.entries = append([]string(nil), entries...)
	h.cursor = len(h.entries)
}

// Entries returns the stored commands, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of stored commands.
func (h *History) Len() int {
	return len(h.entries)
}

// Append records a submitted command and resets the cursor past the
// end. Appending the same command twice consecutively stores it once;
// exceeding capacity evicts the oldest entry.
func (h *History) Append(cmd string) {
	if len(h.entries) == 0 || h.entries[len(h.entries)-1] != cmd {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.max {
			h.entries = h.entries[len(h.entries)-h.max:]
		}
	}
	h.cursor = len(h.entries)
}

// ResetCursor moves the cursor to the blank past-the-end position.
func (h *History) ResetCursor() {
	h.cursor = len(h.entries)
}

// Up moves the cursor one step back and returns the entry there.
// Returns ok=false when the history is empty.
func (h *History) Up() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Down moves the cursor one step forward and returns the entry there,
// or "" at the blank past-the-end position. Returns ok=false when the
// history is empty.
func (h *History) Down() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor], true
}
