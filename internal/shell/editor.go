package shell

// LineState is the lifecycle state of one input line.
type LineState int

const (
	LineEmpty LineState = iota
	LineEditing
	LineSubmitted
	LineCancelled
)

// LineEditor is the in-place editable buffer behind the active prompt
// line. Editing is append/delete only: insert a character at the end,
// or backspace the last one. A submitted or cancelled line is immutable.
type LineEditor struct {
	buf   []rune
	state LineState
}

// NewLineEditor creates an empty editor.
func NewLineEditor() *LineEditor {
	return &LineEditor{}
}

// State returns the editor's lifecycle state.
func (e *LineEditor) State() LineState {
	return e.state
}

// Text returns the current buffer contents.
func (e *LineEditor) Text() string {
	return string(e.buf)
}

// Insert appends a character. No-op once the line is submitted or
// cancelled.
func (e *LineEditor) Insert(r rune) {
	if e.closed() {
		return
	}
	e.buf = append(e.buf, r)
	e.state = LineEditing
}

// Backspace removes the last character.
func (e *LineEditor) Backspace() {
	if e.closed() || len(e.buf) == 0 {
		return
	}
	e.buf = e.buf[:len(e.buf)-1]
	if len(e.buf) == 0 {
		e.state = LineEmpty
	}
}

// SetText replaces the buffer, used by history recall. The caret is
// implicitly at the end: subsequent edits append or delete there.
func (e *LineEditor) SetText(text string) {
	if e.closed() {
		return
	}
	e.buf = []rune(text)
	if len(e.buf) == 0 {
		e.state = LineEmpty
	} else {
		e.state = LineEditing
	}
}

// Submit freezes the line and returns its text.
func (e *LineEditor) Submit() string {
	if !e.closed() {
		e.state = LineSubmitted
	}
	return string(e.buf)
}

// Cancel discards the line without executing it.
func (e *LineEditor) Cancel() {
	if !e.closed() {
		e.state = LineCancelled
	}
}

func (e *LineEditor) closed() bool {
	return e.state == LineSubmitted || e.state == LineCancelled
}
