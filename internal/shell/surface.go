// Package shell implements the terminal engine: the command registry,
// the line editor, the interpreter, the privilege escalation flow, and
// the live polling session. The engine is transport-agnostic; a Surface
// implementation (the WebSocket bridge in production, a recorder in
// tests) turns engine events into something a user can see.
package shell

// Surface is the render target of a session. Implementations must be
// safe for concurrent use: the live polling session renders from its own
// goroutine while key events arrive on the session's event loop.
type Surface interface {
	// Print appends one output block to the transcript.
	Print(html string)

	// Echo replaces the content of the active input line.
	Echo(text string)

	// Prompt opens a fresh editable prompt line.
	Prompt()

	// PasswordPrompt opens a masked secret input. Characters typed into
	// it are captured by the engine and never echoed.
	PasswordPrompt()

	// Clear wipes the transcript.
	Clear()

	// OpenURL opens a link in the given target ("_self" or "_blank").
	OpenURL(url, target string)

	// Banner replaces the MOTD banner above the terminal.
	Banner(html string)

	// LiveStart creates the container a polling session renders into.
	LiveStart(id string)

	// LiveRender replaces the container's contents with the latest
	// sample. Rendering into a container of a stopped session is a
	// no-op at the discretion of the implementation.
	LiveRender(id, html string)

	// LiveNote appends a notice to the container without disturbing the
	// rendered sample.
	LiveNote(id, html string)
}

// Key identifies a non-printing key in a KeyEvent.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyInterrupt // Ctrl+C or Cmd+C
)

// KeyEvent is one keystroke delivered to the session. Printable input
// sets Rune and leaves Key as KeyNone.
type KeyEvent struct {
	Key  Key
	Rune rune
}
