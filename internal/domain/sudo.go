package domain

// SudoDecision is the authorizer's verdict on one privileged request.
// When Valid is false no other field is set.
type SudoDecision struct {
	Valid bool `json:"valid"`

	// Output is printed verbatim to the transcript when set.
	Output string `json:"output,omitempty"`

	// Redirect, when set alongside Output, is a URL the terminal should
	// open in Target ("_self" or "_blank").
	Redirect string `json:"redirect,omitempty"`
	Target   string `json:"target,omitempty"`

	// ClientCommand marks the argument line as delegated back to the
	// terminal engine: it is re-run through the interpreter as if the
	// user had typed it directly. The server's classification is
	// authoritative; the engine does not second-guess it.
	ClientCommand bool `json:"clientCommand,omitempty"`
}
