package domain

// LinkSpec describes one link command: a terminal command whose sole
// effect is opening a configured URL. Supplied by the site config file and
// immutable at runtime.
type LinkSpec struct {
	// Name is the human-readable label ("GitHub", "Instagram", ...).
	Name string `json:"name"`
	URL  string `json:"url"`

	// Alias is an optional second command name resolving to this link.
	Alias string `json:"alias,omitempty"`

	// Redirect routes the link through the server's GET /{key} redirect
	// instead of pointing the browser at the URL directly.
	Redirect bool `json:"redirect,omitempty"`

	// Hidden links resolve normally but are omitted from ls and help.
	Hidden bool `json:"hidden,omitempty"`

	// SudoOnly links are invisible to normal resolution and reachable
	// only through the privilege escalation flow.
	SudoOnly bool `json:"sudoOnly,omitempty"`

	// Subcommands maps a subcommand key to a more specific target.
	Subcommands map[string]LinkTarget `json:"subcommands,omitempty"`
}

// LinkTarget is one subcommand destination of a link.
type LinkTarget struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
