package shell

import (
	"context"
	"sort"
	"strings"
)

// Group organizes commands for help output.
type Group string

const (
	GroupCore    Group = "core"
	GroupUtility Group = "utility"
)

// Handler executes one dynamic command with the original-case argument
// vector.
type Handler func(ctx context.Context, s *Session, args []string)

// CommandSpec is the static metadata of one built-in command. A command
// either carries a Static output string or a Run handler.
type CommandSpec struct {
	Name        string
	Description string
	// Args is the argument synopsis shown in help listings.
	Args  string
	Group Group
	// NoArgs commands reject any argument before the handler runs.
	NoArgs bool
	// ClientOnly commands are executed by the terminal engine itself;
	// the authorizer delegates them back instead of handling them.
	ClientOnly bool
	// Help is the long help text shown by `help <command>`.
	Help   string
	Static string
	Run    Handler
}

// Registry is the immutable command table, built once at startup.
type Registry struct {
	cmds map[string]*CommandSpec
}

// NewRegistry builds the built-in command table.
func NewRegistry() *Registry {
	table := []*CommandSpec{
		{
			Name: "help", Description: "display this help message", Args: "[command]",
			Group: GroupCore, ClientOnly: true, Run: runHelp,
			Help: "Display a list of all available commands. Use <code>help [command]</code> to get detailed information about a specific command.",
		},
		{
			Name: "about", Description: "information about me",
			Group: GroupCore, ClientOnly: true, NoArgs: true,
			Help:   "Display information about me.",
			Static: `I'm Kevin, a Computer Engineering student at the University of Padua (UniPD), and a graduate of I.S. E. Fermi Mantova.<br/>You can explore my open source projects on <a href="https://lkev.in/gh" target="_blank" rel="noopener">GitHub</a>.`,
		},
		{
			Name: "sudo", Description: "get superuser privileges", Args: "[command [arg...]]",
			Group: GroupCore, Run: runSudoUsage,
			Help: "Execute a command with superuser privileges. Requires password authentication.<br/><br/>Usage: <code>sudo [command] [args...]</code><br/><br/>Examples:<br/>• <code>sudo motd -add Hello World</code> - Add a message to MOTD<br/>• <code>sudo fdb</code> - Access restricted links",
		},
		{
			Name: "motd", Description: "view the message of the day",
			Group: GroupCore, ClientOnly: true, NoArgs: true, Run: runMotd,
			Help: "Display the current Message of the Day (MOTD).<br/><br/>With sudo privileges, you can modify the MOTD:<br/>• <code>sudo motd -add [text]</code> - Add a new line<br/>• <code>sudo motd -rm [line]</code> - Remove a line by number<br/>• <code>sudo motd -clear</code> - Clear all messages",
		},
		{
			Name: "echo", Description: "display text", Args: "[text]",
			Group: GroupCore, ClientOnly: true, Run: runEcho,
			Help: "Display the provided text in the terminal.<br/><br/>Usage: <code>echo [text]</code><br/><br/>Example: <code>echo Hello World</code>",
		},
		{
			Name: "clear", Description: "clear the terminal",
			Group: GroupCore, ClientOnly: true, NoArgs: true, Run: runClear,
			Help: "Clear all output from the terminal screen.",
		},
		{
			Name: "exit", Description: "exit the terminal",
			Group: GroupCore, ClientOnly: true, NoArgs: true, Run: runExit,
			Help: "Attempt to close the terminal window. May not work in all browsers due to security restrictions.",
		},
		{
			Name: "ls", Description: "list connections",
			Group: GroupCore, ClientOnly: true, NoArgs: true, Run: runLs,
			Help: "List all available link commands. Each link can be opened directly by typing its name, or use <code>-blank</code> to open in a new tab.",
		},
		{
			Name: "info", Description: "system information", Args: "[<code>server</code>]",
			Group: GroupUtility, ClientOnly: true, Run: runInfo,
			Help: "Display system information.<br/><br/>Usage:<br/>• <code>info</code> - Show your session info<br/>• <code>info server</code> - Show live server statistics (updates every 2s, press Ctrl+C to stop)",
		},
		{
			Name: "weather", Description: "weather", Args: "[location, <code>-gps</code>]",
			Group: GroupUtility, ClientOnly: true, Run: runWeather,
			Help: "Display current weather information.<br/><br/>Usage:<br/>• <code>weather</code> - Weather at your IP location<br/>• <code>weather [city]</code> - Weather at specified location<br/>• <code>weather -gps</code> - Weather using GPS (requires permission)",
		},
		{
			Name: "cfu", Description: "my current CFU count",
			Group: GroupUtility, ClientOnly: true, NoArgs: true,
			Help:   "Display Kevin's current university credit (CFU) count. Work in progress.",
			Static: "WIP",
		},
		{
			Name: "env", Description: "display .env file",
			Group: GroupUtility, ClientOnly: true, NoArgs: true,
			Help:   "Display the environment variables file. Just for fun!",
			Static: `USER="you"<br/>STUPID="true"<br/>ASTI="esplosa"<br/>SUDO="nano"`,
		},
	}

	cmds := make(map[string]*CommandSpec, len(table))
	for _, spec := range table {
		cmds[spec.Name] = spec
	}
	return &Registry{cmds: cmds}
}

// Lookup finds a command by its lower-cased name.
func (r *Registry) Lookup(name string) (*CommandSpec, bool) {
	spec, ok := r.cmds[name]
	return spec, ok
}

// Group returns the commands of one group, sorted by name.
func (r *Registry) Group(g Group) []*CommandSpec {
	var out []*CommandSpec
	for _, spec := range r.cmds {
		if spec.Group == g {
			out = append(out, spec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ClientCommands returns the lower-cased names of every client-only
// command, for the authorizer's delegation check.
func (r *Registry) ClientCommands() []string {
	var out []string
	for name, spec := range r.cmds {
		if spec.ClientOnly {
			out = append(out, strings.ToLower(name))
		}
	}
	sort.Strings(out)
	return out
}
