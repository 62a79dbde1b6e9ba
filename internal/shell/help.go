package shell

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

func sortedSubKeys(subs map[string]domain.LinkTarget) []string {
	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runHelp(ctx context.Context, s *Session, args []string) {
	switch {
	case len(args) == 1:
		s.printCommandHelp(strings.ToLower(args[0]))
	case len(args) > 1:
		s.printError("help", "unrecognized argument: "+strings.Join(args[1:], " "))
	default:
		s.surface.Print(fullHelpText(s.reg, s.links, s.client.Host))
	}
}

func (s *Session) printCommandHelp(name string) {
	if spec, ok := s.reg.Lookup(name); ok {
		help := spec.Help
		if help == "" {
			help = spec.Description
		}
		argsText := ""
		if spec.Args != "" {
			argsText = " " + spec.Args
		}
		s.surface.Print("<p><strong>" + name + "</strong>" + argsText + "<br/><br/>" + help + "</p>")
		return
	}

	if key, link, ok := s.links.Resolve(name); ok && !link.SudoOnly {
		help := "Open " + link.Name + ". Use <code>-blank</code> to open in a new tab."
		argsText := "[<code>-blank</code>]"
		if len(link.Subcommands) > 0 {
			var subs []string
			for _, subKey := range sortedSubKeys(link.Subcommands) {
				subs = append(subs, "• <code>"+key+" "+subKey+"</code> - "+link.Subcommands[subKey].Name)
			}
			help += "<br/><br/>Subcommands:<br/>" + strings.Join(subs, "<br/>")
			argsText = "[" + strings.Join(sortedSubKeys(link.Subcommands), "|") + "] " + argsText
		}
		s.surface.Print("<p><strong>" + key + "</strong> " + argsText + "<br/><br/>" + help + "</p>")
		return
	}

	s.printError("help", "no help entry for '"+name+"'")
}

// fullHelpText renders the grouped command overview.
func fullHelpText(reg *Registry, links *Links, host string) string {
	if host == "" {
		host = "lkev.in"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>%s Bash, version 1.0-release<br/>These shell commands are defined internally. Type 'help' to see this list.</p>", host)

	b.WriteString("<p><strong>Core commands:</strong></p><div class=\"command-help-list\">")
	for _, spec := range reg.Group(GroupCore) {
		writeHelpLine(&b, spec)
	}
	b.WriteString("</div>")

	b.WriteString("<p><strong>Link commands:</strong></p><div class=\"command-help-list\">")
	b.WriteString("<p><code>ls</code> list connections</p>")
	b.WriteString(linkCommandsHelp(links))
	b.WriteString("</div>")

	b.WriteString("<p><strong>Utility:</strong></p><div class=\"command-help-list\">")
	for _, spec := range reg.Group(GroupUtility) {
		writeHelpLine(&b, spec)
	}
	b.WriteString("</div>")

	return b.String()
}

func writeHelpLine(b *strings.Builder, spec *CommandSpec) {
	fmt.Fprintf(b, "<p><code>%s</code> %s", spec.Name, spec.Description)
	if spec.Args != "" {
		fmt.Fprintf(b, " %s", spec.Args)
	}
	b.WriteString("</p>")
}

// linksListHTML renders the `ls` listing of visible links.
func linksListHTML(links *Links) string {
	var lines []string
	for _, ll := range links.Visible() {
		line := "<code>" + ll.Key + "</code>"
		if ll.Spec.Alias != "" {
			line += " / <code>" + strings.ToLower(ll.Spec.Alias) + "</code>"
		}
		line += ": " + ll.Spec.Name
		if len(ll.Spec.Subcommands) > 0 {
			var subs []string
			for _, k := range sortedSubKeys(ll.Spec.Subcommands) {
				subs = append(subs, "<code>"+k+"</code>")
			}
			line += " (subcommands: " + strings.Join(subs, ", ") + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "<br/>") + "<br/>Use [command] <code>-blank</code> to open in a new tab."
}

// linkCommandsHelp renders one help line per visible link.
func linkCommandsHelp(links *Links) string {
	var b strings.Builder
	for _, ll := range links.Visible() {
		argsText := "[<code>-blank</code>]"
		if len(ll.Spec.Subcommands) > 0 {
			var subs []string
			for _, k := range sortedSubKeys(ll.Spec.Subcommands) {
				subs = append(subs, "<code>"+k+"</code>")
			}
			argsText = "[" + strings.Join(subs, "|") + "] " + argsText
		}
		fmt.Fprintf(&b, "<p><code>%s</code>", ll.Key)
		if ll.Spec.Alias != "" {
			fmt.Fprintf(&b, " / <code>%s</code>", strings.ToLower(ll.Spec.Alias))
		}
		fmt.Fprintf(&b, " %s %s</p>", ll.Spec.Name, argsText)
	}
	return b.String()
}

// formatMotd renders MOTD lines, numbered for the motd command and
// bulleted for the banner.
func formatMotd(lines []string, numbered bool) string {
	var b strings.Builder
	for i, line := range lines {
		if numbered {
			fmt.Fprintf(&b, "%d. %s<br/>", i+1, line)
		} else {
			fmt.Fprintf(&b, "* %s<br/>", line)
		}
	}
	return b.String()
}
