package shell

import (
	"context"
	"sort"
	"strings"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// blankFlag opens a link in a new viewing context. Matched
// case-sensitively, anywhere in the argument vector.
const blankFlag = "-blank"

// Execute interprets one raw line: split on whitespace, lower-case only
// the command token, resolve against the command registry then the link
// registry, and dispatch with the original-case argument vector.
func (s *Session) Execute(ctx context.Context, input string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	if spec, ok := s.reg.Lookup(name); ok {
		if spec.NoArgs && len(args) > 0 {
			s.printError(name, "unrecognized argument: "+strings.Join(args, " "))
			return
		}
		if spec.Run != nil {
			spec.Run(ctx, s, args)
			return
		}
		if spec.Static != "" {
			s.printP(spec.Static)
		}
		return
	}

	if key, link, ok := s.links.Resolve(name); ok && !link.SudoOnly {
		s.runLink(key, link, args)
		return
	}

	s.printError("", "Unrecognized command: "+name)
}

// runLink opens a link command, honoring the -blank flag and optional
// subcommands.
func (s *Session) runLink(key string, link domain.LinkSpec, args []string) {
	target := "_self"
	filtered := make([]string, 0, len(args))
	for _, a := range args {
		if a == blankFlag {
			target = "_blank"
			continue
		}
		filtered = append(filtered, a)
	}

	if len(filtered) > 0 && len(link.Subcommands) > 0 {
		subKey := strings.ToLower(filtered[0])
		sub, ok := link.Subcommands[subKey]
		if !ok {
			s.printError(key, "unknown subcommand: "+subKey+". Available: "+subcommandKeys(link))
			return
		}
		if len(filtered) > 1 {
			s.printError(key+" "+subKey, "unrecognized argument: "+strings.Join(filtered[1:], " "))
			return
		}
		s.openLink(sub.URL, sub.Name, target)
		return
	}

	if len(filtered) > 0 {
		s.printError(key, "unrecognized argument: "+strings.Join(filtered, " "))
		return
	}

	s.openLink(s.links.URL(key), link.Name, target)
}

func (s *Session) openLink(url, name, target string) {
	s.surface.OpenURL(url, target)
	suffix := ""
	if target == "_blank" {
		suffix = " (new tab)"
	}
	s.printP("Connecting to " + name + "..." + suffix)
}

func subcommandKeys(link domain.LinkSpec) string {
	keys := make([]string, 0, len(link.Subcommands))
	for k := range link.Subcommands {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
