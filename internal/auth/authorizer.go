// Package auth implements the server-side sudo authorizer: it validates
// the shared secret and classifies the privileged argument line into a
// structured decision the terminal engine replays.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kev1nl1u/lkev.in/internal/domain"
	"github.com/kev1nl1u/lkev.in/internal/motd"
	"github.com/kev1nl1u/lkev.in/internal/shell"
)

const (
	motdAddUsage = "usage: sudo motd -add [text]"
	motdUsage    = "usage: sudo motd [-add text | -rm line | -clear]"
)

// Service is the authorizer. Its classification of client-delegated
// commands is the single authoritative decision point; the terminal
// engine does not re-derive it.
type Service struct {
	password string
	motd     *motd.Store
	client   map[string]bool // lower-cased names the engine handles itself
	links    *shell.Links
}

// New creates a Service. The client-delegated set is computed once from
// the registry's client-only commands and every non-sudo-only link.
func New(password string, store *motd.Store, reg *shell.Registry, links *shell.Links) *Service {
	client := make(map[string]bool)
	for _, name := range reg.ClientCommands() {
		client[name] = true
	}
	for _, key := range links.NonSudoKeys() {
		client[key] = true
	}
	return &Service{
		password: password,
		motd:     store,
		client:   client,
		links:    links,
	}
}

// Authorize validates the secret and classifies the argument line.
// A wrong secret yields {Valid: false} and nothing else; the store is
// never touched.
func (s *Service) Authorize(ctx context.Context, password, arg string) (*domain.SudoDecision, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return &domain.SudoDecision{Valid: false}, nil
	}

	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return &domain.SudoDecision{Valid: true, Output: "sudo: unknown command: " + arg}, nil
	}
	first := strings.ToLower(fields[0])
	rest := fields[1:]

	// MOTD mutations come before the delegation check: `motd` is a
	// client command on its own, but with arguments it is a mutator.
	if first == "motd" && len(rest) > 0 {
		out := s.mutateMotd(rest)
		return &domain.SudoDecision{Valid: true, Output: out}, nil
	}

	if s.client[first] {
		return &domain.SudoDecision{Valid: true, ClientCommand: true}, nil
	}

	if key, link, ok := s.links.Resolve(first); ok && link.SudoOnly {
		target := "_self"
		for _, a := range rest {
			if a == "-blank" {
				target = "_blank"
			}
		}
		url := link.URL
		if link.Redirect {
			url = "/" + key
		}
		return &domain.SudoDecision{
			Valid:    true,
			Output:   "Opening " + link.Name + "...",
			Redirect: url,
			Target:   target,
		}, nil
	}

	return &domain.SudoDecision{Valid: true, Output: "sudo: unknown command: " + arg}, nil
}

// mutateMotd dispatches to exactly one of the three MOTD mutators and
// returns a human-readable confirmation or error string.
func (s *Service) mutateMotd(args []string) string {
	switch strings.ToLower(args[0]) {
	case "-add":
		text := strings.TrimSpace(strings.Join(args[1:], " "))
		if text == "" {
			return motdAddUsage
		}
		if err := s.motd.Append(text); err != nil {
			slog.Error("Failed to append MOTD line", "error", err)
			return "Could not update MOTD."
		}
		return fmt.Sprintf("Added to MOTD: %q", text)

	case "-rm":
		if len(args) < 2 {
			return "Invalid line number."
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return "Invalid line number."
		}
		removed, err := s.motd.Remove(n)
		if err == motd.ErrLineOutOfRange {
			return "Invalid line number."
		}
		if err != nil {
			slog.Error("Failed to remove MOTD line", "error", err)
			return "Could not update MOTD."
		}
		return fmt.Sprintf("Removed line %d: %q", n, removed)

	case "-clear":
		if err := s.motd.Clear(); err != nil {
			slog.Error("Failed to clear MOTD", "error", err)
			return "Could not update MOTD."
		}
		return "MOTD cleared."

	default:
		return motdUsage
	}
}
