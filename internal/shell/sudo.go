package shell

import (
	"context"
	"log/slog"
	"strings"
)

// runSudo completes the escalation: one authorizer round trip with the
// captured secret and the remainder of the original line, then replay of
// the decision. Every outcome ends with a fresh prompt, unless the
// replayed command started a polling session, in which case its stop
// path owns prompt recreation.
func (s *Session) runSudo(ctx context.Context, secret string) {
	original := s.pending
	s.pending = ""
	s.state = stateIdle

	arg := escalationArg(original)

	decision, err := s.auth.Authorize(ctx, secret, arg)
	switch {
	case err != nil:
		slog.Warn("Sudo authorization request failed", "error", err)
		s.printError(original, "generic error")
	case !decision.Valid:
		s.printError(original, "authentication failure")
	case decision.ClientCommand:
		// The server delegated the argument line back; run it as if
		// the user had typed it directly.
		s.Execute(ctx, arg)
	case decision.Output != "":
		s.printP(decision.Output)
		if decision.Redirect != "" {
			target := "_self"
			if decision.Target == "_blank" {
				target = "_blank"
			}
			s.surface.OpenURL(decision.Redirect, target)
		}
	}

	// A MOTD mutation may have changed the banner.
	if strings.HasPrefix(strings.ToLower(arg), "motd") {
		s.refreshBanner()
	}

	if s.state == statePolling {
		return
	}
	s.prompt()
}

// escalationArg strips the escalation keyword from the original line,
// keeping everything after it verbatim.
func escalationArg(line string) string {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
