package terminal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/kev1nl1u/lkev.in/internal/config"
	"github.com/kev1nl1u/lkev.in/internal/shell"
)

// Deps bundles the engine collaborators shared by every terminal
// session; per-connection state lives in the shell.Session itself.
type Deps struct {
	Registry   *shell.Registry
	Links      *shell.Links
	Authorizer shell.Authorizer
	Stats      shell.StatsSource
	Motd       shell.MotdSource
	Geo        shell.GeoClient
	History    shell.HistoryStore
}

// WebSocketHandler upgrades browser connections and runs one shell
// session per connection.
type WebSocketHandler struct {
	deps          Deps
	site          *config.Site
	pollInterval  time.Duration
	allowedOrigin string
	isDev         bool
	sm            *SessionManager
}

// NewWebSocketHandler creates the handler.
func NewWebSocketHandler(deps Deps, site *config.Site, sm *SessionManager, pollInterval time.Duration, allowedOrigin string, isDev bool) *WebSocketHandler {
	return &WebSocketHandler{
		deps:          deps,
		site:          site,
		pollInterval:  pollInterval,
		allowedOrigin: allowedOrigin,
		isDev:         isDev,
		sm:            sm,
	}
}

// keyMessage is one keystroke from the browser.
type keyMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
	Text string `json:"text,omitempty"`
}

// ServeHTTP implements http.Handler for the WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	sessionID := uuid.NewString()
	slog.Info("Terminal connection", "session_id", sessionID, "ip", r.RemoteAddr)

	h.sm.Register(sessionID, ws)
	defer h.sm.Unregister(sessionID, ws)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	surface := newWSSurface(ctx, ws)
	session := shell.NewSession(shell.Options{
		Surface:      surface,
		Registry:     h.deps.Registry,
		Links:        h.deps.Links,
		Authorizer:   h.deps.Authorizer,
		Stats:        h.deps.Stats,
		Motd:         h.deps.Motd,
		Geo:          h.deps.Geo,
		History:      h.deps.History,
		HistoryKey:   h.site.Terminal.StorageKey,
		HistorySize:  h.site.Terminal.MaxHistorySize,
		WeatherCodes: h.site.WeatherCodes,
		PollInterval: h.pollInterval,
		Client: shell.ClientInfo{
			UserAgent: r.Header.Get("User-Agent"),
			IP:        clientIP(r),
			Host:      r.Host,
		},
	})
	defer session.Close()

	session.Start(ctx)
	h.inputLoop(ctx, ws, session, sessionID)

	slog.Info("Terminal session ended", "session_id", sessionID)
}

// inputLoop reads key events until the connection closes. Events are
// handled sequentially; a command runs to completion before the next
// keystroke is read.
func (h *WebSocketHandler) inputLoop(ctx context.Context, ws *websocket.Conn, session *shell.Session, sessionID string) {
	for {
		_, message, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("WebSocket closed by client", "session_id", sessionID)
			} else if ctx.Err() == nil {
				slog.Warn("WebSocket read error", "error", err, "session_id", sessionID)
			}
			return
		}

		var msg keyMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			slog.Debug("Ignoring malformed message", "session_id", sessionID)
			continue
		}

		switch msg.Type {
		case "key":
			ev, ok := decodeKey(msg)
			if !ok {
				continue
			}
			session.HandleKey(ctx, ev)
		case "ping":
			// Keepalive only.
		}
	}
}

func decodeKey(msg keyMessage) (shell.KeyEvent, bool) {
	switch msg.Key {
	case "Enter":
		return shell.KeyEvent{Key: shell.KeyEnter}, true
	case "Backspace":
		return shell.KeyEvent{Key: shell.KeyBackspace}, true
	case "ArrowUp":
		return shell.KeyEvent{Key: shell.KeyUp}, true
	case "ArrowDown":
		return shell.KeyEvent{Key: shell.KeyDown}, true
	case "Interrupt":
		return shell.KeyEvent{Key: shell.KeyInterrupt}, true
	case "":
		runes := []rune(msg.Text)
		if len(runes) != 1 {
			return shell.KeyEvent{}, false
		}
		return shell.KeyEvent{Rune: runes[0]}, true
	default:
		return shell.KeyEvent{}, false
	}
}

func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowedOrigin == "*" || origin == h.allowedOrigin {
		return true
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigin)
	return false
}

// clientIP prefers the RealIP middleware's rewrite of RemoteAddr.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
