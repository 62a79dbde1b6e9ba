package terminal

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/coder/websocket"

	"github.com/kev1nl1u/lkev.in/internal/shell"
)

// renderEvent is one message from the engine to the browser. The thin
// frontend switches on Type and applies the change to the DOM; it holds
// no terminal logic of its own.
type renderEvent struct {
	Type   string `json:"type"`
	HTML   string `json:"html,omitempty"`
	Text   string `json:"text,omitempty"`
	ID     string `json:"id,omitempty"`
	URL    string `json:"url,omitempty"`
	Target string `json:"target,omitempty"`
}

// wsSurface renders engine events onto a WebSocket connection. Writes
// are serialized with a mutex: the polling session renders from its own
// goroutine while key handling may print concurrently.
type wsSurface struct {
	conn *websocket.Conn
	ctx  context.Context
	mu   sync.Mutex
}

func newWSSurface(ctx context.Context, conn *websocket.Conn) *wsSurface {
	return &wsSurface{conn: conn, ctx: ctx}
}

func (s *wsSurface) send(ev renderEvent) {
	if s.ctx.Err() != nil {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("Failed to encode render event", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.Write(s.ctx, websocket.MessageText, data); err != nil {
		// Expected when the client disconnects mid-render.
		slog.Debug("WebSocket write error", "error", err)
	}
}

func (s *wsSurface) Print(html string)  { s.send(renderEvent{Type: "print", HTML: html}) }
func (s *wsSurface) Echo(text string)   { s.send(renderEvent{Type: "echo", Text: text}) }
func (s *wsSurface) Prompt()            { s.send(renderEvent{Type: "prompt"}) }
func (s *wsSurface) PasswordPrompt()    { s.send(renderEvent{Type: "password"}) }
func (s *wsSurface) Clear()             { s.send(renderEvent{Type: "clear"}) }
func (s *wsSurface) Banner(html string) { s.send(renderEvent{Type: "banner", HTML: html}) }

func (s *wsSurface) OpenURL(url, target string) {
	s.send(renderEvent{Type: "open", URL: url, Target: target})
}

func (s *wsSurface) LiveStart(id string) {
	s.send(renderEvent{Type: "liveStart", ID: id})
}

func (s *wsSurface) LiveRender(id, html string) {
	s.send(renderEvent{Type: "liveRender", ID: id, HTML: html})
}

func (s *wsSurface) LiveNote(id, html string) {
	s.send(renderEvent{Type: "liveNote", ID: id, HTML: html})
}

var _ shell.Surface = (*wsSurface)(nil)
