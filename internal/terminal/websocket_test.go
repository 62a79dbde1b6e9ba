package terminal

import (
	"net/http/httptest"
	"testing"

	"github.com/kev1nl1u/lkev.in/internal/shell"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    keyMessage
		want   shell.KeyEvent
		wantOK bool
	}{
		{"enter", keyMessage{Type: "key", Key: "Enter"}, shell.KeyEvent{Key: shell.KeyEnter}, true},
		{"backspace", keyMessage{Type: "key", Key: "Backspace"}, shell.KeyEvent{Key: shell.KeyBackspace}, true},
		{"arrow up", keyMessage{Type: "key", Key: "ArrowUp"}, shell.KeyEvent{Key: shell.KeyUp}, true},
		{"arrow down", keyMessage{Type: "key", Key: "ArrowDown"}, shell.KeyEvent{Key: shell.KeyDown}, true},
		{"interrupt", keyMessage{Type: "key", Key: "Interrupt"}, shell.KeyEvent{Key: shell.KeyInterrupt}, true},
		{"printable", keyMessage{Type: "key", Text: "a"}, shell.KeyEvent{Rune: 'a'}, true},
		{"unicode printable", keyMessage{Type: "key", Text: "è"}, shell.KeyEvent{Rune: 'è'}, true},
		{"multi-rune text", keyMessage{Type: "key", Text: "ab"}, shell.KeyEvent{}, false},
		{"empty text", keyMessage{Type: "key"}, shell.KeyEvent{}, false},
		{"unknown key", keyMessage{Type: "key", Key: "F13"}, shell.KeyEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeKey(tt.msg)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("decodeKey(%+v) = (%+v, %v), want (%+v, %v)", tt.msg, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws/terminal", nil)
	r.RemoteAddr = "203.0.113.7:54321"
	if got := clientIP(r); got != "203.0.113.7" {
		t.Errorf("clientIP = %q, want %q", got, "203.0.113.7")
	}

	// RealIP middleware rewrites RemoteAddr without a port.
	r.RemoteAddr = "203.0.113.7"
	if got := clientIP(r); got != "203.0.113.7" {
		t.Errorf("clientIP = %q, want %q", got, "203.0.113.7")
	}
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed string
		isDev   bool
		origin  string
		want    bool
	}{
		{"dev allows anything", "https://lkev.in", true, "https://evil.example", true},
		{"matching origin", "https://lkev.in", false, "https://lkev.in", true},
		{"no origin header", "https://lkev.in", false, "", true},
		{"wildcard", "*", false, "https://anywhere.example", true},
		{"mismatched origin", "https://lkev.in", false, "https://evil.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWebSocketHandler(Deps{}, nil, NewSessionManager(), 0, tt.allowed, tt.isDev)
			r := httptest.NewRequest("GET", "/ws/terminal", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := h.checkOrigin(r); got != tt.want {
				t.Errorf("checkOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionManagerRegisterUnregister(t *testing.T) {
	sm := NewSessionManager()
	if sm.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", sm.Count())
	}

	sm.Register("a", nil)
	sm.Register("b", nil)
	if sm.Count() != 2 {
		t.Errorf("Count() = %d, want 2", sm.Count())
	}

	sm.Unregister("a", nil)
	if sm.Count() != 1 {
		t.Errorf("Count() = %d, want 1", sm.Count())
	}

	// Unregistering an unknown session is a no-op.
	sm.Unregister("missing", nil)
	if sm.Count() != 1 {
		t.Errorf("Count() = %d, want 1", sm.Count())
	}
}
