// Package terminal bridges browser WebSocket connections to shell
// engine sessions.
package terminal

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// SessionManager tracks active WebSocket connections so the server can
// close them on shutdown.
type SessionManager struct {
	mu     sync.RWMutex
	active map[string]*websocket.Conn
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		active: make(map[string]*websocket.Conn),
	}
}

// Register adds a connection under its session ID.
func (m *SessionManager) Register(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, exists := m.active[sessionID]; exists && existing != conn {
		_ = existing.Close(websocket.StatusNormalClosure, "session replaced")
	}
	m.active[sessionID] = conn
	slog.Info("Terminal session registered", "session_id", sessionID)
}

// Unregister removes a connection if it is still the registered one.
func (m *SessionManager) Unregister(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, exists := m.active[sessionID]; exists && current == conn {
		delete(m.active, sessionID)
		slog.Info("Terminal session unregistered", "session_id", sessionID)
	}
}

// Count returns the number of active sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.active)
}

// CloseAll terminates every active session, used on shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for sid, conn := range m.active {
		_ = conn.Close(websocket.StatusNormalClosure, "server shutting down")
		slog.Info("Terminal session closed", "session_id", sid)
	}
	m.active = make(map[string]*websocket.Conn)
}
