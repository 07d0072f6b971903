package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager tracks the live sessions hosted by one server instance.
// Sessions are independent; the manager only owns their lifecycle.
type Manager struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	outboxSize int
	logger     *zap.Logger
}

// NewManager creates a session manager.
func NewManager(outboxSize int, logger *zap.Logger) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		outboxSize: outboxSize,
		logger:     logger,
	}
}

// Create starts a new session with a fresh identifier.
func (m *Manager) Create() *Session {
	id := uuid.NewString()
	s := New(id, m.outboxSize, m.logger)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("session created", zap.String("session_id", id))
	return s
}

// Get returns a session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove closes and forgets a session. Returns false if unknown.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.Close()
	m.logger.Info("session removed", zap.String("session_id", id))
	return true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll closes every session. Used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.Close()
		delete(m.sessions, id)
	}
}
