// Package session keeps the per-login state of dashboard users: who they are, which tab
// their role unlocks and their assistant conversations.
package session

import (
	"sync"
	"time"

	"mdip/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Tab is a dashboard area, also used to key assistant conversations.
type Tab string

const (
	TabCyber Tab = "cyber"
	TabData  Tab = "data"
	TabIT    Tab = "it"
)

// Tabs lists every dashboard tab.
var Tabs = []Tab{TabCyber, TabData, TabIT}

// Valid reports whether t names a known tab.
func (t Tab) Valid() bool {
	switch t {
	case TabCyber, TabData, TabIT:
		return true
	}
	return false
}

// TabForRole returns the tab a role is allowed to view.
func TabForRole(role domain.Role) (Tab, bool) {
	switch role {
	case domain.RoleCyberSecurity:
		return TabCyber, true
	case domain.RoleDataScientist:
		return TabData, true
	case domain.RoleITOperations:
		return TabIT, true
	}
	return "", false
}

// Message is one turn of an assistant conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Session is the state of one logged-in user.
type Session struct {
	ID        string
	User      domain.User
	StartedAt time.Time

	mu        sync.Mutex
	histories map[Tab][]Message
}

// Role returns the department of the session's user.
func (s *Session) Role() domain.Role {
	return s.User.Role
}

// CanView reports whether the session's role unlocks tab.
func (s *Session) CanView(tab Tab) bool {
	allowed, ok := TabForRole(s.User.Role)
	return ok && allowed == tab
}

// Append adds a message to the conversation of tab.
func (s *Session) Append(tab Tab, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[tab] = append(s.histories[tab], msg)
}

// History returns a copy of the conversation of tab.
func (s *Session) History(tab Tab) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.histories[tab]...)
}

// ClearHistory forgets the conversation of tab.
func (s *Session) ClearHistory(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, tab)
}

func (s *Session) clearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories = make(map[Tab][]Message)
}

// Manager tracks the live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Start opens a session for u. The password hash is not kept.
func (m *Manager) Start(u domain.User) *Session {
	u.Password = ""
	s := &Session{
		ID:        uuid.NewString(),
		User:      u,
		StartedAt: m.now(),
		histories: make(map[Tab][]Message),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Info().Str("session", s.ID).Str("username", u.Username).Str("role", string(u.Role)).Msg("Session started")
	return s
}

// Get returns the live session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// End closes the session and clears its conversations. It reports whether the session existed.
func (m *Manager) End(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.clearAll()
	log.Info().Str("session", id).Str("username", s.User.Username).Msg("Session ended")
	return true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
