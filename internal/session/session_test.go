package session

import (
	"testing"

	"mdip/internal/domain"

	"github.com/google/uuid"
)

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager()
	s := m.Start(domain.User{Username: "dana", Password: "$2a$hash", Role: domain.RoleDataScientist})

	if _, err := uuid.Parse(s.ID); err != nil {
		t.Errorf("Expected a uuid session id, got %q", s.ID)
	}
	if s.User.Password != "" {
		t.Error("Expected the password hash to be dropped")
	}
	if got, ok := m.Get(s.ID); !ok || got != s {
		t.Error("Expected to find the started session")
	}

	s.Append(TabData, Message{Role: "user", Content: "hi"})
	history := s.History(TabData)
	if len(history) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(history))
	}
	history[0].Content = "changed"
	if s.History(TabData)[0].Content != "hi" {
		t.Error("Expected History to return a copy")
	}

	if !m.End(s.ID) {
		t.Error("Expected End to report an existing session")
	}
	if len(s.History(TabData)) != 0 {
		t.Error("Expected logout to clear chat history")
	}
	if _, ok := m.Get(s.ID); ok {
		t.Error("Expected the session to be gone")
	}
	if m.End(s.ID) {
		t.Error("Expected a second End to report false")
	}
}

func TestSession_CanView(t *testing.T) {
	tests := []struct {
		role domain.Role
		tab  Tab
	}{
		{domain.RoleCyberSecurity, TabCyber},
		{domain.RoleDataScientist, TabData},
		{domain.RoleITOperations, TabIT},
	}

	m := NewManager()
	for _, tt := range tests {
		s := m.Start(domain.User{Username: "u", Role: tt.role})
		for _, tab := range Tabs {
			if got := s.CanView(tab); got != (tab == tt.tab) {
				t.Errorf("Role %s tab %s: expected %v, got %v", tt.role, tab, tab == tt.tab, got)
			}
		}
	}
}

func TestSession_ClearHistoryIsPerTab(t *testing.T) {
	s := NewManager().Start(domain.User{Username: "u", Role: domain.RoleITOperations})
	s.Append(TabIT, Message{Role: "user", Content: "a"})
	s.Append(TabCyber, Message{Role: "user", Content: "b"})

	s.ClearHistory(TabIT)
	if len(s.History(TabIT)) != 0 || len(s.History(TabCyber)) != 1 {
		t.Error("Expected only the IT history to be cleared")
	}
}
