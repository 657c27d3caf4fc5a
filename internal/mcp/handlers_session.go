package mcp

import (
	"context"
	"fmt"

	"mdip/internal/domain"
	"mdip/internal/session"

	"github.com/rs/zerolog/log"
)

type loginResult struct {
	SessionID string      `json:"session_id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	Tab       session.Tab `json:"tab"`
}

func (s *Server) handleLogin(ctx context.Context, args loginArgs) (interface{}, error) {
	user, err := s.auth.Login(ctx, args.Username, args.Password)
	if err != nil {
		return nil, err
	}
	sess := s.sessions.Start(user)
	tab, _ := session.TabForRole(user.Role)

	return s.wrap(loginResult{
		SessionID: sess.ID,
		Username:  user.Username,
		Role:      user.Role,
		Tab:       tab,
	}, tab, fmt.Sprintf("Pass session_id to the %s tools.", tab)), nil
}

func (s *Server) handleLogout(_ context.Context, args sessionArgs) (interface{}, error) {
	if !s.sessions.End(args.SessionID) {
		return nil, errNotLoggedIn
	}
	return s.wrap(map[string]bool{"logged_out": true}, ""), nil
}

func (s *Server) handleRegister(ctx context.Context, args registerArgs) (interface{}, error) {
	user, err := s.auth.Register(ctx, args.Username, args.Password, domain.Role(args.Role))
	if err != nil {
		return nil, err
	}
	log.Info().Str("user", user.Username).Str("role", string(user.Role)).Msg("Account registered over MCP")
	return s.wrap(map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	}, "", "Account created. Call 'login' to start a session."), nil
}

// resolveTab picks the requested tab, or the session role's tab when none is given.
func resolveTab(sess *session.Session, raw string) (session.Tab, error) {
	if raw == "" {
		tab, ok := session.TabForRole(sess.Role())
		if !ok {
			return "", fmt.Errorf("role %q has no dashboard tab", sess.Role())
		}
		return tab, nil
	}
	tab := session.Tab(raw)
	if !tab.Valid() {
		return "", fmt.Errorf("unknown tab %q: use cyber, data or it", raw)
	}
	if !sess.CanView(tab) {
		return "", fmt.Errorf("%w (role %q, tab %q)", errForbidden, sess.Role(), tab)
	}
	return tab, nil
}
