// Package mcp exposes the dashboard analytics, authentication and assistant as Model Context
// Protocol tools served over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mdip/internal/assistant"
	"mdip/internal/auth"
	"mdip/internal/dashboard"
	"mdip/internal/session"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

var (
	errNotLoggedIn = errors.New("no active session: call 'login' first and pass the returned session_id")
	errForbidden   = errors.New("your role does not have access to this tab")
)

// Server holds the state shared by every tool call.
type Server struct {
	loader    *dashboard.Loader
	auth      *auth.Authenticator
	sessions  *session.Manager
	assistant *assistant.Assistant
	version   string
	charts    bool
	now       func() time.Time
}

// Options tune the tool output.
type Options struct {
	Version string
	Charts  bool // attach Mermaid charts to overview results
}

// NewServer creates a new MCP server. With a nil assistant the ask_assistant tool fails.
func NewServer(loader *dashboard.Loader, authenticator *auth.Authenticator, sessions *session.Manager, expert *assistant.Assistant, opts Options) *Server {
	return &Server{
		loader:    loader,
		auth:      authenticator,
		sessions:  sessions,
		assistant: expert,
		version:   opts.Version,
		charts:    opts.Charts,
		now:       time.Now,
	}
}

// Serve runs the tool server over stdin/stdout until ctx is cancelled or the client hangs up.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Str("version", s.version).Msg("Serving MCP over stdio")
	return s.build().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) build() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "mdip", Version: s.version}, nil)
	s.registerTools(srv)
	return srv
}

// authorize resolves the session and checks it may view tab.
func (s *Server) authorize(sessionID string, tab session.Tab) (*session.Session, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, errNotLoggedIn
	}
	if !sess.CanView(tab) {
		log.Warn().Str("user", sess.User.Username).Str("tab", string(tab)).Msg("Tab access denied")
		return nil, fmt.Errorf("%w (role %q, tab %q)", errForbidden, sess.Role(), tab)
	}
	return sess, nil
}

// refresh reloads the snapshot behind tab so every answer reflects the store.
func (s *Server) refresh(ctx context.Context, tab session.Tab) error {
	if err := s.loader.Refresh(ctx, tab); err != nil {
		return fmt.Errorf("failed to load %s data: %w", tab, err)
	}
	return nil
}

// Response is the envelope every tool result is serialised in.
type Response struct {
	Data        interface{} `json:"data"`
	Tab         string      `json:"tab,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
	Guidance    []string    `json:"guidance,omitempty"`
	Charts      []string    `json:"charts,omitempty"`
}

func (s *Server) wrap(data interface{}, tab session.Tab, guidance ...string) Response {
	return Response{Data: data, Tab: string(tab), GeneratedAt: s.now(), Guidance: guidance}
}

// withCharts attaches the non-empty charts when charts are enabled.
func (s *Server) withCharts(r Response, charts ...string) Response {
	if !s.charts {
		return r
	}
	for _, c := range charts {
		if c != "" {
			r.Charts = append(r.Charts, c)
		}
	}
	return r
}

func formatResult(data interface{}) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("failed to encode result: %v", err)
	}
	return string(out)
}
