package mcp

import (
	"context"
	"errors"
	"strings"
)

type askResult struct {
	Tab      string `json:"tab"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Turns    int    `json:"turns"`
}

func (s *Server) handleAskAssistant(ctx context.Context, args askArgs) (interface{}, error) {
	sess, ok := s.sessions.Get(args.SessionID)
	if !ok {
		return nil, errNotLoggedIn
	}
	tab, err := resolveTab(sess, args.Tab)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Question) == "" {
		return nil, errors.New("question must not be empty")
	}
	if s.assistant == nil {
		return nil, errors.New("the assistant is not configured")
	}
	if err := s.refresh(ctx, tab); err != nil {
		return nil, err
	}

	answer := s.assistant.Ask(ctx, sess, tab, args.Question, s.loader.Table(tab))
	return s.wrap(askResult{
		Tab:      string(tab),
		Question: args.Question,
		Answer:   answer,
		Turns:    len(sess.History(tab)),
	}, tab), nil
}

func (s *Server) handleClearChat(_ context.Context, args tabArgs) (interface{}, error) {
	sess, ok := s.sessions.Get(args.SessionID)
	if !ok {
		return nil, errNotLoggedIn
	}
	tab, err := resolveTab(sess, args.Tab)
	if err != nil {
		return nil, err
	}
	sess.ClearHistory(tab)
	return s.wrap(map[string]bool{"cleared": true}, tab), nil
}
