package mcp

import (
	"context"
	"fmt"

	"mdip/internal/domain"
	"mdip/internal/repository"
	"mdip/internal/session"
	"mdip/internal/visuals"
)

func (s *Server) handleIncidentOverview(ctx context.Context, args sessionArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabCyber); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabCyber); err != nil {
		return nil, err
	}
	ov, err := s.loader.Cyber()
	if err != nil {
		return nil, err
	}
	charts := []string{visuals.DailyTrendChart(ov.Daily, ov.Surge.Category)}
	if ov.Bottleneck != nil {
		charts = append(charts, visuals.ResolutionChart(*ov.Bottleneck))
	}
	return s.withCharts(s.wrap(ov, session.TabCyber), charts...), nil
}

func (s *Server) handlePhishingSurge(ctx context.Context, args surgeArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabCyber); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabCyber); err != nil {
		return nil, err
	}

	days := args.Days
	if days == 0 {
		days = s.loader.Settings().SurgeWindowDays
	}
	category := args.Category
	if category == "" {
		category = domain.CategoryPhishing
	}

	surge, err := s.loader.IncidentService().SurgeAnalysis(category, days)
	if err != nil {
		return nil, err
	}

	var guidance []string
	if surge.PreviousCount == 0 && surge.RecentCount > 0 {
		guidance = append(guidance, "The previous window had no incidents; the percentage is relative to a baseline of one.")
	}
	return s.wrap(surge, session.TabCyber, guidance...), nil
}

func (s *Server) handleResolutionBottleneck(ctx context.Context, args sessionArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabCyber); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabCyber); err != nil {
		return nil, err
	}
	b, ok := s.loader.IncidentService().ResolutionBottleneck()
	if !ok {
		return s.wrap(nil, session.TabCyber, "No resolved incidents with a resolution time yet."), nil
	}
	return s.withCharts(s.wrap(b, session.TabCyber), visuals.ResolutionChart(b)), nil
}

func (s *Server) handleIncidentBacklog(ctx context.Context, args sessionArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabCyber); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabCyber); err != nil {
		return nil, err
	}
	return s.wrap(s.loader.IncidentService().BacklogSummary(), session.TabCyber), nil
}

func (s *Server) handleUpdateIncident(ctx context.Context, args updateIncidentArgs) (interface{}, error) {
	sess, err := s.authorize(args.SessionID, session.TabCyber)
	if err != nil {
		return nil, err
	}

	var patch repository.IncidentPatch
	if args.ThreatCategory != "" {
		patch.ThreatCategory = &args.ThreatCategory
	}
	if args.Severity != "" {
		sev := domain.Severity(args.Severity)
		patch.Severity = &sev
	}
	if args.Status != "" {
		status := domain.IncidentStatus(args.Status)
		patch.Status = &status
	}
	patch.ResolutionTimeHours = args.ResolutionTimeHours

	updated, err := s.loader.Incidents.Update(ctx, args.IncidentID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update incident %d: %w", args.IncidentID, err)
	}
	return s.wrap(updated, session.TabCyber, fmt.Sprintf("Updated by %s.", sess.User.Username)), nil
}
