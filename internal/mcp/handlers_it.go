package mcp

import (
	"context"

	"mdip/internal/session"
	"mdip/internal/visuals"
)

func (s *Server) handleTicketOverview(ctx context.Context, args sessionArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabIT); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabIT); err != nil {
		return nil, err
	}
	ov := s.loader.IT()
	charts := []string{visuals.StaffChart(ov.Staff)}
	if ov.Bottleneck != nil {
		charts = append(charts, visuals.StageChart(*ov.Bottleneck))
	}
	return s.withCharts(s.wrap(ov, session.TabIT), charts...), nil
}

func (s *Server) handleStaffPerformance(ctx context.Context, args sessionArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabIT); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabIT); err != nil {
		return nil, err
	}

	perf := s.loader.TicketService().StaffPerformance()
	var guidance []string
	if perf.Slowest != nil && !perf.Slowest.GapDefined {
		guidance = append(guidance, "The team average is zero, so no performance gap can be expressed as a percentage.")
	}
	return s.withCharts(s.wrap(perf, session.TabIT, guidance...), visuals.StaffChart(perf)), nil
}

func (s *Server) handleProcessBottleneck(ctx context.Context, args sessionArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabIT); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabIT); err != nil {
		return nil, err
	}
	b, ok := s.loader.TicketService().ProcessBottleneck()
	if !ok {
		return s.wrap(nil, session.TabIT, "No stage times recorded yet."), nil
	}
	return s.withCharts(s.wrap(b, session.TabIT), visuals.StageChart(b)), nil
}
