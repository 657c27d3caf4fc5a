package mcp

import (
	"context"

	"mdip/internal/session"
	"mdip/internal/visuals"
)

func (s *Server) handleDatasetOverview(ctx context.Context, args sessionArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabData); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabData); err != nil {
		return nil, err
	}
	ov := s.loader.Data()
	return s.withCharts(s.wrap(ov, session.TabData), visuals.DepartmentStorageChart(ov.Departments)), nil
}

func (s *Server) handleDependencyAnalysis(ctx context.Context, args sessionArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabData); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabData); err != nil {
		return nil, err
	}
	return s.wrap(s.loader.DatasetService().DependencyAnalysis(), session.TabData,
		"High risk: 3 or more dependencies. Medium: 1-2. Low: none."), nil
}

func (s *Server) handleArchivingRecommendations(ctx context.Context, args archivingArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabData); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabData); err != nil {
		return nil, err
	}
	limit := args.Limit
	if limit <= 0 {
		limit = s.loader.Settings().ArchiveCandidateLimit
	}
	return s.wrap(s.loader.DatasetService().ArchivingRecommendations(limit), session.TabData), nil
}

type staleResult struct {
	ThresholdDays  int         `json:"threshold_days"`
	MaxAccesses    int         `json:"max_accesses"`
	Stale          interface{} `json:"stale"`
	RarelyAccessed interface{} `json:"rarely_accessed"`
}

func (s *Server) handleStaleDatasets(ctx context.Context, args staleArgs) (interface{}, error) {
	if _, err := s.authorize(args.SessionID, session.TabData); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, session.TabData); err != nil {
		return nil, err
	}

	settings := s.loader.Settings()
	threshold := args.ThresholdDays
	if threshold <= 0 {
		threshold = settings.StaleDaysThreshold
	}
	maxAccesses := args.MaxAccesses
	if maxAccesses <= 0 {
		maxAccesses = settings.RareAccessThreshold
	}

	svc := s.loader.DatasetService()
	return s.wrap(staleResult{
		ThresholdDays:  threshold,
		MaxAccesses:    maxAccesses,
		Stale:          svc.Stale(threshold),
		RarelyAccessed: svc.RarelyAccessed(maxAccesses),
	}, session.TabData), nil
}
