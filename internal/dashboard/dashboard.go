// Package dashboard assembles the per-tab overviews the presentation layer renders.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"mdip/internal/analytics"
	"mdip/internal/domain"
	"mdip/internal/repository"
	"mdip/internal/session"
	"mdip/internal/tabular"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Settings are the thresholds the overviews are computed with.
type Settings struct {
	SurgeWindowDays       int
	StaleDaysThreshold    int
	RareAccessThreshold   int
	ArchiveCandidateLimit int
}

// DefaultSettings mirrors the configuration defaults.
var DefaultSettings = Settings{
	SurgeWindowDays:       7,
	StaleDaysThreshold:    90,
	RareAccessThreshold:   5,
	ArchiveCandidateLimit: 5,
}

// CyberOverview is the content of the cyber security tab.
type CyberOverview struct {
	Metrics    analytics.IncidentMetrics       `json:"metrics"`
	Surge      analytics.SurgeAnalysis         `json:"phishing_surge"`
	Bottleneck *analytics.ResolutionBottleneck `json:"resolution_bottleneck,omitempty"`
	Backlog    analytics.BacklogSummary        `json:"backlog"`
	Daily      []analytics.DailyCount          `json:"daily_counts"`
}

// DataOverview is the content of the data governance tab.
type DataOverview struct {
	Metrics        analytics.DatasetMetrics           `json:"metrics"`
	Departments    []analytics.DepartmentUsage        `json:"departments"`
	Dependencies   analytics.DependencyAnalysis       `json:"dependencies"`
	Archiving      analytics.ArchivingRecommendations `json:"archiving"`
	Stale          []domain.Dataset                   `json:"stale"`
	RarelyAccessed []domain.Dataset                   `json:"rarely_accessed"`
}

// ITOverview is the content of the IT operations tab.
type ITOverview struct {
	Metrics    analytics.TicketMetrics      `json:"metrics"`
	Staff      analytics.StaffPerformance   `json:"staff_performance"`
	Bottleneck *analytics.ProcessBottleneck `json:"process_bottleneck,omitempty"`
	Priorities []analytics.PriorityCount    `json:"priorities"`
}

// Overview bundles the tabs that were requested.
type Overview struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Cyber       *CyberOverview `json:"cyber,omitempty"`
	Data        *DataOverview  `json:"data,omitempty"`
	IT          *ITOverview    `json:"it,omitempty"`
}

// Loader refreshes repository snapshots and runs the analytics over them.
type Loader struct {
	Incidents *repository.IncidentRepository
	Datasets  *repository.DatasetRepository
	Tickets   *repository.TicketRepository

	settings  Settings
	now       func() time.Time
	incidents *analytics.IncidentService
	datasets  *analytics.DatasetService
	tickets   *analytics.TicketService
}

// NewLoader creates a loader over the three repositories. A nil now uses time.Now.
func NewLoader(incidents *repository.IncidentRepository, datasets *repository.DatasetRepository, tickets *repository.TicketRepository, settings Settings, now func() time.Time) *Loader {
	if now == nil {
		now = time.Now
	}
	return &Loader{
		Incidents: incidents,
		Datasets:  datasets,
		Tickets:   tickets,
		settings:  settings,
		now:       now,
		incidents: analytics.NewIncidentService(incidents, analytics.WithClock(now)),
		datasets:  analytics.NewDatasetService(datasets),
		tickets:   analytics.NewTicketService(tickets),
	}
}

// IncidentService returns the incident analytics service.
func (l *Loader) IncidentService() *analytics.IncidentService { return l.incidents }

// DatasetService returns the dataset analytics service.
func (l *Loader) DatasetService() *analytics.DatasetService { return l.datasets }

// TicketService returns the ticket analytics service.
func (l *Loader) TicketService() *analytics.TicketService { return l.tickets }

// Settings returns the thresholds in use.
func (l *Loader) Settings() Settings { return l.settings }

// Refresh reloads the snapshots behind tabs concurrently. No tabs means all of them.
func (l *Loader) Refresh(ctx context.Context, tabs ...session.Tab) error {
	if len(tabs) == 0 {
		tabs = session.Tabs
	}
	for _, tab := range tabs {
		if !tab.Valid() {
			return fmt.Errorf("unknown tab %q", tab)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, tab := range tabs {
		switch tab {
		case session.TabCyber:
			g.Go(func() error { return l.Incidents.Load(ctx) })
		case session.TabData:
			g.Go(func() error { return l.Datasets.Load(ctx) })
		case session.TabIT:
			g.Go(func() error { return l.Tickets.Load(ctx) })
		}
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to refresh snapshots: %w", err)
	}
	return nil
}

// Build refreshes and computes the overviews of tabs, or of every tab when none are given.
func (l *Loader) Build(ctx context.Context, tabs ...session.Tab) (Overview, error) {
	if len(tabs) == 0 {
		tabs = session.Tabs
	}
	start := time.Now()
	if err := l.Refresh(ctx, tabs...); err != nil {
		return Overview{}, err
	}

	ov := Overview{GeneratedAt: l.now()}
	for _, tab := range tabs {
		switch tab {
		case session.TabCyber:
			cyber, err := l.Cyber()
			if err != nil {
				return Overview{}, err
			}
			ov.Cyber = &cyber
		case session.TabData:
			data := l.Data()
			ov.Data = &data
		case session.TabIT:
			it := l.IT()
			ov.IT = &it
		}
	}
	log.Debug().Int("tabs", len(tabs)).Dur("elapsed", time.Since(start)).Msg("Built dashboard overview")
	return ov, nil
}

// ForSession builds the overview of the tab the session's role can view.
func (l *Loader) ForSession(ctx context.Context, sess *session.Session) (Overview, error) {
	tab, ok := session.TabForRole(sess.Role())
	if !ok {
		return Overview{}, fmt.Errorf("role %q has no dashboard tab", sess.Role())
	}
	return l.Build(ctx, tab)
}

// Cyber computes the cyber tab from the current incident snapshot.
func (l *Loader) Cyber() (CyberOverview, error) {
	surge, err := l.incidents.PhishingSurgeAnalysis(l.settings.SurgeWindowDays)
	if err != nil {
		return CyberOverview{}, err
	}
	ov := CyberOverview{
		Metrics: l.incidents.Metrics(),
		Surge:   surge,
		Backlog: l.incidents.BacklogSummary(),
		Daily:   l.incidents.DailyCounts(),
	}
	if b, ok := l.incidents.ResolutionBottleneck(); ok {
		ov.Bottleneck = &b
	}
	return ov, nil
}

// Data computes the data governance tab from the current dataset snapshot.
func (l *Loader) Data() DataOverview {
	return DataOverview{
		Metrics:        l.datasets.Metrics(),
		Departments:    l.datasets.ResourceConsumptionByDepartment(),
		Dependencies:   l.datasets.DependencyAnalysis(),
		Archiving:      l.datasets.ArchivingRecommendations(l.settings.ArchiveCandidateLimit),
		Stale:          l.datasets.Stale(l.settings.StaleDaysThreshold),
		RarelyAccessed: l.datasets.RarelyAccessed(l.settings.RareAccessThreshold),
	}
}

// IT computes the IT operations tab from the current ticket snapshot.
func (l *Loader) IT() ITOverview {
	ov := ITOverview{
		Metrics:    l.tickets.Metrics(),
		Staff:      l.tickets.StaffPerformance(),
		Priorities: l.tickets.PriorityBreakdown(),
	}
	if b, ok := l.tickets.ProcessBottleneck(); ok {
		ov.Bottleneck = &b
	}
	return ov
}

// Table tabulates the current snapshot behind tab for the assistant.
func (l *Loader) Table(tab session.Tab) tabular.Table {
	switch tab {
	case session.TabCyber:
		return tabular.FromIncidents(l.Incidents.All())
	case session.TabData:
		return tabular.FromDatasets(l.Datasets.All())
	case session.TabIT:
		return tabular.FromTickets(l.Tickets.All())
	}
	return tabular.Table{}
}
