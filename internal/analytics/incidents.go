package analytics

import (
	"fmt"
	"sort"
	"time"

	"mdip/internal/domain"
)

// IncidentMetrics are the headline numbers of the cyber tab.
type IncidentMetrics struct {
	TotalIncidents     int `json:"total_incidents"`
	UnresolvedHigh     int `json:"unresolved_high"`
	PhishingTotal      int `json:"phishing_total"`
	PhishingUnresolved int `json:"phishing_unresolved"`
}

// SurgeAnalysis compares a category's incident count in the most recent window with the window before it.
type SurgeAnalysis struct {
	Category        string    `json:"category"`
	Days            int       `json:"days"`
	WindowStart     time.Time `json:"window_start"` // start of the previous window
	WindowSplit     time.Time `json:"window_split"` // start of the recent window, inclusive
	WindowEnd       time.Time `json:"window_end"`
	RecentCount     int       `json:"recent_count"`
	PreviousCount   int       `json:"previous_count"`
	SurgePercentage float64   `json:"surge_percentage"`
}

// CategoryAverage is the mean resolution time of one threat category.
type CategoryAverage struct {
	Category     string  `json:"category"`
	AvgHours     float64 `json:"avg_resolution_hours"`
	ResolvedSeen int     `json:"resolved_count"`
}

// ResolutionBottleneck names the category that takes longest to resolve.
type ResolutionBottleneck struct {
	Category    string            `json:"category"`
	AvgHours    float64           `json:"avg_resolution_hours"`
	AllAverages []CategoryAverage `json:"all_averages"`
}

// CategoryCount is the number of incidents in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// BacklogSummary describes the unresolved incident backlog.
type BacklogSummary struct {
	TotalUnresolved        int             `json:"total_unresolved"`
	HighSeverityUnresolved int             `json:"high_severity_unresolved"`
	ByCategory             []CategoryCount `json:"by_category"`
}

// DailyCount is the number of incidents of one category reported on one day.
type DailyCount struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// IncidentService computes cyber security analytics.
type IncidentService struct {
	source IncidentSource
	now    func() time.Time
}

// NewIncidentService creates a service over source.
func NewIncidentService(source IncidentSource, opts ...Option) *IncidentService {
	o := buildOptions(opts)
	return &IncidentService{source: source, now: o.now}
}

// Metrics returns the headline incident counts.
func (s *IncidentService) Metrics() IncidentMetrics {
	var m IncidentMetrics
	for _, inc := range s.source.All() {
		m.TotalIncidents++
		if inc.IsUnresolved() && inc.IsHighSeverity() {
			m.UnresolvedHigh++
		}
		if inc.ThreatCategory == domain.CategoryPhishing {
			m.PhishingTotal++
			if inc.IsUnresolved() {
				m.PhishingUnresolved++
			}
		}
	}
	return m
}

// SurgeAnalysis counts category incidents in the recent window [now-days, now] and the
// previous window [now-2*days, now-days). Incidents dated after now are ignored.
// The percentage divides by max(previous, 1).
func (s *IncidentService) SurgeAnalysis(category string, days int) (SurgeAnalysis, error) {
	if days <= 0 {
		return SurgeAnalysis{}, fmt.Errorf("surge window must be at least one day, got %d", days)
	}

	// Windows are fixed 24h days so a DST change cannot shift the split
	window := time.Duration(days) * 24 * time.Hour
	end := s.now()
	split := end.Add(-window)
	start := end.Add(-2 * window)

	res := SurgeAnalysis{
		Category:    category,
		Days:        days,
		WindowStart: start,
		WindowSplit: split,
		WindowEnd:   end,
	}
	for _, inc := range s.source.All() {
		if inc.ThreatCategory != category || inc.Date.After(end) {
			continue
		}
		switch {
		case !inc.Date.Before(split):
			res.RecentCount++
		case !inc.Date.Before(start):
			res.PreviousCount++
		}
	}

	denominator := res.PreviousCount
	if denominator < 1 {
		denominator = 1
	}
	res.SurgePercentage = float64(res.RecentCount-res.PreviousCount) / float64(denominator) * 100
	return res, nil
}

// PhishingSurgeAnalysis is SurgeAnalysis for the Phishing category.
func (s *IncidentService) PhishingSurgeAnalysis(days int) (SurgeAnalysis, error) {
	return s.SurgeAnalysis(domain.CategoryPhishing, days)
}

// ResolutionBottleneck finds the threat category with the highest mean resolution time among
// resolved incidents that record one. Ties go to the category seen first.
// The boolean is false when no such incident exists.
func (s *IncidentService) ResolutionBottleneck() (ResolutionBottleneck, bool) {
	groups := newGroupedValues()
	for _, inc := range s.source.All() {
		if !inc.IsResolved() || inc.ResolutionTimeHours == nil {
			continue
		}
		groups.add(inc.ThreatCategory, *inc.ResolutionTimeHours)
	}
	if len(groups.order) == 0 {
		return ResolutionBottleneck{}, false
	}

	res := ResolutionBottleneck{AllAverages: make([]CategoryAverage, 0, len(groups.order))}
	for i, category := range groups.order {
		values := groups.values[category]
		avg := meanOf(values)
		res.AllAverages = append(res.AllAverages, CategoryAverage{Category: category, AvgHours: avg, ResolvedSeen: len(values)})
		if i == 0 || avg > res.AvgHours {
			res.Category = category
			res.AvgHours = avg
		}
	}
	return res, true
}

// BacklogSummary counts unresolved incidents overall, at High severity and per category.
// Categories appear in the order they were first seen.
func (s *IncidentService) BacklogSummary() BacklogSummary {
	res := BacklogSummary{ByCategory: []CategoryCount{}}
	index := make(map[string]int)
	for _, inc := range s.source.All() {
		if !inc.IsUnresolved() {
			continue
		}
		res.TotalUnresolved++
		if inc.IsHighSeverity() {
			res.HighSeverityUnresolved++
		}
		i, ok := index[inc.ThreatCategory]
		if !ok {
			i = len(res.ByCategory)
			index[inc.ThreatCategory] = i
			res.ByCategory = append(res.ByCategory, CategoryCount{Category: inc.ThreatCategory})
		}
		res.ByCategory[i].Count++
	}
	return res
}

// DailyCounts returns per-day incident counts per category, ordered by date then category.
func (s *IncidentService) DailyCounts() []DailyCount {
	type key struct{ date, category string }
	counts := make(map[key]int)
	for _, inc := range s.source.All() {
		counts[key{inc.Date.Format(time.DateOnly), inc.ThreatCategory}]++
	}

	out := make([]DailyCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, DailyCount{Date: k.date, Category: k.category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Category < out[j].Category
	})
	return out
}
