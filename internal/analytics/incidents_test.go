package analytics

import (
	"math"
	"testing"
	"time"

	"mdip/internal/domain"
)

var now = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

type incidentSlice []domain.Incident

func (s incidentSlice) All() []domain.Incident { return s }

func incident(daysAgo float64, category string, sev domain.Severity, status domain.IncidentStatus, hours *float64) domain.Incident {
	return domain.Incident{
		Date:                now.Add(-time.Duration(daysAgo * 24 * float64(time.Hour))),
		ThreatCategory:      category,
		Severity:            sev,
		Status:              status,
		ResolutionTimeHours: hours,
	}
}

func newIncidentService(incidents ...domain.Incident) *IncidentService {
	return NewIncidentService(incidentSlice(incidents), WithClock(func() time.Time { return now }))
}

func TestIncidentService_Metrics(t *testing.T) {
	svc := newIncidentService(
		incident(1, "Phishing", domain.SeverityHigh, domain.StatusUnresolved, nil),
		incident(1, "Phishing", domain.SeverityLow, domain.StatusResolved, domain.Hours(2)),
		incident(1, "Malware", domain.SeverityHigh, domain.StatusUnresolved, nil),
		incident(1, "Malware", domain.SeverityHigh, domain.StatusInProgress, nil),
	)

	m := svc.Metrics()
	want := IncidentMetrics{TotalIncidents: 4, UnresolvedHigh: 2, PhishingTotal: 2, PhishingUnresolved: 1}
	if m != want {
		t.Errorf("Expected %+v, got %+v", want, m)
	}
}

func TestIncidentService_SurgeWindows(t *testing.T) {
	tests := []struct {
		name         string
		incidents    []domain.Incident
		wantRecent   int
		wantPrevious int
		wantSurge    float64
	}{
		{
			name: "boundary belongs to the recent window",
			incidents: []domain.Incident{
				incident(7, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
			},
			wantRecent:   1,
			wantPrevious: 0,
			wantSurge:    100,
		},
		{
			name: "previous window includes its left edge",
			incidents: []domain.Incident{
				incident(14, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
				incident(14.01, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
			},
			wantRecent:   0,
			wantPrevious: 1,
			wantSurge:    -100,
		},
		{
			name: "surge against previous count",
			incidents: []domain.Incident{
				incident(1, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
				incident(2, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
				incident(3, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
				incident(8, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
				incident(9, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
				incident(2, "Malware", domain.SeverityLow, domain.StatusUnresolved, nil),
			},
			wantRecent:   3,
			wantPrevious: 2,
			wantSurge:    50,
		},
		{
			name: "future incidents are ignored",
			incidents: []domain.Incident{
				incident(-1, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newIncidentService(tt.incidents...).PhishingSurgeAnalysis(7)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.RecentCount != tt.wantRecent || res.PreviousCount != tt.wantPrevious {
				t.Errorf("Expected recent=%d previous=%d, got recent=%d previous=%d",
					tt.wantRecent, tt.wantPrevious, res.RecentCount, res.PreviousCount)
			}
			if math.Abs(res.SurgePercentage-tt.wantSurge) > 1e-9 {
				t.Errorf("Expected surge %v, got %v", tt.wantSurge, res.SurgePercentage)
			}
		})
	}

	if _, err := newIncidentService().SurgeAnalysis("Phishing", 0); err == nil {
		t.Error("Expected error for a zero-day window")
	}
}

func TestIncidentService_SurgeWindowsAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}
	// Clocks moved forward on 2025-03-09, inside both windows below.
	clock := time.Date(2025, 3, 12, 12, 0, 0, 0, loc)
	week := 7 * 24 * time.Hour

	tests := []struct {
		name         string
		date         time.Time
		wantRecent   int
		wantPrevious int
	}{
		{"exactly one window ago is recent", clock.Add(-week), 1, 0},
		{"just before the split is previous", clock.Add(-week - time.Second), 0, 1},
		{"exactly two windows ago is previous", clock.Add(-2 * week), 0, 1},
		{"before both windows is ignored", clock.Add(-2*week - time.Second), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inc := domain.Incident{Date: tt.date, ThreatCategory: "Phishing", Severity: domain.SeverityLow, Status: domain.StatusUnresolved}
			svc := NewIncidentService(incidentSlice{inc}, WithClock(func() time.Time { return clock }))

			res, err := svc.PhishingSurgeAnalysis(7)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.RecentCount != tt.wantRecent || res.PreviousCount != tt.wantPrevious {
				t.Errorf("Expected recent=%d previous=%d, got recent=%d previous=%d (split %v)",
					tt.wantRecent, tt.wantPrevious, res.RecentCount, res.PreviousCount, res.WindowSplit)
			}
			if got := clock.Sub(res.WindowSplit); got != week {
				t.Errorf("Expected the split one week before now, got %v", got)
			}
		})
	}
}

func TestIncidentService_ResolutionBottleneck(t *testing.T) {
	t.Run("no resolved incidents", func(t *testing.T) {
		svc := newIncidentService(
			incident(1, "Phishing", domain.SeverityHigh, domain.StatusUnresolved, nil),
			incident(1, "Malware", domain.SeverityHigh, domain.StatusInProgress, domain.Hours(4)),
		)
		if _, ok := svc.ResolutionBottleneck(); ok {
			t.Error("Expected no data")
		}
	})

	t.Run("highest mean wins, ties go to first seen", func(t *testing.T) {
		svc := newIncidentService(
			incident(1, "Malware", domain.SeverityLow, domain.StatusResolved, domain.Hours(10)),
			incident(1, "Phishing", domain.SeverityLow, domain.StatusResolved, domain.Hours(4)),
			incident(1, "Phishing", domain.SeverityLow, domain.StatusResolved, domain.Hours(16)),
			incident(1, "DDoS", domain.SeverityLow, domain.StatusResolved, domain.Hours(2)),
			incident(1, "DDoS", domain.SeverityLow, domain.StatusUnresolved, nil),
		)
		res, ok := svc.ResolutionBottleneck()
		if !ok {
			t.Fatal("Expected a bottleneck")
		}
		if res.Category != "Malware" || res.AvgHours != 10 {
			t.Errorf("Expected Malware at 10h, got %s at %v", res.Category, res.AvgHours)
		}
		if len(res.AllAverages) != 3 || res.AllAverages[1].Category != "Phishing" || res.AllAverages[1].AvgHours != 10 {
			t.Errorf("Unexpected averages: %+v", res.AllAverages)
		}
	})
}

func TestIncidentService_BacklogSummary(t *testing.T) {
	svc := newIncidentService(
		incident(1, "Phishing", domain.SeverityHigh, domain.StatusUnresolved, nil),
		incident(1, "Malware", domain.SeverityLow, domain.StatusUnresolved, nil),
		incident(1, "Phishing", domain.SeverityMedium, domain.StatusUnresolved, nil),
		incident(1, "DDoS", domain.SeverityHigh, domain.StatusInProgress, nil),
	)

	res := svc.BacklogSummary()
	if res.TotalUnresolved != 3 || res.HighSeverityUnresolved != 1 {
		t.Errorf("Expected 3 unresolved with 1 high, got %+v", res)
	}
	want := []CategoryCount{{"Phishing", 2}, {"Malware", 1}}
	if len(res.ByCategory) != len(want) {
		t.Fatalf("Expected %v, got %v", want, res.ByCategory)
	}
	for i := range want {
		if res.ByCategory[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, res.ByCategory[i])
		}
	}
}

func TestIncidentService_DailyCounts(t *testing.T) {
	svc := newIncidentService(
		incident(0, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
		incident(1, "Phishing", domain.SeverityLow, domain.StatusUnresolved, nil),
		incident(1, "Malware", domain.SeverityLow, domain.StatusUnresolved, nil),
		incident(1, "Malware", domain.SeverityLow, domain.StatusUnresolved, nil),
	)

	got := svc.DailyCounts()
	want := []DailyCount{
		{Date: "2025-06-29", Category: "Malware", Count: 2},
		{Date: "2025-06-29", Category: "Phishing", Count: 1},
		{Date: "2025-06-30", Category: "Phishing", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v at %d, got %v", want[i], i, got[i])
		}
	}
}
