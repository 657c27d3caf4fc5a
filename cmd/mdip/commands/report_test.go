package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"mdip/internal/analytics"
	"mdip/internal/dashboard"

	"gopkg.in/yaml.v3"
)

func sampleOverview() dashboard.Overview {
	return dashboard.Overview{
		GeneratedAt: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
		Cyber: &dashboard.CyberOverview{
			Metrics: analytics.IncidentMetrics{TotalIncidents: 1234, PhishingTotal: 40},
			Surge:   analytics.SurgeAnalysis{Category: "Phishing", Days: 7, RecentCount: 30, PreviousCount: 10, SurgePercentage: 200},
			Backlog: analytics.BacklogSummary{TotalUnresolved: 3, ByCategory: []analytics.CategoryCount{{Category: "Malware", Count: 3}}},
		},
		IT: &dashboard.ITOverview{
			Metrics: analytics.TicketMetrics{TotalTickets: 2, AvgResolutionHours: 12.5},
			Staff: analytics.StaffPerformance{
				Staff:       []analytics.StaffAverage{{Staff: "A", AvgHours: 15, Resolved: 1}, {Staff: "B", AvgHours: 5, Resolved: 1}},
				TeamAverage: 10,
				Slowest:     &analytics.PerformanceGap{Staff: "A", AvgHours: 15, TeamAvg: 10, GapHours: 5, GapPercentage: 50, GapDefined: true},
			},
		},
	}
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, sampleOverview(), "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"1,234", "Phishing surge: 30 in the last 7 days vs 10 before (+200.0%)", "Malware", "A, 50.0% above"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Data Governance") {
		t.Error("Expected the data tab to be omitted")
	}
}

func TestWriteReport_JSONAndYAML(t *testing.T) {
	var js bytes.Buffer
	if err := writeReport(&js, sampleOverview(), "json"); err != nil {
		t.Fatal(err)
	}
	var decoded dashboard.Overview
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Cyber.Metrics.TotalIncidents != 1234 {
		t.Errorf("Expected 1234 incidents, got %d", decoded.Cyber.Metrics.TotalIncidents)
	}

	var ym bytes.Buffer
	if err := writeReport(&ym, sampleOverview(), "yaml"); err != nil {
		t.Fatal(err)
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(ym.Bytes(), &doc); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if _, ok := doc["cyber"]; !ok {
		t.Errorf("Expected a cyber key, got %v", doc)
	}
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	if err := writeReport(&bytes.Buffer{}, sampleOverview(), "xml"); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}
