package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewIncident(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		severity Severity
		status   IncidentStatus
		hours    *float64
		field    string
	}{
		{"unresolved", SeverityHigh, StatusUnresolved, nil, ""},
		{"resolved with time", SeverityLow, StatusResolved, Hours(12), ""},
		{"resolved with zero time", SeverityLow, StatusResolved, Hours(0), ""},
		{"resolved without time", SeverityMedium, StatusResolved, nil, "resolution_time_hours"},
		{"negative time", SeverityMedium, StatusInProgress, Hours(-1), "resolution_time_hours"},
		{"bad severity", "Critical", StatusUnresolved, nil, "severity"},
		{"bad status", SeverityHigh, "Closed", nil, "status"},
	}

	for _, tt := range tests {
		_, err := NewIncident(now, "Phishing", tt.severity, tt.status, tt.hours)
		if tt.field == "" {
			if err != nil {
				t.Errorf("%s: expected no error, got %v", tt.name, err)
			}
			continue
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: expected ValidationError, got %v", tt.name, err)
		}
		if vErr.Field != tt.field {
			t.Errorf("%s: expected field %q, got %q", tt.name, tt.field, vErr.Field)
		}
	}
}

func TestIncidentClone(t *testing.T) {
	inc := Incident{Status: StatusResolved, Severity: SeverityHigh, ResolutionTimeHours: Hours(4)}
	c := inc.Clone()
	*c.ResolutionTimeHours = 99
	if *inc.ResolutionTimeHours != 4 {
		t.Errorf("Expected clone to be independent, original changed to %v", *inc.ResolutionTimeHours)
	}
}
