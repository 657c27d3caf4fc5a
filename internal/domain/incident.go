package domain

import "time"

// Incident is a single security incident observed by the cyber team.
type Incident struct {
	// ID is assigned by the store; zero until the incident has been persisted.
	ID                  int64          `json:"id,omitempty"`
	Date                time.Time      `json:"date"`
	ThreatCategory      string         `json:"threat_category"`
	Severity            Severity       `json:"severity"`
	Status              IncidentStatus `json:"status"`
	ResolutionTimeHours *float64       `json:"resolution_time_hours,omitempty"`
}

// NewIncident builds a validated incident.
func NewIncident(date time.Time, category string, severity Severity, status IncidentStatus, resolutionHours *float64) (Incident, error) {
	inc := Incident{
		Date:                date,
		ThreatCategory:      category,
		Severity:            severity,
		Status:              status,
		ResolutionTimeHours: resolutionHours,
	}
	if err := inc.Validate(); err != nil {
		return Incident{}, err
	}
	return inc, nil
}

// Validate checks the incident invariants.
func (i Incident) Validate() error {
	if !i.Severity.Valid() {
		return invalid("incident", "severity", i.Severity, "is not one of High, Medium, Low")
	}
	if !i.Status.Valid() {
		return invalid("incident", "status", i.Status, "is not one of Unresolved, In Progress, Resolved")
	}
	if i.ResolutionTimeHours != nil && *i.ResolutionTimeHours < 0 {
		return invalid("incident", "resolution_time_hours", *i.ResolutionTimeHours, "cannot be negative")
	}
	if i.Status == StatusResolved && i.ResolutionTimeHours == nil {
		return invalid("incident", "resolution_time_hours", nil, "is required for resolved incidents")
	}
	return nil
}

// IsUnresolved reports whether nobody has started working on the incident.
func (i Incident) IsUnresolved() bool {
	return i.Status == StatusUnresolved
}

// IsResolved reports whether the incident is closed.
func (i Incident) IsResolved() bool {
	return i.Status == StatusResolved
}

// IsHighSeverity reports whether the incident is rated High.
func (i Incident) IsHighSeverity() bool {
	return i.Severity == SeverityHigh
}

// Clone returns a copy that shares no memory with the receiver.
func (i Incident) Clone() Incident {
	if i.ResolutionTimeHours != nil {
		v := *i.ResolutionTimeHours
		i.ResolutionTimeHours = &v
	}
	return i
}

// Hours is a convenience for building optional resolution times.
func Hours(h float64) *float64 {
	return &h
}
