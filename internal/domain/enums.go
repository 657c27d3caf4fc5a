package domain

// Severity is the impact class of a security incident.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Valid reports whether the severity belongs to the closed set.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// IncidentStatus is the handling state of a security incident.
type IncidentStatus string

const (
	StatusUnresolved IncidentStatus = "Unresolved"
	StatusInProgress IncidentStatus = "In Progress"
	StatusResolved   IncidentStatus = "Resolved"
)

// Valid reports whether the status belongs to the closed set.
func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusUnresolved, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// QualityStatus is the outcome of a dataset's quality check.
type QualityStatus string

const (
	QualityPassed  QualityStatus = "Passed"
	QualityFailed  QualityStatus = "Failed"
	QualityPending QualityStatus = "Pending"
)

// Valid reports whether the quality status belongs to the closed set.
func (q QualityStatus) Valid() bool {
	switch q {
	case QualityPassed, QualityFailed, QualityPending:
		return true
	}
	return false
}

// Priority is the urgency of an IT ticket.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether the priority belongs to the closed set.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Role is the department a user belongs to. It decides which dashboard tab the user sees.
type Role string

const (
	RoleCyberSecurity Role = "Cyber Security"
	RoleDataScientist Role = "Data Scientist"
	RoleITOperations  Role = "IT Operations"
)

// Roles lists every assignable role.
var Roles = []Role{RoleCyberSecurity, RoleDataScientist, RoleITOperations}

// Valid reports whether the role belongs to the fixed set of departments.
func (r Role) Valid() bool {
	switch r {
	case RoleCyberSecurity, RoleDataScientist, RoleITOperations:
		return true
	}
	return false
}

// Ticket statuses the analytics layer gives meaning to. Any other string is accepted.
const (
	TicketResolved       = "Resolved"
	TicketWaitingForUser = "Waiting for User"
)

// CategoryPhishing is the threat category tracked by the surge analysis.
const CategoryPhishing = "Phishing"
