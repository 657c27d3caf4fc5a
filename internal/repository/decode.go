package repository

import (
	"time"

	"mdip/internal/domain"
	"mdip/internal/store"

	"github.com/rs/zerolog/log"
)

// DefaultResolutionHours is assigned to resolved incident rows that carry no resolution time.
const DefaultResolutionHours = 24.0

// legacySeverityCritical is a severity older rows carry that the domain folds into High.
const legacySeverityCritical = "Critical"

// UnassignedStaff names the owner of tickets stored without an assignee.
const UnassignedStaff = "Unassigned"

// DecodeIncident maps an incident row onto the domain entity.
// Legacy rows are translated: Critical severity becomes High and a resolved
// incident without a resolution time receives DefaultResolutionHours.
func DecodeIncident(row store.Row[store.IncidentRecord]) (domain.Incident, error) {
	r := row.Record

	severity := domain.Severity(r.Severity)
	if r.Severity == legacySeverityCritical {
		log.Debug().Int64("id", row.ID).Msg("Mapping Critical incident severity to High")
		severity = domain.SeverityHigh
	}

	status := domain.IncidentStatus(r.Status)
	var hours *float64
	if r.ResolutionTimeHours != nil {
		hours = domain.Hours(*r.ResolutionTimeHours)
	} else if status == domain.StatusResolved {
		log.Debug().Int64("id", row.ID).Float64("hours", DefaultResolutionHours).Msg("Resolved incident has no resolution time, using default")
		hours = domain.Hours(DefaultResolutionHours)
	}

	inc, err := domain.NewIncident(r.Date, r.IncidentType, severity, status, hours)
	if err != nil {
		return domain.Incident{}, err
	}
	inc.ID = row.ID
	return inc, nil
}

// EncodeIncident maps an incident onto a store row.
func EncodeIncident(inc domain.Incident) store.IncidentRecord {
	rec := store.IncidentRecord{
		Date:         inc.Date,
		IncidentType: inc.ThreatCategory,
		Severity:     string(inc.Severity),
		Status:       string(inc.Status),
	}
	if inc.ResolutionTimeHours != nil {
		rec.ResolutionTimeHours = domain.Hours(*inc.ResolutionTimeHours)
	}
	return rec
}

// DecodeDataset maps a dataset row onto the domain entity, deriving days since access from now.
func DecodeDataset(row store.Row[store.DatasetRecord], now time.Time) (domain.Dataset, error) {
	r := row.Record
	d, err := domain.NewDataset(domain.Dataset{
		Name:                r.DatasetName,
		Department:          r.Department,
		SizeGB:              r.SizeGB,
		RowsMillions:        r.RowsMillions,
		UploadDate:          r.UploadDate,
		LastAccessed:        r.LastAccessed,
		DaysSinceAccess:     domain.DaysBetween(r.LastAccessed, now),
		QualityStatus:       domain.QualityStatus(r.QualityStatus),
		Dependencies:        r.Dependencies,
		AccessFrequency30d:  r.AccessFrequency30d,
		StorageCostPerMonth: r.StorageCostPerMonth,
	})
	if err != nil {
		return domain.Dataset{}, err
	}
	d.ID = row.ID
	return d, nil
}

// EncodeDataset maps a dataset onto a store row.
func EncodeDataset(d domain.Dataset) store.DatasetRecord {
	return store.DatasetRecord{
		DatasetName:         d.Name,
		Department:          d.Department,
		SizeGB:              d.SizeGB,
		RowsMillions:        d.RowsMillions,
		UploadDate:          d.UploadDate,
		LastAccessed:        d.LastAccessed,
		QualityStatus:       string(d.QualityStatus),
		Dependencies:        d.Dependencies,
		AccessFrequency30d:  d.AccessFrequency30d,
		StorageCostPerMonth: d.StorageCostPerMonth,
	}
}

// DecodeTicket maps a ticket row onto the domain entity.
// A row without a total resolution time derives it from its resolved and created dates.
// Stage times are taken as stored and never synthesised.
func DecodeTicket(row store.Row[store.TicketRecord]) (domain.Ticket, error) {
	r := row.Record

	staff := r.AssignedTo
	if staff == "" {
		staff = UnassignedStaff
	}

	var total float64
	switch {
	case r.TotalResolutionHours != nil:
		total = *r.TotalResolutionHours
	case r.ResolvedDate != nil && r.ResolvedDate.After(r.CreatedDate):
		total = r.ResolvedDate.Sub(r.CreatedDate).Hours()
	}

	var resolved *time.Time
	if r.ResolvedDate != nil {
		v := *r.ResolvedDate
		resolved = &v
	}

	var stages domain.StageTimes
	if len(r.StageTimes) > 0 {
		stages = make(domain.StageTimes, len(r.StageTimes))
		for i, s := range r.StageTimes {
			stages[i] = domain.StageTime{Stage: s.Stage, Hours: s.Hours}
		}
	}

	t, err := domain.NewTicket(domain.Ticket{
		TicketID:                 r.TicketID,
		AssignedStaff:            staff,
		Priority:                 domain.Priority(r.Priority),
		CreatedDate:              r.CreatedDate,
		Status:                   r.Status,
		TotalResolutionTimeHours: total,
		ResolutionDate:           resolved,
		StageTimes:               stages,
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	t.ID = row.ID
	return t, nil
}

// EncodeTicket maps a ticket onto a store row.
func EncodeTicket(t domain.Ticket) store.TicketRecord {
	rec := store.TicketRecord{
		TicketID:             t.TicketID,
		Priority:             string(t.Priority),
		Status:               t.Status,
		CreatedDate:          t.CreatedDate,
		AssignedTo:           t.AssignedStaff,
		TotalResolutionHours: domain.Hours(t.TotalResolutionTimeHours),
		StageTimes:           encodeStages(t.StageTimes),
	}
	if t.ResolutionDate != nil {
		v := *t.ResolutionDate
		rec.ResolvedDate = &v
	}
	return rec
}

func encodeStages(st domain.StageTimes) []store.StageTimeRecord {
	out := make([]store.StageTimeRecord, len(st))
	for i, s := range st {
		out[i] = store.StageTimeRecord{Stage: s.Stage, Hours: s.Hours}
	}
	return out
}

// DecodeUser maps a user row onto the domain entity. Password carries the stored hash.
func DecodeUser(row store.Row[store.UserRecord]) (domain.User, error) {
	u, err := domain.NewUser(row.Record.Username, row.Record.PasswordHash, domain.Role(row.Record.Role))
	if err != nil {
		return domain.User{}, err
	}
	u.ID = row.ID
	return u, nil
}

// EncodeUser maps a user onto a store row. The caller must already have hashed the password.
func EncodeUser(u domain.User) store.UserRecord {
	return store.UserRecord{
		Username:     u.Username,
		PasswordHash: u.Password,
		Role:         string(u.Role),
	}
}

// decodeAll decodes every row, skipping and reporting the ones that fail.
func decodeAll[R any, T any](entity string, rows []store.Row[R], decode func(store.Row[R]) (T, error)) ([]T, []DecodeError) {
	out := make([]T, 0, len(rows))
	var failures []DecodeError
	for _, row := range rows {
		v, err := decode(row)
		if err != nil {
			log.Warn().Err(err).Str("entity", entity).Int64("id", row.ID).Msg("Skipping invalid row")
			failures = append(failures, DecodeError{Entity: entity, ID: row.ID, Err: err})
			continue
		}
		out = append(out, v)
	}
	return out, failures
}
