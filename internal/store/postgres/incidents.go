package postgres

import (
	"context"

	"mdip/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// IncidentStore persists incidents in cyber_incidents.
type IncidentStore struct {
	t table
}

// NewIncidentStore creates an incident store on pool.
func NewIncidentStore(pool *pgxpool.Pool) *IncidentStore {
	return &IncidentStore{t: table{
		pool:   pool,
		name:   "cyber_incidents",
		entity: store.EntityIncident,
		writable: columns(store.ColDate, store.ColIncidentType, store.ColSeverity, store.ColStatus,
			store.ColDescription, store.ColReportedBy, store.ColResolutionTimeHours),
	}}
}

// LoadAll returns every incident row ordered by id.
func (s *IncidentStore) LoadAll(ctx context.Context) ([]store.Row[store.IncidentRecord], error) {
	rows, err := s.t.pool.Query(ctx, `
		SELECT id, date, incident_type, severity, status,
		       COALESCE(description, ''), COALESCE(reported_by, ''), resolution_time_hours
		FROM cyber_incidents
		ORDER BY id
	`)
	if err != nil {
		return nil, store.Wrap("load", s.t.entity, 0, mapError(err))
	}
	defer rows.Close()

	var out []store.Row[store.IncidentRecord]
	for rows.Next() {
		var row store.Row[store.IncidentRecord]
		r := &row.Record
		if err := rows.Scan(&row.ID, &r.Date, &r.IncidentType, &r.Severity, &r.Status,
			&r.Description, &r.ReportedBy, &r.ResolutionTimeHours); err != nil {
			return nil, store.Wrap("load", s.t.entity, 0, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("load", s.t.entity, 0, mapError(err))
	}
	return out, nil
}

// Insert adds an incident row.
func (s *IncidentStore) Insert(ctx context.Context, r store.IncidentRecord) (int64, error) {
	return s.t.insert(ctx, `
		INSERT INTO cyber_incidents (date, incident_type, severity, status, description, reported_by, resolution_time_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, r.Date, r.IncidentType, r.Severity, r.Status, nullIfEmpty(r.Description), nullIfEmpty(r.ReportedBy), r.ResolutionTimeHours)
}

// Update patches an incident row.
func (s *IncidentStore) Update(ctx context.Context, id int64, fields store.Fields) error {
	return s.t.update(ctx, id, fields)
}

// Delete removes an incident row.
func (s *IncidentStore) Delete(ctx context.Context, id int64) error {
	return s.t.delete(ctx, id)
}

func nullIfEmpty(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
