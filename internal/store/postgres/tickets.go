package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"mdip/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketStore persists service desk tickets in it_tickets.
type TicketStore struct {
	t table
}

// NewTicketStore creates a ticket store on pool.
func NewTicketStore(pool *pgxpool.Pool) *TicketStore {
	return &TicketStore{t: table{
		pool:   pool,
		name:   "it_tickets",
		entity: store.EntityTicket,
		writable: columns(store.ColPriority, store.ColStatus, store.ColCategory, store.ColSubject,
			store.ColDescription, store.ColCreatedDate, store.ColResolvedDate, store.ColAssignedTo,
			store.ColTotalResolutionHours, store.ColStageTimes),
	}}
}

// LoadAll returns every ticket row ordered by id.
func (s *TicketStore) LoadAll(ctx context.Context) ([]store.Row[store.TicketRecord], error) {
	rows, err := s.t.pool.Query(ctx, `
		SELECT id, ticket_id, priority, status, category, subject, COALESCE(description, ''),
		       created_date, resolved_date, COALESCE(assigned_to, ''), total_resolution_time_hours, stage_times
		FROM it_tickets
		ORDER BY id
	`)
	if err != nil {
		return nil, store.Wrap("load", s.t.entity, 0, mapError(err))
	}
	defer rows.Close()

	var out []store.Row[store.TicketRecord]
	for rows.Next() {
		var row store.Row[store.TicketRecord]
		var stages []byte
		r := &row.Record
		if err := rows.Scan(&row.ID, &r.TicketID, &r.Priority, &r.Status, &r.Category, &r.Subject,
			&r.Description, &r.CreatedDate, &r.ResolvedDate, &r.AssignedTo, &r.TotalResolutionHours, &stages); err != nil {
			return nil, store.Wrap("load", s.t.entity, 0, err)
		}
		if len(stages) > 0 {
			if err := json.Unmarshal(stages, &r.StageTimes); err != nil {
				return nil, store.Wrap("load", s.t.entity, row.ID, fmt.Errorf("failed to decode stage_times: %w", err))
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("load", s.t.entity, 0, mapError(err))
	}
	return out, nil
}

// Insert adds a ticket row.
func (s *TicketStore) Insert(ctx context.Context, r store.TicketRecord) (int64, error) {
	stages, err := encodeStages(r.StageTimes)
	if err != nil {
		return 0, store.Wrap("insert", s.t.entity, 0, err)
	}
	return s.t.insert(ctx, `
		INSERT INTO it_tickets (ticket_id, priority, status, category, subject, description,
			created_date, resolved_date, assigned_to, total_resolution_time_hours, stage_times)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, r.TicketID, r.Priority, r.Status, r.Category, r.Subject, nullIfEmpty(r.Description),
		r.CreatedDate, r.ResolvedDate, nullIfEmpty(r.AssignedTo), r.TotalResolutionHours, stages)
}

// Update patches a ticket row. A stage_times value is re-encoded as JSON.
func (s *TicketStore) Update(ctx context.Context, id int64, fields store.Fields) error {
	if v, ok := fields[store.ColStageTimes]; ok {
		st, ok := v.([]store.StageTimeRecord)
		if !ok {
			return store.Wrap("update", s.t.entity, id, fmt.Errorf("column %s: cannot assign %T", store.ColStageTimes, v))
		}
		encoded, err := encodeStages(st)
		if err != nil {
			return store.Wrap("update", s.t.entity, id, err)
		}
		patched := make(store.Fields, len(fields))
		for k, val := range fields {
			patched[k] = val
		}
		patched[store.ColStageTimes] = encoded
		fields = patched
	}
	return s.t.update(ctx, id, fields)
}

// Delete removes a ticket row.
func (s *TicketStore) Delete(ctx context.Context, id int64) error {
	return s.t.delete(ctx, id)
}

func encodeStages(st []store.StageTimeRecord) ([]byte, error) {
	if st == nil {
		st = []store.StageTimeRecord{}
	}
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stage_times: %w", err)
	}
	return b, nil
}
