package postgres

import (
	"context"

	"mdip/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserStore persists accounts in users.
type UserStore struct {
	t table
}

// NewUserStore creates a user store on pool.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{t: table{
		pool:     pool,
		name:     "users",
		entity:   store.EntityUser,
		writable: columns(store.ColPasswordHash, store.ColRole),
	}}
}

// LoadAll returns every user row ordered by id.
func (s *UserStore) LoadAll(ctx context.Context) ([]store.Row[store.UserRecord], error) {
	rows, err := s.t.pool.Query(ctx, `SELECT id, username, password_hash, role FROM users ORDER BY id`)
	if err != nil {
		return nil, store.Wrap("load", s.t.entity, 0, mapError(err))
	}
	defer rows.Close()

	var out []store.Row[store.UserRecord]
	for rows.Next() {
		var row store.Row[store.UserRecord]
		if err := rows.Scan(&row.ID, &row.Record.Username, &row.Record.PasswordHash, &row.Record.Role); err != nil {
			return nil, store.Wrap("load", s.t.entity, 0, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("load", s.t.entity, 0, mapError(err))
	}
	return out, nil
}

// Insert adds a user row. A duplicate username yields store.ErrConflict.
func (s *UserStore) Insert(ctx context.Context, r store.UserRecord) (int64, error) {
	return s.t.insert(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`, r.Username, r.PasswordHash, r.Role)
}

// Update patches a user row.
func (s *UserStore) Update(ctx context.Context, id int64, fields store.Fields) error {
	return s.t.update(ctx, id, fields)
}

// Delete removes a user row.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	return s.t.delete(ctx, id)
}

var (
	_ store.Store[store.IncidentRecord] = (*IncidentStore)(nil)
	_ store.Store[store.DatasetRecord]  = (*DatasetStore)(nil)
	_ store.Store[store.TicketRecord]   = (*TicketStore)(nil)
	_ store.Store[store.UserRecord]     = (*UserStore)(nil)
)
