// Package memory provides an in-process store.Store used by tests and the demo mode.
package memory

import (
	"context"
	"sync"

	"mdip/internal/store"

	"github.com/rs/zerolog/log"
)

// ApplyFunc applies a column patch to a record.
type ApplyFunc[R any] func(*R, store.Fields) error

// Store keeps records in insertion order behind a mutex.
type Store[R any] struct {
	mu     sync.RWMutex
	entity string
	apply  ApplyFunc[R]
	nextID int64
	rows   []store.Row[R]
	// unique returns the key a record must not share with another record; nil disables the check.
	unique func(R) string
}

// New creates an empty store for one entity type.
func New[R any](entity string, apply ApplyFunc[R], unique func(R) string) *Store[R] {
	return &Store[R]{
		entity: entity,
		apply:  apply,
		nextID: 1,
		unique: unique,
	}
}

// NewIncidentStore returns an empty incident store.
func NewIncidentStore() *Store[store.IncidentRecord] {
	return New(store.EntityIncident, store.ApplyIncident, nil)
}

// NewDatasetStore returns an empty dataset store keyed by dataset name.
func NewDatasetStore() *Store[store.DatasetRecord] {
	return New(store.EntityDataset, store.ApplyDataset, func(r store.DatasetRecord) string { return r.DatasetName })
}

// NewTicketStore returns an empty ticket store keyed by ticket id.
func NewTicketStore() *Store[store.TicketRecord] {
	return New(store.EntityTicket, store.ApplyTicket, func(r store.TicketRecord) string { return r.TicketID })
}

// NewUserStore returns an empty user store keyed by username.
func NewUserStore() *Store[store.UserRecord] {
	return New(store.EntityUser, store.ApplyUser, func(r store.UserRecord) string { return r.Username })
}

// LoadAll returns a copy of every row.
func (s *Store[R]) LoadAll(ctx context.Context) ([]store.Row[R], error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("load", s.entity, 0, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Row[R], len(s.rows))
	copy(out, s.rows)
	return out, nil
}

// Insert appends a record and returns its new id.
func (s *Store[R]) Insert(ctx context.Context, record R) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, store.Wrap("insert", s.entity, 0, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflicts(record, 0) {
		return 0, store.Wrap("insert", s.entity, 0, store.ErrConflict)
	}

	id := s.nextID
	s.nextID++
	s.rows = append(s.rows, store.Row[R]{ID: id, Record: record})
	log.Debug().Str("entity", s.entity).Int64("id", id).Msg("Inserted record")
	return id, nil
}

// Update patches the record with the given id.
func (s *Store[R]) Update(ctx context.Context, id int64, fields store.Fields) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap("update", s.entity, id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return store.Wrap("update", s.entity, id, store.ErrNotFound)
	}

	updated := s.rows[idx].Record
	if err := s.apply(&updated, fields); err != nil {
		return store.Wrap("update", s.entity, id, err)
	}
	if s.conflicts(updated, id) {
		return store.Wrap("update", s.entity, id, store.ErrConflict)
	}
	s.rows[idx].Record = updated
	return nil
}

// Delete removes the record with the given id.
func (s *Store[R]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap("delete", s.entity, id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return store.Wrap("delete", s.entity, id, store.ErrNotFound)
	}
	s.rows = append(s.rows[:idx], s.rows[idx+1:]...)
	return nil
}

// Len returns the number of stored records.
func (s *Store[R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *Store[R]) indexOf(id int64) int {
	for i, row := range s.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store[R]) conflicts(record R, selfID int64) bool {
	if s.unique == nil {
		return false
	}
	key := s.unique(record)
	for _, row := range s.rows {
		if row.ID != selfID && s.unique(row.Record) == key {
			return true
		}
	}
	return false
}
