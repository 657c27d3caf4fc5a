// Package store defines the persistence contract the repositories are built on.
package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an update or delete targets an id the store does not hold.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a unique key.
	ErrConflict = errors.New("record conflicts with an existing key")
)

// Row pairs a raw record with the identifier the store generated for it.
type Row[R any] struct {
	ID     int64
	Record R
}

// Fields is a column-name keyed patch for Update.
type Fields map[string]interface{}

// Store is per-entity CRUD over raw records.
type Store[R any] interface {
	// LoadAll returns every record in insertion order.
	LoadAll(ctx context.Context) ([]Row[R], error)
	// Insert persists a record and returns its generated identifier.
	Insert(ctx context.Context, record R) (int64, error)
	// Update applies fields to the record with the given id.
	Update(ctx context.Context, id int64, fields Fields) error
	// Delete removes the record with the given id.
	Delete(ctx context.Context, id int64) error
}

// Error wraps a failed store operation.
type Error struct {
	Op     string
	Entity string
	ID     int64
	Err    error
}

func (e *Error) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("store: %s %s %d: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap builds an *Error unless err is nil.
func Wrap(op, entity string, id int64, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Entity: entity, ID: id, Err: err}
}
