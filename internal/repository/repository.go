// Package repository holds point-in-time snapshots of each entity type and relays
// mutations to the backing store.
package repository

import (
	"fmt"
	"sort"
	"time"
)

// Option configures a repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used to derive time-relative fields such as days since access.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DecodeError describes a store row that could not be turned into an entity.
type DecodeError struct {
	Entity string
	ID     int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s %d: %v", e.Entity, e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// topN returns the first n items of a stable descending sort by key.
// items is not modified.
func topN[T any](items []T, n int, key func(T) float64) []T {
	if n <= 0 || len(items) == 0 {
		return []T{}
	}
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// filter returns clones of every item matching keep.
func filter[T any](items []T, keep func(T) bool, clone func(T) T) []T {
	out := []T{}
	for _, it := range items {
		if keep(it) {
			out = append(out, clone(it))
		}
	}
	return out
}
