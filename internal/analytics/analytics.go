// Package analytics computes dashboard metrics, trends and bottlenecks from repository snapshots.
// Services never mutate the entities they read.
package analytics

import (
	"time"

	"mdip/internal/domain"
)

// IncidentSource is the read side of the incident repository.
type IncidentSource interface {
	All() []domain.Incident
}

// DatasetSource is the read side of the dataset repository.
type DatasetSource interface {
	All() []domain.Dataset
	Stale(thresholdDays int) []domain.Dataset
	RarelyAccessed(threshold int) []domain.Dataset
	ArchiveCandidates(n int) []domain.Dataset
	MostDependent(n int) []domain.Dataset
	TotalStorage() float64
	TotalCost() float64
}

// TicketSource is the read side of the ticket repository.
type TicketSource interface {
	All() []domain.Ticket
}

// Option configures a service.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock that anchors time windows.
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

// meanOf returns the arithmetic mean of values, 0 for an empty slice.
func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// groupedValues collects float values per key, remembering the order keys first appeared in.
type groupedValues struct {
	order  []string
	values map[string][]float64
}

func newGroupedValues() *groupedValues {
	return &groupedValues{values: make(map[string][]float64)}
}

func (g *groupedValues) add(key string, v float64) {
	if _, ok := g.values[key]; !ok {
		g.order = append(g.order, key)
	}
	g.values[key] = append(g.values[key], v)
}
