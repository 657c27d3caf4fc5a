package repository

import (
	"context"
	"fmt"
	"sync"

	"mdip/internal/domain"
	"mdip/internal/store"

	"github.com/rs/zerolog/log"
)

// IncidentPatch lists the incident fields an update may change. Nil fields are left alone.
type IncidentPatch struct {
	ThreatCategory      *string
	Severity            *domain.Severity
	Status              *domain.IncidentStatus
	ResolutionTimeHours *float64
}

func (p IncidentPatch) empty() bool {
	return p.ThreatCategory == nil && p.Severity == nil && p.Status == nil && p.ResolutionTimeHours == nil
}

// IncidentRepository holds a snapshot of security incidents.
type IncidentRepository struct {
	mu        sync.RWMutex
	store     store.Store[store.IncidentRecord]
	incidents []domain.Incident
	failures  []DecodeError
}

// NewIncidentRepository creates an empty repository over s. Call Load to fill it.
func NewIncidentRepository(s store.Store[store.IncidentRecord]) *IncidentRepository {
	return &IncidentRepository{store: s}
}

// Load replaces the snapshot with the store's current contents.
func (r *IncidentRepository) Load(ctx context.Context) error {
	rows, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load incidents: %w", err)
	}
	incidents, failures := decodeAll(store.EntityIncident, rows, DecodeIncident)

	r.mu.Lock()
	r.incidents = incidents
	r.failures = failures
	r.mu.Unlock()

	log.Debug().Int("loaded", len(incidents)).Int("skipped", len(failures)).Msg("Loaded incidents")
	return nil
}

// DecodeErrors returns the rows skipped by the last Load.
func (r *IncidentRepository) DecodeErrors() []DecodeError {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]DecodeError(nil), r.failures...)
}

// All returns a copy of every incident in snapshot order.
func (r *IncidentRepository) All() []domain.Incident {
	return r.where(func(domain.Incident) bool { return true })
}

// Get returns the incident with the given id.
func (r *IncidentRepository) Get(id int64) (domain.Incident, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := r.indexOf(id); idx >= 0 {
		return r.incidents[idx].Clone(), true
	}
	return domain.Incident{}, false
}

// ByCategory returns incidents of one threat category.
func (r *IncidentRepository) ByCategory(category string) []domain.Incident {
	return r.where(func(i domain.Incident) bool { return i.ThreatCategory == category })
}

// ByStatus returns incidents in one status.
func (r *IncidentRepository) ByStatus(status domain.IncidentStatus) []domain.Incident {
	return r.where(func(i domain.Incident) bool { return i.Status == status })
}

// Resolved returns every resolved incident.
func (r *IncidentRepository) Resolved() []domain.Incident {
	return r.where(domain.Incident.IsResolved)
}

// UnresolvedHighSeverity returns unresolved incidents rated High.
func (r *IncidentRepository) UnresolvedHighSeverity() []domain.Incident {
	return r.where(func(i domain.Incident) bool { return i.IsUnresolved() && i.IsHighSeverity() })
}

// Count returns the snapshot size.
func (r *IncidentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.incidents)
}

// Add validates and persists inc, then appends it to the snapshot.
func (r *IncidentRepository) Add(ctx context.Context, inc domain.Incident) (domain.Incident, error) {
	if err := inc.Validate(); err != nil {
		return domain.Incident{}, err
	}
	id, err := r.store.Insert(ctx, EncodeIncident(inc))
	if err != nil {
		return domain.Incident{}, err
	}
	inc = inc.Clone()
	inc.ID = id

	r.mu.Lock()
	r.incidents = append(r.incidents, inc)
	r.mu.Unlock()
	return inc.Clone(), nil
}

// Remove deletes the incident from the store and the snapshot.
func (r *IncidentRepository) Remove(ctx context.Context, id int64) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexOf(id); idx >= 0 {
		r.incidents = append(r.incidents[:idx], r.incidents[idx+1:]...)
	}
	return nil
}

// Update applies patch to the incident with the given id and returns the updated incident.
// The patched incident must still satisfy every invariant.
func (r *IncidentRepository) Update(ctx context.Context, id int64, patch IncidentPatch) (domain.Incident, error) {
	if patch.empty() {
		return domain.Incident{}, fmt.Errorf("incident %d: nothing to update", id)
	}
	current, ok := r.Get(id)
	if !ok {
		return domain.Incident{}, store.Wrap("update", store.EntityIncident, id, store.ErrNotFound)
	}

	// 1. Apply the patch to a copy and re-validate
	fields := store.Fields{}
	if patch.ThreatCategory != nil {
		current.ThreatCategory = *patch.ThreatCategory
		fields[store.ColIncidentType] = *patch.ThreatCategory
	}
	if patch.Severity != nil {
		current.Severity = *patch.Severity
		fields[store.ColSeverity] = string(*patch.Severity)
	}
	if patch.Status != nil {
		current.Status = *patch.Status
		fields[store.ColStatus] = string(*patch.Status)
	}
	if patch.ResolutionTimeHours != nil {
		current.ResolutionTimeHours = domain.Hours(*patch.ResolutionTimeHours)
		fields[store.ColResolutionTimeHours] = domain.Hours(*patch.ResolutionTimeHours)
	}
	if err := current.Validate(); err != nil {
		return domain.Incident{}, err
	}

	// 2. Persist, then reflect in the snapshot
	if err := r.store.Update(ctx, id, fields); err != nil {
		return domain.Incident{}, err
	}
	r.mu.Lock()
	if idx := r.indexOf(id); idx >= 0 {
		r.incidents[idx] = current.Clone()
	}
	r.mu.Unlock()

	log.Info().Int64("id", id).Str("status", string(current.Status)).Msg("Updated incident")
	return current, nil
}

func (r *IncidentRepository) where(keep func(domain.Incident) bool) []domain.Incident {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.incidents, keep, domain.Incident.Clone)
}

func (r *IncidentRepository) indexOf(id int64) int {
	for i, inc := range r.incidents {
		if inc.ID == id {
			return i
		}
	}
	return -1
}
