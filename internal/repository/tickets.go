package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mdip/internal/domain"
	"mdip/internal/store"

	"github.com/rs/zerolog/log"
)

// TicketPatch lists the ticket fields an update may change. Nil fields are left alone.
type TicketPatch struct {
	AssignedStaff            *string
	Priority                 *domain.Priority
	Status                   *string
	TotalResolutionTimeHours *float64
	ResolutionDate           *time.Time
	StageTimes               *domain.StageTimes
}

// TicketRepository holds a snapshot of IT tickets, keyed by ticket id.
type TicketRepository struct {
	mu       sync.RWMutex
	store    store.Store[store.TicketRecord]
	tickets  []domain.Ticket
	failures []DecodeError
}

// NewTicketRepository creates an empty repository over s. Call Load to fill it.
func NewTicketRepository(s store.Store[store.TicketRecord]) *TicketRepository {
	return &TicketRepository{store: s}
}

// Load replaces the snapshot with the store's current contents.
func (r *TicketRepository) Load(ctx context.Context) error {
	rows, err := r.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tickets: %w", err)
	}
	tickets, failures := decodeAll(store.EntityTicket, rows, DecodeTicket)

	r.mu.Lock()
	r.tickets = tickets
	r.failures = failures
	r.mu.Unlock()

	log.Debug().Int("loaded", len(tickets)).Int("skipped", len(failures)).Msg("Loaded tickets")
	return nil
}

// DecodeErrors returns the rows skipped by the last Load.
func (r *TicketRepository) DecodeErrors() []DecodeError {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]DecodeError(nil), r.failures...)
}

// All returns a copy of every ticket in snapshot order.
func (r *TicketRepository) All() []domain.Ticket {
	return r.where(func(domain.Ticket) bool { return true })
}

// Get returns the ticket with the given ticket id.
func (r *TicketRepository) Get(ticketID string) (domain.Ticket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := r.indexOf(ticketID); idx >= 0 {
		return r.tickets[idx].Clone(), true
	}
	return domain.Ticket{}, false
}

// ByStaff returns tickets assigned to staff.
func (r *TicketRepository) ByStaff(staff string) []domain.Ticket {
	return r.where(func(t domain.Ticket) bool { return t.AssignedStaff == staff })
}

// ByStatus returns tickets in status.
func (r *TicketRepository) ByStatus(status string) []domain.Ticket {
	return r.where(func(t domain.Ticket) bool { return t.Status == status })
}

// ByPriority returns tickets of one priority.
func (r *TicketRepository) ByPriority(priority domain.Priority) []domain.Ticket {
	return r.where(func(t domain.Ticket) bool { return t.Priority == priority })
}

// Resolved returns every resolved ticket.
func (r *TicketRepository) Resolved() []domain.Ticket {
	return r.where(domain.Ticket.IsResolved)
}

// Open returns every ticket that is not resolved.
func (r *TicketRepository) Open() []domain.Ticket {
	return r.where(domain.Ticket.IsOpen)
}

// WaitingForUser returns tickets blocked on the requester.
func (r *TicketRepository) WaitingForUser() []domain.Ticket {
	return r.ByStatus(domain.TicketWaitingForUser)
}

// Count returns the snapshot size.
func (r *TicketRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets)
}

// Add validates and persists t, then appends it to the snapshot.
func (r *TicketRepository) Add(ctx context.Context, t domain.Ticket) (domain.Ticket, error) {
	if err := t.Validate(); err != nil {
		return domain.Ticket{}, err
	}
	id, err := r.store.Insert(ctx, EncodeTicket(t))
	if err != nil {
		return domain.Ticket{}, err
	}
	t = t.Clone()
	t.ID = id

	r.mu.Lock()
	r.tickets = append(r.tickets, t)
	r.mu.Unlock()
	return t.Clone(), nil
}

// Remove deletes the ticket from the store and the snapshot.
func (r *TicketRepository) Remove(ctx context.Context, ticketID string) error {
	current, ok := r.Get(ticketID)
	if !ok {
		return store.Wrap("delete", store.EntityTicket, 0, fmt.Errorf("%w: %s", store.ErrNotFound, ticketID))
	}
	if err := r.store.Delete(ctx, current.ID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexOf(ticketID); idx >= 0 {
		r.tickets = append(r.tickets[:idx], r.tickets[idx+1:]...)
	}
	return nil
}

// Update applies patch to the ticket and returns the updated ticket.
func (r *TicketRepository) Update(ctx context.Context, ticketID string, patch TicketPatch) (domain.Ticket, error) {
	current, ok := r.Get(ticketID)
	if !ok {
		return domain.Ticket{}, store.Wrap("update", store.EntityTicket, 0, fmt.Errorf("%w: %s", store.ErrNotFound, ticketID))
	}

	fields := store.Fields{}
	if patch.AssignedStaff != nil {
		current.AssignedStaff = *patch.AssignedStaff
		fields[store.ColAssignedTo] = *patch.AssignedStaff
	}
	if patch.Priority != nil {
		current.Priority = *patch.Priority
		fields[store.ColPriority] = string(*patch.Priority)
	}
	if patch.Status != nil {
		current.Status = *patch.Status
		fields[store.ColStatus] = *patch.Status
	}
	if patch.TotalResolutionTimeHours != nil {
		current.TotalResolutionTimeHours = *patch.TotalResolutionTimeHours
		fields[store.ColTotalResolutionHours] = domain.Hours(*patch.TotalResolutionTimeHours)
	}
	if patch.ResolutionDate != nil {
		v := *patch.ResolutionDate
		current.ResolutionDate = &v
		fields[store.ColResolvedDate] = &v
	}
	if patch.StageTimes != nil {
		current.StageTimes = patch.StageTimes.Clone()
		fields[store.ColStageTimes] = encodeStages(current.StageTimes)
	}
	if len(fields) == 0 {
		return domain.Ticket{}, fmt.Errorf("ticket %s: nothing to update", ticketID)
	}
	if err := current.Validate(); err != nil {
		return domain.Ticket{}, err
	}

	if err := r.store.Update(ctx, current.ID, fields); err != nil {
		return domain.Ticket{}, err
	}
	r.mu.Lock()
	if idx := r.indexOf(ticketID); idx >= 0 {
		r.tickets[idx] = current.Clone()
	}
	r.mu.Unlock()
	return current, nil
}

func (r *TicketRepository) where(keep func(domain.Ticket) bool) []domain.Ticket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return filter(r.tickets, keep, domain.Ticket.Clone)
}

func (r *TicketRepository) indexOf(ticketID string) int {
	for i, t := range r.tickets {
		if t.TicketID == ticketID {
			return i
		}
	}
	return -1
}
