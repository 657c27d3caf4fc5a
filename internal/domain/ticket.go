package domain

import "time"

// StageTime is the number of hours a ticket spent in one process stage.
type StageTime struct {
	Stage string  `json:"stage"`
	Hours float64 `json:"hours"`
}

// StageTimes keeps per-stage hours in the order the stages were recorded.
// Stage names are unique.
type StageTimes []StageTime

// Get returns the hours recorded for stage.
func (st StageTimes) Get(stage string) (float64, bool) {
	for _, s := range st {
		if s.Stage == stage {
			return s.Hours, true
		}
	}
	return 0, false
}

// Total sums the hours across every stage.
func (st StageTimes) Total() float64 {
	var total float64
	for _, s := range st {
		total += s.Hours
	}
	return total
}

// Clone returns an independent copy.
func (st StageTimes) Clone() StageTimes {
	if st == nil {
		return nil
	}
	out := make(StageTimes, len(st))
	copy(out, st)
	return out
}

// Ticket is an IT service desk ticket.
//
// The sum of StageTimes is not required to match TotalResolutionTimeHours: the two
// are recorded independently and analytics use each on its own.
type Ticket struct {
	ID                       int64      `json:"id,omitempty"`
	TicketID                 string     `json:"ticket_id"`
	AssignedStaff            string     `json:"assigned_staff"`
	Priority                 Priority   `json:"priority"`
	CreatedDate              time.Time  `json:"created_date"`
	Status                   string     `json:"status"`
	TotalResolutionTimeHours float64    `json:"total_resolution_time_hours"`
	ResolutionDate           *time.Time `json:"resolution_date,omitempty"`
	StageTimes               StageTimes `json:"stage_times,omitempty"`
}

// NewTicket validates t and returns it.
func NewTicket(t Ticket) (Ticket, error) {
	if err := t.Validate(); err != nil {
		return Ticket{}, err
	}
	return t, nil
}

// Validate checks the ticket invariants.
func (t Ticket) Validate() error {
	if t.TicketID == "" {
		return invalid("ticket", "ticket_id", nil, "cannot be empty")
	}
	if !t.Priority.Valid() {
		return invalid("ticket", "priority", t.Priority, "is not one of Critical, High, Medium, Low")
	}
	if t.TotalResolutionTimeHours < 0 {
		return invalid("ticket", "total_resolution_time_hours", t.TotalResolutionTimeHours, "cannot be negative")
	}
	seen := make(map[string]bool, len(t.StageTimes))
	for _, s := range t.StageTimes {
		if s.Stage == "" {
			return invalid("ticket", "stage_times", nil, "contains an unnamed stage")
		}
		if seen[s.Stage] {
			return invalid("ticket", "stage_times", s.Stage, "is recorded more than once")
		}
		if s.Hours < 0 {
			return invalid("ticket", "stage_times", s.Stage, "has negative hours")
		}
		seen[s.Stage] = true
	}
	return nil
}

// IsResolved reports whether the ticket is closed.
func (t Ticket) IsResolved() bool {
	return t.Status == TicketResolved
}

// IsOpen reports whether the ticket still needs work.
func (t Ticket) IsOpen() bool {
	return t.Status != TicketResolved
}

// TimeInStage returns the hours spent in stage, 0 if the stage was never visited.
func (t Ticket) TimeInStage(stage string) float64 {
	h, _ := t.StageTimes.Get(stage)
	return h
}

// BottleneckStage returns the stage this ticket spent longest in.
// Ties go to the stage recorded first.
func (t Ticket) BottleneckStage() (string, bool) {
	if len(t.StageTimes) == 0 {
		return "", false
	}
	best := t.StageTimes[0]
	for _, s := range t.StageTimes[1:] {
		if s.Hours > best.Hours {
			best = s
		}
	}
	return best.Stage, true
}

// Clone returns a copy that shares no memory with the receiver.
func (t Ticket) Clone() Ticket {
	t.StageTimes = t.StageTimes.Clone()
	if t.ResolutionDate != nil {
		v := *t.ResolutionDate
		t.ResolutionDate = &v
	}
	return t
}
