package analytics

import (
	"mdip/internal/domain"
)

// TicketMetrics are the headline numbers of the IT operations tab.
type TicketMetrics struct {
	TotalTickets       int     `json:"total_tickets"`
	OpenTickets        int     `json:"open_tickets"`
	AvgResolutionHours float64 `json:"avg_resolution_time"`
	WaitingForUser     int     `json:"tickets_waiting_user"`
}

// StaffAverage is the mean resolution time of one staff member's resolved tickets.
type StaffAverage struct {
	Staff    string  `json:"staff"`
	AvgHours float64 `json:"avg_hours"`
	Resolved int     `json:"resolved"`
}

// PerformanceGap compares the slowest staff member with the team average.
type PerformanceGap struct {
	Staff         string  `json:"staff"`
	AvgHours      float64 `json:"avg_time"`
	TeamAvg       float64 `json:"team_avg"`
	GapHours      float64 `json:"gap_hours"`
	GapPercentage float64 `json:"gap_percentage"`
	GapDefined    bool    `json:"gap_defined"` // false when the team average is 0
}

// StaffPerformance ranks staff by resolution time.
type StaffPerformance struct {
	Staff       []StaffAverage  `json:"staff_performance"`
	TeamAverage float64         `json:"team_average"` // mean of the per-staff means
	Slowest     *PerformanceGap `json:"slowest_staff"`
}

// StageAverage aggregates the hours tickets spent in one process stage.
type StageAverage struct {
	Stage      string  `json:"stage"`
	AvgHours   float64 `json:"avg_time"`
	TotalHours float64 `json:"total_time"`
	Tickets    int     `json:"tickets"` // tickets with a nonzero entry for the stage
}

// ProcessBottleneck names the stage where tickets wait longest on average.
type ProcessBottleneck struct {
	Stage      string         `json:"stage"`
	AvgHours   float64        `json:"avg_time"`
	TotalHours float64        `json:"total_time"`
	Percentage float64        `json:"percentage"`
	AllStages  []StageAverage `json:"all_stages"`
}

// PriorityCount is the number of tickets of one priority.
type PriorityCount struct {
	Priority domain.Priority `json:"priority"`
	Count    int             `json:"count"`
}

// TicketService computes IT service desk analytics.
type TicketService struct {
	source TicketSource
}

// NewTicketService creates a service over source.
func NewTicketService(source TicketSource) *TicketService {
	return &TicketService{source: source}
}

// Metrics returns the headline ticket numbers.
func (s *TicketService) Metrics() TicketMetrics {
	var m TicketMetrics
	var resolved []float64
	for _, t := range s.source.All() {
		m.TotalTickets++
		if t.IsOpen() {
			m.OpenTickets++
		} else {
			resolved = append(resolved, t.TotalResolutionTimeHours)
		}
		if t.Status == domain.TicketWaitingForUser {
			m.WaitingForUser++
		}
	}
	m.AvgResolutionHours = meanOf(resolved)
	return m
}

// StaffPerformance averages resolution time per staff member over resolved tickets and reports
// how far the slowest member sits above the mean of the per-staff means. Ties for slowest go to
// the member seen first. Slowest is nil when nothing has been resolved.
func (s *TicketService) StaffPerformance() StaffPerformance {
	groups := newGroupedValues()
	for _, t := range s.source.All() {
		if t.IsResolved() {
			groups.add(t.AssignedStaff, t.TotalResolutionTimeHours)
		}
	}

	res := StaffPerformance{Staff: make([]StaffAverage, 0, len(groups.order))}
	if len(groups.order) == 0 {
		return res
	}

	var slowest StaffAverage
	means := make([]float64, 0, len(groups.order))
	for i, staff := range groups.order {
		values := groups.values[staff]
		avg := StaffAverage{Staff: staff, AvgHours: meanOf(values), Resolved: len(values)}
		res.Staff = append(res.Staff, avg)
		means = append(means, avg.AvgHours)
		if i == 0 || avg.AvgHours > slowest.AvgHours {
			slowest = avg
		}
	}
	res.TeamAverage = meanOf(means)

	gap := &PerformanceGap{
		Staff:    slowest.Staff,
		AvgHours: slowest.AvgHours,
		TeamAvg:  res.TeamAverage,
		GapHours: slowest.AvgHours - res.TeamAverage,
	}
	if res.TeamAverage > 0 {
		gap.GapPercentage = gap.GapHours / res.TeamAverage * 100
		gap.GapDefined = true
	}
	res.Slowest = gap
	return res
}

// ProcessBottleneck totals the hours every ticket spent per stage and returns the stage with
// the highest mean, where the mean only counts tickets with a nonzero entry for that stage.
// The boolean is false when no ticket records any stage time.
func (s *TicketService) ProcessBottleneck() (ProcessBottleneck, bool) {
	var order []string
	stages := make(map[string]*StageAverage)
	var grandTotal float64

	for _, t := range s.source.All() {
		for _, st := range t.StageTimes {
			agg, ok := stages[st.Stage]
			if !ok {
				agg = &StageAverage{Stage: st.Stage}
				stages[st.Stage] = agg
				order = append(order, st.Stage)
			}
			agg.TotalHours += st.Hours
			grandTotal += st.Hours
			if st.Hours != 0 {
				agg.Tickets++
			}
		}
	}
	if len(order) == 0 {
		return ProcessBottleneck{}, false
	}

	res := ProcessBottleneck{AllStages: make([]StageAverage, 0, len(order))}
	for i, name := range order {
		agg := stages[name]
		if agg.Tickets > 0 {
			agg.AvgHours = agg.TotalHours / float64(agg.Tickets)
		}
		res.AllStages = append(res.AllStages, *agg)
		if i == 0 || agg.AvgHours > res.AvgHours {
			res.Stage = agg.Stage
			res.AvgHours = agg.AvgHours
			res.TotalHours = agg.TotalHours
		}
	}
	if grandTotal > 0 {
		res.Percentage = res.TotalHours / grandTotal * 100
	}
	return res, true
}

// PriorityBreakdown counts tickets per priority from Critical to Low, including empty priorities.
func (s *TicketService) PriorityBreakdown() []PriorityCount {
	counts := make(map[domain.Priority]int)
	for _, t := range s.source.All() {
		counts[t.Priority]++
	}
	out := make([]PriorityCount, len(domain.Priorities))
	for i, p := range domain.Priorities {
		out[i] = PriorityCount{Priority: p, Count: counts[p]}
	}
	return out
}
