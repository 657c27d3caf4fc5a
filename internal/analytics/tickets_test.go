package analytics

import (
	"testing"

	"mdip/internal/domain"
)

type ticketSlice []domain.Ticket

func (s ticketSlice) All() []domain.Ticket { return s }

func ticket(staff, status string, hours float64, stages ...domain.StageTime) domain.Ticket {
	return domain.Ticket{
		TicketID:                 staff + status,
		AssignedStaff:            staff,
		Priority:                 domain.PriorityMedium,
		Status:                   status,
		TotalResolutionTimeHours: hours,
		StageTimes:               stages,
	}
}

func TestTicketService_StaffPerformance(t *testing.T) {
	svc := NewTicketService(ticketSlice{
		ticket("A", domain.TicketResolved, 10),
		ticket("A", domain.TicketResolved, 20),
		ticket("B", domain.TicketResolved, 5),
		ticket("B", "In Progress", 100),
	})

	res := svc.StaffPerformance()
	if len(res.Staff) != 2 || res.Staff[0].AvgHours != 15 || res.Staff[1].AvgHours != 5 {
		t.Fatalf("Expected A=15 and B=5, got %+v", res.Staff)
	}
	if res.TeamAverage != 10 {
		t.Errorf("Expected team average 10, got %v", res.TeamAverage)
	}
	gap := res.Slowest
	if gap == nil || gap.Staff != "A" {
		t.Fatalf("Expected A to be slowest, got %+v", gap)
	}
	if gap.GapHours != 5 || gap.GapPercentage != 50 || !gap.GapDefined {
		t.Errorf("Expected a 5h (50%%) gap, got %+v", gap)
	}
}

func TestTicketService_StaffPerformanceEdges(t *testing.T) {
	if res := NewTicketService(ticketSlice{ticket("A", "New", 3)}).StaffPerformance(); res.Slowest != nil {
		t.Errorf("Expected no slowest staff without resolved tickets, got %+v", res.Slowest)
	}

	res := NewTicketService(ticketSlice{
		ticket("A", domain.TicketResolved, 0),
		ticket("B", domain.TicketResolved, 0),
	}).StaffPerformance()
	if res.Slowest == nil || res.Slowest.Staff != "A" {
		t.Fatalf("Expected first seen staff to win the tie, got %+v", res.Slowest)
	}
	if res.Slowest.GapDefined || res.Slowest.GapPercentage != 0 {
		t.Errorf("Expected undefined gap for a zero team average, got %+v", res.Slowest)
	}
}

func TestTicketService_ProcessBottleneck(t *testing.T) {
	if _, ok := NewTicketService(ticketSlice{ticket("A", "New", 0)}).ProcessBottleneck(); ok {
		t.Error("Expected no data without stage times")
	}

	svc := NewTicketService(ticketSlice{
		ticket("A", domain.TicketResolved, 10,
			domain.StageTime{Stage: "New", Hours: 2},
			domain.StageTime{Stage: "Waiting for User", Hours: 8}),
		ticket("B", domain.TicketResolved, 6,
			domain.StageTime{Stage: "New", Hours: 4},
			domain.StageTime{Stage: "Waiting for User", Hours: 0}),
		ticket("C", "New", 2,
			domain.StageTime{Stage: "New", Hours: 6}),
	})

	res, ok := svc.ProcessBottleneck()
	if !ok {
		t.Fatal("Expected a bottleneck")
	}
	// New: 12h over 3 tickets = 4. Waiting: 8h over 1 nonzero ticket = 8.
	if res.Stage != "Waiting for User" || res.AvgHours != 8 {
		t.Errorf("Expected Waiting for User at 8h, got %s at %v", res.Stage, res.AvgHours)
	}
	if res.Percentage != 40 {
		t.Errorf("Expected 40%% of 20h, got %v", res.Percentage)
	}
	if len(res.AllStages) != 2 || res.AllStages[0].Stage != "New" || res.AllStages[0].AvgHours != 4 {
		t.Errorf("Unexpected stages: %+v", res.AllStages)
	}
}

func TestTicketService_MetricsAndPriorities(t *testing.T) {
	critical := ticket("A", "New", 0)
	critical.Priority = domain.PriorityCritical
	svc := NewTicketService(ticketSlice{
		ticket("A", domain.TicketResolved, 4),
		ticket("B", domain.TicketResolved, 8),
		ticket("C", domain.TicketWaitingForUser, 0),
		critical,
	})

	m := svc.Metrics()
	want := TicketMetrics{TotalTickets: 4, OpenTickets: 2, AvgResolutionHours: 6, WaitingForUser: 1}
	if m != want {
		t.Errorf("Expected %+v, got %+v", want, m)
	}

	counts := svc.PriorityBreakdown()
	if len(counts) != 4 || counts[0].Priority != domain.PriorityCritical || counts[0].Count != 1 ||
		counts[2].Count != 3 || counts[3].Count != 0 {
		t.Errorf("Unexpected breakdown: %+v", counts)
	}
}
