package generator

import (
	"context"
	"testing"
	"time"

	"mdip/internal/analytics"
	"mdip/internal/repository"
	"mdip/internal/store/memory"
)

var now = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

func TestGenerator_Deterministic(t *testing.T) {
	a := New(DefaultSeed, now).Tickets(20)
	b := New(DefaultSeed, now).Tickets(20)
	for i := range a {
		if a[i].AssignedStaff != b[i].AssignedStaff || a[i].TotalResolutionTimeHours != b[i].TotalResolutionTimeHours {
			t.Fatalf("Expected identical tickets at %d, got %+v and %+v", i, a[i], b[i])
		}
	}
}

func TestGenerator_EntitiesAreValid(t *testing.T) {
	g := New(7, now)

	incidents := g.Incidents(30)
	if len(incidents) == 0 {
		t.Fatal("Expected incidents")
	}
	for _, inc := range incidents {
		if err := inc.Validate(); err != nil {
			t.Fatalf("Invalid incident %+v: %v", inc, err)
		}
		if inc.Date.After(now) {
			t.Fatalf("Expected no future incidents, got %v", inc.Date)
		}
	}

	datasets := g.Datasets()
	if len(datasets) != 12 {
		t.Errorf("Expected 12 datasets, got %d", len(datasets))
	}
	for _, d := range datasets {
		if err := d.Validate(); err != nil {
			t.Fatalf("Invalid dataset %+v: %v", d, err)
		}
		if d.ArchiveScore == nil {
			t.Errorf("Expected %s to carry an archive score", d.Name)
		}
	}

	tickets := g.Tickets(150)
	if len(tickets) != 150 || tickets[0].TicketID != "TKT-0001" {
		t.Fatalf("Unexpected tickets: %d, first %s", len(tickets), tickets[0].TicketID)
	}
	for _, tk := range tickets {
		if err := tk.Validate(); err != nil {
			t.Fatalf("Invalid ticket %+v: %v", tk, err)
		}
		if len(tk.StageTimes) != len(processStages) {
			t.Errorf("Expected %d stages, got %d", len(processStages), len(tk.StageTimes))
		}
	}
}

func TestSeed_SlowStaffStandsOut(t *testing.T) {
	ctx := context.Background()
	incidents := repository.NewIncidentRepository(memory.NewIncidentStore())
	datasets := repository.NewDatasetRepository(memory.NewDatasetStore(), repository.WithClock(func() time.Time { return now }))
	tickets := repository.NewTicketRepository(memory.NewTicketStore())

	g := New(DefaultSeed, now)
	counts, err := g.Seed(ctx, incidents, datasets, tickets, DefaultOptions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Datasets != 12 || counts.Tickets != 150 || counts.Incidents != incidents.Count() {
		t.Errorf("Unexpected counts: %+v", counts)
	}

	perf := analytics.NewTicketService(tickets).StaffPerformance()
	if perf.Slowest == nil || perf.Slowest.Staff != SlowStaff {
		t.Errorf("Expected %s to be the slowest, got %+v", SlowStaff, perf.Slowest)
	}

	// Seeding again skips keyed records.
	again, err := New(DefaultSeed, now).Seed(ctx, incidents, datasets, tickets, Options{IncidentDays: 0, TicketCount: 150})
	if err != nil {
		t.Fatal(err)
	}
	if again.Datasets != 0 || again.Tickets != 0 {
		t.Errorf("Expected nothing new, got %+v", again)
	}
}
