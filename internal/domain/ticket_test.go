package domain

import (
	"errors"
	"testing"
)

func TestTicketValidate(t *testing.T) {
	tests := []struct {
		name   string
		ticket Ticket
		field  string
	}{
		{"valid", Ticket{TicketID: "TKT-0001", Priority: PriorityHigh, StageTimes: StageTimes{{"New", 1}, {"Assigned", 2}}}, ""},
		{"bad priority", Ticket{TicketID: "TKT-0002", Priority: "Urgent"}, "priority"},
		{"negative total", Ticket{TicketID: "TKT-0003", Priority: PriorityLow, TotalResolutionTimeHours: -3}, "total_resolution_time_hours"},
		{"duplicate stage", Ticket{TicketID: "TKT-0004", Priority: PriorityLow, StageTimes: StageTimes{{"New", 1}, {"New", 2}}}, "stage_times"},
		{"missing id", Ticket{Priority: PriorityLow}, "ticket_id"},
	}

	for _, tt := range tests {
		err := tt.ticket.Validate()
		if tt.field == "" {
			if err != nil {
				t.Errorf("%s: expected no error, got %v", tt.name, err)
			}
			continue
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != tt.field {
			t.Errorf("%s: expected ValidationError on %q, got %v", tt.name, tt.field, err)
		}
	}
}

func TestTicketStageHelpers(t *testing.T) {
	tk := Ticket{
		TicketID: "TKT-0001",
		Priority: PriorityMedium,
		Status:   "In Progress",
		StageTimes: StageTimes{
			{"New", 1.5},
			{"In Progress", 8},
			{"Waiting for User", 8},
		},
	}

	if got := tk.TimeInStage("In Progress"); got != 8 {
		t.Errorf("Expected 8 hours in progress, got %v", got)
	}
	if got := tk.TimeInStage("Escalated"); got != 0 {
		t.Errorf("Expected 0 hours for unvisited stage, got %v", got)
	}
	if stage, ok := tk.BottleneckStage(); !ok || stage != "In Progress" {
		t.Errorf("Expected first of the tied stages (In Progress), got %q", stage)
	}
	if got := tk.StageTimes.Total(); got != 17.5 {
		t.Errorf("Expected total 17.5, got %v", got)
	}
	if !tk.IsOpen() || tk.IsResolved() {
		t.Error("Expected ticket to be open")
	}

	c := tk.Clone()
	c.StageTimes[0].Hours = 100
	if tk.StageTimes[0].Hours != 1.5 {
		t.Error("Expected clone to not share stage times")
	}
}
