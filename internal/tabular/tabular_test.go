package tabular

import (
	"math"
	"strings"
	"testing"
	"time"

	"mdip/internal/domain"
)

func TestDescribe(t *testing.T) {
	tbl := Table{
		Columns: []Column{{Name: "name"}, {Name: "hours", Numeric: true}},
		Rows: [][]Value{
			{Text("a"), Num(1)},
			{Text("b"), Num(2)},
			{Text("c"), Missing()},
			{Text("d"), Num(3)},
			{Text("e"), Num(4)},
		},
	}

	got := Describe(tbl)
	if len(got) != 1 {
		t.Fatalf("Expected one numeric column, got %d", len(got))
	}
	s := got[0]
	if s.Count != 4 || s.Mean != 2.5 || s.Min != 1 || s.Max != 4 {
		t.Errorf("Unexpected summary: %+v", s)
	}
	if s.P25 != 1.75 || s.P50 != 2.5 || s.P75 != 3.25 {
		t.Errorf("Expected quartiles 1.75/2.5/3.25, got %v/%v/%v", s.P25, s.P50, s.P75)
	}
	if math.Abs(s.Std-1.2909944487358056) > 1e-12 {
		t.Errorf("Expected sample std 1.29099, got %v", s.Std)
	}
}

func TestDescribe_SingleValue(t *testing.T) {
	tbl := Table{Columns: []Column{{Name: "x", Numeric: true}}, Rows: [][]Value{{Int(7)}}}
	s := Describe(tbl)[0]
	if s.Count != 1 || s.P50 != 7 || !math.IsNaN(s.Std) {
		t.Errorf("Expected count 1, median 7 and NaN std, got %+v", s)
	}
}

func TestFromTickets_StageColumns(t *testing.T) {
	created := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	tbl := FromTickets([]domain.Ticket{
		{TicketID: "T-1", Priority: domain.PriorityLow, CreatedDate: created,
			StageTimes: domain.StageTimes{{Stage: "New", Hours: 1}}},
		{TicketID: "T-2", Priority: domain.PriorityLow, CreatedDate: created,
			StageTimes: domain.StageTimes{{Stage: "Assigned", Hours: 2}, {Stage: "New", Hours: 3}}},
	})

	names := tbl.ColumnNames()
	if names[len(names)-2] != "Time in New (hours)" || names[len(names)-1] != "Time in Assigned (hours)" {
		t.Errorf("Unexpected stage columns: %v", names)
	}
	if !tbl.Rows[0][len(names)-1].Missing {
		t.Error("Expected T-1 to have no Assigned time")
	}
	if tbl.Rows[1][len(names)-2].Number != 3 {
		t.Errorf("Expected T-2 New time 3, got %v", tbl.Rows[1][len(names)-2].Number)
	}
}

func TestRender(t *testing.T) {
	tbl := FromIncidents([]domain.Incident{{
		Date:           time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
		ThreatCategory: "Phishing",
		Severity:       domain.SeverityHigh,
		Status:         domain.StatusUnresolved,
	}})

	out := Render(tbl)
	for _, want := range []string{"Threat Category", "Phishing", "2025-03-04"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected rendered table to contain %q:\n%s", want, out)
		}
	}

	summary := RenderSummary(Describe(tbl))
	if !strings.Contains(summary, "Resolution Time (hours)") || !strings.Contains(summary, "count") {
		t.Errorf("Unexpected summary rendering:\n%s", summary)
	}
}

func TestHead(t *testing.T) {
	tbl := Table{Columns: []Column{{Name: "x"}}, Rows: [][]Value{{Text("a")}, {Text("b")}}}
	if tbl.Head(1).Len() != 1 || tbl.Head(5).Len() != 2 || tbl.Head(-1).Len() != 0 {
		t.Error("Unexpected Head lengths")
	}
}
