// Package tabular turns entity snapshots into column-oriented tables that can be summarised
// and rendered as text.
package tabular

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"mdip/internal/domain"
)

// Value is one table cell. A numeric cell keeps its number for statistics.
type Value struct {
	Text     string
	Number   float64
	IsNumber bool
	Missing  bool
}

// Text builds a string cell.
func Text(s string) Value {
	return Value{Text: s}
}

// Num builds a numeric cell rounded to two decimals for display.
func Num(v float64) Value {
	return Value{Text: formatFloat(v), Number: v, IsNumber: true}
}

// Int builds an integer cell.
func Int(v int) Value {
	return Value{Text: strconv.Itoa(v), Number: float64(v), IsNumber: true}
}

// Date builds a date cell.
func Date(t time.Time) Value {
	return Value{Text: t.Format(time.DateOnly)}
}

// Missing builds an empty cell, rendered as "-".
func Missing() Value {
	return Value{Text: "-", Missing: true}
}

// Column describes one table column.
type Column struct {
	Name    string
	Numeric bool
}

// Table is a rectangular, column-named data set.
type Table struct {
	Columns []Column
	Rows    [][]Value
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Head returns a table holding at most the first n rows.
func (t Table) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// FromIncidents tabulates incidents.
func FromIncidents(incidents []domain.Incident) Table {
	t := Table{Columns: []Column{
		{Name: "Date"},
		{Name: "Threat Category"},
		{Name: "Severity"},
		{Name: "Status"},
		{Name: "Resolution Time (hours)", Numeric: true},
	}}
	for _, inc := range incidents {
		hours := Missing()
		if inc.ResolutionTimeHours != nil {
			hours = Num(*inc.ResolutionTimeHours)
		}
		t.Rows = append(t.Rows, []Value{
			Date(inc.Date),
			Text(inc.ThreatCategory),
			Text(string(inc.Severity)),
			Text(string(inc.Status)),
			hours,
		})
	}
	return t
}

// FromDatasets tabulates datasets.
func FromDatasets(datasets []domain.Dataset) Table {
	t := Table{Columns: []Column{
		{Name: "Dataset Name"},
		{Name: "Department"},
		{Name: "Size (GB)", Numeric: true},
		{Name: "Rows (Millions)", Numeric: true},
		{Name: "Upload Date"},
		{Name: "Last Accessed"},
		{Name: "Days Since Access", Numeric: true},
		{Name: "Quality Status"},
		{Name: "Dependencies", Numeric: true},
		{Name: "Access Frequency (30d)", Numeric: true},
		{Name: "Storage Cost ($/month)", Numeric: true},
		{Name: "Archive Score", Numeric: true},
	}}
	for _, d := range datasets {
		score := Missing()
		if d.ArchiveScore != nil {
			score = Num(*d.ArchiveScore)
		}
		t.Rows = append(t.Rows, []Value{
			Text(d.Name),
			Text(d.Department),
			Num(d.SizeGB),
			Num(d.RowsMillions),
			Date(d.UploadDate),
			Date(d.LastAccessed),
			Int(d.DaysSinceAccess),
			Text(string(d.QualityStatus)),
			Int(d.Dependencies),
			Int(d.AccessFrequency30d),
			Num(d.StorageCostPerMonth),
			score,
		})
	}
	return t
}

// FromTickets tabulates tickets. Every stage seen in any ticket gets a "Time in <stage> (hours)"
// column, in first-seen order; tickets that never visited a stage leave it missing.
func FromTickets(tickets []domain.Ticket) Table {
	t := Table{Columns: []Column{
		{Name: "Ticket ID"},
		{Name: "Assigned Staff"},
		{Name: "Priority"},
		{Name: "Created Date"},
		{Name: "Status"},
		{Name: "Total Resolution Time (hours)", Numeric: true},
		{Name: "Resolution Date"},
	}}

	var stages []string
	seen := make(map[string]bool)
	for _, tk := range tickets {
		for _, st := range tk.StageTimes {
			if !seen[st.Stage] {
				seen[st.Stage] = true
				stages = append(stages, st.Stage)
			}
		}
	}
	for _, stage := range stages {
		t.Columns = append(t.Columns, Column{Name: StageColumn(stage), Numeric: true})
	}

	for _, tk := range tickets {
		resolved := Missing()
		if tk.ResolutionDate != nil {
			resolved = Date(*tk.ResolutionDate)
		}
		row := []Value{
			Text(tk.TicketID),
			Text(tk.AssignedStaff),
			Text(string(tk.Priority)),
			Date(tk.CreatedDate),
			Text(tk.Status),
			Num(tk.TotalResolutionTimeHours),
			resolved,
		}
		for _, stage := range stages {
			if h, ok := tk.StageTimes.Get(stage); ok {
				row = append(row, Num(h))
			} else {
				row = append(row, Missing())
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// StageColumn names the column holding the hours spent in stage.
func StageColumn(stage string) string {
	return fmt.Sprintf("Time in %s (hours)", stage)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
