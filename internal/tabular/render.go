package tabular

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Render draws t as a bordered text table.
func Render(t Table) string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.Text
		}
		rows[i] = cells
	}
	return renderGrid(t.ColumnNames(), rows)
}

// RenderSummary draws the Describe output with one statistic per row and one column per
// numeric column, the layout analysts expect from a describe table.
func RenderSummary(summaries []Summary) string {
	if len(summaries) == 0 {
		return ""
	}
	headers := make([]string, 0, len(summaries)+1)
	headers = append(headers, "")
	for _, s := range summaries {
		headers = append(headers, s.Column)
	}

	stats := []struct {
		label string
		pick  func(Summary) string
	}{
		{"count", func(s Summary) string { return formatFloat(float64(s.Count)) }},
		{"mean", func(s Summary) string { return formatFloat(s.Mean) }},
		{"std", func(s Summary) string { return formatFloat(s.Std) }},
		{"min", func(s Summary) string { return formatFloat(s.Min) }},
		{"25%", func(s Summary) string { return formatFloat(s.P25) }},
		{"50%", func(s Summary) string { return formatFloat(s.P50) }},
		{"75%", func(s Summary) string { return formatFloat(s.P75) }},
		{"max", func(s Summary) string { return formatFloat(s.Max) }},
	}

	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		row := make([]string, 0, len(summaries)+1)
		row = append(row, st.label)
		for _, s := range summaries {
			row = append(row, st.pick(s))
		}
		rows = append(rows, row)
	}
	return renderGrid(headers, rows)
}

// RenderRows draws arbitrary string rows under headers.
func RenderRows(headers []string, rows [][]string) string {
	return renderGrid(headers, rows)
}

func renderGrid(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}
