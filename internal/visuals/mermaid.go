// Package visuals renders analytics results as Mermaid xychart-beta blocks that MCP clients
// can display inline.
package visuals

import (
	"fmt"
	"math"
	"strings"

	"mdip/internal/analytics"
)

// DailyTrendChart plots the daily incident count of one category as a line.
func DailyTrendChart(daily []analytics.DailyCount, category string) string {
	var labels []string
	var values []float64
	for _, d := range daily {
		if d.Category != category {
			continue
		}
		// MM-DD keeps the axis readable over a month
		labels = append(labels, d.Date[len(d.Date)-5:])
		values = append(values, float64(d.Count))
	}
	return chart(fmt.Sprintf("%s Incidents per Day", category), "Incidents", "line", labels, values)
}

// ResolutionChart plots the average resolution time of every threat category.
func ResolutionChart(b analytics.ResolutionBottleneck) string {
	labels := make([]string, 0, len(b.AllAverages))
	values := make([]float64, 0, len(b.AllAverages))
	for _, c := range b.AllAverages {
		labels = append(labels, c.Category)
		values = append(values, c.AvgHours)
	}
	return chart("Average Resolution Time by Category", "Hours", "bar", labels, values)
}

// DepartmentStorageChart plots the storage consumed by each department.
func DepartmentStorageChart(usage []analytics.DepartmentUsage) string {
	labels := make([]string, 0, len(usage))
	values := make([]float64, 0, len(usage))
	for _, u := range usage {
		labels = append(labels, u.Department)
		values = append(values, u.SizeGB)
	}
	return chart("Storage by Department", "GB", "bar", labels, values)
}

// StaffChart plots each staff member's average resolution time against the team average.
func StaffChart(p analytics.StaffPerformance) string {
	if len(p.Staff) == 0 {
		return ""
	}
	labels := make([]string, 0, len(p.Staff))
	values := make([]float64, 0, len(p.Staff))
	team := make([]float64, 0, len(p.Staff))
	for _, s := range p.Staff {
		labels = append(labels, s.Staff)
		values = append(values, s.AvgHours)
		team = append(team, p.TeamAverage)
	}

	var sb strings.Builder
	writeHeader(&sb, "Average Resolution Time by Staff", "Hours", labels, append(values, team...))
	fmt.Fprintf(&sb, "    bar [%s]\n", join(values))
	fmt.Fprintf(&sb, "    line [%s]\n", join(team))
	sb.WriteString("```")
	return sb.String()
}

// StageChart plots the average time tickets spend in each process stage.
func StageChart(b analytics.ProcessBottleneck) string {
	labels := make([]string, 0, len(b.AllStages))
	values := make([]float64, 0, len(b.AllStages))
	for _, s := range b.AllStages {
		labels = append(labels, s.Stage)
		values = append(values, s.AvgHours)
	}
	return chart("Average Time per Process Stage", "Hours", "bar", labels, values)
}

func chart(title, yLabel, kind string, labels []string, values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var sb strings.Builder
	writeHeader(&sb, title, yLabel, labels, values)
	fmt.Fprintf(&sb, "    %s [%s]\n", kind, join(values))
	sb.WriteString("```")
	return sb.String()
}

func writeHeader(sb *strings.Builder, title, yLabel string, labels []string, values []float64) {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = fmt.Sprintf("%q", l)
	}

	// Leave 20% headroom above the tallest value
	maxVal := 0.0
	for _, v := range values {
		maxVal = math.Max(maxVal, v)
	}
	top := int(math.Ceil(maxVal * 1.2))
	if top == 0 {
		top = 1
	}

	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	fmt.Fprintf(sb, "    title %q\n", title)
	fmt.Fprintf(sb, "    x-axis [%s]\n", strings.Join(quoted, ", "))
	fmt.Fprintf(sb, "    y-axis %q 0 --> %d\n", yLabel, top)
}

func join(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.1f", v)
	}
	return strings.Join(parts, ", ")
}
