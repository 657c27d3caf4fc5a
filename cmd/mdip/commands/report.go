package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mdip/internal/dashboard"
	"mdip/internal/session"
	"mdip/internal/tabular"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	reportTab    string
	reportFormat string
)

var titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard overview of one or all tabs",
	RunE: func(cmd *cobra.Command, args []string) error {
		var tabs []session.Tab
		if reportTab != "" {
			tab := session.Tab(reportTab)
			if !tab.Valid() {
				return fmt.Errorf("unknown tab %q: use cyber, data or it", reportTab)
			}
			tabs = append(tabs, tab)
		}

		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ov, err := a.loader.Build(cmd.Context(), tabs...)
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), ov, reportFormat)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportTab, "tab", "", "tab to report: cyber, data or it (default all)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(reportCmd)
}

func writeReport(w io.Writer, ov dashboard.Overview, format string) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, renderOverview(ov))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ov)
	case "yaml":
		// Round-trip through JSON so the keys match the json output.
		raw, err := json.Marshal(ov)
		if err != nil {
			return err
		}
		var doc map[string]interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q: use text, json or yaml", format)
}

func renderOverview(ov dashboard.Overview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generated %s\n\n", ov.GeneratedAt.Format("2006-01-02 15:04"))
	if ov.Cyber != nil {
		renderCyber(&b, *ov.Cyber)
	}
	if ov.Data != nil {
		renderData(&b, *ov.Data)
	}
	if ov.IT != nil {
		renderIT(&b, *ov.IT)
	}
	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
}

func hours(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + " h"
}

func gigabytes(gb float64) string {
	return humanize.Bytes(uint64(gb * 1e9))
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func renderCyber(b *strings.Builder, ov dashboard.CyberOverview) {
	section(b, "Cyber Security")
	m := ov.Metrics
	b.WriteString(tabular.RenderRows([]string{"Metric", "Value"}, [][]string{
		{"Total incidents", humanize.Comma(int64(m.TotalIncidents))},
		{"Unresolved high severity", humanize.Comma(int64(m.UnresolvedHigh))},
		{"Phishing incidents", humanize.Comma(int64(m.PhishingTotal))},
		{"Unresolved phishing", humanize.Comma(int64(m.PhishingUnresolved))},
	}))
	b.WriteString("\n")

	s := ov.Surge
	fmt.Fprintf(b, "%s surge: %d in the last %d days vs %d before (%+.1f%%)\n",
		s.Category, s.RecentCount, s.Days, s.PreviousCount, s.SurgePercentage)

	if ov.Bottleneck != nil {
		fmt.Fprintf(b, "Slowest to resolve: %s (%s on average)\n", ov.Bottleneck.Category, hours(ov.Bottleneck.AvgHours))
	}

	rows := make([][]string, 0, len(ov.Backlog.ByCategory))
	for _, c := range ov.Backlog.ByCategory {
		rows = append(rows, []string{c.Category, humanize.Comma(int64(c.Count))})
	}
	fmt.Fprintf(b, "Backlog: %d unresolved, %d high severity\n", ov.Backlog.TotalUnresolved, ov.Backlog.HighSeverityUnresolved)
	if len(rows) > 0 {
		b.WriteString(tabular.RenderRows([]string{"Category", "Unresolved"}, rows))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func renderData(b *strings.Builder, ov dashboard.DataOverview) {
	section(b, "Data Governance")
	m := ov.Metrics
	b.WriteString(tabular.RenderRows([]string{"Metric", "Value"}, [][]string{
		{"Datasets", humanize.Comma(int64(m.TotalDatasets))},
		{"Storage", gigabytes(m.TotalStorageGB)},
		{"Monthly cost", money(m.TotalStorageCost)},
		{"Pending quality checks", humanize.Comma(int64(m.PendingQualityChecks))},
	}))
	b.WriteString("\n")

	deps := make([][]string, 0, len(ov.Departments))
	for _, d := range ov.Departments {
		deps = append(deps, []string{d.Department, gigabytes(d.SizeGB), humanize.FormatFloat("#,###.##", d.RowsMillions) + "M"})
	}
	if len(deps) > 0 {
		b.WriteString(tabular.RenderRows([]string{"Department", "Storage", "Rows"}, deps))
		b.WriteString("\n")
	}

	r := ov.Dependencies.RiskLevels
	fmt.Fprintf(b, "Dependency risk: %d high, %d medium, %d low\n", r.High, r.Medium, r.Low)

	a := ov.Archiving
	cands := make([][]string, 0, len(a.Candidates))
	for _, d := range a.Candidates {
		cands = append(cands, []string{d.Name, gigabytes(d.SizeGB), fmt.Sprintf("%d", d.DaysSinceAccess), fmt.Sprintf("%.2f", d.Score())})
	}
	if len(cands) > 0 {
		b.WriteString(tabular.RenderRows([]string{"Archive candidate", "Size", "Days since access", "Score"}, cands))
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "Archiving would free %s and save %s per month (%s per year)\n",
		gigabytes(a.PotentialSavingsGB), money(a.PotentialCostSavingsMonthly), money(a.PotentialCostSavingsAnnual))
	fmt.Fprintf(b, "Stale: %d, rarely accessed: %d\n\n", len(ov.Stale), len(ov.RarelyAccessed))
}

func renderIT(b *strings.Builder, ov dashboard.ITOverview) {
	section(b, "IT Operations")
	m := ov.Metrics
	b.WriteString(tabular.RenderRows([]string{"Metric", "Value"}, [][]string{
		{"Tickets", humanize.Comma(int64(m.TotalTickets))},
		{"Open", humanize.Comma(int64(m.OpenTickets))},
		{"Average resolution", hours(m.AvgResolutionHours)},
		{"Waiting for user", humanize.Comma(int64(m.WaitingForUser))},
	}))
	b.WriteString("\n")

	staff := make([][]string, 0, len(ov.Staff.Staff))
	for _, s := range ov.Staff.Staff {
		staff = append(staff, []string{s.Staff, hours(s.AvgHours), humanize.Comma(int64(s.Resolved))})
	}
	if len(staff) > 0 {
		b.WriteString(tabular.RenderRows([]string{"Staff", "Average", "Resolved"}, staff))
		b.WriteString("\n")
	}
	if slow := ov.Staff.Slowest; slow != nil && slow.GapDefined {
		fmt.Fprintf(b, "Slowest: %s, %.1f%% above the team average of %s\n", slow.Staff, slow.GapPercentage, hours(slow.TeamAvg))
	}
	if ov.Bottleneck != nil {
		fmt.Fprintf(b, "Process bottleneck: %s (%s on average, %.1f%% of all stage time)\n",
			ov.Bottleneck.Stage, hours(ov.Bottleneck.AvgHours), ov.Bottleneck.Percentage)
	}
	b.WriteString("\n")
}
