package assistant

import (
	"fmt"
	"strings"

	"mdip/internal/tabular"
)

// NoDataContext is the context sent when a table has no rows.
const NoDataContext = "No data available."

// PrepareContext summarises t for the model: its shape, column names, descriptive statistics
// of the numeric columns and the first maxRows rows.
func PrepareContext(t tabular.Table, maxRows int) string {
	if t.Empty() {
		return NoDataContext
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dataset Shape: %d rows, %d columns\n\n", t.Len(), len(t.Columns))
	fmt.Fprintf(&b, "Columns: %s\n\n", strings.Join(t.ColumnNames(), ", "))

	if summaries := tabular.Describe(t); len(summaries) > 0 {
		b.WriteString("Numeric Summary:\n")
		b.WriteString(tabular.RenderSummary(summaries))
		b.WriteString("\n\n")
	}

	head := t.Head(maxRows)
	fmt.Fprintf(&b, "Sample Data (first %d rows):\n", head.Len())
	b.WriteString(tabular.Render(head))
	return b.String()
}
