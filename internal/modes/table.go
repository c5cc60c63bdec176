package modes

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// FormatTable aligns the tab-separated output of the SQL client into
// columns. The first row is the header the client emits.
func FormatTable(raw string) string {
	raw = strings.TrimRight(raw, "\n")

	if raw == "" {
		return ""
	}

	var b strings.Builder

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	for _, line := range strings.Split(raw, "\n") {
		fmt.Fprintln(w, line)
	}

	w.Flush()

	return strings.TrimRight(b.String(), "\n")
}
