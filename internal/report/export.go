package report

import (
	"fmt"
	"strings"
	"time"
)

// clockLayout renders e.g. "09:00 AM".
const clockLayout = "03:04 PM"

// invalidRange replaces the bracketed time range when either side of a
// task's time range is absent or unparseable.
const invalidRange = "[Invalid Date]"

// ExportText renders the per-member report as plain text:
//
//	Member Name: Ada
//	1- Fix login flow [09:00 AM => 11:00 AM] https://tracker/123
//	2- Review PR [Invalid Date] https://tracker/124
//
// with a blank line after every member block. Entries render in the order
// given. Empty input yields the empty string; callers display their own
// placeholder in that case. The function is pure: repeated calls with the
// same input produce byte-identical output and nothing is mutated.
func ExportText(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "Member Name: %s\n", e.User.DisplayName)
		for i, t := range e.Tasks {
			if from, to, ok := timeRange(t); ok {
				fmt.Fprintf(&b, "%d- %s [%s => %s] %s\n", i+1, t.Title, from, to, t.Link)
			} else {
				fmt.Fprintf(&b, "%d- %s %s %s\n", i+1, t.Title, invalidRange, t.Link)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func timeRange(t Task) (string, string, bool) {
	if t.FromTime == nil || t.ToTime == nil || t.FromTime.IsZero() || t.ToTime.IsZero() {
		return "", "", false
	}
	return t.FromTime.Format(clockLayout), t.ToTime.Format(clockLayout), true
}

// ExportFileName names the downloadable artifact for the given day,
// e.g. "tasks-export-2024-03-15.txt".
func ExportFileName(day time.Time) string {
	return "tasks-export-" + day.Format("2006-01-02") + ".txt"
}
