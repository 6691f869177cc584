package report

import (
	"math"
	"time"
)

// Hours returns the elapsed whole hours between two instants, rounded half
// away from zero on |to-from| in seconds. The order of the arguments does
// not matter. A nil or zero input yields ok=false ("unavailable") and never
// an error: aggregation must not abort on a single bad record.
func Hours(from, to *time.Time) (int, bool) {
	if from == nil || to == nil || from.IsZero() || to.IsZero() {
		return 0, false
	}
	secs := math.Abs(to.Sub(*from).Seconds())
	return int(math.Round(secs / 3600)), true
}
