package report

import (
	"sort"
	"time"
)

// Mode selects the size of a report window.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeMonth Mode = "month"
)

// ParseMode maps a request parameter onto a Mode, defaulting to day.
func ParseMode(s string) Mode {
	if Mode(s) == ModeMonth {
		return ModeMonth
	}
	return ModeDay
}

// Window is a half-open interval [Start, End) in the reference's location.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow computes the local calendar day or month containing ref.
// A zero ref means "now".
func NewWindow(ref time.Time, mode Mode) Window {
	if ref.IsZero() {
		ref = time.Now()
	}
	y, m, d := ref.Date()
	loc := ref.Location()
	switch mode {
	case ModeMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}
	default:
		start := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 0, 1)}
	}
}

// Contains reports whether t lies in [Start, End). A nil t is never inside.
func (w Window) Contains(t *time.Time) bool {
	return t != nil && !t.Before(w.Start) && t.Before(w.End)
}

// FilterTasks keeps tasks whose creation instant lies inside the window.
// Tasks without a creation instant are dropped. The input slice is not
// modified.
func FilterTasks(tasks []Task, w Window) []Task {
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if w.Contains(t.CreatedAt) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// SortByCreatedDesc orders tasks newest first. Tasks without a creation
// instant sink to the end; the sort is stable.
func SortByCreatedDesc(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].CreatedAt, tasks[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
