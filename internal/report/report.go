// Package report turns raw task documents into per-member summaries, hour
// totals and a plain-text export. Everything in this package is a pure
// function over in-memory data: no I/O, no mutation of inputs, and malformed
// timestamps degrade to "unavailable" values instead of errors.
package report

import "time"

// User is the canonical profile record the report engine works with.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task is the canonical task record. Timestamp fields are pointers: nil
// means the source document had no usable value and downstream consumers
// apply their own "unavailable" handling.
type Task struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	FromTime  *time.Time `json:"from_time,omitempty"`
	ToTime    *time.Time `json:"to_time,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Entry is one member's slice of a report: the tasks they own inside the
// active window, plus derived counters. Never persisted.
type Entry struct {
	User       User   `json:"user"`
	Tasks      []Task `json:"tasks"`
	TaskCount  int    `json:"task_count"`
	TotalHours int    `json:"total_hours"`
}

// Stats are the overall counters across all filtered tasks. TotalHours is
// re-derived independently from the per-entry totals; the two must agree.
type Stats struct {
	ActiveUsers int `json:"active_users"`
	TotalTasks  int `json:"total_tasks"`
	TotalHours  int `json:"total_hours"`
}

// Report bundles everything a dashboard or export needs for one window.
type Report struct {
	Window  Window  `json:"window"`
	Mode    Mode    `json:"mode"`
	Entries []Entry `json:"entries"`
	Stats   Stats   `json:"stats"`
}

// Build filters tasks to the window around ref, sorts them by creation
// instant descending and groups them per user. A zero ref means "now".
func Build(users []User, tasks []Task, ref time.Time, mode Mode) Report {
	w := NewWindow(ref, mode)
	filtered := FilterTasks(tasks, w)
	SortByCreatedDesc(filtered)
	entries, stats := Aggregate(users, filtered)
	return Report{Window: w, Mode: mode, Entries: entries, Stats: stats}
}
