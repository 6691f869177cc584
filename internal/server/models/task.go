package models

import "time"

// Task is one logged unit of work. Timestamp fields are pointers because
// rows written out-of-band may lack any of them; readers must tolerate
// that instead of failing.
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
