package api

import "time"

// Profile mirrors the server's profile resource.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task mirrors the server's task resource.
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

// TaskInput carries the editable task fields for create and update.
type TaskInput struct {
	Title    string     `json:"title"`
	Link     string     `json:"link"`
	FromTime *time.Time `json:"from_time,omitempty"`
	ToTime   *time.Time `json:"to_time,omitempty"`
}

// TodayStats are the caller's own counters for the current day.
type TodayStats struct {
	TaskCount  int `json:"task_count"`
	TotalHours int `json:"total_hours"`
}

// TokenPair is the access/refresh pair issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
