package models

import "time"

// User is the application profile keyed by a principal's id. Created once
// after first sign-in; only the display name may change afterwards. The
// admin flag is derived at creation time and persisted, never re-derived.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
}
