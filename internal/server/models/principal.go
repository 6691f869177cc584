// Package models holds the server-side data model shared by repositories
// and services.
package models

import "time"

// Principal is a signed-in identity: the credentials record owned by the
// identity service. A principal may exist without a profile (the user has
// authenticated but not yet chosen a display name).
type Principal struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
