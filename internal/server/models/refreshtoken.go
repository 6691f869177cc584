package models

import "time"

// RefreshToken is an opaque long-lived token tied to a principal.
type RefreshToken struct {
	Token       string
	PrincipalID string
	Expires     time.Time
}
