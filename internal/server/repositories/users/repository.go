// Package users stores application profiles.
package users

import (
	"context"

	"github.com/dkaledin/teamtrack/internal/server/models"
)

type Repository interface {
	// CreateIfAbsent atomically inserts the profile unless one already
	// exists for the same id. It returns the stored profile and whether
	// this call created it, so a concurrent double-submission resolves to
	// a single row with the first writer winning.
	CreateIfAbsent(ctx context.Context, u *models.User) (*models.User, bool, error)

	// GetByID returns common.ErrorNotFound when no profile exists.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// UpdateDisplayName changes the only mutable profile field.
	UpdateDisplayName(ctx context.Context, id, displayName string) (*models.User, error)

	// List returns all profiles in insertion order.
	List(ctx context.Context) ([]*models.User, error)
}
