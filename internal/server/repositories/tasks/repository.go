// Package tasks stores logged work items.
package tasks

import (
	"context"

	"github.com/dkaledin/teamtrack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Task) (*models.Task, error)

	// Update rewrites title, link and the time range of an existing task
	// and stamps updated_at. Returns common.ErrorNotFound for unknown ids.
	Update(ctx context.Context, t *models.Task) (*models.Task, error)

	// Delete returns common.ErrorNotFound when no row was removed.
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (*models.Task, error)

	// ListByUser returns the user's tasks, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)

	// List returns every task, newest first. Report building filters and
	// re-sorts on its own, so order here only matters for direct listing.
	List(ctx context.Context) ([]*models.Task, error)
}
