// Package principals stores identity credentials.
package principals

import (
	"context"

	"github.com/dkaledin/teamtrack/internal/server/models"
)

type Repository interface {
	// Create inserts a new principal. Returns common.ErrorAlreadyExists
	// when the email is taken.
	Create(ctx context.Context, p *models.Principal) (*models.Principal, error)

	// GetByEmail returns common.ErrorNotFound when no principal matches.
	GetByEmail(ctx context.Context, email string) (*models.Principal, error)

	// GetByID returns common.ErrorNotFound when no principal matches.
	GetByID(ctx context.Context, id string) (*models.Principal, error)
}
