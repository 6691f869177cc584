// Package refreshtokens stores long-lived opaque tokens used to mint
// new access tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dkaledin/teamtrack/internal/server/models"
)

type Repository interface {
	// Create inserts a token for principalID expiring at now+validity.
	Create(ctx context.Context, principalID string, token string, validity time.Duration) error

	// Find returns the token row or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token. Deleting an unknown token is not an error,
	// logout must be idempotent.
	Delete(ctx context.Context, token string) error

	// Consume removes a token and returns common.ErrorNotFound when no
	// row was removed. Rotation uses this to keep tokens single-use even
	// under concurrent redemption.
	Consume(ctx context.Context, token string) error
}
