package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/server/models"
)

// MemoryRepository keeps refresh tokens in a map.
type MemoryRepository struct {
	mu      sync.RWMutex
	byToken map[string]models.RefreshToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byToken: make(map[string]models.RefreshToken)}
}

func (r *MemoryRepository) Create(ctx context.Context, principalID string, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byToken[token] = models.RefreshToken{
		Token:       token,
		PrincipalID: principalID,
		Expires:     time.Now().Add(validity),
	}
	return nil
}

func (r *MemoryRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rt, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byToken, token)
	return nil
}

func (r *MemoryRepository) Consume(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byToken[token]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byToken, token)
	return nil
}
