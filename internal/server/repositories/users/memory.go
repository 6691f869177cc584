package users

import (
	"context"
	"sync"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/server/models"
)

// MemoryRepository keeps profiles in insertion order, matching the
// List contract of the Postgres implementation.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]models.User
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.User)}
}

func (r *MemoryRepository) CreateIfAbsent(ctx context.Context, u *models.User) (*models.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[u.ID]; ok {
		out := existing
		return &out, false, nil
	}

	stored := *u
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)

	out := stored
	return &out, true, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) UpdateDisplayName(ctx context.Context, id, displayName string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.DisplayName = displayName
	r.byID[id] = u

	out := u
	return &out, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.byID[id]
		result = append(result, &u)
	}
	return result, nil
}
