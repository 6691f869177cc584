package principals

import (
	"context"
	"sync"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/server/models"
)

// MemoryRepository keeps principals in a map. Used by tests and by the
// server when running without Postgres.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.Principal
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]models.Principal),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, p *models.Principal) (*models.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[p.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	stored := *p
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p := r.byID[id]
	return &p, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}
