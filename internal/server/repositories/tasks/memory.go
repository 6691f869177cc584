package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/server/models"
)

// MemoryRepository keeps tasks in a map. Listing sorts by created_at
// descending to match the Postgres implementation.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]models.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Task)}
}

func (r *MemoryRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *t
	if stored.CreatedAt == nil {
		now := time.Now()
		stored.CreatedAt = &now
	}
	r.byID[stored.ID] = stored

	out := stored
	return &out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, t *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[t.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	existing.Title = t.Title
	existing.Link = t.Link
	existing.FromTime = t.FromTime
	existing.ToTime = t.ToTime
	now := time.Now()
	existing.UpdatedAt = &now
	r.byID[t.ID] = existing

	out := existing
	return &out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Task
	for _, t := range r.byID {
		if t.UserID == userID {
			out := t
			result = append(result, &out)
		}
	}
	sortByCreatedDesc(result)
	return result, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Task, 0, len(r.byID))
	for _, t := range r.byID {
		out := t
		result = append(result, &out)
	}
	sortByCreatedDesc(result)
	return result, nil
}

func sortByCreatedDesc(tasks []*models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].CreatedAt, tasks[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
