package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/server/models"
	"github.com/dkaledin/teamtrack/internal/server/shared/db"
	"github.com/dkaledin/teamtrack/internal/server/watch"
	"github.com/google/uuid"
)

// TaskInput carries the caller-editable task fields.
type TaskInput struct {
	Title    string     `json:"title"`
	Link     string     `json:"link"`
	FromTime *time.Time `json:"from_time"`
	ToTime   *time.Time `json:"to_time"`
}

// validate enforces the write-path contract: title and link present,
// both times present, from before to. Stored rows created out-of-band
// may still violate this; the report engine tolerates those on read.
func (in *TaskInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}
	if in.Link == "" {
		return fmt.Errorf("%w: link must not be empty", common.ErrorValidation)
	}
	if in.FromTime == nil || in.ToTime == nil {
		return fmt.Errorf("%w: both from_time and to_time are required", common.ErrorValidation)
	}
	if !in.FromTime.Before(*in.ToTime) {
		return fmt.Errorf("%w: from_time must be before to_time", common.ErrorValidation)
	}
	return nil
}

// TaskService implements task CRUD with ownership checks. Every write
// pings the watch hub so dashboards re-read their snapshot.
type TaskService struct {
	manager db.RepositoryManager
	hub     *watch.Hub
}

func NewTaskService(m db.RepositoryManager, hub *watch.Hub) *TaskService {
	return &TaskService{manager: m, hub: hub}
}

func (s *TaskService) Create(ctx context.Context, userID string, in *TaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    in.Title,
		Link:     in.Link,
		FromTime: in.FromTime,
		ToTime:   in.ToTime,
	}

	task, err := s.manager.Tasks().Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	s.hub.Notify("tasks")
	return task, nil
}

// Update rewrites an existing task. Members may only touch their own
// tasks; an admin may touch any.
func (s *TaskService) Update(ctx context.Context, callerID string, isAdmin bool, taskID string, in *TaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.manager.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != callerID && !isAdmin {
		return nil, common.ErrorForbidden
	}

	existing.Title = in.Title
	existing.Link = in.Link
	existing.FromTime = in.FromTime
	existing.ToTime = in.ToTime

	updated, err := s.manager.Tasks().Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	s.hub.Notify("tasks")
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, callerID string, isAdmin bool, taskID string) error {
	existing, err := s.manager.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if existing.UserID != callerID && !isAdmin {
		return common.ErrorForbidden
	}

	if err := s.manager.Tasks().Delete(ctx, taskID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting task: %w", err)
	}

	s.hub.Notify("tasks")
	return nil
}

func (s *TaskService) Get(ctx context.Context, callerID string, isAdmin bool, taskID string) (*models.Task, error) {
	task, err := s.manager.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != callerID && !isAdmin {
		return nil, common.ErrorForbidden
	}
	return task, nil
}

// ListMine returns the caller's own tasks, newest first.
func (s *TaskService) ListMine(ctx context.Context, userID string) ([]*models.Task, error) {
	return s.manager.Tasks().ListByUser(ctx, userID)
}

// ListAll returns every task. Admin only; the HTTP layer enforces the
// role.
func (s *TaskService) ListAll(ctx context.Context) ([]*models.Task, error) {
	return s.manager.Tasks().List(ctx)
}
