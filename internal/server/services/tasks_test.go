package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/server/shared/db"
	"github.com/dkaledin/teamtrack/internal/server/watch"
	"github.com/stretchr/testify/assert"
)

func newTaskService(t *testing.T) (*TaskService, *watch.Hub) {
	t.Helper()
	hub := watch.NewHub()
	return NewTaskService(db.NewInMemoryRepositoryManager(), hub), hub
}

func validInput() *TaskInput {
	from := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	to := from.Add(2 * time.Hour)
	return &TaskInput{
		Title:    "Refactor billing",
		Link:     "https://issues.example.com/42",
		FromTime: &from,
		ToTime:   &to,
	}
}

func TestTaskCreate_Success(t *testing.T) {
	s, _ := newTaskService(t)

	task, err := s.Create(context.Background(), "u-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "u-1", task.UserID)
	assert.NotNil(t, task.CreatedAt)
}

func TestTaskCreate_EmptyTitle(t *testing.T) {
	s, _ := newTaskService(t)

	in := validInput()
	in.Title = ""
	_, err := s.Create(context.Background(), "u-1", in)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestTaskCreate_EmptyLink(t *testing.T) {
	s, _ := newTaskService(t)

	in := validInput()
	in.Link = ""
	_, err := s.Create(context.Background(), "u-1", in)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestTaskCreate_MissingTimes(t *testing.T) {
	s, _ := newTaskService(t)

	cases := map[string]func(*TaskInput){
		"no from_time": func(in *TaskInput) { in.FromTime = nil },
		"no to_time":   func(in *TaskInput) { in.ToTime = nil },
		"no times":     func(in *TaskInput) { in.FromTime, in.ToTime = nil, nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(in)
			_, err := s.Create(context.Background(), "u-1", in)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want common.ErrorValidation, got %v", err)
			}
		})
	}
}

func TestTaskUpdate_MissingTimes(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	task, err := s.Create(ctx, "u-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	in := validInput()
	in.ToTime = nil
	_, err = s.Update(ctx, "u-1", false, task.ID, in)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestTaskCreate_InvertedRange(t *testing.T) {
	s, _ := newTaskService(t)

	in := validInput()
	in.FromTime, in.ToTime = in.ToTime, in.FromTime
	_, err := s.Create(context.Background(), "u-1", in)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestTaskCreate_NotifiesWatchers(t *testing.T) {
	s, hub := newTaskService(t)
	ctx := context.Background()

	ch := hub.Subscribe(ctx, "tasks")
	<-ch // initial snapshot tick

	if _, err := s.Create(ctx, "u-1", validInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a tasks notification after create")
	}
}

func TestTaskUpdate_OwnerOnly(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	task, err := s.Create(ctx, "u-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	in := validInput()
	in.Title = "Hijacked"
	_, err = s.Update(ctx, "u-2", false, task.ID, in)
	if !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("want common.ErrorForbidden, got %v", err)
	}

	// The admin may edit anyone's task.
	updated, err := s.Update(ctx, "u-2", true, task.ID, in)
	if err != nil {
		t.Fatalf("admin Update error: %v", err)
	}
	assert.Equal(t, "Hijacked", updated.Title)
	assert.Equal(t, "u-1", updated.UserID, "ownership must not change on update")
}

func TestTaskUpdate_NotFound(t *testing.T) {
	s, _ := newTaskService(t)

	_, err := s.Update(context.Background(), "u-1", false, "ghost", validInput())
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestTaskDelete_OwnerOnly(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	task, err := s.Create(ctx, "u-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	err = s.Delete(ctx, "u-2", false, task.ID)
	if !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("want common.ErrorForbidden, got %v", err)
	}

	if err := s.Delete(ctx, "u-1", false, task.ID); err != nil {
		t.Fatalf("owner Delete error: %v", err)
	}
	if _, err := s.Get(ctx, "u-1", false, task.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound after delete, got %v", err)
	}
}

func TestTaskGet_MemberCannotReadOthers(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	task, err := s.Create(ctx, "u-1", validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	_, err = s.Get(ctx, "u-2", false, task.ID)
	if !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("want common.ErrorForbidden, got %v", err)
	}

	got, err := s.Get(ctx, "u-2", true, task.ID)
	if err != nil {
		t.Fatalf("admin Get error: %v", err)
	}
	assert.Equal(t, task.ID, got.ID)
}

func TestTaskListMine_OnlyOwn(t *testing.T) {
	s, _ := newTaskService(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, "u-1", validInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := s.Create(ctx, "u-2", validInput()); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mine, err := s.ListMine(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListMine error: %v", err)
	}
	assert.Len(t, mine, 1)
	assert.Equal(t, "u-1", mine[0].UserID)

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	assert.Len(t, all, 2)
}
