package tasks

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var taskRowCols = []string{"id", "user_id", "title", "link", "from_time", "to_time", "created_at", "updated_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+tasks\s*\(id,\s*user_id,\s*title,\s*link,\s*from_time,\s*to_time\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+`

	from := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	to := from.Add(2 * time.Hour)
	created := time.Now()
	mock.ExpectQuery(q).
		WithArgs("t-1", "u-1", "Refactor billing", "https://issues.example.com/42", from, to).
		WillReturnRows(sqlmock.NewRows(taskRowCols).
			AddRow("t-1", "u-1", "Refactor billing", "https://issues.example.com/42", from, to, created, nil))

	got, err := repo.Create(context.Background(), &models.Task{
		ID: "t-1", UserID: "u-1",
		Title: "Refactor billing", Link: "https://issues.example.com/42",
		FromTime: &from, ToTime: &to,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "t-1" || got.CreatedAt == nil || got.UpdatedAt != nil {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+tasks`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Task{ID: "t-1", UserID: "u-1", Title: "x"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+tasks`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Task{ID: "ghost", Title: "x"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "t-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByUser_NewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(taskRowCols).
			AddRow("t-2", "u-1", "second", "", nil, nil, newer, nil).
			AddRow("t-1", "u-1", "first", "", nil, nil, older, nil))

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t-2" || got[1].ID != "t-1" {
		t.Fatalf("unexpected tasks: %+v", got)
	}
	if got[0].FromTime != nil {
		t.Fatalf("expected nil FromTime for row without a range")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestMemoryRepository_CRUD(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Task{ID: "t-1", UserID: "u-1", Title: "write docs"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.CreatedAt == nil {
		t.Fatalf("expected CreatedAt to be set")
	}

	updated, err := repo.Update(ctx, &models.Task{ID: "t-1", Title: "write better docs"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "write better docs" || updated.UpdatedAt == nil {
		t.Fatalf("unexpected task after update: %+v", updated)
	}
	if updated.UserID != "u-1" {
		t.Fatalf("update must not change ownership: %+v", updated)
	}

	if err := repo.Delete(ctx, "t-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := repo.GetByID(ctx, "t-1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound after delete, got %v", err)
	}
}

func TestMemoryRepository_ListByUser(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	for _, task := range []*models.Task{
		{ID: "t-1", UserID: "u-1", Title: "old", CreatedAt: &older},
		{ID: "t-2", UserID: "u-1", Title: "new", CreatedAt: &newer},
		{ID: "t-3", UserID: "u-2", Title: "other"},
	} {
		if _, err := repo.Create(ctx, task); err != nil {
			t.Fatalf("Create %s: %v", task.ID, err)
		}
	}

	got, err := repo.ListByUser(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t-2" || got[1].ID != "t-1" {
		t.Fatalf("unexpected tasks: %+v", got)
	}
}
