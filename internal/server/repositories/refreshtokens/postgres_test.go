package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkaledin/teamtrack/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const deleteQ = `(?s)^DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`

func TestConsume_RemovesRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs("tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Consume(context.Background(), "tok-1"); err != nil {
		t.Fatalf("Consume error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestConsume_AlreadyGone(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs("tok-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Consume(context.Background(), "tok-1")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_UnknownTokenIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs("tok-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "tok-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestMemoryConsume_SingleUse(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, "p-1", "tok-1", 0); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := repo.Consume(ctx, "tok-1"); err != nil {
		t.Fatalf("first Consume error: %v", err)
	}
	if err := repo.Consume(ctx, "tok-1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound on second Consume, got %v", err)
	}
}
