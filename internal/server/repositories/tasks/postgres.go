package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/dbx"
	"github.com/dkaledin/teamtrack/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = "id, user_id, title, link, from_time, to_time, created_at, updated_at"

func scanTask(row interface{ Scan(dest ...any) error }) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Link, &t.FromTime, &t.ToTime, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, title, link, from_time, to_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns + `
	`
	created, err := scanTask(r.db.QueryRowContext(ctx, query, t.ID, t.UserID, t.Title, t.Link, t.FromTime, t.ToTime))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *models.Task) (*models.Task, error) {
	query := `
		UPDATE tasks
		SET title = $1, link = $2, from_time = $3, to_time = $4, updated_at = now()
		WHERE id = $5
		RETURNING ` + taskColumns + `
	`
	updated, err := scanTask(r.db.QueryRowContext(ctx, query, t.Title, t.Link, t.FromTime, t.ToTime, t.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM tasks
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE id = $1
	`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.queryTasks(ctx, query, userID)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		ORDER BY created_at DESC
	`
	return r.queryTasks(ctx, query)
}

func (r *PostgresRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
