package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/dbx"
	"github.com/dkaledin/teamtrack/internal/server/models"
)

// PostgresRepository implements profile storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, u *models.User) (*models.User, bool, error) {
	query := `
		INSERT INTO users (id, email, display_name, is_admin)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.DisplayName, u.IsAdmin)
	if err != nil {
		return nil, false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("rows affected error: %w", err)
	}

	stored, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return nil, false, err
	}
	return stored, n == 1, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, is_admin, created_at FROM users
		WHERE id = $1
	`
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.DisplayName, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) UpdateDisplayName(ctx context.Context, id, displayName string) (*models.User, error) {
	query := `
		UPDATE users SET display_name = $1
		WHERE id = $2
		RETURNING id, email, display_name, is_admin, created_at
	`
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, displayName, id).Scan(&u.ID, &u.Email, &u.DisplayName, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, email, display_name, is_admin, created_at FROM users
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
