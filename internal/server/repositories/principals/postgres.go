package principals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/dbx"
	"github.com/dkaledin/teamtrack/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements principal storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Principal) (*models.Principal, error) {
	query := `
		INSERT INTO principals (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, p.ID, p.Email, p.PasswordHash).Scan(&p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Principal, error) {
	query := `
		SELECT id, email, password_hash, created_at FROM principals
		WHERE email = $1
	`
	p := &models.Principal{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Principal, error) {
	query := `
		SELECT id, email, password_hash, created_at FROM principals
		WHERE id = $1
	`
	p := &models.Principal{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
