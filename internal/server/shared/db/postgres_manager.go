package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkaledin/teamtrack/internal/server/migrations"
	"github.com/dkaledin/teamtrack/internal/server/repositories/principals"
	"github.com/dkaledin/teamtrack/internal/server/repositories/refreshtokens"
	"github.com/dkaledin/teamtrack/internal/server/repositories/tasks"
	"github.com/dkaledin/teamtrack/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db            *sql.DB
	principals    principals.Repository
	users         users.Repository
	tasks         tasks.Repository
	refreshTokens refreshtokens.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Principals() principals.Repository {
	return m.principals
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func (m *PostgresRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.refreshTokens
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:            db,
		principals:    principals.NewPostgresRepository(db),
		users:         users.NewPostgresRepository(db),
		tasks:         tasks.NewPostgresRepository(db),
		refreshTokens: refreshtokens.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
