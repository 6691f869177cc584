package db

import (
	"context"
	"database/sql"

	"github.com/dkaledin/teamtrack/internal/server/repositories/principals"
	"github.com/dkaledin/teamtrack/internal/server/repositories/refreshtokens"
	"github.com/dkaledin/teamtrack/internal/server/repositories/tasks"
	"github.com/dkaledin/teamtrack/internal/server/repositories/users"
)

// InMemoryRepositoryManager backs the server with map-based repositories.
// Selected by the "mem:" DSN prefix; useful for demos and tests.
type InMemoryRepositoryManager struct {
	principals    principals.Repository
	users         users.Repository
	tasks         tasks.Repository
	refreshTokens refreshtokens.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Principals() principals.Repository {
	return m.principals
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m InMemoryRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

func (m InMemoryRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.refreshTokens
}

func (m InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{
		principals:    principals.NewMemoryRepository(),
		users:         users.NewMemoryRepository(),
		tasks:         tasks.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
	}
}
