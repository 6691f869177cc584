// Package db selects the storage backend and vends repositories to the
// service layer.
package db

import (
	"context"
	"database/sql"

	"github.com/dkaledin/teamtrack/internal/server/repositories/principals"
	"github.com/dkaledin/teamtrack/internal/server/repositories/refreshtokens"
	"github.com/dkaledin/teamtrack/internal/server/repositories/tasks"
	"github.com/dkaledin/teamtrack/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Principals() principals.Repository
	Users() users.Repository
	Tasks() tasks.Repository
	RefreshTokens() refreshtokens.Repository
	Close() error
}
