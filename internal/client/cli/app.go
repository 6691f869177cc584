// Package cli is the interactive terminal client for TeamTrack.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dkaledin/teamtrack/internal/client/api"
	"github.com/dkaledin/teamtrack/internal/client/config"
	"github.com/dkaledin/teamtrack/internal/client/session"
)

type App struct {
	config  *config.Config
	api     *api.Client
	session *session.Session
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient := api.NewClient(c.ServerBaseURL, c.RequestTimeout)

	return &App{
		config:  c,
		api:     apiClient,
		session: session.New(),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) state() session.State {
	return a.session.State()
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}
