// Package server initializes and runs the TeamTrack server: storage
// backend selection, service wiring, the HTTP endpoint and graceful
// shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dkaledin/teamtrack/internal/logging"
	"github.com/dkaledin/teamtrack/internal/server/config"
	"github.com/dkaledin/teamtrack/internal/server/httpapi"
	"github.com/dkaledin/teamtrack/internal/server/mailer"
	"github.com/dkaledin/teamtrack/internal/server/services"
	"github.com/dkaledin/teamtrack/internal/server/shared/db"
	"github.com/dkaledin/teamtrack/internal/server/watch"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager db.RepositoryManager
	api     *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	manager, err := newRepositoryManager(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hub := watch.NewHub()
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPSender)

	api := httpapi.NewServer(
		cfg,
		logger,
		services.NewIdentityService(manager, cfg),
		services.NewUserService(manager, hub, mail, logger, cfg),
		services.NewTaskService(manager, hub),
		services.NewReportService(manager, mail, cfg),
		hub,
	)

	return &App{config: cfg, logger: logger, manager: manager, api: api}, nil
}

// newRepositoryManager picks the backend from the DSN: the "mem:"
// prefix selects the in-memory store, anything else is a Postgres DSN.
func newRepositoryManager(ctx context.Context, cfg *config.Config) (db.RepositoryManager, error) {
	if strings.HasPrefix(cfg.DatabaseDSN, "mem:") {
		return db.NewInMemoryRepositoryManager(), nil
	}
	return db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:         app.config.EndpointAddrHTTP,
		Handler:      app.api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}

	app.api.Close()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "server stopped")
}
