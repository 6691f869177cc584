// Package httpapi exposes the TeamTrack services over HTTP/JSON, plus
// SSE endpoints for live dashboard updates.
package httpapi

import (
	"net/http"
	"sync"

	"github.com/dkaledin/teamtrack/internal/logging"
	"github.com/dkaledin/teamtrack/internal/server/config"
	"github.com/dkaledin/teamtrack/internal/server/services"
	"github.com/dkaledin/teamtrack/internal/server/watch"
)

type Server struct {
	config   *config.Config
	logger   logging.Logger
	identity *services.IdentityService
	users    *services.UserService
	tasks    *services.TaskService
	reports  *services.ReportService
	hub      *watch.Hub

	done      chan struct{}
	closeOnce sync.Once
}

func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	identity *services.IdentityService,
	users *services.UserService,
	tasks *services.TaskService,
	reports *services.ReportService,
	hub *watch.Hub,
) *Server {
	return &Server{
		config:   cfg,
		logger:   logger,
		identity: identity,
		users:    users,
		tasks:    tasks,
		reports:  reports,
		hub:      hub,
		done:     make(chan struct{}),
	}
}

// Close stops background work started by Routes, currently the rate
// limiter sweeper. Safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Routes assembles the full route table. Profile and task endpoints
// require a bearer token; task endpoints additionally require a created
// profile; report endpoints require the admin role.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/healthcheck", s.healthCheckHandler)

	mux.HandleFunc("POST /v1/auth/register", s.registerHandler)
	mux.HandleFunc("POST /v1/auth/login", s.loginHandler)
	mux.HandleFunc("POST /v1/auth/refresh", s.refreshHandler)
	mux.HandleFunc("POST /v1/auth/logout", s.requireAuth(s.logoutHandler))

	mux.HandleFunc("GET /v1/profile", s.requireAuth(s.getProfileHandler))
	mux.HandleFunc("POST /v1/profile", s.requireAuth(s.createProfileHandler))
	mux.HandleFunc("PATCH /v1/profile", s.requireAuth(s.requireProfile(s.updateProfileHandler)))

	mux.HandleFunc("POST /v1/tasks", s.requireAuth(s.requireProfile(s.createTaskHandler)))
	mux.HandleFunc("GET /v1/tasks", s.requireAuth(s.requireProfile(s.listTasksHandler)))
	mux.HandleFunc("GET /v1/tasks/{id}", s.requireAuth(s.requireProfile(s.getTaskHandler)))
	mux.HandleFunc("PUT /v1/tasks/{id}", s.requireAuth(s.requireProfile(s.updateTaskHandler)))
	mux.HandleFunc("DELETE /v1/tasks/{id}", s.requireAuth(s.requireProfile(s.deleteTaskHandler)))

	mux.HandleFunc("GET /v1/reports", s.requireAuth(s.requireProfile(s.requireAdmin(s.getReportHandler))))
	mux.HandleFunc("GET /v1/reports/export", s.requireAuth(s.requireProfile(s.requireAdmin(s.downloadExportHandler))))
	mux.HandleFunc("POST /v1/reports/export", s.requireAuth(s.requireProfile(s.requireAdmin(s.deliverExportHandler))))

	mux.HandleFunc("GET /v1/watch/tasks", s.requireAuth(s.requireProfile(s.watchTasksHandler)))
	mux.HandleFunc("GET /v1/watch/users", s.requireAuth(s.requireProfile(s.requireAdmin(s.watchUsersHandler))))

	var handler http.Handler = mux
	if s.config.LimiterEnabled {
		handler = s.rateLimit(handler)
	}
	return s.logRequests(handler)
}
