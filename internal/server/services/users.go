package services

import (
	"context"
	"html/template"
	"strings"

	"github.com/dkaledin/teamtrack/internal/logging"
	"github.com/dkaledin/teamtrack/internal/server/config"
	"github.com/dkaledin/teamtrack/internal/server/mailer"
	"github.com/dkaledin/teamtrack/internal/server/models"
	"github.com/dkaledin/teamtrack/internal/server/shared/db"
	"github.com/dkaledin/teamtrack/internal/server/watch"
)

// Mailer is the sending seam; satisfied by *mailer.Mailer and faked in
// tests.
type Mailer interface {
	Send(to string, tmpl *template.Template, data any) error
}

// UserService manages the application profile attached to a principal.
// A principal without a profile can authenticate but cannot use the
// task endpoints yet.
type UserService struct {
	manager    db.RepositoryManager
	hub        *watch.Hub
	mailer     Mailer
	logger     logging.Logger
	adminEmail string
}

func NewUserService(m db.RepositoryManager, hub *watch.Hub, mail Mailer, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		manager:    m,
		hub:        hub,
		mailer:     mail,
		logger:     logger,
		adminEmail: cfg.AdminEmail,
	}
}

// CreateProfile creates the profile for a principal, or returns the
// existing one when it was already created (the first submission wins).
// The admin role is assigned once here, at creation, and never changes
// afterwards. Reports true when this call created the profile.
func (s *UserService) CreateProfile(ctx context.Context, principal *models.Principal, displayName string) (*models.User, bool, error) {
	user := &models.User{
		ID:          principal.ID,
		Email:       principal.Email,
		DisplayName: displayName,
		IsAdmin:     strings.EqualFold(principal.Email, s.adminEmail),
	}

	user, created, err := s.manager.Users().CreateIfAbsent(ctx, user)
	if err != nil {
		return nil, false, err
	}

	if created {
		s.hub.Notify("users")
		if s.mailer != nil {
			go s.sendWelcome(user)
		}
	}

	return user, created, nil
}

func (s *UserService) sendWelcome(user *models.User) {
	data := struct{ DisplayName string }{DisplayName: user.DisplayName}
	if err := s.mailer.Send(user.Email, mailer.WelcomeTemplate, data); err != nil {
		s.logger.Error(context.Background(), "failed to send welcome email", "email", user.Email, "error", err)
	}
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	return s.manager.Users().GetByID(ctx, id)
}

func (s *UserService) UpdateDisplayName(ctx context.Context, id, displayName string) (*models.User, error) {
	user, err := s.manager.Users().UpdateDisplayName(ctx, id, displayName)
	if err != nil {
		return nil, err
	}
	s.hub.Notify("users")
	return user, nil
}

// List returns all profiles in the order they joined.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.manager.Users().List(ctx)
}
