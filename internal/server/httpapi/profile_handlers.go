package httpapi

import (
	"errors"
	"net/http"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/server/models"
)

// getProfileHandler returns 404 when no profile exists yet; clients use
// that to drive the "pick your name" step after sign-in.
func (s *Server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromRequest(r)

	profile, err := s.users.GetProfile(r.Context(), claims.PrincipalID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "profile not created yet")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"profile": profile})
}

func (s *Server) createProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromRequest(r)

	var input struct {
		DisplayName string `json:"display_name"`
	}
	if !s.readJSON(w, r, &input) {
		return
	}

	v := newValidator()
	v.checkDisplayName(input.DisplayName)
	if v.hasErrors() {
		s.writeError(w, http.StatusBadRequest, v.errors)
		return
	}

	principal := &models.Principal{ID: claims.PrincipalID, Email: claims.Email}
	profile, created, err := s.users.CreateProfile(r.Context(), principal, input.DisplayName)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, envelope{"profile": profile})
}

func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromRequest(r)

	var input struct {
		DisplayName string `json:"display_name"`
	}
	if !s.readJSON(w, r, &input) {
		return
	}

	v := newValidator()
	v.checkDisplayName(input.DisplayName)
	if v.hasErrors() {
		s.writeError(w, http.StatusBadRequest, v.errors)
		return
	}

	profile, err := s.users.UpdateDisplayName(r.Context(), claims.PrincipalID, input.DisplayName)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"profile": profile})
}
