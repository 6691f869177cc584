package httpapi

import (
	"net/http"
)

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, envelope{"status": "available"})
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !s.readJSON(w, r, &input) {
		return
	}

	v := newValidator()
	v.checkEmail(input.Email)
	v.checkPassword(input.Password)
	if v.hasErrors() {
		s.writeError(w, http.StatusBadRequest, v.errors)
		return
	}

	principal, err := s.identity.Register(r.Context(), input.Email, input.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, envelope{
		"principal": map[string]string{"id": principal.ID, "email": principal.Email},
	})
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !s.readJSON(w, r, &input) {
		return
	}

	pair, err := s.identity.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"tokens": pair})
}

func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if !s.readJSON(w, r, &input) {
		return
	}

	pair, err := s.identity.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"tokens": pair})
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if !s.readJSON(w, r, &input) {
		return
	}

	if err := s.identity.Logout(r.Context(), input.RefreshToken); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"status": "logged out"})
}
