package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkaledin/teamtrack/internal/common"
)

// envelope wraps every JSON response body.
type envelope map[string]any

func (s *Server) writeJSON(w http.ResponseWriter, status int, data envelope) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.Error(context.Background(), "failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message any) {
	s.writeJSON(w, status, envelope{"error": message})
}

// writeServiceError maps the sentinel errors onto HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without leaking detail.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		s.writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		s.writeError(w, http.StatusForbidden, "forbidden")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
