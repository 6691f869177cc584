package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/server/auth"
	"github.com/dkaledin/teamtrack/internal/server/models"
	"golang.org/x/time/rate"
)

type contextKey string

const (
	claimsContextKey  contextKey = "claims"
	profileContextKey contextKey = "profile"
)

func claimsFromRequest(r *http.Request) *auth.Claims {
	c, _ := r.Context().Value(claimsContextKey).(*auth.Claims)
	return c
}

func profileFromRequest(r *http.Request) *models.User {
	u, _ := r.Context().Value(profileContextKey).(*models.User)
	return u
}

// requireAuth verifies the bearer token and stashes its claims in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authHeader := r.Header.Get("Authorization")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.writeError(w, http.StatusUnauthorized, "invalid Authorization header")
			return
		}

		claims, err := auth.ParseToken(parts[1], []byte(s.config.SecretKey))
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				s.writeError(w, http.StatusUnauthorized, "token expired")
				return
			}
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requireProfile loads the caller's profile and stashes it in the
// context. Authenticated principals without a profile get a 403 telling
// them to create one first.
func (s *Server) requireProfile(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromRequest(r)

		profile, err := s.users.GetProfile(r.Context(), claims.PrincipalID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				s.writeError(w, http.StatusForbidden, "profile must be created first")
				return
			}
			s.writeServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if profile := profileFromRequest(r); profile == nil || !profile.IsAdmin {
			s.writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// rateLimit applies a per-client-IP token bucket. Stale client entries
// are swept once a minute; the sweeper runs until Close.
func (s *Server) rateLimit(next http.Handler) http.HandlerFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
			}
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) >= 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		mu.Lock()
		c, ok := clients[ip]
		if !ok {
			c = &client{limiter: rate.NewLimiter(rate.Limit(s.config.LimiterRPS), s.config.LimiterBurst)}
			clients[ip] = c
		}
		c.lastSeen = time.Now()
		allowed := c.limiter.Allow()
		mu.Unlock()

		if !allowed {
			s.writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) logRequests(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "request handled",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	}
}
