package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"rutilahu/pkg/types"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const contextKeyPrincipal contextKey = "principal"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth resolves the caller from the session cookie, falling back to
// an Authorization bearer token for non-browser clients, and stores the
// verified principal on the request context.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := s.tokenFromRequest(r)
		if err != nil {
			s.respondError(w, r, types.ErrInvalidToken)
			return
		}

		principal, err := s.tokens.Verify(raw)
		if err != nil {
			s.logger.WithError(err).Debug("token verification failed")
			s.respondError(w, r, types.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyPrincipal, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(s.config.CookieName); err == nil {
		var raw string
		if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &raw); err != nil {
			return "", err
		}
		return raw, nil
	}

	header := r.Header.Get("Authorization")
	if raw, ok := strings.CutPrefix(header, "Bearer "); ok && raw != "" {
		return raw, nil
	}

	return "", types.ErrInvalidToken
}

// RequireRole gates a route group to the listed roles. It must run after
// RequireAuth.
func (s *Service) RequireRole(roles ...types.Role) func(http.Handler) http.Handler {
	allowed := make(map[types.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := s.principalFromContext(r.Context())
			if err != nil {
				s.respondError(w, r, types.ErrInvalidToken)
				return
			}

			if _, ok := allowed[principal.Role]; !ok {
				s.logger.WithFields(logrus.Fields{
					"user_id": principal.UserID,
					"role":    principal.Role,
					"path":    r.URL.Path,
				}).Warn("role denied")
				s.respondError(w, r, types.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
