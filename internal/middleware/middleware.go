// Package middleware provides HTTP middlewares for session loading,
// role-gated routing and request logging.
package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/nav"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "pharmadmin_session"

// SessionLoader resolves a cookie value to a persisted session.
type SessionLoader interface {
	Session(ctx context.Context, id string) (*models.Session, error)
}

// WithSession resolves the session cookie, if any, and stores the
// session in the request context. A missing or unknown cookie is not
// an error here; the guard decides what an anonymous request may
// reach.
func WithSession(loader SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				if session, err := loader.Session(r.Context(), cookie.Value); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), sessionKey, session))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext extracts the session stored by WithSession.
// Returns nil for anonymous requests.
func SessionFromContext(ctx context.Context) *models.Session {
	if s, ok := ctx.Value(sessionKey).(*models.Session); ok {
		return s
	}
	return nil
}

// Guard re-evaluates the route table on every navigation. Paths
// outside the table fall through to the router's own 404 handling.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule, ok := nav.Match(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		switch out := nav.Decide(SessionFromContext(r.Context()), rule, r.URL.Path); out.Decision {
		case nav.Render:
			next.ServeHTTP(w, r)
		case nav.Redirect:
			http.Redirect(w, r, out.Path, http.StatusFound)
		case nav.RenderNothing:
			w.WriteHeader(http.StatusNoContent)
		}
	})
}

// RequireRole guards entity operations that are not screen routes
// (deletes and similar). It assumes WithSession ran earlier in the
// chain.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromContext(r.Context())
			if session == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "insufficient permissions", http.StatusForbidden)
		})
	}
}

// statusWriter captures the response code for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// WithRequestLogging logs each request and its metadata.
func WithRequestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
