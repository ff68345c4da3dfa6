// Package http implements the gateway's HTTP surface: the public
// auth endpoints and the guarded screen routes of the admin UI.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/medixpharma/pharmadmin/internal/backend"
	"github.com/medixpharma/pharmadmin/internal/middleware"
)

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionEnder destroys a persisted session; the auth service
// satisfies it.
type SessionEnder interface {
	Logout(ctx context.Context, id string) error
}

// SearchForgetter drops per-session search state; the search service
// satisfies it.
type SearchForgetter interface {
	Forget(key string)
}

// Errors is the single cross-cutting failure policy. A 401 from the
// backend destroys the session and forces navigation back to login,
// no matter which screen triggered it; every other backend failure is
// surfaced to the screen for an inline banner.
type Errors struct {
	Log      *zap.Logger
	Sessions SessionEnder
	Searches SearchForgetter
}

// EndSession tears down everything keyed by the session: the
// persisted row and the search state.
func (e *Errors) EndSession(ctx context.Context, id string) error {
	if e.Searches != nil {
		e.Searches.Forget(id)
	}
	return e.Sessions.Logout(ctx, id)
}

// Backend maps a backend client error onto an HTTP response.
func (e *Errors) Backend(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, backend.ErrUnauthorized) {
		if session := middleware.SessionFromContext(r.Context()); session != nil {
			if derr := e.EndSession(r.Context(), session.ID); derr != nil {
				e.Log.Error("failed to destroy session after 401", zap.Error(derr))
			}
		}
		clearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if errors.Is(err, backend.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	var be *backend.Error
	if errors.As(err, &be) {
		respondError(w, be.Status, be.Error())
		return
	}
	e.Log.Error("backend call failed", zap.Error(err))
	respondError(w, http.StatusBadGateway, "the pharmacy service is unavailable")
}

// token returns the bearer token of the current session, or "".
func token(r *http.Request) string {
	if session := middleware.SessionFromContext(r.Context()); session != nil {
		return session.Token
	}
	return ""
}

// sessionName returns the display name of the current session, or "".
func sessionName(r *http.Request) string {
	if session := middleware.SessionFromContext(r.Context()); session != nil {
		return session.Name
	}
	return ""
}
