package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/medixpharma/pharmadmin/internal/middleware"
	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/service"
)

// SearchRunner coalesces per-session search queries; the search
// service satisfies it.
type SearchRunner interface {
	Query(ctx context.Context, token, key, query string) ([]models.SearchResult, error)
}

// SearchHandler serves the top-bar cross-entity search. Each session
// has its own coalescing key, so one user's typing never cancels
// another's query.
type SearchHandler struct {
	Search SearchRunner
	Errs   *Errors
}

// Query runs the search. A query superseded by newer keystrokes from
// the same session answers 204 so the client drops it on the floor
// instead of rendering stale hits.
func (h *SearchHandler) Query(w http.ResponseWriter, r *http.Request) {
	key := "anonymous"
	if session := middleware.SessionFromContext(r.Context()); session != nil {
		key = session.ID
	}

	results, err := h.Search.Query(r.Context(), token(r), key, r.URL.Query().Get("query"))
	if err != nil {
		if errors.Is(err, service.ErrSuperseded) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.Errs.Backend(w, r, err)
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	respondJSON(w, http.StatusOK, results)
}
