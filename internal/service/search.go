package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/medixpharma/pharmadmin/internal/models"
)

// ErrSuperseded reports that a newer query for the same session
// arrived before this one settled or resolved; its result must be
// discarded, never rendered.
var ErrSuperseded = errors.New("search: superseded by a newer query")

// SearchBackend is the single call the searcher needs from the
// backend client.
type SearchBackend interface {
	Search(ctx context.Context, token, query string) ([]models.SearchResult, error)
}

// Searcher coalesces query bursts so at most one backend request is
// issued per settled typing pause. Every accepted query gets a
// monotonically increasing sequence number per session; a query that
// is no longer the latest when its window elapses, or when its
// response arrives, is dropped, so a slow stale response can never
// overwrite fresher results.
type Searcher struct {
	backend SearchBackend
	window  time.Duration

	mu     sync.Mutex
	latest map[string]uint64
}

// NewSearcher builds a Searcher with the given coalescing window.
func NewSearcher(backend SearchBackend, window time.Duration) *Searcher {
	return &Searcher{
		backend: backend,
		window:  window,
		latest:  make(map[string]uint64),
	}
}

// Query runs one debounced search for the session identified by key.
// An empty or whitespace-only query clears results without contacting
// the backend. A query superseded during the window or while in
// flight returns ErrSuperseded.
func (s *Searcher) Query(ctx context.Context, token, key, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.mu.Lock()
		s.latest[key]++ // an empty query still supersedes pending ones
		s.mu.Unlock()
		return []models.SearchResult{}, nil
	}

	s.mu.Lock()
	s.latest[key]++
	seq := s.latest[key]
	s.mu.Unlock()

	timer := time.NewTimer(s.window)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	if !s.isLatest(key, seq) {
		return nil, ErrSuperseded
	}

	results, err := s.backend.Search(ctx, token, query)

	// The response may have lost a race with a newer query.
	if !s.isLatest(key, seq) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	return results, nil
}

// Forget drops the sequence state for a session, e.g. on logout.
func (s *Searcher) Forget(key string) {
	s.mu.Lock()
	delete(s.latest, key)
	s.mu.Unlock()
}

func (s *Searcher) isLatest(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[key] == seq
}
