package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/medixpharma/pharmadmin/internal/models"
	"github.com/medixpharma/pharmadmin/internal/service"
)

type fakeSearchBackend struct {
	mu      sync.Mutex
	calls   []string
	delayed map[string]time.Duration
	results []models.SearchResult
	err     error
}

func (f *fakeSearchBackend) Search(ctx context.Context, token, query string) ([]models.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	delay := f.delayed[query]
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return f.results, f.err
}

func (f *fakeSearchBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestSearcher_EmptyQuerySkipsBackend(t *testing.T) {
	fb := &fakeSearchBackend{}
	s := service.NewSearcher(fb, time.Millisecond)

	results, err := s.Query(context.Background(), "tok", "sess", "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Fatalf("expected cleared results, got %v", results)
	}
	if fb.callCount() != 0 {
		t.Fatalf("backend must not be contacted for an empty query, got %d calls", fb.callCount())
	}
}

// A burst of keystrokes inside the window collapses to exactly one
// backend request, carrying the last query.
func TestSearcher_CoalescesBursts(t *testing.T) {
	fb := &fakeSearchBackend{results: []models.SearchResult{{ID: "1", Type: "PRODUCT"}}}
	s := service.NewSearcher(fb, 40*time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i, q := range []string{"a", "as", "asp"} {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			_, errs[i] = s.Query(context.Background(), "tok", "sess", q)
		}(i, q)
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	if fb.callCount() != 1 {
		t.Fatalf("expected exactly one backend call per settled pause, got %d", fb.callCount())
	}
	if fb.calls[0] != "asp" {
		t.Errorf("expected the settled query to win, backend saw %q", fb.calls[0])
	}
	superseded := 0
	for _, err := range errs {
		if errors.Is(err, service.ErrSuperseded) {
			superseded++
		}
	}
	if superseded != 2 {
		t.Errorf("expected 2 superseded queries, got %d", superseded)
	}
}

// A response that arrives after a newer query was issued must be
// discarded, not rendered over fresher results.
func TestSearcher_DiscardsStaleInFlightResponse(t *testing.T) {
	fb := &fakeSearchBackend{
		delayed: map[string]time.Duration{"slow": 80 * time.Millisecond},
	}
	s := service.NewSearcher(fb, 5*time.Millisecond)

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = s.Query(context.Background(), "tok", "sess", "slow")
	}()

	// Let "slow" pass its window and enter flight, then supersede it.
	time.Sleep(30 * time.Millisecond)
	if _, err := s.Query(context.Background(), "tok", "sess", "fresh"); err != nil {
		t.Fatalf("unexpected error on fresh query: %v", err)
	}
	wg.Wait()

	if !errors.Is(slowErr, service.ErrSuperseded) {
		t.Fatalf("stale response must be discarded, got %v", slowErr)
	}
}

func TestSearcher_SessionsAreIndependent(t *testing.T) {
	fb := &fakeSearchBackend{}
	s := service.NewSearcher(fb, time.Millisecond)

	var wg sync.WaitGroup
	for _, key := range []string{"s1", "s2"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			if _, err := s.Query(context.Background(), "tok", key, "aspirin"); err != nil {
				t.Errorf("session %s: unexpected error: %v", key, err)
			}
		}(key)
	}
	wg.Wait()

	if fb.callCount() != 2 {
		t.Fatalf("independent sessions must not supersede each other, got %d calls", fb.callCount())
	}
}

func TestSearcher_ContextCancellation(t *testing.T) {
	fb := &fakeSearchBackend{}
	s := service.NewSearcher(fb, 200*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Query(ctx, "tok", "sess", "aspirin")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if fb.callCount() != 0 {
		t.Fatal("cancelled query must not reach the backend")
	}
}
