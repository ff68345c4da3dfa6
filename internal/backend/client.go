// Package backend implements the typed HTTP client for the pharmacy
// REST backend. It centralizes the base URL, attaches the session's
// bearer token to outgoing requests, and turns error responses into
// Go errors, with 401 mapped to ErrUnauthorized so the HTTP layer can
// apply the global logout-and-redirect policy in one place.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrUnauthorized reports that the backend rejected the bearer
	// token. Individual screens never handle it; the session is
	// destroyed and the user is sent back to the login page.
	ErrUnauthorized = errors.New("backend: unauthorized")

	// ErrNotFound reports a 404 for a specific record.
	ErrNotFound = errors.New("backend: not found")
)

// Error is a non-401 failure response, carrying the server-provided
// message when one was present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Client talks to the pharmacy backend. All methods take the bearer
// token explicitly; an empty token sends no Authorization header.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// New constructs a Client for the given base URL (including the /api
// prefix).
func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log,
	}
}

// do issues one request and decodes the JSON response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return &Error{Status: resp.StatusCode, Message: extractMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// extractMessage pulls the human-readable message out of an error
// body. The backend is inconsistent about the field name, so both
// "message" and "error" are accepted.
func extractMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func queryPath(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
