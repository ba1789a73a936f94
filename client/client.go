// Package client is the REST client for the MindTrack API. It owns transport
// plumbing only: request building, auth headers, and error extraction. The
// data package layers caching and normalization on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// TokenStore abstracts where the session token lives. Token storage itself is
// an external collaborator; the client only reads, writes and clears through
// this interface.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// MemoryTokenStore is a process-local TokenStore, used in tests and as a
// fallback when no system keyring is available.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// Token returns the stored token, or an empty string if none is set.
func (s *MemoryTokenStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// SetToken stores a token.
func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// APIError is a non-2xx response from the backend. Message carries the
// backend's message field through unmodified for the UI layer to render.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client talks to one MindTrack API server.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// New creates a client for the given base URL (e.g. http://localhost:5000/api).
// If tokens is nil an in-memory store is used.
func New(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// Tokens exposes the client's token store, so the frontend can share it.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// errorMessage digs the backend's message field out of an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// do sends one request and returns the raw response body. A 401 clears the
// stored token before the error is returned, mirroring the session-expiry
// handling of the web UI.
func (c *Client) do(ctx context.Context, method, path string, params map[string]string, body interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if len(params) > 0 {
		q := url.Values{}
		for name, value := range params {
			q.Set(name, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	token, err := c.tokens.Token()
	if err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}
	if len(respBody) == 0 {
		return nil, nil
	}
	return respBody, nil
}
