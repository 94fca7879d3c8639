// Package api implements the HTTP client for the QuickSwap backend.
// All calls are JSON over HTTP with bearer-token authorization; non-2xx
// responses are normalized into *Error values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnauthorized is returned when an authenticated call is attempted
// without a session token. The request is never issued.
var ErrUnauthorized = errors.New("not authenticated")

// fallbackMessage is shown when the server provides no usable error text.
const fallbackMessage = "Something went wrong"

// Error is a normalized backend error.
type Error struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is the server's message field, the raw body text, or a
	// generic fallback, in that order of preference.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// TokenSource returns the current bearer token, or "" when logged out.
type TokenSource func() string

// Client talks to the QuickSwap backend.
type Client struct {
	http    *http.Client
	baseURL string
	token   TokenSource
	log     *zap.Logger
}

// New constructs a Client. baseURL must not have a trailing slash. token
// may be nil for a client that only performs unauthenticated calls.
func New(baseURL string, token TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		log:     log,
	}
}

// WithHTTPClient replaces the underlying *http.Client. Used by tests to
// install a fake transport.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// newRequest builds a request with JSON body, request id and, when
// authed is set, the bearer token header. Returns ErrUnauthorized if an
// authenticated request is attempted without a token.
func (c *Client) newRequest(ctx context.Context, method, path string, body any, authed bool) (*http.Request, error) {
	var tok string
	if authed {
		tok = c.token()
		if tok == "" {
			return nil, ErrUnauthorized
		}
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// doJSON executes the request and decodes a JSON response into out.
// out may be nil when the body is irrelevant.
func (c *Client) doJSON(req *http.Request, out any) error {
	body, err := c.doRaw(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid response: %w", err)
	}
	return nil
}

// doText executes the request and returns the body as plain text. The
// auth endpoints answer with bare strings rather than JSON.
func (c *Client) doText(req *http.Request) (string, error) {
	body, err := c.doRaw(req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) doRaw(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := normalizeError(resp.StatusCode, body)
		c.log.Warn("backend error",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
		return nil, apiErr
	}
	return body, nil
}

// normalizeError converts a non-2xx response into *Error. Preference
// order: JSON message field, raw body text, generic fallback.
func normalizeError(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return &Error{Status: status, Message: payload.Message}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return &Error{Status: status, Message: text}
	}
	return &Error{Status: status, Message: fallbackMessage}
}
