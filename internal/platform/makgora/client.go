// Package makgora is the REST client for the Mak'gora backend API. All
// authoritative computation (auth issuance, points ledger, odds, RSS
// ingestion, moderation) lives behind this API; the client only fetches
// state and submits intents.
package makgora

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/usyj/makgora-client/internal/domain"
)

// Client is the typed HTTP client for the Mak'gora backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises client construction.
type Option func(*Client)

// WithTokenSource wires a token source into the client's transport so every
// request carries a bearer token and expired tokens are refreshed
// transparently.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.httpClient.Transport = newRefreshTransport(c.baseURL, c.httpClient.Transport, ts)
	}
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Mak'gora client for the given API root, e.g.
// "http://localhost:8080/api". Options are applied in order, so
// WithHTTPClient must precede WithTokenSource to take effect on the
// wrapped transport.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST request with an optional JSON body.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// put issues a PUT request with a JSON body.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// patch issues a PATCH request with an optional JSON body.
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// delete issues a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do builds, sends and decodes a single API call. Non-2xx responses are
// turned into *domain.APIError carrying the backend's message verbatim;
// 401 additionally wraps domain.ErrUnauthorized so callers can match it
// with errors.Is.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("makgora: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("makgora: create request %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("makgora: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("makgora: %s %s: %w: %w", method, path, domain.ErrUnauthorized, apiErr)
		}
		return fmt.Errorf("makgora: %s %s: %w", method, path, apiErr)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("makgora: decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeAPIError extracts the backend error message from a failed response.
// The backend is inconsistent about the field name, so both "error" and
// "message" are accepted.
func decodeAPIError(resp *http.Response) *domain.APIError {
	apiErr := &domain.APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
		} else if payload.Message != "" {
			apiErr.Message = payload.Message
		}
	}
	return apiErr
}
