package api

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

	"github.com/trackr-app/trackr/pkg/api"
)

// DefaultTimeout is the per-request timeout applied to every call.
const DefaultTimeout = 10 * time.Second

// TokenSource yields the current access token, or "" when the session is
// unauthenticated. Implemented by session.Manager.
type TokenSource interface {
	Token() string
}

// Client is the single configured HTTP client for the trackr backend.
// Requests carry "Authorization: Token <v>" when a token is available;
// an absent token sends the request unauthenticated rather than failing.
// Every error returned by Do is a *api.Error with a normalized message,
// and a 401 response triggers the unauthorized hook before returning.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
}

// NewClient creates an API client for the given base URL. tokens may be
// nil for a client that only hits unauthenticated endpoints.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Carry the Authorization header across redirects.
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetUnauthorizedHook registers the callback invoked when any request
// receives HTTP 401. The session wires its clear here.
func (c *Client) SetUnauthorizedHook(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

// Do performs one JSON request against the backend. body and result may
// be nil. All failures come back as *api.Error: HTTP errors carry the
// normalized body message, timeouts and connection failures carry their
// fixed messages.
func (c *Client) Do(ctx context.Context, method, path string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return api.NewNetworkError()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := api.NewHTTPError(resp.StatusCode, respBody)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// classifyTransportError distinguishes "the server took too long" from
// "we never reached the server". Both get fixed, recognizable messages.
func classifyTransportError(err error) *api.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return api.NewTimeoutError()
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return api.NewTimeoutError()
	}

	return api.NewNetworkError()
}
