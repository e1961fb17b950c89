package docsearch

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
)

const defaultTimeout = 30 * time.Second

// Sentinel errors. Use errors.Is() to check.
var (
	// ErrUnauthorized indicates a missing or rejected API key.
	ErrUnauthorized = errors.New("docsearch: unauthorized")
	// ErrBadRequest indicates an invalid request (blank question, malformed body).
	ErrBadRequest = errors.New("docsearch: bad request")
	// ErrUnavailable indicates the service or one of its backends is down.
	ErrUnavailable = errors.New("docsearch: service unavailable")
)

// SearchResult is the response of the search endpoint.
type SearchResult struct {
	Question string `json:"question"`
	Result   string `json:"result"`
}

// Client is the docsearch API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures the Client.
type Option interface {
	apply(*Client)
}

type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *Client) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		c.http = hc
	})
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *Client) {
		c.http.Timeout = d
	})
}

// New creates a docsearch Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c
}

// Search asks the service a question and returns the formatted text
// block assembled from the document index.
func (c *Client) Search(ctx context.Context, question string) (SearchResult, error) {
	body, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return SearchResult{}, fmt.Errorf("docsearch: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/api/v1/search", bytes.NewReader(body),
	)
	if err != nil {
		return SearchResult{}, fmt.Errorf("docsearch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("docsearch: do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return SearchResult{}, statusError(resp)
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return SearchResult{}, fmt.Errorf("docsearch: decode response: %w", err)
	}
	return result, nil
}

// Health reports whether the service and its backends are up.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("docsearch: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("docsearch: do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

// statusError maps an HTTP error response onto a sentinel error,
// keeping the server message when one was returned.
func statusError(resp *http.Response) error {
	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		sentinel = ErrUnavailable
	default:
		return fmt.Errorf("docsearch: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return fmt.Errorf("%w: %s", sentinel, body.Message)
	}
	return sentinel
}
