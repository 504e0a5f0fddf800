package factorio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the default factorio web backend URL.
	DefaultBaseURL = "http://localhost:8001"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string sent with API requests.
	UserAgent = "factorio-dash/dev (https://github.com/steviee/factorio-dash)"

	// RequestIDHeader carries the per-request correlation ID.
	RequestIDHeader = "X-Request-ID"
)

// Client is a factorio web backend client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Config holds client configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Logger    *slog.Logger
}

// NewClient creates a new backend client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	if config.UserAgent == "" {
		config.UserAgent = UserAgent
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("creating factorio backend client",
		"base_url", config.BaseURL,
		"timeout", config.Timeout)

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{Timeout: config.Timeout},
		userAgent:  config.UserAgent,
		logger:     logger,
	}
}

// BaseURL returns the backend URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request. Any failure to obtain a response is
// returned as a TransportError.
func (c *Client) doRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("backend request",
		"method", method,
		"url", url,
		"request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}

	c.logger.Debug("backend response",
		"request_id", requestID,
		"status", resp.StatusCode)

	return resp, nil
}

// get issues a GET request and returns the body of a successful response.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	return readResponse(resp, http.MethodGet+" "+path)
}

// post issues a POST request and returns the body of a successful response.
func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, contentType, body)
	if err != nil {
		return nil, err
	}
	return readResponse(resp, http.MethodPost+" "+path)
}

// readResponse drains and closes the body, converting non-2xx statuses
// into ApplicationErrors.
func readResponse(resp *http.Response, op string) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseErrorResponse(resp.StatusCode, data)
	}

	return data, nil
}
