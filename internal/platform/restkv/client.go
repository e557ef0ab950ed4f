// Package restkv implements store.KV against the external per-user document
// service, a plain REST surface:
//
//	GET    /<key>   -> JSON document (404 means not found)
//	POST   /<key>   -> overwrite document wholesale
//	DELETE /<key>   -> remove document
//
// Timeouts and retries are the HTTP client's business, not this package's.
package restkv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/minhokim/sejong-api/internal/store"
)

// Client implements store.KV over the remote document service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the document service at baseURL.
// If httpClient is nil, http.DefaultClient is used; if logger is nil, a
// default logger will be used.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "restkv_client")),
	}, nil
}

// Ensure Client implements store.KV
var _ store.KV = (*Client)(nil)

func (c *Client) keyURL(key string) string {
	return c.baseURL + "/" + url.PathEscape(key)
}

// Get implements store.KV.Get.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.keyURL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("document service request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read document body: %w", err)
		}
		// An empty body is treated the same as a missing key.
		if len(bytes.TrimSpace(body)) == 0 {
			return nil, store.ErrKeyNotFound
		}
		return body, nil
	case http.StatusNotFound, http.StatusNoContent:
		return nil, store.ErrKeyNotFound
	default:
		return nil, fmt.Errorf("document service returned status %d", resp.StatusCode)
	}
}

// Set implements store.KV.Set.
func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.keyURL(key), bytes.NewReader(value))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("document service request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("document service returned status %d", resp.StatusCode)
	}

	return nil
}

// Delete implements store.KV.Delete.
func (c *Client) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.keyURL(key), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("document service request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// A 404 on delete means the document was already gone.
	if resp.StatusCode != http.StatusNotFound && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return fmt.Errorf("document service returned status %d", resp.StatusCode)
	}

	return nil
}
