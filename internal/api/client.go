// Package api talks to the procurement backend: the catalog read endpoint and the cart write endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/service"
)

const (
	findItemPath = "/finditem"
	goCartPath   = "/goCart"

	// IdempotencyHeader carries the per-submission key on cart posts.
	IdempotencyHeader = "Idempotency-Key"

	maxErrorBody = 4096
)

// Config configures the API client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Retry   service.RetryOptions
}

// Client implements service.CatalogAPI over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	retry      service.RetryOptions
}

// NewClient creates a client for the backend at cfg.BaseURL authenticated with cfg.Token.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: api base URL", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("%w: api base URL must be http(s): %s", common.ErrInvalidConfig, baseURL)
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, common.ErrUnauthenticated
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		retry:   cfg.Retry,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchItems performs GET /finditem and applies client defaults to every item.
func (c *Client) FetchItems(ctx context.Context) ([]model.CatalogItem, error) {
	var items []model.CatalogItem

	err := common.WithRetry(ctx, func() error {
		fetched, err := c.fetchItems(ctx)
		if err != nil {
			return err
		}
		items = fetched
		return nil
	}, c.retry)
	if err != nil {
		return nil, err
	}

	return model.WithClientDefaults(items), nil
}

func (c *Client) fetchItems(ctx context.Context) ([]model.CatalogItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+findItemPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	slog.Debug("Requesting catalog", "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w: %w", common.ErrCatalogUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, common.ErrCatalogUnavailable); err != nil {
		return nil, err
	}

	var items []model.CatalogItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	slog.Debug("Catalog fetched", "items", len(items))

	return items, nil
}

// AddToCart performs POST /goCart with the lines as a JSON array. Cart posts are never retried.
func (c *Client) AddToCart(ctx context.Context, lines []model.CartLine, idempotencyKey string) error {
	if lines == nil {
		lines = []model.CartLine{}
	}

	body, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+goCartPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyHeader, idempotencyKey)
	}

	slog.Debug("Posting cart", "lines", len(lines), "idempotency_key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post cart: %w: %w", common.ErrCartRejected, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp, common.ErrCartRejected); err != nil {
		return err
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
}

// checkStatus maps a non-2xx response to a StatusError wrapping kind,
// also wrapping ErrUnauthenticated for 401 and 403 and ErrRateLimit for 429.
func checkStatus(resp *http.Response, kind error) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = fmt.Errorf("%w: %w", kind, common.ErrUnauthenticated)
	case http.StatusTooManyRequests:
		kind = fmt.Errorf("%w: %w", kind, common.ErrRateLimit)
	}

	return &common.StatusError{
		Err:        kind,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
