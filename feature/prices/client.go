package prices

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Upstream is the pricing mirror the cache refreshes from.
type Upstream interface {
	Groups(ctx context.Context) ([]Group, error)
	Prices(ctx context.Context, groupID int) ([]PriceRow, error)
}

// envelope is the wrapper TCGCSV puts around every listing.
type envelope[T any] struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
	Results []T      `json:"results"`
}

// TCGCSVClient reads groups and prices from a TCGCSV mirror.
type TCGCSVClient struct {
	client     *http.Client
	baseURL    string
	categoryID int
	userAgent  string
	limiter    *rate.Limiter
}

// NewTCGCSVClient creates a client for cfg.CategoryID.
func NewTCGCSVClient(cfg Config) *TCGCSVClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.BatchSize
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &TCGCSVClient{
		client:     &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		categoryID: cfg.CategoryID,
		userAgent:  cfg.UserAgent,
		limiter:    limiter,
	}
}

// Groups lists every group in the category.
func (c *TCGCSVClient) Groups(ctx context.Context) ([]Group, error) {
	return fetch[Group](ctx, c, fmt.Sprintf("%s/%d/groups", c.baseURL, c.categoryID))
}

// Prices lists every price row of one group.
func (c *TCGCSVClient) Prices(ctx context.Context, groupID int) ([]PriceRow, error) {
	return fetch[PriceRow](ctx, c, fmt.Sprintf("%s/%d/%d/prices", c.baseURL, c.categoryID, groupID))
}

func fetch[T any](ctx context.Context, c *TCGCSVClient, url string) ([]T, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream %s returned status %d", url, resp.StatusCode)
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}
	if !env.Success {
		msg := strings.Join(env.Errors, "; ")
		if msg == "" {
			msg = "success=false"
		}
		return nil, errors.New("upstream error: " + msg)
	}
	return env.Results, nil
}
