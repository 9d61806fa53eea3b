package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pricecart/backend/internal/domain"
)

const feedMaxAttempts = 3

// feedProduct is one product as published by a catalog feed.
type feedProduct struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Keywords []string           `json:"keywords"`
	Unit     string             `json:"unit"`
	Prices   map[string]float64 `json:"prices"`
}

type feedResponse struct {
	Products []feedProduct `json:"products"`
}

// FeedClient downloads the catalog from a remote JSON feed.
type FeedClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewFeedClient creates a feed client for baseURL. A zero timeout means 30s.
func NewFeedClient(baseURL string, timeout time.Duration) *FeedClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &FeedClient{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// SetDebug toggles request logging.
func (c *FeedClient) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retrying after the given attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

func (c *FeedClient) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PriceCart/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return resp, nil
}

// LoadProducts fetches {baseURL}/products. Transport failures and non-200
// answers are retried with backoff; a malformed body is not.
func (c *FeedClient) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	reqURL := c.baseURL + "/products"

	var lastErr error
	for attempt := 1; attempt <= feedMaxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		if c.debug {
			log.Printf("[CATALOG] GET %s (attempt %d)", reqURL, attempt)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			if err := sleepContext(ctx, exponentialBackoff(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, readErr)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			log.Printf("[CATALOG] Feed error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if err := sleepContext(ctx, exponentialBackoff(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		var feed feedResponse
		if err := json.Unmarshal(body, &feed); err != nil {
			return nil, fmt.Errorf("%w: decode feed: %v", domain.ErrInvalidCatalog, err)
		}

		products, err := feedToProducts(feed.Products)
		if err != nil {
			return nil, err
		}

		if c.debug {
			log.Printf("[CATALOG] Feed returned %d products", len(products))
		}
		return products, nil
	}

	log.Printf("[CATALOG] All retries failed for %s", reqURL)
	return nil, lastErr
}

func feedToProducts(in []feedProduct) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(in))
	for _, fp := range in {
		prices := make(map[domain.Store]float64, len(fp.Prices))
		for key, price := range fp.Prices {
			store, err := domain.ParseStore(key)
			if err != nil {
				return nil, fmt.Errorf("%w: product %s: %w", domain.ErrInvalidCatalog, fp.ID, err)
			}
			prices[store] = price
		}

		p, err := domain.NewProduct(fp.ID, fp.Name, fp.Unit, fp.Keywords, prices)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
