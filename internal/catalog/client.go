package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/gogoldh/mobile-app/internal/domain"
)

// DefaultCacheTTL is how long a fetched product list is served without
// contacting the commerce API again.
const DefaultCacheTTL = 5 * time.Minute

// Client fetches the product collection from the remote commerce API and
// normalizes its heterogeneous response shapes into flat domain.Product
// records. Product listing is best-effort: when the upstream is down the
// client serves the last good list if it has one.
type Client struct {
	httpClient *http.Client
	url        string
	token      string

	breaker  *gobreaker.CircuitBreaker[[]domain.Product]
	sfg      singleflight.Group // collapses concurrent refreshes
	cacheTTL time.Duration

	mu       sync.RWMutex
	cached   []domain.Product
	cachedAt time.Time
	hasCache bool
}

// NewClient builds a catalog client for the given collection endpoint.
// The token is sent as a Bearer credential on every request.
func NewClient(url, token string, cacheTTL time.Duration) *Client {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		url:        url,
		token:      token,
		cacheTTL:   cacheTTL,
		breaker: gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
			Name:    "catalog",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("circuit breaker %q: %s -> %s", name, from, to)
			},
		}),
	}
}

// Products returns the normalized product list. A fresh cached list is served
// directly; otherwise one refresh runs (concurrent callers share it via
// singleflight). On upstream failure the last good list is returned with a
// nil error; only a client that has never fetched successfully reports the
// failure, alongside an empty list.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	if products, ok := c.freshCache(); ok {
		return products, nil
	}

	v, err, _ := c.sfg.Do("products", func() (interface{}, error) {
		products, fetchErr := c.breaker.Execute(func() ([]domain.Product, error) {
			return c.fetch(ctx)
		})
		if fetchErr != nil {
			if stale, ok := c.anyCache(); ok {
				log.Printf("catalog fetch failed, serving stale list: %v", fetchErr)
				return stale, nil
			}
			return nil, fetchErr
		}

		c.mu.Lock()
		c.cached = products
		c.cachedAt = time.Now()
		c.hasCache = true
		c.mu.Unlock()
		return products, nil
	})
	if err != nil {
		return []domain.Product{}, err
	}
	return copyProducts(v.([]domain.Product)), nil
}

func (c *Client) freshCache() ([]domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasCache || time.Since(c.cachedAt) > c.cacheTTL {
		return nil, false
	}
	return copyProducts(c.cached), true
}

func (c *Client) anyCache() ([]domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasCache {
		return nil, false
	}
	return copyProducts(c.cached), true
}

func (c *Client) fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("accept-version", "1.0.0")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: %s %s", resp.Status, c.url)
	}

	var envelope wireEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	return normalize(envelope), nil
}

func copyProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}
