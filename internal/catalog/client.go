package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Lookup resolves a product id to its current catalog entry. Implementations
// return ErrNotFound when the product does not exist.
type Lookup interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
}

// Client is the Lookup backed by product-service over HTTP.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	cb      *gobreaker.CircuitBreaker[*Product]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: baseURL,
		cb: gobreaker.NewCircuitBreaker[*Product](gobreaker.Settings{
			Name:        "catalog",
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 5 },
			// a missing product is an answer, not an outage
			IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, ErrNotFound) },
		}),
	}
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := c.cb.Execute(func() (*Product, error) { return c.fetch(ctx, id) })
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("catalog unavailable: %w", err)
	}
	return p, err
}

func (c *Client) fetch(ctx context.Context, id string) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%s", c.BaseURL, url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("catalog get %s: %s", id, res.Status)
	}

	var p Product
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	return &p, nil
}
