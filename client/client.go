// Package client talks to the storefront API over HTTP.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sareecustoms/storefront-api/catalog"
	"github.com/sareecustoms/storefront-api/models"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront api: %d %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

type Client struct {
	http *resty.Client
}

type Option func(*resty.Client)

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(r *resty.Client) { r.SetAuthToken(token) }
}

func WithTimeout(d time.Duration) Option {
	return func(r *resty.Client) { r.SetTimeout(d) }
}

func New(baseURL string, opts ...Option) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(r)
	}
	return &Client{http: r}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(&errorBody{})
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		msg := http.StatusText(resp.StatusCode())
		if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
			msg = body.Error
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}

// ListProducts fetches the catalog narrowed by criteria and query.
func (c *Client) ListProducts(ctx context.Context, criteria catalog.Criteria, query string) ([]models.Product, error) {
	var products []models.Product
	resp, err := c.request(ctx).
		SetQueryParamsFromValues(catalog.Encode(criteria, query)).
		SetResult(&products).
		Get("/api/products")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetResult(&product).
		Get("/api/products/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	resp, err := c.request(ctx).SetResult(&tags).Get("/api/tags")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateOrder submits order and returns the id the API assigned.
func (c *Client) CreateOrder(ctx context.Context, order *models.Order) (string, error) {
	var result struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(order).
		SetResult(&result).
		Post("/api/orders")
	if err := check(resp, err); err != nil {
		return "", err
	}
	return result.ID, nil
}

func (c *Client) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	req := c.request(ctx)
	if userID != "" {
		req.SetQueryParam("userId", userID)
	}
	var orders []models.Order
	resp, err := req.SetResult(&orders).Get("/api/orders")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return orders, nil
}
