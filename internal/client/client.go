// Package client talks to the remote items API that stores product records.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-client/internal/models"
)

// ErrInvalidBaseURL is returned by New when the base URL is unusable.
var ErrInvalidBaseURL = errors.New("invalid items api base url")

const itemsPath = "/items"

// Client is a thin wrapper over the five /items calls. It never retries and
// keeps no cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	requestID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets an overall per-request timeout. Zero keeps the transport
// default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithRequestIDs overrides the X-Request-ID generator.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) { c.requestID = gen }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{},
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string { return c.baseURL }

// ListProducts fetches every product (GET /items).
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, "list products", http.MethodGet, itemsPath, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product (GET /items/{id}).
func (c *Client) GetProduct(ctx context.Context, id models.ProductID) (models.Product, error) {
	var p models.Product
	if err := c.do(ctx, "get product", http.MethodGet, itemPath(id), nil, &p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// CreateProduct posts a new record (POST /items). The server assigns the id.
func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	var p models.Product
	if err := c.do(ctx, "create product", http.MethodPost, itemsPath, in, &p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// UpdateProduct replaces the full record (PUT /items/{id}) and returns the
// server's canonical copy.
func (c *Client) UpdateProduct(ctx context.Context, id models.ProductID, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = id
	}
	var updated models.Product
	if err := c.do(ctx, "update product", http.MethodPut, itemPath(id), p, &updated); err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// DeleteProduct removes a record (DELETE /items/{id}). Deleting an id that is
// already gone is reported like any other failure.
func (c *Client) DeleteProduct(ctx context.Context, id models.ProductID) error {
	return c.do(ctx, "delete product", http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id models.ProductID) string {
	return itemsPath + "/" + url.PathEscape(id.String())
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	reqErr := &RequestError{
		Op:        op,
		Method:    method,
		URL:       c.baseURL + path,
		RequestID: c.requestID(),
	}

	var body io.Reader
	if in != nil {
		var err error
		if body, err = writeJSON(in); err != nil {
			reqErr.Err = err
			return reqErr
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqErr.URL, body)
	if err != nil {
		reqErr.Err = err
		return reqErr
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqErr.RequestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqErr.Err = err
		return reqErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr.StatusCode = resp.StatusCode
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		reqErr.Err = fmt.Errorf("%w: %s", errUnexpectedStatus, strings.TrimSpace(string(msg)))
		return reqErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := readJSON(resp.Body, out); err != nil {
		reqErr.StatusCode = resp.StatusCode
		reqErr.Err = err
		return reqErr
	}
	return nil
}
