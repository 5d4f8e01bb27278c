package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-client/internal/itemsapi"
	"github.com/rogerio-castellano/inventory-client/internal/models"
)

func newTestServer(t *testing.T, seed ...models.Product) (*Client, *itemsapi.Store) {
	t.Helper()
	store := itemsapi.NewStore(seed...)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(itemsapi.NewRouter(itemsapi.NewHandler(store, log), nil))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c, store
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:5000", "ftp://host/x", "http://"} {
		if _, err := New(raw); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("%q: expected ErrInvalidBaseURL, got %v", raw, err)
		}
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := New("http://192.168.1.102:5000/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.BaseURL() != "http://192.168.1.102:5000" {
		t.Errorf("unexpected base url %q", c.BaseURL())
	}
}

func TestListProducts(t *testing.T) {
	c, _ := newTestServer(t, itemsapi.SeedProducts()...)

	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[0].ID != "1" || products[0].Quantity != "1943" {
		t.Errorf("unexpected first product %+v", products[0])
	}
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	created, err := c.CreateProduct(ctx, models.ProductInput{
		Name: "Widget A", Description: "Blue widget", Quantity: "5", Price: "9.99",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}

	got, err := c.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Widget A" || got.Description != "Blue widget" || got.Price != "9.99" {
		t.Errorf("fields differ after round trip: %+v", got)
	}
	n, err := got.Quantity.Int()
	if err != nil || n != 5 {
		t.Errorf("expected quantity 5, got %q", got.Quantity)
	}
}

func TestUpdateProduct_ReturnsCanonicalRecord(t *testing.T) {
	c, _ := newTestServer(t, itemsapi.SeedProducts()...)
	ctx := context.Background()

	p, err := c.GetProduct(ctx, "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Quantity = "12"

	updated, err := c.UpdateProduct(ctx, p.ID, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != "12" || updated.ID != "2" {
		t.Errorf("unexpected updated record %+v", updated)
	}
}

func TestDeleteProduct(t *testing.T) {
	c, _ := newTestServer(t, itemsapi.SeedProducts()...)
	ctx := context.Background()

	if err := c.DeleteProduct(ctx, "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products, err := c.ListProducts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range products {
		if p.ID == "1" {
			t.Fatal("deleted product still listed")
		}
	}

	err = c.DeleteProduct(ctx, "1")
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed on second delete, got %v", err)
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 detail, got %v", err)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.GetProduct(context.Background(), "42")
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("expected ErrRequestFailed, got %v", err)
	}
}

func TestMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"wrong shape", `{"items": []}`},
		{"wrong field type", `[{"id":1,"name":5}]`},
		{"trailing value", `[] []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c, _ := New(srv.URL)
			_, err := c.ListProducts(context.Background())
			if !errors.Is(err, ErrRequestFailed) {
				t.Errorf("expected ErrRequestFailed, got %v", err)
			}
		})
	}
}

func TestConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := New(url)
	if _, err := c.ListProducts(context.Background()); !errors.Is(err, ErrRequestFailed) {
		t.Errorf("expected ErrRequestFailed, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, _ := New(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ListProducts(ctx)
	if !errors.Is(err, ErrRequestFailed) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected cancelled request failure, got %v", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotID, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":1,"name":"a","description":"b","quantity":"0","price":"1"}`)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, WithRequestIDs(func() string { return "req-1" }), WithTimeout(time.Second))
	if _, err := c.CreateProduct(context.Background(), models.ProductInput{Name: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != "req-1" {
		t.Errorf("expected request id req-1, got %q", gotID)
	}
	if gotType != "application/json" {
		t.Errorf("expected json content type, got %q", gotType)
	}
}

type countingTransport struct {
	calls int
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.RoundTrip(r)
}

func TestWithHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	transport := &countingTransport{next: http.DefaultTransport}
	c, _ := New(srv.URL, WithHTTPClient(&http.Client{Transport: transport}), WithTimeout(time.Second))
	if _, err := c.ListProducts(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transport.calls != 1 {
		t.Errorf("expected the injected client to carry the request, got %d calls", transport.calls)
	}
}
