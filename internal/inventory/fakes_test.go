package inventory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

var errBackend = errors.New("backend down")

type call struct {
	Op      string
	ID      models.ProductID
	Product models.Product
	Input   models.ProductInput
}

// fakeRepo is an in-memory Repository that records every call.
type fakeRepo struct {
	mu       sync.Mutex
	products []models.Product
	calls    []call
	fail     bool
	nextID   int
	// gate, when set, blocks every call until it is closed or ctx ends.
	gate chan struct{}
}

func newFakeRepo(products ...models.Product) *fakeRepo {
	return &fakeRepo{products: products, nextID: 100}
}

func (r *fakeRepo) record(ctx context.Context, c call) error {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	gate, fail := r.gate, r.fail
	r.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		return errBackend
	}
	return nil
}

func (r *fakeRepo) Calls() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func (r *fakeRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	if err := r.record(ctx, call{Op: "list"}); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Product(nil), r.products...), nil
}

func (r *fakeRepo) GetProduct(ctx context.Context, id models.ProductID) (models.Product, error) {
	if err := r.record(ctx, call{Op: "get", ID: id}); err != nil {
		return models.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, errBackend
}

func (r *fakeRepo) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	if err := r.record(ctx, call{Op: "create", Input: in}); err != nil {
		return models.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p := models.Product{
		ID:   models.ProductID(strconv.Itoa(r.nextID)),
		Name: in.Name, Description: in.Description, Quantity: in.Quantity, Price: in.Price,
	}
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *fakeRepo) UpdateProduct(ctx context.Context, id models.ProductID, p models.Product) (models.Product, error) {
	if err := r.record(ctx, call{Op: "update", ID: id, Product: p}); err != nil {
		return models.Product{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, errBackend
}

func (r *fakeRepo) DeleteProduct(ctx context.Context, id models.ProductID) error {
	if err := r.record(ctx, call{Op: "delete", ID: id}); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return errBackend
}

type fakePrompter struct {
	confirm bool
	alerts  []string
	asked   int
}

func (p *fakePrompter) Alert(title, message string) {
	p.alerts = append(p.alerts, title)
}

func (p *fakePrompter) Confirm(title, message string) bool {
	p.asked++
	return p.confirm
}

func newDeps(repo Repository, confirm bool) (Deps, *StackNavigator, *fakePrompter) {
	nav := NewStackNavigator(RouteHome, nil)
	prompter := &fakePrompter{confirm: confirm}
	return Deps{
		Repo:     repo,
		Nav:      nav,
		Prompter: prompter,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nav, prompter
}

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Widget A", Description: "small", Quantity: "5", Price: "2.50"},
		{ID: "2", Name: "Gadget B", Description: "large", Quantity: "20", Price: "10"},
	}
}
