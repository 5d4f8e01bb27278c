package inventory

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

// Row is one displayed list entry.
type Row struct {
	Product  models.Product
	LowStock bool
}

// RestockPrompt is the open quantity-delta prompt.
type RestockPrompt struct {
	Target models.Product
	Amount string
}

// ListView is the hub screen: every product, a search box and the restock
// prompt.
type ListView struct {
	Deps
	scope scope

	mu       sync.Mutex
	products []models.Product
	query    string
	restock  *RestockPrompt
}

func NewListView(deps Deps) *ListView {
	return &ListView{Deps: deps}
}

// Focus re-fetches the full list and replaces the current one. On failure
// the previous list stays.
func (v *ListView) Focus(ctx context.Context) error {
	ctx, life, release := v.scope.bind(ctx)
	defer release()

	products, err := v.Repo.ListProducts(ctx)
	if life.Err() != nil {
		return ErrViewClosed
	}
	if err != nil {
		logFailure(v.logger(), "failed to fetch products", err)
		return err
	}

	v.mu.Lock()
	v.products = products
	v.mu.Unlock()
	return nil
}

// Unmount cancels in-flight calls and drops their results.
func (v *ListView) Unmount() {
	v.scope.close()
}

// Products returns the last fetched list.
func (v *ListView) Products() []models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Product, len(v.products))
	copy(out, v.products)
	return out
}

func (v *ListView) SetQuery(q string) {
	v.mu.Lock()
	v.query = q
	v.mu.Unlock()
}

func (v *ListView) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Rows returns the products matching the search query with their low-stock
// marker.
func (v *ListView) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()

	visible := FilterByName(v.query, v.products)
	rows := make([]Row, len(visible))
	for i, p := range visible {
		rows[i] = Row{Product: p, LowStock: IsLowStock(p)}
	}
	return rows
}

// Open shows the detail screen of a product.
func (v *ListView) Open(id models.ProductID) {
	v.Nav.Navigate(RouteDetailsProduct, Params{ProductID: id})
}

// Add shows the create form.
func (v *ListView) Add() {
	v.Nav.Navigate(RouteAddProduct, Params{})
}

// BeginRestock opens the restock prompt for a listed product.
func (v *ListView) BeginRestock(id models.ProductID) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.indexOf(id)
	if i < 0 {
		return ErrUnknownProduct
	}
	v.restock = &RestockPrompt{Target: v.products[i]}
	return nil
}

func (v *ListView) SetRestockAmount(amount string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.restock != nil {
		v.restock.Amount = amount
	}
}

// Restock returns the open prompt, if any.
func (v *ListView) Restock() (RestockPrompt, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.restock == nil {
		return RestockPrompt{}, false
	}
	return *v.restock, true
}

func (v *ListView) CancelRestock() {
	v.mu.Lock()
	v.restock = nil
	v.mu.Unlock()
}

// ConfirmRestock sends the target with its quantity raised by the prompt
// amount. The server's record replaces the list entry and the prompt closes.
// On failure the list and the prompt are left as they were.
func (v *ListView) ConfirmRestock(ctx context.Context) (models.Product, error) {
	v.mu.Lock()
	if v.restock == nil {
		v.mu.Unlock()
		return models.Product{}, ErrNoRestock
	}
	prompt := *v.restock
	v.mu.Unlock()

	qty, err := RestockQuantity(prompt.Target.Quantity, models.Quantity(prompt.Amount))
	if err != nil {
		v.logger().Error("failed to restock product", "id", prompt.Target.ID, "error", err)
		return models.Product{}, err
	}
	record := prompt.Target
	record.Quantity = qty

	ctx, life, release := v.scope.bind(ctx)
	defer release()

	updated, err := v.Repo.UpdateProduct(ctx, record.ID, record)
	if life.Err() != nil {
		return models.Product{}, ErrViewClosed
	}
	if err != nil {
		logFailure(v.logger(), "failed to restock product", err)
		return models.Product{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.indexOf(prompt.Target.ID); i >= 0 {
		v.products[i] = updated
	}
	v.restock = nil
	return updated, nil
}

// Delete asks for confirmation, deletes the product and drops it from the
// list without a re-fetch.
func (v *ListView) Delete(ctx context.Context, id models.ProductID) error {
	if !v.confirmDelete() {
		return ErrDeclined
	}

	ctx, life, release := v.scope.bind(ctx)
	defer release()

	err := v.Repo.DeleteProduct(ctx, id)
	if life.Err() != nil {
		return ErrViewClosed
	}
	if err != nil {
		logFailure(v.logger(), "failed to delete product", err)
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.indexOf(id); i >= 0 {
		v.products = append(v.products[:i:i], v.products[i+1:]...)
	}
	return nil
}

func (v *ListView) indexOf(id models.ProductID) int {
	for i, p := range v.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
