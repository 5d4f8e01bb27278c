package inventory

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

// DetailView shows one product read-only with edit and delete actions.
type DetailView struct {
	Deps
	scope scope

	mu      sync.Mutex
	id      models.ProductID
	product models.Product
}

func NewDetailView(deps Deps) *DetailView {
	return &DetailView{Deps: deps}
}

// Mount fetches the product. If the fetch fails the view is abandoned and the
// previous screen is shown.
func (v *DetailView) Mount(ctx context.Context, id models.ProductID) error {
	v.mu.Lock()
	v.id = id
	v.mu.Unlock()

	ctx, life, release := v.scope.bind(ctx)
	defer release()

	p, err := v.Repo.GetProduct(ctx, id)
	if life.Err() != nil {
		return ErrViewClosed
	}
	if err != nil {
		logFailure(v.logger(), "failed to fetch product", err)
		v.Nav.GoBack()
		return err
	}

	v.mu.Lock()
	v.product = p
	v.mu.Unlock()
	return nil
}

func (v *DetailView) Unmount() {
	v.scope.close()
}

func (v *DetailView) Product() models.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.product
}

// Edit shows the edit form for the same product.
func (v *DetailView) Edit() {
	v.mu.Lock()
	id := v.id
	v.mu.Unlock()
	v.Nav.Navigate(RouteEditProduct, Params{ProductID: id})
}

// Delete asks for confirmation, deletes the product and returns to the list,
// which re-fetches on focus.
func (v *DetailView) Delete(ctx context.Context) error {
	if !v.confirmDelete() {
		return ErrDeclined
	}

	v.mu.Lock()
	id := v.id
	v.mu.Unlock()

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

	v.Nav.Navigate(RouteHome, Params{})
	return nil
}
