package inventory

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

// EditForm loads one product, lets the user change its fields and sends the
// whole record back.
type EditForm struct {
	Deps
	scope scope

	mu    sync.Mutex
	id    models.ProductID
	input models.Product
}

func NewEditForm(deps Deps) *EditForm {
	return &EditForm{Deps: deps}
}

// Mount fetches the product and seeds the form with it. If the fetch fails
// the form is abandoned and the previous screen is shown.
func (f *EditForm) Mount(ctx context.Context, id models.ProductID) error {
	f.mu.Lock()
	f.id = id
	f.mu.Unlock()

	ctx, life, release := f.scope.bind(ctx)
	defer release()

	p, err := f.Repo.GetProduct(ctx, id)
	if life.Err() != nil {
		return ErrViewClosed
	}
	if err != nil {
		logFailure(f.logger(), "failed to fetch product", err)
		f.Nav.GoBack()
		return err
	}

	f.mu.Lock()
	f.input = p
	f.mu.Unlock()
	return nil
}

func (f *EditForm) Unmount() {
	f.scope.close()
}

// Set updates exactly one field of the form.
func (f *EditForm) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return setField(&f.input, field, value)
}

// Values returns the current form state.
func (f *EditForm) Values() models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Submit sends the full record as edited. No field is gated here: a blank
// description is a valid edit. On success the form adopts the server's
// record and the previous screen is shown.
func (f *EditForm) Submit(ctx context.Context) (models.Product, error) {
	f.mu.Lock()
	id, record := f.id, f.input
	f.mu.Unlock()

	record.ID = id

	ctx, life, release := f.scope.bind(ctx)
	defer release()

	updated, err := f.Repo.UpdateProduct(ctx, id, record)
	if life.Err() != nil {
		return models.Product{}, ErrViewClosed
	}
	if err != nil {
		logFailure(f.logger(), "failed to update product", err)
		return models.Product{}, err
	}

	f.mu.Lock()
	f.input = updated
	f.mu.Unlock()
	f.Nav.GoBack()
	return updated, nil
}
