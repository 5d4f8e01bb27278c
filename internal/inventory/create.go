package inventory

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

// CreateForm collects a new product and posts it.
type CreateForm struct {
	Deps
	scope scope

	mu    sync.Mutex
	input models.Product
}

func NewCreateForm(deps Deps) *CreateForm {
	f := &CreateForm{Deps: deps}
	f.reset()
	return f
}

func (f *CreateForm) reset() {
	f.input = models.Product{Quantity: models.QuantityOf(0)}
}

// Set updates one field of the form.
func (f *CreateForm) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return setField(&f.input, field, value)
}

// Input returns the current form state.
func (f *CreateForm) Input() models.ProductInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return toInput(f.input)
}

func (f *CreateForm) Unmount() {
	f.scope.close()
}

// Submit validates the form and creates the product. Blank name, description
// or price raises the missing-fields alert and nothing is sent. On success the
// form is cleared and the previous screen is shown.
func (f *CreateForm) Submit(ctx context.Context) (models.Product, error) {
	in := f.Input()
	if errs := ValidateProduct(in.Name, in.Description, in.Price); len(errs) > 0 {
		f.Prompter.Alert(missingFieldsTitle, missingFieldsMessage)
		return models.Product{}, &ValidationError{Fields: errs}
	}

	ctx, life, release := f.scope.bind(ctx)
	defer release()

	created, err := f.Repo.CreateProduct(ctx, in)
	if life.Err() != nil {
		return models.Product{}, ErrViewClosed
	}
	if err != nil {
		logFailure(f.logger(), "failed to save product", err)
		return models.Product{}, err
	}

	f.mu.Lock()
	f.reset()
	f.mu.Unlock()
	f.Nav.GoBack()
	return created, nil
}

func toInput(p models.Product) models.ProductInput {
	return models.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       p.Price,
	}
}
