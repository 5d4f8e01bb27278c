// Package inventory holds the screens of the inventory front end: the product
// list hub with search and restock, the create and edit forms, and the detail
// view. Every screen owns its data and talks to the items API through an
// explicit Repository.
package inventory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

var (
	// ErrViewClosed is returned when a response arrives after the view was
	// unmounted. The response is dropped.
	ErrViewClosed = errors.New("view closed")
	// ErrDeclined is returned when the user does not confirm a deletion.
	ErrDeclined = errors.New("action not confirmed")
	// ErrUnknownProduct is returned when an id is not in the view's data.
	ErrUnknownProduct = errors.New("product not in list")
	// ErrNoRestock is returned when no restock prompt is open.
	ErrNoRestock = errors.New("no restock in progress")
)

// Repository is the product API as seen by the screens.
type Repository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id models.ProductID) (models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id models.ProductID, p models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id models.ProductID) error
}

// Prompter shows blocking alerts and confirmations to the user.
type Prompter interface {
	Alert(title, message string)
	Confirm(title, message string) bool
}

// Deps are the collaborators shared by every screen.
type Deps struct {
	Repo     Repository
	Nav      Navigator
	Prompter Prompter
	Log      *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Log == nil {
		return slog.Default()
	}
	return d.Log
}

const (
	deleteTitle   = "Confirmation"
	deleteMessage = "Are you sure you want to delete this product?"
)

func (d Deps) confirmDelete() bool {
	return d.Prompter.Confirm(deleteTitle, deleteMessage)
}

// logFailure records an API failure. Failures are never shown to the user.
func logFailure(log *slog.Logger, msg string, err error) {
	var detailed interface{ LogAttrs() []any }
	if errors.As(err, &detailed) {
		log.Error(msg, detailed.LogAttrs()...)
		return
	}
	log.Error(msg, "error", err)
}
