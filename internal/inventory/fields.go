package inventory

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

// Editable product fields.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldPrice       = "price"
)

var ErrUnknownField = errors.New("unknown field")

// setField writes exactly one key of p.
func setField(p *models.Product, field, value string) error {
	switch field {
	case FieldName:
		p.Name = value
	case FieldDescription:
		p.Description = value
	case FieldQuantity:
		p.Quantity = models.Quantity(value)
	case FieldPrice:
		p.Price = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}
