package inventory

import (
	"fmt"
	"strings"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

// LowStockThreshold is the highest quantity still shown as low stock.
const LowStockThreshold = 10

// FilterByName keeps the products whose name contains query, ignoring case.
// An empty query returns products unchanged. Order is preserved.
func FilterByName(query string, products []models.Product) []models.Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// IsLowStock reports whether p should carry the low-stock marker. A quantity
// that does not parse is never low stock.
func IsLowStock(p models.Product) bool {
	n, err := p.Quantity.Int()
	return err == nil && n <= LowStockThreshold
}

// RestockQuantity returns current + delta. Either side failing to parse
// yields models.ErrInvalidQuantity. The result is not clamped.
func RestockQuantity(current, delta models.Quantity) (models.Quantity, error) {
	c, err := current.Int()
	if err != nil {
		return "", fmt.Errorf("current %w", err)
	}
	d, err := delta.Int()
	if err != nil {
		return "", fmt.Errorf("delta %w", err)
	}
	return models.QuantityOf(c + d), nil
}
