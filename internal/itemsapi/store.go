package itemsapi

import (
	"errors"
	"strconv"
	"sync"

	"github.com/rogerio-castellano/inventory-client/internal/models"
)

// ErrProductNotFound is returned when no record has the requested id.
var ErrProductNotFound = errors.New("product not found")

// ProductPatch holds the fields present in an update body. Absent fields keep
// their stored value.
type ProductPatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Quantity    *models.Quantity `json:"quantity"`
	Price       *string          `json:"price"`
}

// Store is an in-memory product store. Ids are sequential integers and are
// never reused.
type Store struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
}

// NewStore creates a store holding the given records, keeping their ids.
func NewStore(seed ...models.Product) *Store {
	s := &Store{products: []models.Product{}, nextID: 1}
	for _, p := range seed {
		s.products = append(s.products, p)
		if n, err := strconv.Atoi(p.ID.String()); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
	return s
}

// SeedProducts returns sample records for local development.
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Smartphone Pro Max", Description: "Flagship phone with a titanium frame", Quantity: "1943", Price: "10"},
		{ID: "2", Name: "Basmati Rice", Description: "Long grain rice, 5 kg bag", Quantity: "4", Price: "120"},
		{ID: "3", Name: "Cookie Dough Ice Cream", Description: "Vanilla ice cream with cookie dough chunks", Quantity: "150", Price: "1499"},
	}
}

// GetAll returns a copy of every record in insertion order.
func (s *Store) GetAll() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// GetByID retrieves a record by id.
func (s *Store) GetByID(id models.ProductID) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Create appends a record under a fresh id.
func (s *Store) Create(in models.ProductInput) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Product{
		ID:          models.ProductID(strconv.Itoa(s.nextID)),
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
	}
	s.nextID++
	s.products = append(s.products, p)
	return p
}

// Update applies patch over the stored record and returns the result.
func (s *Store) Update(id models.ProductID, patch ProductPatch) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Quantity != nil {
			p.Quantity = *patch.Quantity
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		s.products[i] = p
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a record by id.
func (s *Store) Delete(id models.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// Clear drops every record. Ids keep counting up.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = []models.Product{}
}
