package repo

import (
	"context"

	"github.com/rogerio-castellano/record-services/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	table *memoryTable[models.Product]
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{table: newMemoryTable[models.Product]()}
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	return r.table.insert(product, func(p *models.Product, id int) { p.ID = id }, nil)
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	p, ok := r.table.get(id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *InMemoryProductRepository) Count() int {
	return r.table.len()
}

func (r *InMemoryProductRepository) Clear() {
	r.table.clear()
}
