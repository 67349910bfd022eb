package repo

import (
	"context"

	"github.com/rogerio-castellano/record-services/internal/models"
)

type InMemoryOrderRepository struct {
	table *memoryTable[models.Order]
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{table: newMemoryTable[models.Order]()}
}

func (r *InMemoryOrderRepository) Create(_ context.Context, order models.Order) (models.Order, error) {
	return r.table.insert(order, func(o *models.Order, id int) { o.ID = id }, nil)
}

func (r *InMemoryOrderRepository) GetByID(_ context.Context, id int) (models.Order, error) {
	o, ok := r.table.get(id)
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (r *InMemoryOrderRepository) Count() int {
	return r.table.len()
}

func (r *InMemoryOrderRepository) Clear() {
	r.table.clear()
}
