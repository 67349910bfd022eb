package repo

import (
	"context"

	"github.com/rogerio-castellano/record-services/internal/models"
)

type InMemoryInvoiceRepository struct {
	table *memoryTable[models.Invoice]
}

func NewInMemoryInvoiceRepository() *InMemoryInvoiceRepository {
	return &InMemoryInvoiceRepository{table: newMemoryTable[models.Invoice]()}
}

func (r *InMemoryInvoiceRepository) Create(_ context.Context, invoice models.Invoice) (models.Invoice, error) {
	return r.table.insert(invoice, func(i *models.Invoice, id int) { i.ID = id }, nil)
}

func (r *InMemoryInvoiceRepository) GetByID(_ context.Context, id int) (models.Invoice, error) {
	i, ok := r.table.get(id)
	if !ok {
		return models.Invoice{}, ErrInvoiceNotFound
	}
	return i, nil
}

func (r *InMemoryInvoiceRepository) Count() int {
	return r.table.len()
}

func (r *InMemoryInvoiceRepository) Clear() {
	r.table.clear()
}
