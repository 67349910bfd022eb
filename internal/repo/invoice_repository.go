package repo

import (
	"context"

	"github.com/rogerio-castellano/record-services/internal/models"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice models.Invoice) (models.Invoice, error)
	GetByID(ctx context.Context, id int) (models.Invoice, error)
}
