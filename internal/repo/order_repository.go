package repo

import (
	"context"

	"github.com/rogerio-castellano/record-services/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	GetByID(ctx context.Context, id int) (models.Order, error)
}
