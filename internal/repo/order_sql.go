package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/record-services/internal/db"
	"github.com/rogerio-castellano/record-services/internal/models"
)

type SQLOrderRepository struct {
	sqlStore
}

func NewSQLOrderRepository(conn *sql.DB, dialect db.Dialect, timeout time.Duration) *SQLOrderRepository {
	return &SQLOrderRepository{newSQLStore(conn, dialect, timeout)}
}

func (r *SQLOrderRepository) Create(ctx context.Context, o models.Order) (models.Order, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id, err := r.dialect.InsertReturningID(ctx, r.db,
		`INSERT INTO orders (user_id, product_id, quantity, total_price) VALUES (?, ?, ?, ?)`,
		o.UserID, o.ProductID, o.Quantity, o.TotalPrice)
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}
	o.ID = id
	return o, nil
}

func (r *SQLOrderRepository) GetByID(ctx context.Context, id int) (models.Order, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var o models.Order
	err := r.queryRow(ctx, `SELECT id, user_id, product_id, quantity, total_price FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.TotalPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}
