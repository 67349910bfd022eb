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

type SQLInvoiceRepository struct {
	sqlStore
}

func NewSQLInvoiceRepository(conn *sql.DB, dialect db.Dialect, timeout time.Duration) *SQLInvoiceRepository {
	return &SQLInvoiceRepository{newSQLStore(conn, dialect, timeout)}
}

func (r *SQLInvoiceRepository) Create(ctx context.Context, i models.Invoice) (models.Invoice, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id, err := r.dialect.InsertReturningID(ctx, r.db,
		`INSERT INTO invoices (order_id, amount, date_issued) VALUES (?, ?, ?)`,
		i.OrderID, i.Amount, i.DateIssued.Time)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("insert invoice: %w", err)
	}
	i.ID = id
	return i, nil
}

func (r *SQLInvoiceRepository) GetByID(ctx context.Context, id int) (models.Invoice, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var i models.Invoice
	var issued time.Time
	err := r.queryRow(ctx, `SELECT id, order_id, amount, date_issued FROM invoices WHERE id = ?`, id).
		Scan(&i.ID, &i.OrderID, &i.Amount, &issued)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, ErrInvoiceNotFound
	}
	if err != nil {
		return models.Invoice{}, fmt.Errorf("get invoice %d: %w", id, err)
	}
	i.DateIssued = models.NewDate(issued)
	return i, nil
}
