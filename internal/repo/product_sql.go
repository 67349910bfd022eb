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

type SQLProductRepository struct {
	sqlStore
}

func NewSQLProductRepository(conn *sql.DB, dialect db.Dialect, timeout time.Duration) *SQLProductRepository {
	return &SQLProductRepository{newSQLStore(conn, dialect, timeout)}
}

func (r *SQLProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id, err := r.dialect.InsertReturningID(ctx, r.db,
		`INSERT INTO products (name, description, price) VALUES (?, ?, ?)`, p.Name, p.Description, p.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return p, nil
}

func (r *SQLProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var p models.Product
	var description sql.NullString
	err := r.queryRow(ctx, `SELECT id, name, description, price FROM products WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &description, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	p.Description = description.String
	return p, nil
}
