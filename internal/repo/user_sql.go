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

type SQLUserRepository struct {
	sqlStore
}

func NewSQLUserRepository(conn *sql.DB, dialect db.Dialect, timeout time.Duration) *SQLUserRepository {
	return &SQLUserRepository{newSQLStore(conn, dialect, timeout)}
}

// Create rejects an email that is already stored. The pre-check gives the
// common case a clean answer; the UNIQUE constraint on users.email catches
// a concurrent insert that slips past it.
func (r *SQLUserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.getByEmail(ctx, u.Email)
	switch {
	case err == nil:
		return models.User{}, ErrEmailAlreadyInUse
	case !errors.Is(err, ErrUserNotFound):
		return models.User{}, err
	}

	id, err := r.dialect.InsertReturningID(ctx, r.db,
		`INSERT INTO users (username, email) VALUES (?, ?)`, u.Username, u.Email)
	if err != nil {
		if r.dialect.IsUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyInUse
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return u, nil
}

func (r *SQLUserRepository) GetByID(ctx context.Context, id int) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.queryRow(ctx, `SELECT id, username, email FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func (r *SQLUserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.getByEmail(ctx, email)
}

func (r *SQLUserRepository) getByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.queryRow(ctx, `SELECT id, username, email FROM users WHERE email = ? LIMIT 1`, email).
		Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}
