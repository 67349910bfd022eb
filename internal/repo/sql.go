package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/rogerio-castellano/record-services/internal/db"
)

const DefaultQueryTimeout = 3 * time.Second

// sqlStore carries what every SQL backed repository needs.
type sqlStore struct {
	db      *sql.DB
	dialect db.Dialect
	timeout time.Duration
}

func newSQLStore(conn *sql.DB, dialect db.Dialect, timeout time.Duration) sqlStore {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return sqlStore{db: conn, dialect: dialect, timeout: timeout}
}

func (s sqlStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s sqlStore) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}
