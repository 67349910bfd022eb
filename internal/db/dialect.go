package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

// Dialect hides the differences between the supported SQL backends. Queries
// are written once with '?' placeholders and rebound per dialect.
type Dialect interface {
	DriverName() string
	NormalizeDSN(dsn string) (string, error)
	Rebind(query string) string
	// InsertReturningID runs an INSERT and returns the generated primary key.
	InsertReturningID(ctx context.Context, db *sql.DB, query string, args ...any) (int, error)
	IsUniqueViolation(err error) bool
	CreateTableStatements(table string) ([]string, error)
}

func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "", DriverPostgres, "postgres", "postgresql":
		return Postgres{}, nil
	case DriverMySQL:
		return MySQL{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

type Postgres struct{}

func (Postgres) DriverName() string { return DriverPostgres }

func (Postgres) NormalizeDSN(dsn string) (string, error) { return dsn, nil }

func (Postgres) Rebind(query string) string {
	var sb strings.Builder
	n := 1
	for _, c := range query {
		if c == '?' {
			sb.WriteString("$" + strconv.Itoa(n))
			n++
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

func (p Postgres) InsertReturningID(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	var id int
	err := db.QueryRowContext(ctx, p.Rebind(query)+" RETURNING id", args...).Scan(&id)
	return id, err
}

func (Postgres) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (Postgres) CreateTableStatements(table string) ([]string, error) {
	stmt, ok := postgresTables[table]
	if !ok {
		return nil, fmt.Errorf("no schema for table %q", table)
	}
	return []string{stmt}, nil
}

type MySQL struct{}

func (MySQL) DriverName() string { return DriverMySQL }

// NormalizeDSN forces parseTime so DATE columns scan into time.Time.
func (MySQL) NormalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (MySQL) Rebind(query string) string { return query }

func (MySQL) InsertReturningID(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (MySQL) IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

func (MySQL) CreateTableStatements(table string) ([]string, error) {
	stmt, ok := mysqlTables[table]
	if !ok {
		return nil, fmt.Errorf("no schema for table %q", table)
	}
	return []string{stmt}, nil
}
