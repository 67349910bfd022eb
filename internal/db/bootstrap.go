package db

import (
	"context"
	"database/sql"
	"fmt"
)

// users.email carries a UNIQUE constraint so concurrent creates with the same
// address cannot both commit.
var postgresTables = map[string]string{
	"users": `CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR NOT NULL,
		email VARCHAR NOT NULL UNIQUE
	)`,
	"products": `CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name VARCHAR NOT NULL,
		description VARCHAR,
		price DOUBLE PRECISION NOT NULL
	)`,
	"orders": `CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		total_price DOUBLE PRECISION NOT NULL
	)`,
	"invoices": `CREATE TABLE IF NOT EXISTS invoices (
		id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		date_issued DATE NOT NULL DEFAULT CURRENT_DATE
	)`,
}

var mysqlTables = map[string]string{
	"users": `CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		UNIQUE KEY uq_users_email (email)
	)`,
	"products": `CREATE TABLE IF NOT EXISTS products (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DOUBLE NOT NULL
	)`,
	"orders": `CREATE TABLE IF NOT EXISTS orders (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		product_id INT NOT NULL,
		quantity INT NOT NULL,
		total_price DOUBLE NOT NULL
	)`,
	"invoices": `CREATE TABLE IF NOT EXISTS invoices (
		id INT AUTO_INCREMENT PRIMARY KEY,
		order_id INT NOT NULL,
		amount DOUBLE NOT NULL,
		date_issued DATE NOT NULL
	)`,
}

// Bootstrap creates the table backing the named service if it is missing.
// Running it again is a no-op.
func Bootstrap(ctx context.Context, db *sql.DB, dialect Dialect, table string) error {
	stmts, err := dialect.CreateTableStatements(table)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return nil
}
