// Package service describes the four record services. Each one is the same
// validated-create / fetch-by-id pattern bound to a different schema and
// store.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/record-services/internal/schema"
)

const (
	Users    = "users"
	Products = "products"
	Orders   = "orders"
	Invoices = "invoices"
)

// Names lists every service in port order.
var Names = []string{Users, Products, Orders, Invoices}

var defaultPorts = map[string]int{
	Users:    5000,
	Products: 5001,
	Orders:   5002,
	Invoices: 5003,
}

// DefaultPort returns the fixed port a service listens on unless overridden.
func DefaultPort(name string) (int, error) {
	port, ok := defaultPorts[name]
	if !ok {
		return 0, fmt.Errorf("unknown service %q", name)
	}
	return port, nil
}

// Store is the persistence boundary of one entity.
type Store[T any] interface {
	Create(ctx context.Context, record T) (T, error)
	GetByID(ctx context.Context, id int) (T, error)
}

// Resource binds an entity's schema, construction and storage.
type Resource[T any] struct {
	// Name is the plural path segment and table name, e.g. "users".
	Name   string
	Schema schema.Schema
	// Build turns validated input into a record. now supplies server side
	// values such as an invoice's issue date.
	Build func(v schema.Values, now time.Time) T
	Store Store[T]

	NotFound        error
	NotFoundMessage string

	// Conflict, when set, is the store error that means a unique field is
	// already taken.
	Conflict        error
	ConflictMessage string
}
