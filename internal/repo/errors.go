package repo

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrEmailAlreadyInUse is returned by user creation when another user
	// already owns the address.
	ErrEmailAlreadyInUse = errors.New("email already in use")
)
