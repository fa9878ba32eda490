package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services. Handlers map them to HTTP statuses
// with errors.Is; more specific errors wrap a general one.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnavailable        = errors.New("service unavailable")

	ErrNoItems      = errors.New("no items provided")
	ErrNoValidItems = errors.New("no valid items in sale")

	ErrCashierNotFound  = fmt.Errorf("cashier %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrSaleNotFound     = fmt.Errorf("sale %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
)

// kindError carries a client-facing message and unwraps to a sentinel.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func withKind(kind error, format string, args ...interface{}) error {
	return &kindError{msg: fmt.Sprintf(format, args...), kind: kind}
}

func invalidInput(format string, args ...interface{}) error {
	return withKind(ErrInvalidInput, format, args...)
}
