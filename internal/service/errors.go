package service

import (
	"errors"
	"fmt"

	"go-sales-territory/internal/access"

	"gorm.io/gorm"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrClientNotFound         = fmt.Errorf("client %w", ErrNotFound)
	ErrPackNotFound           = fmt.Errorf("pack %w", ErrNotFound)
	ErrArticleNotFound        = fmt.Errorf("article %w", ErrNotFound)
	ErrSaleNotFound           = fmt.Errorf("sale %w", ErrNotFound)
	ErrRepresentativeNotFound = fmt.Errorf("representative %w", ErrNotFound)

	ErrValidation = errors.New("validation failed")
	ErrAdminOnly  = errors.New("operation restricted to administrators")
	ErrConflict   = errors.New("already exists")
)

// StoreError wraps a failure of the data store. It is propagated as is and
// never retried here.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// storeError maps a missing row onto notFound (when given) and wraps anything
// else in a StoreError.
func storeError(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return &StoreError{Op: op, Err: err}
}

// classify leaves already typed errors untouched and wraps the rest as store
// failures. Used on errors coming back out of a transaction.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	switch {
	case errors.As(err, &se),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrAdminOnly),
		errors.Is(err, ErrConflict),
		errors.Is(err, access.ErrScopeUnresolved),
		errors.Is(err, access.ErrTerritoryMismatch):
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func requireAdmin(p access.Principal) error {
	if !p.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
