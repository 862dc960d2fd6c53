// internal/app/store/errors.go
package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by both backends. Handlers translate these to HTTP
// statuses; anything not listed here is an unexpected storage failure and is
// wrapped in a *StorageError instead.
var (
	// ErrNotFound is returned by mutating operations whose target record
	// does not exist. Pure lookups return (nil, nil) instead.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a signup would reuse the email of
	// an existing active user, compared case-insensitively.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrInvalidAccount is returned when a payout names a bank account that
	// is missing, inactive, or owned by someone else.
	ErrInvalidAccount = errors.New("bank account not available for payouts")

	// ErrBelowMinimum is returned when a payout amount is under the
	// configured minimum.
	ErrBelowMinimum = errors.New("payout amount below the minimum")

	// ErrInsufficientBalance is returned when a payout amount exceeds the
	// user's available balance.
	ErrInsufficientBalance = errors.New("payout amount exceeds available balance")

	// ErrAlreadyInstalled is returned when installing an app the user
	// already has an active installation of.
	ErrAlreadyInstalled = errors.New("app already installed")

	// ErrNotInstalled is returned when uninstalling an app the user has no
	// active installation of.
	ErrNotInstalled = errors.New("app not installed")
)

// StorageError wraps an unexpected I/O or driver failure with the operation
// and collection it happened in. It always carries an underlying cause.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Wrap builds a *StorageError unless err is nil or already part of the
// store's error taxonomy, in which case it passes through untouched.
func Wrap(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrInvalidAccount) ||
		errors.Is(err, ErrBelowMinimum) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrAlreadyInstalled) ||
		errors.Is(err, ErrNotInstalled) {
		return err
	}
	return &StorageError{Op: op, Collection: collection, Err: err}
}
