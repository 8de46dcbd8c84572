// Package storage defines the Storage interface: the contract every
// record store backend satisfies, plus the error taxonomy callers react to.
//
// Callers never inspect driver errors. Backends translate them into
// ErrDuplicateKey or ErrUnavailable, keeping the driver error reachable
// through errors.As for logging.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-registration/internal/types"
)

var (
	// ErrDuplicateKey is returned when an insert would break the
	// uniqueness of roll_number or email.
	ErrDuplicateKey = errors.New("roll number or email already exists")

	// ErrUnavailable is returned for every other backend failure:
	// connectivity, I/O, permissions.
	ErrUnavailable = errors.New("storage unavailable")
)

// DuplicateKeyError names the column whose unique constraint fired.
// Only backends that report the constraint return it; it always matches
// ErrDuplicateKey under errors.Is.
type DuplicateKeyError struct {
	Field string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return ErrDuplicateKey.Error() + ": " + e.Err.Error()
	}
	return e.Field + " already exists: " + e.Err.Error()
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

func (e *DuplicateKeyError) Unwrap() error { return e.Err }

// Storage is the record store contract.
// Every method acquires its own connection and releases it before returning.
type Storage interface {
	// EnsureSchema creates the students table if it does not exist.
	// Safe to call on every startup.
	EnsureSchema(ctx context.Context) error

	// Insert persists a validated candidate and returns it with the
	// store-assigned id. On failure no row is added.
	Insert(ctx context.Context, c types.Candidate) (types.Student, error)

	// ListAll returns every student ordered by id.
	// Returns an empty slice (not nil) if there are no students.
	ListAll(ctx context.Context) ([]types.Student, error)

	Close() error
}
