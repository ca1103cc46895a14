package db

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by errors.Is for a missing document.
	ErrNotFound = errors.New("document not found")
	// ErrPersistence is matched by errors.Is for any failed database call.
	ErrPersistence = errors.New("persistence operation failed")
)

// NotFoundError reports that a document does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Is makes NotFoundError match ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PersistenceError wraps an error returned by Firestore, including context
// cancellation and deadline errors.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes PersistenceError match ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func persistenceErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
