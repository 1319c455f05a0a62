package db

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no task has the requested id
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguousID means a short id matched more than one task
	ErrAmbiguousID = errors.New("ambiguous task id")
	// ErrPersistence is matched by every PersistenceError
	ErrPersistence = errors.New("persistence failure")
)

// PersistenceError wraps a storage failure with the operation that hit it.
// Nothing is retried; the transaction involved has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
