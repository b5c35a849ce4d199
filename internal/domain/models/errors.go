package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories. Handlers map
// these onto HTTP status codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// StorageError wraps a persistence failure with the operation that caused it.
// The underlying driver error is kept for logs, never for control flow.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err unless it is already one of the sentinel errors.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidArgument) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// DependencyError wraps a failure from an external collaborator such as the
// identity verifier or the AI provider.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }
