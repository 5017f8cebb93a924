package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage failure")
)

// ValidationError is malformed or missing input, caught before any remote
// or storage call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid field '%s': %s", e.Field, e.Message)
	}
	return "invalid input: " + e.Message
}

// ReferenceError rejects a write whose user reference could not be
// confirmed. It is returned for both an absent user and an unreachable user
// service; the caller sees the same outcome either way.
type ReferenceError struct {
	UserID int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("user with id %d not found; verify the id or create the user first", e.UserID)
}

// NotFoundError is a missing read/write target in the local store.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError is a local persistence failure after validation passed.
// Its detail is for logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func NewNotFound(resource string, key any) error {
	return &NotFoundError{Resource: resource, Key: fmt.Sprint(key)}
}

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
