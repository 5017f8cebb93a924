// Package usergw is the goal service's outbound view of the user service.
//
// Every lookup resolves to exactly one of three outcomes: the user (nil
// error), ErrNotFound when the user service explicitly says the id does not
// exist, or an error matching ErrUnavailable for anything else (timeout,
// refused connection, 5xx, auth failure, unexpected payload). Callers
// branch with errors.Is or Classify and never inspect transport details.
package usergw

import (
	"context"
	"errors"

	"goals-platform/internal/domain"
)

var (
	ErrNotFound    = errors.New("usergw: user not found")
	ErrUnavailable = errors.New("usergw: user service unavailable")
)

type Gateway interface {
	FetchUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type Outcome string

const (
	OutcomeFound       Outcome = "found"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeUnavailable Outcome = "unavailable"
)

// Classify maps a FetchUser error to its outcome. Errors that did not come
// from a Gateway count as unavailable.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeFound
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeUnavailable
	}
}

// UnavailableError keeps the transport cause for logs.
type UnavailableError struct {
	Op     string
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	msg := "usergw: " + e.Op + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

func unavailable(op, reason string, err error) error {
	return &UnavailableError{Op: op, Reason: reason, Err: err}
}
