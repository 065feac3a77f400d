package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource changed underneath the caller (optimistic lock miss
// or a posting lock held by someone else).
var ErrConflict = errors.New("resource was modified concurrently")

// ErrInvalidState indicates that the operation is not allowed in the resource's current status.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrBalanceMismatch indicates that debits and credits of a journal entry differ.
var ErrBalanceMismatch = errors.New("debits and credits do not balance")

// ErrInternal is used for unexpected infrastructure failures.
var ErrInternal = errors.New("internal error")

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// AppError carries an HTTP-ish code and a message around an underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds an ErrNotFound for the given entity and id.
func NewNotFoundError(entity, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// NewValidationError builds an ErrValidation with a formatted detail.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InvalidStateError reports the operation that was refused and the status the
// resource was in at the time.
type InvalidStateError struct {
	Op     string
	Status string
	Reason string
}

func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s journal entry in status %q: %s", e.Op, e.Status, e.Reason)
	}
	return fmt.Sprintf("cannot %s journal entry in status %q", e.Op, e.Status)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// NewInvalidStateError returns an *InvalidStateError.
func NewInvalidStateError(op, status, reason string) error {
	return &InvalidStateError{Op: op, Status: status, Reason: reason}
}

// BalanceMismatchError carries the computed totals of an unbalanced entry.
type BalanceMismatchError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
}

func (e *BalanceMismatchError) Error() string {
	return fmt.Sprintf("%s: debits sum is %s and credits sum is %s (difference %s)",
		ErrBalanceMismatch.Error(), e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Difference.StringFixed(2))
}

func (e *BalanceMismatchError) Unwrap() error {
	return ErrBalanceMismatch
}
