package upstream

import (
	"errors"
	"fmt"
)

// ValidationError means the submitted input was rejected. Recoverable by
// correcting the input; it never leaves the current flow step.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Code: "validationError", Message: msg}
}

// ConflictError means the chosen slot was taken between selection and
// submission. Recoverable by returning to date/time selection.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConflictError(msg string) error {
	return &ConflictError{Code: "conflictError", Message: msg}
}

// NotFoundError means the booking reference did not resolve. Terminal for
// that view; the caller starts a new booking.
type NotFoundError struct {
	Code    string
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Code: "notFoundError", Message: msg}
}

// NetworkError is a transient transport or server failure. Recoverable by
// retrying; the draft is preserved.
type NetworkError struct {
	Code    string
	Message string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNetworkError(msg string) error {
	return &NetworkError{Code: "networkError", Message: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// UserMessage extracts the message to surface to the customer. The upstream
// "detail" string is carried verbatim inside the typed errors.
func UserMessage(err error) string {
	var (
		ve *ValidationError
		ce *ConflictError
		nf *NotFoundError
		nw *NetworkError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ce):
		return ce.Message
	case errors.As(err, &nf):
		return nf.Message
	case errors.As(err, &nw):
		return nw.Message
	default:
		return "Something went wrong. Please try again."
	}
}
