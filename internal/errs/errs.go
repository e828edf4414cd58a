// Package errs defines the domain errors of the offboarding service and
// how they are presented to API clients.
//
// Handlers never write driver or internal error text to a response: any
// error that is not one of the errors below is reported as a generic
// internal server error and logged server side.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when no offboarding request matches an id.
	ErrNotFound = errors.New("Request not found")
	// ErrDuplicateSubmission is returned when the same employee id and
	// email were already submitted on the same calendar day.
	ErrDuplicateSubmission = errors.New("Duplicate submission detected for today")
	// ErrInvalidStatus is returned when a status update asks for anything
	// other than Approved or Rejected.
	ErrInvalidStatus = errors.New("Invalid status")
	// ErrInvalidInput is returned when a request body cannot be decoded.
	ErrInvalidInput = errors.New("Invalid input")
)

// InternalMessage is the only error text clients see for unexpected failures.
const InternalMessage = "Internal server error"

// ValidationError describes the first rule a submission violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPError is the JSON error body returned by the API.
type HTTPError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// IsInternal reports whether the error would be surfaced as a 500.
func (e *HTTPError) IsInternal() bool {
	return e.Status >= http.StatusInternalServerError
}

// FromError maps err onto the status code and public message for a response.
func FromError(err error) *HTTPError {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return &HTTPError{Status: http.StatusBadRequest, Message: validationErr.Message}
	case errors.Is(err, ErrDuplicateSubmission),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidInput):
		return &HTTPError{Status: http.StatusBadRequest, Message: rootMessage(err)}
	case errors.Is(err, ErrNotFound):
		return &HTTPError{Status: http.StatusNotFound, Message: ErrNotFound.Error()}
	default:
		return &HTTPError{Status: http.StatusInternalServerError, Message: InternalMessage}
	}
}

// rootMessage returns the sentinel text rather than any wrapping context.
func rootMessage(err error) string {
	for _, sentinel := range []error{ErrDuplicateSubmission, ErrInvalidStatus, ErrInvalidInput} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
