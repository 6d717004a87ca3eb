package custom_error

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed or missing caller input: a bad coercion,
// a duplicate field name, a choice value outside the option set.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// NotFoundError reports a reference to a row that does not exist.
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports a state collision: a duplicate relationship triple,
// a duplicate asset tag, a delete blocked by dependent rows.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// IntegrityError reports a broken structural invariant. Well-formed callers
// can never trigger one; it is a defect, not a user-facing condition.
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return "integrity violation: " + e.Message
}

func NewIntegrityError(message string) *IntegrityError {
	return &IntegrityError{Message: message}
}

// HTTPStatus maps the taxonomy onto response codes for the boundary layer.
// IntegrityError deliberately surfaces as 500: it marks a defect, never bad
// caller input.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		conflict   *ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WrapDBError maps well-known PostgreSQL error codes onto the taxonomy.
func WrapDBError(message, code string) error {
	switch code {
	case "23505":
		return &ConflictError{Message: message}
	case "23503":
		return &NotFoundError{Resource: "referenced row", ID: message}
	default:
		return fmt.Errorf("uncategorized database error with code %s: %s", code, message)
	}
}
