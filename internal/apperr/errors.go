package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError marks a request that fails input validation.
// Handlers translate it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NotFoundError marks a missing referenced record.
// Handlers translate it to 404.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// --------------------------------------------------
// Constructors
// --------------------------------------------------

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func NotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

// --------------------------------------------------
// Classification helpers
// --------------------------------------------------

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// HTTPStatus maps an error to the response code handlers should use.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
