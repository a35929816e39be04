// Package errors holds the sentinel errors shared by services and handlers.
// Services wrap them with fmt.Errorf("%w: ...") and the API layer maps them
// to status codes with errors.Is.
package errors

import "errors"

var (
	// ErrNotFound maps to 404.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation maps to 400. The wrapped message is shown to the client.
	ErrValidation = errors.New("validation failed")
)
