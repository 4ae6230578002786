// Package apierror carries boundary errors that already know their HTTP
// status: input validation and authorization failures raised by the
// handlers themselves. Everything below the handlers returns wrapped
// sentinel errors instead, which the boundary maps to statuses.
package apierror

import "net/http"

// APIError carries an error kind resolvable to an HTTP status and a
// human-readable message safe to return to clients.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewValidation reports missing or malformed input.
func NewValidation(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// NewUnauthorized reports a missing, invalid, expired or reused token, or a
// credential mismatch. Callers must not encode the underlying cause in the
// message: expired, forged and deleted-identity cases all collapse here.
func NewUnauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}
