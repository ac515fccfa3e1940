package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailExists is returned when signing up with an email that is taken.
	ErrEmailExists = errors.New("email already exists")
	// ErrNoAccount is returned when no account matches the login email.
	ErrNoAccount = errors.New("no account found with this email")
	// ErrIncorrectPassword is returned when the login password does not match.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrExpenseNotFound is returned when an expense does not exist or is
	// owned by a different user. The two cases are deliberately conflated
	// so callers cannot probe for other users' record IDs.
	ErrExpenseNotFound = errors.New("expense not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Store failures fall
// through to an opaque 500; their detail belongs in logs, not responses.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_EXISTS")
	case errors.Is(err, ErrNoAccount):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "NO_ACCOUNT")
	case errors.Is(err, ErrIncorrectPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INCORRECT_PASSWORD")
	case errors.Is(err, ErrExpenseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EXPENSE_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
