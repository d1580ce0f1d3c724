package errors

import (
	"fmt"
	"net/http"
)

// AppError is an application error that carries the HTTP status code it
// should be reported with.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("code=%d, message=%s", e.Code, e.Message)
}

// Errors shared across handlers.
var (
	ErrDatasetNotLoaded = &AppError{Code: http.StatusServiceUnavailable, Message: "dataset not loaded"}
	ErrExportFailed     = &AppError{Code: http.StatusInternalServerError, Message: "export failed"}
)

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WithDetails copies an error and attaches detail text. Shared sentinels stay
// untouched.
func WithDetails(err *AppError, details string) *AppError {
	return &AppError{
		Code:    err.Code,
		Message: err.Message,
		Details: details,
	}
}
