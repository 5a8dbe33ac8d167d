package shared

import (
	"errors"
	"net/http"
)

// AppError is a domain error that maps directly onto an HTTP response.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message}
}

// GetAppError unwraps err into an *AppError if one is in the chain.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func ErrNoRecordsFound() *AppError {
	return NewAppError(http.StatusNotFound, "user doesn't have any stories, please create one")
}

func ErrInvalidDateFormat(value string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Message:    "invalid date format, expected YYYY-MM-DD",
		Data:       value,
	}
}

func ErrInvalidTimeUnit(value string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Message:    "invalid time unit, expected 'week' or 'month'",
		Data:       value,
	}
}
