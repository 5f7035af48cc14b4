package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsCode reports whether err, or anything it wraps, is an AppError carrying code
func IsCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeInsufficientHistory = "INSUFFICIENT_HISTORY"
	CodeMalformedDraw       = "MALFORMED_DRAW"
	CodeDataError           = "DATA_ERROR"
	CodeDatabaseError       = "DATABASE_ERROR"
	CodeInternalError       = "INTERNAL_ERROR"
)

// ConfigInvalid reports a configuration option that fails validation.
// Raised before any sampling occurs; fatal to the current run.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InsufficientHistory reports that fewer usable historical draws exist than
// the requested operation needs. The usable count is part of the message so
// callers can surface it without unwrapping.
func InsufficientHistory(usable, required int) *AppError {
	return New(CodeInsufficientHistory,
		fmt.Sprintf("insufficient history: %d usable draws, need at least %d", usable, required))
}

// MalformedDraw reports a draw violating the distinct-count-in-range invariant
func MalformedDraw(message string) *AppError {
	return New(CodeMalformedDraw, message)
}

// DataError reports a failure loading or parsing draw data files
func DataError(message string) *AppError {
	return New(CodeDataError, message)
}

// DatabaseError reports a failure talking to the archive database
func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}
