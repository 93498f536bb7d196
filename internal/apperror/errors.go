package apperror

import (
	"errors"
	"fmt"

	"github.com/wealthpath/datecheck/pkg/datetime"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitInternal  = 1
	ExitMalformed = 2
	ExitMismatch  = 3
	ExitUsage     = 64
)

// Sentinel errors for common cases
var (
	ErrUsage    = errors.New("usage error")
	ErrMismatch = errors.New("verdict mismatch")
	ErrInternal = errors.New("internal error")
)

// AppError wraps errors with an exit code and user-friendly message
type AppError struct {
	Err      error  // Original error (for logging)
	Message  string // User-friendly message
	ExitCode int    // Process exit code
	Field    string // Optional argument name
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructor functions for common errors

func Malformed(field string, err error) *AppError {
	return &AppError{
		Err:      err,
		Message:  err.Error(),
		ExitCode: ExitMalformed,
		Field:    field,
	}
}

func Usage(message string) *AppError {
	return &AppError{
		Err:      ErrUsage,
		Message:  message,
		ExitCode: ExitUsage,
	}
}

func Mismatch(failed int) *AppError {
	return &AppError{
		Err:      ErrMismatch,
		Message:  fmt.Sprintf("%d case(s) did not match the expected verdict", failed),
		ExitCode: ExitMismatch,
	}
}

func Internal(err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{
		Err:      err,
		Message:  "an internal error occurred",
		ExitCode: ExitInternal,
	}
}

func Wrap(err error, message string) *AppError {
	return &AppError{
		Err:      err,
		Message:  message,
		ExitCode: GetExitCode(err),
	}
}

// GetExitCode extracts the exit code from err, defaults to ExitInternal.
func GetExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	// Check sentinel errors
	switch {
	case errors.Is(err, datetime.ErrMalformed):
		return ExitMalformed
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrMismatch):
		return ExitMismatch
	default:
		return ExitInternal
	}
}

// GetMessage extracts user message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
