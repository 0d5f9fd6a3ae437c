// Package errs provides structured, user-friendly errors with machine-parseable codes.
package errs

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-parseable error identifier.
type ErrorCode string

const (
	// General
	ErrUnknown    ErrorCode = "ERR-000"
	ErrInternal   ErrorCode = "ERR-001"
	ErrConfig     ErrorCode = "ERR-002"
	ErrValidation ErrorCode = "ERR-003"

	// Kernel errors
	ErrKernelNotFound ErrorCode = "ERR-KERNEL-001"
	ErrKernelOpen     ErrorCode = "ERR-KERNEL-002"
	ErrKernelHeader   ErrorCode = "ERR-KERNEL-003"
	ErrKernelCoverage ErrorCode = "ERR-KERNEL-004"
	ErrKernelExists   ErrorCode = "ERR-KERNEL-005"

	// Query errors
	ErrQueryBody       ErrorCode = "ERR-QUERY-001"
	ErrQueryEpoch      ErrorCode = "ERR-QUERY-002"
	ErrQueryCompute    ErrorCode = "ERR-QUERY-003"
	ErrQueryCorrection ErrorCode = "ERR-QUERY-004"

	// Time errors
	ErrTimeParse ErrorCode = "ERR-TIME-001"
	ErrTimeRange ErrorCode = "ERR-TIME-002"

	// Frame errors
	ErrFrameUnknown ErrorCode = "ERR-FRAME-001"

	// Orbit synthesis errors
	ErrOrbitInvalidArg ErrorCode = "ERR-ORBIT-001"
	ErrOrbitTLE        ErrorCode = "ERR-ORBIT-002"

	// Export errors
	ErrExportWrite  ErrorCode = "ERR-EXPORT-001"
	ErrExportFormat ErrorCode = "ERR-EXPORT-002"

	// State errors
	ErrStateRead  ErrorCode = "ERR-STATE-001"
	ErrStateWrite ErrorCode = "ERR-STATE-002"
)

// EphemError is the standard structured error type used across all ephem packages.
type EphemError struct {
	Code     ErrorCode // Machine-parseable error code
	Op       string    // Operation chain, e.g., "track.window.state"
	Resource string    // Resource identifier (kernel name, body name, file path, etc.)
	Cause    error     // Wrapped upstream error
	Advice   string    // Human-readable remediation hint
}

func (e *EphemError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("[%s] %s (%s): %v", e.Code, e.Op, e.Resource, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Cause)
}

func (e *EphemError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the formatted user-facing error message with remediation advice.
func (e *EphemError) UserMessage() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Op)
	if e.Resource != "" {
		msg += fmt.Sprintf(" (resource: %s)", e.Resource)
	}
	if e.Advice != "" {
		msg += fmt.Sprintf("\n  → %s", e.Advice)
	}
	return msg
}

// New creates a new EphemError.
func New(code ErrorCode, op string, cause error) *EphemError {
	return &EphemError{Code: code, Op: op, Cause: cause}
}

// Newf creates a new EphemError with a formatted message as the cause.
func Newf(code ErrorCode, op, format string, args ...any) *EphemError {
	return &EphemError{Code: code, Op: op, Cause: fmt.Errorf(format, args...)}
}

// WithResource sets the resource identifier on an EphemError.
func (e *EphemError) WithResource(resource string) *EphemError {
	e.Resource = resource
	return e
}

// WithAdvice sets the human-readable remediation hint on an EphemError.
func (e *EphemError) WithAdvice(advice string) *EphemError {
	e.Advice = advice
	return e
}

// Wrap wraps an existing error as an EphemError at a new operation boundary.
func Wrap(err error, code ErrorCode, op string) *EphemError {
	if err == nil {
		return nil
	}
	return &EphemError{Code: code, Op: op, Cause: err}
}

// IsCode reports whether err is an EphemError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var ee *EphemError
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}

// AsEphem extracts the *EphemError from err, or returns nil.
func AsEphem(err error) *EphemError {
	var ee *EphemError
	if errors.As(err, &ee) {
		return ee
	}
	return nil
}
