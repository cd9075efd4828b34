package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a RedisGate error with a structured code.
// Errors are data: every failure path in the library returns one of
// these, nothing panics, and transport failures always carry the
// originating command name in Details.
type DomainError struct {
	Code    string // Error code (e.g., "RG-NORM-2001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support; two DomainErrors match on Code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// ErrorCode extracts the code from an error if it is a DomainError.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

var (
	// ErrValidation indicates caller-supplied input failed local
	// validation before any network interaction.
	ErrValidation = NewDomainError("RG-ARG-1001", "invalid argument")

	// ErrNonFiniteNumber indicates a floating reply value cannot be
	// represented as a JSON number.
	ErrNonFiniteNumber = NewDomainError("RG-NORM-2001", "non-finite number in reply")

	// ErrDepthExceeded indicates a reply structure is nested too deep
	// to normalize safely.
	ErrDepthExceeded = NewDomainError("RG-NORM-2002", "reply nesting too deep")

	// ErrUpstream indicates the underlying transport or command
	// execution failed. Details always names the command.
	ErrUpstream = NewDomainError("RG-CMD-5000", "command failed")

	// ErrConfig indicates a configuration file could not be parsed.
	// Details carries the file path.
	ErrConfig = NewDomainError("RG-CONF-4000", "invalid configuration")
)
