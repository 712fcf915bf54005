// Package errors defines custom error types for the account and
// password-reset flows. FlowError provides context-aware error reporting
// with type classification.
package errors

import (
	"errors"
	"fmt"
)

// FlowError represents errors that occur during account flows
type FlowError struct {
	Type    string
	Message string
	Cause   error
}

func (e *FlowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *FlowError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeIdentityNotFound  = "IDENTITY_NOT_FOUND"
	ErrorTypeChallengeExpired  = "CHALLENGE_EXPIRED"
	ErrorTypeChallengeNotFound = "CHALLENGE_NOT_FOUND"
	ErrorTypeChallengeMismatch = "CHALLENGE_MISMATCH"
	ErrorTypeDispatchFailed    = "DISPATCH_FAILED"
	ErrorTypeValidationFailed  = "VALIDATION_FAILED"
	ErrorTypeSessionInvalid    = "SESSION_INVALID"
	ErrorTypeStorageFailed     = "STORAGE_FAILED"
)

// NewFlowError creates a new FlowError
func NewFlowError(errorType, message string, cause error) *FlowError {
	return &FlowError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewIdentityNotFoundError signals that no account matches the given email
func NewIdentityNotFoundError(email string) *FlowError {
	return NewFlowError(ErrorTypeIdentityNotFound, fmt.Sprintf("no account for %s", email), nil)
}

// NewChallengeExpiredError signals that the pending code has expired
func NewChallengeExpiredError() *FlowError {
	return NewFlowError(ErrorTypeChallengeExpired, "OTP has expired", nil)
}

// NewChallengeNotFoundError signals that no pending code exists
func NewChallengeNotFoundError() *FlowError {
	return NewFlowError(ErrorTypeChallengeNotFound, "OTP expired or not found", nil)
}

// NewChallengeMismatchError signals a wrong code submission
func NewChallengeMismatchError() *FlowError {
	return NewFlowError(ErrorTypeChallengeMismatch, "invalid OTP", nil)
}

// NewDispatchFailedError signals that the notification could not be delivered
func NewDispatchFailedError(cause error) *FlowError {
	return NewFlowError(ErrorTypeDispatchFailed, "failed to send OTP", cause)
}

// NewValidationError signals invalid user input
func NewValidationError(message string) *FlowError {
	return NewFlowError(ErrorTypeValidationFailed, message, nil)
}

// NewStorageError signals a persistence failure
func NewStorageError(message string, cause error) *FlowError {
	return NewFlowError(ErrorTypeStorageFailed, message, cause)
}

// IsType reports whether err is a FlowError of the given type.
func IsType(err error, errorType string) bool {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Type == errorType
	}
	return false
}
