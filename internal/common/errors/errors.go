// Package errors provides the standardized error taxonomy shared by the
// demo engine, the submission recorder and the HTTP surface.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed       ErrorCode = "VALIDATION_FAILED"
	ErrCodeStorageUnavailable     ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionLimit    ErrorCode = "SESSION_LIMIT_REACHED"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeUnknownSection  ErrorCode = "UNKNOWN_SECTION"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Field     string                 `json:"field,omitempty"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("StandardError[%s]: %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError reports a missing or malformed form field. It is
// recovered locally: the form stays editable and shows the message inline.
func NewValidationError(field, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Required field missing or invalid",
		Field:     field,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageUnavailableError wraps a failed record log read or write.
func NewStorageUnavailableError(logKey string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   "Record log unavailable",
		Details:   fmt.Sprintf("logKey: %s, error: %s", logKey, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"logKey": logKey},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewNotificationSendFailedError wraps a failed review-inbox delivery.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to send notification",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Demo session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSessionLimitError(limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionLimit,
		Message:   "Too many active demo sessions",
		Details:   fmt.Sprintf("limit: %d", limit),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnknownSectionError(section string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownSection,
		Message:   "Unknown results section",
		Details:   fmt.Sprintf("section: %s", section),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Malformed request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandard returns the StandardError in err's chain, if any.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// Normalize always yields a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == ErrCodeValidationFailed
}

// IsStorageUnavailable reports whether err is a StorageUnavailable error.
func IsStorageUnavailable(err error) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == ErrCodeStorageUnavailable
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeStorageUnavailable, ErrCodeNotificationSendFailed, ErrCodeSessionLimit:
		return true
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch {
	case code == ErrCodeValidationFailed || code == ErrCodeInvalidRequest:
		return "validation"
	case code == ErrCodeStorageUnavailable:
		return "storage"
	case code == ErrCodeNotificationSendFailed:
		return "notification"
	case strings.HasPrefix(string(code), "SESSION_") || code == ErrCodeUnknownSection:
		return "session"
	default:
		return "internal"
	}
}
