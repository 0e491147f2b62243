package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for the pipeline's failure taxonomy.
var (
	// ErrEmptyPayload means no body, or a body carrying neither a storage
	// event nor a wrapped message.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrMalformedEnvelope means the notification was present but could not
	// be decoded (bad JSON, or a wrapped message whose data is not base64 JSON).
	ErrMalformedEnvelope = errors.New("malformed envelope")
	// ErrIncompleteEvent means a decoded event is missing the bucket or
	// object name required to address the document.
	ErrIncompleteEvent = errors.New("incomplete storage event")
	// ErrExtraction wraps any failure raised by the extraction backend.
	ErrExtraction = errors.New("extraction failed")
	// ErrInvalidInput covers configuration and argument validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
