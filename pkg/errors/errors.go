// Package errors defines the tagged error type returned by every tool
// operation. The code tells callers which failure class they are looking at
// (validation, transport, remote rejection, payload shape); the message keeps
// the full diagnostic text, including HTTP status and response body where
// available.
package errors

import (
	"fmt"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeTransport    = "TRANSPORT_ERROR"
	CodeRemote       = "REMOTE_REJECTION"
	CodePayload      = "PAYLOAD_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Details: details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// Transport marks failures that never reached the remote server: connection
// errors, DNS failures, timeouts.
func Transport(message string, err error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Message: message,
		Err:     err,
	}
}

// Remote marks non-success responses from the remote server. Status code and
// response body are surfaced verbatim so the caller can diagnose.
func Remote(action string, status int, body string) *AppError {
	return &AppError{
		Code:    CodeRemote,
		Message: fmt.Sprintf("Failed to %s: HTTP %d - %s", action, status, body),
		Details: map[string]any{
			"status": status,
			"body":   body,
		},
	}
}

// Payload marks responses that reached us but could not be interpreted:
// unparsable JSON or an unexpected document shape. Distinct from Transport so
// callers can tell "got garbage" from "never reached the server".
func Payload(message, body string) *AppError {
	return &AppError{
		Code:    CodePayload,
		Message: message,
		Details: map[string]any{
			"body": body,
		},
	}
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %d not found", resource, id),
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
