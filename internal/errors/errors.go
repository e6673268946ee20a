package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeValidation indicates the backend (or a local check) rejected input, usually with field messages.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeBadRequest indicates a 4xx rejection without field detail.
	ErrCodeBadRequest ErrorCode = "bad_request"
	// ErrCodeAuthorization indicates missing or insufficient credentials.
	ErrCodeAuthorization ErrorCode = "authorization"
	// ErrCodeForbidden indicates an authenticated principal was denied an action.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeServer indicates a 5xx response or a body that could not be understood.
	ErrCodeServer ErrorCode = "server"
	// ErrCodeNetwork indicates no response was received.
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeInternal indicates a failure inside the console itself.
	ErrCodeInternal ErrorCode = "internal"
)

// NonFieldErrors is the key the backend uses for messages not tied to one input.
const NonFieldErrors = "non_field_errors"

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Status is the backend HTTP status, zero when no response was involved.
	Status int
	// Fields carries per-field messages from a failure body.
	Fields map[string][]string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
		Fields:  map[string][]string{field: {message}},
	}
}

// Authorization creates a new Authorization error that did not originate from a response.
func Authorization(message string) *AppError {
	return &AppError{
		Code:    ErrCodeAuthorization,
		Message: message,
	}
}

// Server creates a new Server error.
func Server(message string) *AppError {
	return &AppError{
		Code:    ErrCodeServer,
		Message: message,
	}
}

// Network wraps a transport failure.
func Network(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: "Network error. Please check your connection.",
		Cause:   cause,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// FromStatus builds the error for a non-2xx backend response.
// An empty message falls back to a generic one naming the status.
func FromStatus(status int, message string, fields map[string][]string) *AppError {
	if message == "" {
		message = fmt.Sprintf("Request failed with status %d", status)
	}
	return &AppError{
		Code:    CodeForStatus(status, len(fields) > 0),
		Message: message,
		Status:  status,
		Fields:  fields,
	}
}

// CodeForStatus classifies an HTTP status. hasFields distinguishes a
// validation failure from a plain bad request.
func CodeForStatus(status int, hasFields bool) ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return ErrCodeAuthorization
	case status == http.StatusForbidden:
		return ErrCodeForbidden
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if hasFields {
			return ErrCodeValidation
		}
		return ErrCodeBadRequest
	case status >= 500:
		return ErrCodeServer
	case status >= 400:
		return ErrCodeBadRequest
	default:
		return ErrCodeServer
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsAuthorization checks if an error is an Authorization error.
func IsAuthorization(err error) bool {
	return isCode(err, ErrCodeAuthorization)
}

// IsForbidden checks if an error is a Forbidden error.
func IsForbidden(err error) bool {
	return isCode(err, ErrCodeForbidden)
}

// IsServer checks if an error is a Server error.
func IsServer(err error) bool {
	return isCode(err, ErrCodeServer)
}

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool {
	return isCode(err, ErrCodeNetwork)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// GetStatus returns the backend status attached to err, or zero.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// Message returns the user-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// FieldMessages flattens per-field messages into the first message for each
// field, which is what forms display inline.
func FieldMessages(err error) map[string]string {
	var appErr *AppError
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(appErr.Fields))
	for field, msgs := range appErr.Fields {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}

// FieldNames returns the fields carried by err in sorted order.
func FieldNames(err error) []string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return nil
	}
	names := make([]string, 0, len(appErr.Fields))
	for k := range appErr.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
