// Package errors provides unified error handling across the fill-in-the-blank game.
//
// SYSTEM ARCHITECTURE ROLE:
// Every failure that ends a round is represented as an AppError so the console,
// CLI and TUI front ends can report it the same way.
//
// KEY RESPONSIBILITIES:
// - Define the error codes a round can fail with (invalid width, response count
//   mismatch, unreadable story source, closed input)
// - Attach severity and category so handlers can format consistently
// - Let callers test for a code without caring how deeply the error is wrapped
//
// INTEGRATION POINTS:
// - internal/blanks: Fill reports OUT_OF_RANGE when responses do not match blanks
// - internal/wrap: WordWrap reports INVALID_ARGUMENT for non-positive widths
// - internal/storage: story directory failures become SOURCE_UNAVAILABLE
// - internal/game: prompt failures become INPUT_CLOSED or CANCELLED
// - internal/cli, internal/ui: CLIErrorHandler and TUIErrorHandler display errors
//
// USAGE PATTERNS:
// - Create errors: use constructors like InvalidArgumentError(), OutOfRangeError()
// - Wrap errors: use Wrap() to attach a code to an underlying error
// - Check codes: use HasCode() rather than comparing messages
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Argument and template errors
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrCodeOutOfRange      ErrorCode = "OUT_OF_RANGE"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"

	// Story source errors
	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	ErrCodeStoryNotFound     ErrorCode = "STORY_NOT_FOUND"
	ErrCodeStorageFailure    ErrorCode = "STORAGE_FAILURE"

	// Round errors
	ErrCodeInputClosed ErrorCode = "INPUT_CLOSED"
	ErrCodeCancelled   ErrorCode = "CANCELLED"

	// Command errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeInvalidCommand  ErrorCode = "INVALID_COMMAND"

	// Environment errors
	ErrCodeClipboardUnavailable ErrorCode = "CLIPBOARD_UNAVAILABLE"
	ErrCodeInternalError        ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryStorage    ErrorCategory = "storage"
	CategoryRound      ErrorCategory = "round"
	CategoryCommand    ErrorCategory = "command"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeInvalidArgument, ErrCodeValidation:
		return CategoryValidation, SeverityWarning
	case ErrCodeOutOfRange:
		return CategoryRound, SeverityError

	case ErrCodeSourceUnavailable, ErrCodeStorageFailure:
		return CategoryStorage, SeverityError
	case ErrCodeStoryNotFound:
		return CategoryStorage, SeverityInfo

	case ErrCodeInputClosed, ErrCodeCancelled:
		return CategoryRound, SeverityInfo

	case ErrCodeCommandNotFound:
		return CategoryCommand, SeverityInfo
	case ErrCodeInvalidCommand:
		return CategoryCommand, SeverityError

	case ErrCodeClipboardUnavailable:
		return CategorySystem, SeverityWarning
	case ErrCodeInternalError:
		return CategorySystem, SeverityCritical

	default:
		return CategorySystem, SeverityError
	}
}

// IsAppError checks if an error is, or wraps, an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// HasCode reports whether err is an AppError carrying code
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// Common error constructors for frequently used errors
func InvalidArgumentError(message string) *AppError {
	return NewAppError(ErrCodeInvalidArgument, message)
}

func OutOfRangeError(message string) *AppError {
	return NewAppError(ErrCodeOutOfRange, message)
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func SourceUnavailableError(source string, err error) *AppError {
	return Wrap(err, ErrCodeSourceUnavailable, fmt.Sprintf("Story source unavailable: %s", source))
}

func StoryNotFoundError(id string) *AppError {
	return NewAppError(ErrCodeStoryNotFound, fmt.Sprintf("Story '%s' not found", id)).
		WithContext("story", id)
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("Storage operation failed: %s", operation))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func CommandNotFoundError(command string) *AppError {
	return NewAppError(ErrCodeCommandNotFound, fmt.Sprintf("Command '%s' not found", command))
}

func InvalidCommandError(command string, reason string) *AppError {
	return NewAppError(ErrCodeInvalidCommand, fmt.Sprintf("Invalid command '%s': %s", command, reason))
}
