package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies every failure the application can surface.
type ErrorCode int

const (
	ErrorCode_INTERNAL ErrorCode = iota
	ErrorCode_CONFIG
	ErrorCode_EMPTY_TRANSCRIPT
	ErrorCode_NO_VIDEO
	ErrorCode_RATE_LIMITED
	ErrorCode_CONTENT_TOO_LARGE
	ErrorCode_PROVIDER_FAILED
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_CONFIG:
		return "CONFIG"
	case ErrorCode_EMPTY_TRANSCRIPT:
		return "EMPTY_TRANSCRIPT"
	case ErrorCode_NO_VIDEO:
		return "NO_VIDEO"
	case ErrorCode_RATE_LIMITED:
		return "RATE_LIMITED"
	case ErrorCode_CONTENT_TOO_LARGE:
		return "CONTENT_TOO_LARGE"
	case ErrorCode_PROVIDER_FAILED:
		return "PROVIDER_FAILED"
	default:
		return "INTERNAL"
	}
}

// AppError is the application error type. Raw carries the underlying cause
// for logging only; Message is the sanitized text shown to the end user.
type AppError struct {
	Raw     error
	Code    ErrorCode
	Message string
}

// Error implements the error interface. Includes Raw, so this string is for
// logs, never for users.
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

func (e AppError) Unwrap() error {
	return e.Raw
}

// UserMessage returns the only text allowed to cross the transport boundary.
func (e AppError) UserMessage() string {
	return e.Message
}

// AsAppError extracts an AppError from an error chain. Anything that is not
// an AppError collapses to the generic internal error.
func AsAppError(err error) AppError {
	var app AppError
	if errors.As(err, &app) {
		return app
	}
	return ErrInternal(err)
}

func ErrConfig(message string) AppError {
	return AppError{
		Code:    ErrorCode_CONFIG,
		Message: message,
	}
}

func ErrEmptyTranscript() AppError {
	return AppError{
		Code:    ErrorCode_EMPTY_TRANSCRIPT,
		Message: "No speech content detected in this video.",
	}
}

func ErrNoVideo() AppError {
	return AppError{
		Code:    ErrorCode_NO_VIDEO,
		Message: "No video loaded yet. Send a video link first.",
	}
}

func ErrRateLimited(err error) AppError {
	return AppError{
		Raw:     err,
		Code:    ErrorCode_RATE_LIMITED,
		Message: "The AI is currently at capacity. Please wait a minute and try again.",
	}
}

func ErrContentTooLarge(err error) AppError {
	return AppError{
		Raw:     err,
		Code:    ErrorCode_CONTENT_TOO_LARGE,
		Message: "This video's content is too large for the current AI model.",
	}
}

func ErrProviderFailed(err error) AppError {
	return AppError{
		Raw:     err,
		Code:    ErrorCode_PROVIDER_FAILED,
		Message: "I couldn't generate an answer right now. Please try again.",
	}
}

func ErrInternal(err error) AppError {
	return AppError{
		Raw:     err,
		Code:    ErrorCode_INTERNAL,
		Message: "An internal error occurred. Please try again.",
	}
}
