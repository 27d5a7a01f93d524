package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure so the HTTP layer can translate it.
type ErrorCode string

const (
	CodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	CodeExtractionFailed     ErrorCode = "EXTRACTION_FAILED"
	CodeAnswerFailed         ErrorCode = "ANSWER_FAILED"
	CodeDocumentNotFound     ErrorCode = "DOCUMENT_NOT_FOUND"
	CodeInvalidInput         ErrorCode = "INVALID_INPUT"
	CodeInternal             ErrorCode = "INTERNAL"
)

// HTTPStatus maps an error code to its HTTP response status.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeUnsupportedMediaType, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeDocumentNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AppError represents application-specific errors
type AppError struct {
	Code    ErrorCode
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

// Detail is the human-readable message surfaced to clients, underlying
// cause included.
func (e *AppError) Detail() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Error constructors
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func UnsupportedMediaTypeError(contentType string) *AppError {
	return NewAppError(CodeUnsupportedMediaType, fmt.Sprintf("unsupported file type %q", contentType), nil)
}

func ExtractionFailedError(message string, cause error) *AppError {
	return NewAppError(CodeExtractionFailed, message, cause)
}

func AnswerFailedError(cause error) *AppError {
	return NewAppError(CodeAnswerFailed, "question answering failed", cause)
}

func DocumentNotFoundError(id string) *AppError {
	return NewAppError(CodeDocumentNotFound, fmt.Sprintf("document %s not found", id), nil)
}

func InvalidInputError(message string) *AppError {
	return NewAppError(CodeInvalidInput, message, nil)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// CodeOf extracts the classification from an error chain; anything
// unclassified reports as CodeInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// DetailOf extracts the client-facing message from an error chain.
func DetailOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Detail()
	}
	return err.Error()
}
