package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrBadRequest        = errors.New("bad request")
	ErrInternal          = errors.New("internal server error")
	ErrValidation        = errors.New("validation error")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEmptyExtraction   = errors.New("empty extraction")
	ErrExtraction        = errors.New("extraction error")
	ErrAIService         = errors.New("ai service error")
	ErrRender            = errors.New("render error")
)

// Error codes exposed to API clients
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeInternal          = "INTERNAL_ERROR"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeEmptyExtraction   = "EMPTY_EXTRACTION"
	CodeExtraction        = "EXTRACTION_ERROR"
	CodeAIService         = "AI_SERVICE_ERROR"
	CodeRender            = "RENDER_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
	// Cause is the underlying failure, kept out of client-facing messages
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	var errs []error
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithCause attaches the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// Common error constructors

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       CodeBadRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       CodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// Validation reports the first missing or invalid field of client input.
func Validation(field string, message string) *AppError {
	return (&AppError{
		Err:        ErrValidation,
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}).WithDetails(map[string]string{"field": field})
}

func UnsupportedFormat(ext string) *AppError {
	return &AppError{
		Err:        ErrUnsupportedFormat,
		Code:       CodeUnsupportedFormat,
		Message:    fmt.Sprintf("Unsupported file type %q. Please upload a .docx or .pdf file.", ext),
		StatusCode: http.StatusBadRequest,
	}
}

func EmptyExtraction() *AppError {
	return &AppError{
		Err:        ErrEmptyExtraction,
		Code:       CodeEmptyExtraction,
		Message:    "Could not extract any text from the document.",
		StatusCode: http.StatusInternalServerError,
	}
}

// Extraction wraps a document that could not be read.
func Extraction(message string, cause error) *AppError {
	return &AppError{
		Err:        ErrExtraction,
		Code:       CodeExtraction,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// AIService wraps a failure of the language model collaborator.
func AIService(message string, cause error) *AppError {
	return &AppError{
		Err:        ErrAIService,
		Code:       CodeAIService,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Render wraps a document construction failure.
func Render(message string, cause error) *AppError {
	return &AppError{
		Err:        ErrRender,
		Code:       CodeRender,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
