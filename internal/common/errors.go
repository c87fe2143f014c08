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

// Common application errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDocumentRead  = errors.New("document read failed")
	ErrSerialization = errors.New("serialization failed")
	ErrValidation    = errors.New("validation failed")
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

// DocumentReadError reports a source document that could not be opened or whose
// text could not be extracted. The batch records it and moves on.
type DocumentReadError struct {
	Source string
	Cause  error
}

func NewDocumentReadError(source string, cause error) *DocumentReadError {
	return &DocumentReadError{Source: source, Cause: cause}
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("read document %s: %v", e.Source, e.Cause)
}

func (e *DocumentReadError) Unwrap() error { return e.Cause }

func (e *DocumentReadError) Is(target error) bool { return target == ErrDocumentRead }

// SerializationError reports a failed write (or read) of a persisted collection.
// It is fatal for the run.
type SerializationError struct {
	Path  string
	Op    string
	Cause error
}

func NewSerializationError(path, op string, cause error) *SerializationError {
	return &SerializationError{Path: path, Op: op, Cause: cause}
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *SerializationError) Unwrap() error { return e.Cause }

func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }
