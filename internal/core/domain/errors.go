package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateToken    = errors.New("duplicate share token")
)

var (
	ErrGroupNotFound    = fmt.Errorf("group %w", ErrNotFound)
	ErrChildNotFound    = fmt.Errorf("child %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("clothing category %w", ErrNotFound)
	// ErrStockNotFound means there is no record to decrement.
	ErrStockNotFound = fmt.Errorf("stock record %w", ErrNotFound)
)

// FieldError describes a validation failure for a single input field.
type FieldError struct {
	Field   string
	Message string
}

type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Fields groups messages by field, keeping the order they were added in.
func (e *ValidationError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// InsufficientStockError is returned when a decrement would take the
// count below zero. The stored count is left untouched.
type InsufficientStockError struct {
	CurrentCount int
	Requested    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: current %d, requested %d", e.CurrentCount, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
