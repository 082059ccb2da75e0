package application

import (
	"fmt"

	"rendervault/internal/domain"
)

// Error kinds re-exported for adapters. Match with errors.Is.
var (
	ErrInvalidArgument = domain.ErrInvalidArgument
	ErrNotFound        = domain.ErrNotFound
	ErrAlreadyExists   = domain.ErrAlreadyExists
	ErrIOFailure       = domain.ErrIOFailure
	ErrNotSupported    = domain.ErrNotSupported
)

// PathError is a failed filesystem or storage operation on a path
type PathError = domain.PathError

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes every validation failure match ErrInvalidArgument
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// UnsupportedError reports an operation a category does not support
type UnsupportedError struct {
	Category domain.Category
	Op       string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("cannot %s for %s: not supported", e.Op, e.Category)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrNotSupported
}
