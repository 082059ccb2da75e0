package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer. Match with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrIOFailure       = errors.New("io failure")
	ErrNotSupported    = errors.New("not supported")
)

// PathError records a failed filesystem or storage operation on a path
type PathError struct {
	Op   string // e.g., "create folder"
	Path string
	Kind error // one of the Err* kinds above
	Err  error // underlying cause, may be nil
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("can't %s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("can't %s %s: %v", e.Op, e.Path, e.Kind)
}

func (e *PathError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewPathError builds a PathError
func NewPathError(op, path string, kind, err error) *PathError {
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}
