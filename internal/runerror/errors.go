// Package runerror defines the fatal errors a validation run can end with.
// Both kinds carry a message fit for the user and can be told apart with
// errors.As.
package runerror

import (
	"errors"
	"fmt"
)

// InputKind classifies what is wrong with an input table.
type InputKind string

// Input problems
const (
	MissingColumns    InputKind = "missing_columns"
	EmptyTable        InputKind = "empty_table"
	Unreadable        InputKind = "unreadable"
	AlreadyValidated  InputKind = "already_validated"
	InvalidPeriod     InputKind = "invalid_period"
	UnsupportedFormat InputKind = "unsupported_format"
)

// InputError means the input table cannot be processed at all.
type InputError struct {
	Kind     InputKind
	FilePath string
	Reason   string
	Err      error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input %s: %s: %v", e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid input %s: %s", e.FilePath, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError creates an InputError.
func NewInputError(kind InputKind, filePath, reason string, err error) *InputError {
	return &InputError{Kind: kind, FilePath: filePath, Reason: reason, Err: err}
}

// ContentionError means the output target is held by another process.
type ContentionError struct {
	FilePath string
	Err      error
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("output file %s is in use; close it and run again: %v", e.FilePath, e.Err)
}

func (e *ContentionError) Unwrap() error {
	return e.Err
}

// IsInput reports whether err is or wraps an InputError of any of the given
// kinds. Without kinds every InputError matches.
func IsInput(err error, kinds ...InputKind) bool {
	var ie *InputError
	if !errors.As(err, &ie) {
		return false
	}
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if ie.Kind == k {
			return true
		}
	}
	return false
}

// IsContention reports whether err is or wraps a ContentionError.
func IsContention(err error) bool {
	var ce *ContentionError
	return errors.As(err, &ce)
}
