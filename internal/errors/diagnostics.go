package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostics collects every problem found across all compilation phases so
// a single run reports the full picture instead of failing on the first hit
type Diagnostics struct {
	Errors []StrataError
}

// NewDiagnostics creates an empty diagnostics collection
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Error implements the error interface
func (d *Diagnostics) Error() string {
	switch len(d.Errors) {
	case 0:
		return "no errors"
	case 1:
		return d.Errors[0].Error()
	}
	var messages []string
	for i, err := range d.Errors {
		messages = append(messages, fmt.Sprintf("  %d. %s", i+1, err.Error()))
	}
	return fmt.Sprintf("%d compile errors:\n%s", len(d.Errors), strings.Join(messages, "\n"))
}

// Add appends an error to the collection; nil is ignored
func (d *Diagnostics) Add(err StrataError) {
	if err != nil {
		d.Errors = append(d.Errors, err)
	}
}

// Merge appends every error from another collection
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other != nil {
		d.Errors = append(d.Errors, other.Errors...)
	}
}

// IsEmpty returns true if there are no errors
func (d *Diagnostics) IsEmpty() bool {
	return len(d.Errors) == 0
}

// Count returns the number of errors
func (d *Diagnostics) Count() int {
	return len(d.Errors)
}

// HasCode returns true if any error with the specified code exists
func (d *Diagnostics) HasCode(code ErrorCode) bool {
	for _, err := range d.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// GetByCode returns all errors with the specified code
func (d *Diagnostics) GetByCode(code ErrorCode) []StrataError {
	var result []StrataError
	for _, err := range d.Errors {
		if err.ErrorCode() == code {
			result = append(result, err)
		}
	}
	return result
}

// ErrOrNil returns the collection as an error, or nil when it is empty.
// Returning a typed nil pointer as error would never compare equal to nil,
// so callers must use this instead of returning the collection directly.
func (d *Diagnostics) ErrOrNil() error {
	if d == nil || d.IsEmpty() {
		return nil
	}
	return d
}

// Unwrap exposes the collected errors to errors.Is / errors.As
func (d *Diagnostics) Unwrap() []error {
	out := make([]error, len(d.Errors))
	for i, err := range d.Errors {
		out[i] = err
	}
	return out
}

// Is checks if any of the collected errors matches the target
func (d *Diagnostics) Is(target error) bool {
	for _, err := range d.Errors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// As finds the first collected error assignable to the target
func (d *Diagnostics) As(target any) bool {
	for _, err := range d.Errors {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}
