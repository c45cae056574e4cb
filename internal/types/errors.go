// Package types provides type definitions for structured data used throughout the campus-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// InvalidStateError reports a programming or integration error: a malformed job
// requirement, or feedback requested for a passing evaluation.
type InvalidStateError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidStateError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid state in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid state: %s", e.Message)
}

func (e *InvalidStateError) Unwrap() error {
	return e.Cause
}
