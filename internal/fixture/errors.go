package fixture

import (
	"errors"
	"fmt"
)

// RunError represents a failure during fixture generation.
//
// Every failure is terminal: the tool never retries or recovers, because a
// fixture is only useful if the store and its JSON oracle are known to
// match. RunError carries structured fields so diagnostics name the plan,
// key, or path involved.
type RunError struct {
	// Code identifies the failure category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// Plan is the plan name, when relevant.
	Plan string

	// Key is the record key that failed to write (store-write failures).
	Key string

	// Path is the file path involved (open and output failures).
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// RunErrorCode categorizes fixture generation failures.
type RunErrorCode string

const (
	// ErrCodeBadPlan indicates an unrecognized plan name.
	ErrCodeBadPlan RunErrorCode = "BAD_PLAN"

	// ErrCodeStoreOpen indicates the store could not be created.
	ErrCodeStoreOpen RunErrorCode = "STORE_OPEN_FAILED"

	// ErrCodeConsistency indicates a freshly created store reported a
	// non-zero record count.
	ErrCodeConsistency RunErrorCode = "CONSISTENCY_CHECK_FAILED"

	// ErrCodeStoreWrite indicates a record could not be written.
	ErrCodeStoreWrite RunErrorCode = "STORE_WRITE_FAILED"

	// ErrCodeOutputWrite indicates the JSON oracle could not be written.
	ErrCodeOutputWrite RunErrorCode = "OUTPUT_WRITE_FAILED"
)

// Error implements the error interface.
func (e *RunError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("%s: %s (key=%q)", e.Code, e.Message, e.Key)
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	case e.Plan != "":
		return fmt.Sprintf("%s: %s (plan=%s)", e.Code, e.Message, e.Plan)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// CodeOf extracts the RunErrorCode from an error chain.
// Returns the empty code if err is not a RunError.
func CodeOf(err error) RunErrorCode {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}
