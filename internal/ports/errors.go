package ports

import "fmt"

// InvalidProblemError means validation rejected the problem. The caller
// must correct the input; retrying without changes cannot succeed.
type InvalidProblemError struct {
	// Detail is the joined list of violated invariants.
	Detail string

	// Cause is the underlying validation error, if any.
	Cause error
}

// Error implements the error interface.
func (e *InvalidProblemError) Error() string {
	return fmt.Sprintf("invalid problem: %s", e.Detail)
}

// Unwrap returns the underlying validation error.
func (e *InvalidProblemError) Unwrap() error {
	return e.Cause
}

// NotAvailableError means the requested engine cannot handle this problem
// shape, e.g. a MIP submitted to an LP-only engine. A configuration error,
// not a transient failure.
type NotAvailableError struct {
	// Detail names the engine and the unsupported capability.
	Detail string
}

// Error implements the error interface.
func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("solver not available: %s", e.Detail)
}

// ExecutionFailedError means the underlying engine reported an internal
// error. Never retried automatically: a deterministic engine failing once
// will fail again without input change.
type ExecutionFailedError struct {
	// Detail is the engine-provided failure description.
	Detail string
}

// Error implements the error interface.
func (e *ExecutionFailedError) Error() string {
	return fmt.Sprintf("solver execution failed: %s", e.Detail)
}
