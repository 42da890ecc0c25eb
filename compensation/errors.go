/*
errors.go - Error taxonomy for the compensation engine

PURPOSE:
  Three failure classes cover every way a computation can be refused:

  1. Validation errors - malformed or out-of-domain input (negative salary,
     termination before join date, zero work days)
  2. Conflict errors   - a payroll line for an employee already in the batch
  3. State errors      - mutating a paid batch, or a non-forward transition

  Every failure is raised synchronously at the offending call. There is no
  I/O here, so no error is retryable: a failure is either a caller bug (bad
  input) or a caller policy violation (wrong state).

USAGE:
  Callers match on the sentinels:

    if errors.Is(err, compensation.ErrValidation) { ... 400 ... }
    if errors.Is(err, compensation.ErrConflict)   { ... 409 ... }

  and can unwrap the structured types for detail:

    var conflict *compensation.ConflictError
    if errors.As(err, &conflict) { log(conflict.EmployeeID) }
*/
package compensation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of all input-domain failures.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when adding a payroll line for an employee
	// already present in the batch.
	ErrConflict = errors.New("conflicting payroll line")

	// ErrInvalidState is returned when mutating a paid batch or requesting
	// a non-forward status transition.
	ErrInvalidState = errors.New("invalid batch state")

	// ErrLineNotFound is returned when a referenced payroll line does not
	// exist in the batch.
	ErrLineNotFound = errors.New("payroll line not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports which input field was out of domain and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports a duplicate payroll line for an employee.
type ConflictError struct {
	BatchID    string
	EmployeeID EmployeeID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("batch %s already contains a line for employee %s", e.BatchID, e.EmployeeID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// InvalidStateError reports an operation attempted in a status that forbids it.
type InvalidStateError struct {
	Status    BatchStatus
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s while batch is %s", e.Operation, e.Status)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to caller input or a caller
// policy violation, as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrLineNotFound)
}
