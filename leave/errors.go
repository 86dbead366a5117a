/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The API layer maps these onto HTTP status codes via the helpers below.

ERROR CATEGORIES:
  1. Validation errors - malformed or inconsistent request input
  2. Domain precondition failures - unknown employee, approver mismatch,
     insufficient balance
  3. State-machine violations - transitions out of a terminal status
  4. Store errors - propagated opaquely, never retried here

USAGE:
  Callers match with errors.Is:

    if errors.Is(err, leave.ErrInsufficientBalance) { ... }

  Structured variants carry context and unwrap to their sentinel.
*/
package leave

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingField is returned when a required request field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownCategory is returned when the leave category is not one of
	// the fixed enum values.
	ErrUnknownCategory = errors.New("unknown leave category")

	// ErrInvalidDateRange is returned when the dates are inconsistent:
	// end before start, or a half-day request spanning more than one date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrUnknownEmployee is returned when the employee id does not resolve.
	ErrUnknownEmployee = errors.New("unknown employee")

	// ErrApproverMismatch is returned when the approver id does not resolve
	// or does not match the employee's designated approver.
	ErrApproverMismatch = errors.New("approver mismatch")

	// ErrInsufficientBalance is returned when the requested days exceed the
	// employee's available balance for the category.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidTransition is returned when a status change is attempted on
	// a request that is not pending.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when onboarding an employee with an
	// email that is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError identifies which required field failed validation.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *FieldError) Unwrap() error { return ErrMissingField }

// InsufficientBalanceError details a balance shortage.
type InsufficientBalanceError struct {
	EmployeeID string
	Category   Category
	Available  decimal.Decimal
	Requested  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance for %s: available %s, requested %s",
		e.Category, e.EmployeeID, e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// Shortfall returns how many days the request exceeds the balance by.
func (e *InsufficientBalanceError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// InvalidTransitionError details a rejected state-machine transition.
type InvalidTransitionError struct {
	RequestID string
	From      Status
	To        Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("request %s: cannot transition %s -> %s", e.RequestID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input or
// a domain precondition the caller must correct. These are never retried.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrUnknownEmployee) ||
		errors.Is(err, ErrApproverMismatch) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrDuplicateEmail)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
