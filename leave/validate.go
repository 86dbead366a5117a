/*
validate.go - Leave request validation gate

PURPOSE:
  Validates a submission before any mutation happens. Checks run in a fixed
  order and short-circuit on the first failure:

    1. Required fields present, category in the fixed enum
    2. Date range consistency (end not before start; half-day spans one date)
    3. Employee id resolves
    4. Approver id resolves and matches the employee's designated approver
    5. available[category] >= computed day count

  The gate is read-only. It returns the resolved employee and the computed
  day count so the lifecycle does not fetch or compute twice; all mutation
  happens afterwards in the ledger and stores.

SEE ALSO:
  - calendar.go: Day count used by the sufficiency check
  - service.go: Runs the gate before debiting
*/
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Submission is the typed input for a new leave request.
type Submission struct {
	EmployeeID  string
	ApproverID  string
	StartDate   time.Time
	EndDate     time.Time
	Category    Category
	HalfDay     bool
	Description string // optional
}

// Validator is the read-only gate in front of the lifecycle.
type Validator struct {
	Employees EmployeeStore
}

// Validate runs every check against sub. On success it returns the resolved
// employee and the day count the request will debit.
func (v *Validator) Validate(ctx context.Context, sub Submission) (*Employee, decimal.Decimal, error) {
	// 1. Required fields
	if sub.EmployeeID == "" {
		return nil, decimal.Zero, &FieldError{Field: "employeeId"}
	}
	if sub.ApproverID == "" {
		return nil, decimal.Zero, &FieldError{Field: "approverId"}
	}
	if sub.StartDate.IsZero() {
		return nil, decimal.Zero, &FieldError{Field: "startDate"}
	}
	if sub.EndDate.IsZero() {
		return nil, decimal.Zero, &FieldError{Field: "endDate"}
	}
	if _, ok := ParseCategory(string(sub.Category)); !ok {
		return nil, decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCategory, sub.Category)
	}

	// 2. Date range consistency
	if sub.HalfDay {
		if !sameDay(sub.StartDate, sub.EndDate) {
			return nil, decimal.Zero, fmt.Errorf("%w: half-day leave must start and end on the same date", ErrInvalidDateRange)
		}
	} else if dayOf(sub.EndDate).Before(dayOf(sub.StartDate)) {
		return nil, decimal.Zero, fmt.Errorf("%w: end date before start date", ErrInvalidDateRange)
	}

	// 3. Employee existence
	emp, err := v.Employees.FindByID(ctx, sub.EmployeeID)
	if err != nil {
		if IsNotFound(err) {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownEmployee, sub.EmployeeID)
		}
		return nil, decimal.Zero, fmt.Errorf("resolving employee: %w", err)
	}

	// 4. Approver existence and relationship
	if _, err := v.Employees.FindByID(ctx, sub.ApproverID); err != nil {
		if IsNotFound(err) {
			return nil, decimal.Zero, fmt.Errorf("%w: approver %s does not exist", ErrApproverMismatch, sub.ApproverID)
		}
		return nil, decimal.Zero, fmt.Errorf("resolving approver: %w", err)
	}
	if emp.ApproverID != sub.ApproverID {
		return nil, decimal.Zero, fmt.Errorf("%w: %s is not the designated approver for %s",
			ErrApproverMismatch, sub.ApproverID, sub.EmployeeID)
	}

	// 5. Sufficiency
	days := Duration(sub.StartDate, sub.EndDate, sub.HalfDay)
	if emp.Balances.Available[sub.Category].LessThan(days) {
		return nil, decimal.Zero, &InsufficientBalanceError{
			EmployeeID: emp.ID,
			Category:   sub.Category,
			Available:  emp.Balances.Available[sub.Category],
			Requested:  days,
		}
	}

	return emp, days, nil
}
