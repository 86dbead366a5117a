/*
ledger.go - Balance debit and credit

PURPOSE:
  The ledger owns every mutation of an employee's leave counters. A debit
  moves days from available to availed; a credit is the exact inverse.
  Total is never touched by either operation.

ATOMICITY:
  Each operation is a single read-modify-write of the employee aggregate,
  persisted in one EmployeeStore.Save call. If Save fails, the in-memory
  mutation is discarded with the employee copy and nothing is visible.
  The lifecycle orders ledger-before-request-persist so a crash between
  the two writes leaves the ledger already correct and the request simply
  absent (re-playable), never double-debited.

REVERSAL RULE:
  Credit is always called with the DaysCount stored on the original
  request. Recomputing from dates at reversal time could drift if the
  calendar rules change between submission and rejection; the stored
  count cannot.

SEE ALSO:
  - validate.go: Enforces sufficiency before Debit is reached
  - service.go: Call ordering
*/
package leave

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Ledger applies balance mutations to employee aggregates.
type Ledger struct {
	Employees EmployeeStore
}

// Debit decrements available[category] and increments availed[category] by
// days, then persists the aggregate. The validator has already checked
// sufficiency; the guard here protects direct callers.
func (l *Ledger) Debit(ctx context.Context, emp *Employee, category Category, days decimal.Decimal) error {
	if emp.Balances.Available[category].LessThan(days) {
		return &InsufficientBalanceError{
			EmployeeID: emp.ID,
			Category:   category,
			Available:  emp.Balances.Available[category],
			Requested:  days,
		}
	}

	emp.Balances.Available[category] = emp.Balances.Available[category].Sub(days)
	emp.Balances.Availed[category] = emp.Balances.Availed[category].Add(days)

	if err := l.Employees.Save(ctx, emp); err != nil {
		return fmt.Errorf("persisting debit for %s: %w", emp.ID, err)
	}
	return nil
}

// Credit increments available[category] and decrements availed[category] by
// days, then persists the aggregate. The exact inverse of Debit.
func (l *Ledger) Credit(ctx context.Context, emp *Employee, category Category, days decimal.Decimal) error {
	emp.Balances.Available[category] = emp.Balances.Available[category].Add(days)
	emp.Balances.Availed[category] = emp.Balances.Availed[category].Sub(days)

	if err := l.Employees.Save(ctx, emp); err != nil {
		return fmt.Errorf("persisting credit for %s: %w", emp.ID, err)
	}
	return nil
}
