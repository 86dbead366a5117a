/*
store.go - Persistence interfaces for the leave engine

PURPOSE:
  Defines the interface between the domain logic and the database. The
  engine never talks to a concrete store; implementations are injected at
  construction time.

KEY INTERFACES:
  EmployeeStore: Employee aggregate persistence (the ledger's write path)
  LeaveStore:    Leave request persistence and filtered listing

CONTRACT:
  - FindByID / FindByEmail return ErrNotFound (wrapped or bare) when the
    record does not exist.
  - Finders return copies: mutating a returned value has no effect until
    Save is called with it. Save is a whole-aggregate write (single
    read-modify-write; last write wins under concurrency).

IMPLEMENTATIONS:
  - leave/store/memory.go: In-memory, for tests and development
  - store/sqlite/sqlite.go: SQLite-backed, for production

SEE ALSO:
  - ledger.go: Persists balance mutations through EmployeeStore
  - service.go: Ordering guarantee between the two stores
*/
package leave

import "context"

// EmployeeStore persists Employee aggregates.
type EmployeeStore interface {
	// FindByID returns the employee or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Employee, error)

	// FindByEmail returns the employee or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*Employee, error)

	// Save writes the whole aggregate, balances included.
	Save(ctx context.Context, e *Employee) error
}

// Filter selects leave requests. Zero-value fields do not constrain.
type Filter struct {
	EmployeeID string
	ApproverID string
	Status     Status
}

// LeaveStore persists leave requests.
type LeaveStore interface {
	// FindByID returns the request or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Request, error)

	// Find returns requests matching the filter, oldest first.
	Find(ctx context.Context, f Filter) ([]Request, error)

	// Save inserts or replaces the request.
	Save(ctx context.Context, r *Request) error
}
