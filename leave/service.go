/*
service.go - Leave request lifecycle

PURPOSE:
  Orchestrates a request from submission through approval or rejection,
  coordinating the validator, calendar, and ledger, and emitting
  notifications at each step.

STATE MACHINE:
  pending (initial) -> approved (terminal)
  pending           -> rejected (terminal)

  Any other transition fails with InvalidTransitionError and mutates
  nothing. Approval never touches the ledger; only the request status
  changes. Rejection credits back the request's stored DaysCount before
  the status flip is persisted.

ORDERING:
  Within one submit or reject, the ledger write is durably applied before
  the dependent request write. A crash between the two leaves the ledger
  correct and the request absent or still pending - never double-debited.
  The debit is the last mutating step before the request is stored, so the
  partial-failure window is a single store call.

NOTIFICATIONS:
  Fire-and-forget. A sink failure is logged and discarded; it never fails
  the business operation.

SEE ALSO:
  - validate.go: The read-only gate run before any mutation
  - ledger.go: Debit/credit semantics
*/
package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultEntitlement is the per-category ceiling granted at onboarding.
var DefaultEntitlement = decimal.NewFromInt(10)

// Service is the leave request lifecycle. Construct with NewService;
// stores and the notifier are injected, never global.
type Service struct {
	Employees   EmployeeStore
	Requests    LeaveStore
	Notifier    Notifier
	Log         *slog.Logger
	Entitlement decimal.Decimal

	// Now is the clock, replaceable in tests.
	Now func() time.Time

	validator *Validator
	ledger    *Ledger
}

func NewService(employees EmployeeStore, requests LeaveStore, notifier Notifier, log *slog.Logger) *Service {
	if notifier == nil {
		notifier = Noop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		Employees:   employees,
		Requests:    requests,
		Notifier:    notifier,
		Log:         log,
		Entitlement: DefaultEntitlement,
		Now:         time.Now,
		validator:   &Validator{Employees: employees},
		ledger:      &Ledger{Employees: employees},
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit validates a submission, debits the employee's balance, and persists
// the request as pending. The debit is applied (and durable) before the
// request record is written. Notifies the approver and the employee.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Request, error) {
	emp, days, err := s.validator.Validate(ctx, sub)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Debit(ctx, emp, sub.Category, days); err != nil {
		return nil, err
	}

	now := s.Now()
	req := &Request{
		ID:          uuid.NewString(),
		EmployeeID:  sub.EmployeeID,
		ApproverID:  sub.ApproverID,
		StartDate:   dayOf(sub.StartDate),
		EndDate:     dayOf(sub.EndDate),
		Category:    sub.Category,
		HalfDay:     sub.HalfDay,
		Description: sub.Description,
		DaysCount:   days,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Requests.Save(ctx, req); err != nil {
		return nil, fmt.Errorf("persisting request: %w", err)
	}

	if approver, aerr := s.Employees.FindByID(ctx, sub.ApproverID); aerr == nil {
		subject, body := submittedMessage(emp, req)
		s.notify(ctx, approver.Email, subject, body)
	}
	subject, body := confirmationMessage(emp, req)
	s.notify(ctx, emp.Email, subject, body)

	return req, nil
}

// =============================================================================
// STATUS CHANGE
// =============================================================================

// SetStatus transitions a pending request to approved or rejected. The
// acting employee must be the request's designated approver. Rejection
// credits back the stored DaysCount before the status is persisted;
// approval changes only the status.
func (s *Service) SetStatus(ctx context.Context, requestID string, newStatus Status, actingEmployeeID string) (*Request, error) {
	req, err := s.Requests.FindByID(ctx, requestID)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: request %s", ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("resolving request: %w", err)
	}

	if actingEmployeeID != req.ApproverID {
		return nil, fmt.Errorf("%w: %s may not act on request %s",
			ErrApproverMismatch, actingEmployeeID, requestID)
	}

	if newStatus != StatusApproved && newStatus != StatusRejected {
		return nil, &InvalidTransitionError{RequestID: req.ID, From: req.Status, To: newStatus}
	}
	if req.Status != StatusPending {
		return nil, &InvalidTransitionError{RequestID: req.ID, From: req.Status, To: newStatus}
	}

	emp, err := s.Employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("resolving employee %s: %w", req.EmployeeID, err)
	}

	if newStatus == StatusRejected {
		// Exact reversal: credit the stored count, never a recomputation.
		if err := s.ledger.Credit(ctx, emp, req.Category, req.DaysCount); err != nil {
			return nil, err
		}
	}

	req.Status = newStatus
	req.UpdatedAt = s.Now()
	if err := s.Requests.Save(ctx, req); err != nil {
		return nil, fmt.Errorf("persisting status change: %w", err)
	}

	subject, body := decisionMessage(emp, req)
	s.notify(ctx, emp.Email, subject, body)

	return req, nil
}

// =============================================================================
// QUERY
// =============================================================================

// ListQuery selects requests by employee or approver, optionally narrowed
// by status. An unrecognized status value means "no status filter".
type ListQuery struct {
	EmployeeID string
	ApproverID string
	Status     string
}

// List returns the requests matching q, oldest first.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Request, error) {
	f := Filter{EmployeeID: q.EmployeeID, ApproverID: q.ApproverID}
	if st, ok := ParseStatus(q.Status); ok {
		f.Status = st
	}
	return s.Requests.Find(ctx, f)
}

// =============================================================================
// ONBOARDING
// =============================================================================

// NewEmployee is the typed input for onboarding. PasswordHash is already
// hashed; the engine never sees a plaintext credential.
type NewEmployee struct {
	FirstName    string
	MiddleName   string
	LastName     string
	Email        string
	Role         Role
	ApproverID   string
	JoinedAt     time.Time
	PasswordHash string
}

// RegisterEmployee onboards an employee with all counters initialized:
// available = total = entitlement, availed = 0. Non-admin employees must
// name an existing approver. Sends a welcome notification.
func (s *Service) RegisterEmployee(ctx context.Context, ne NewEmployee) (*Employee, error) {
	if ne.FirstName == "" {
		return nil, &FieldError{Field: "firstName"}
	}
	if ne.Email == "" {
		return nil, &FieldError{Field: "email"}
	}
	if _, ok := ParseRole(string(ne.Role)); !ok {
		return nil, &FieldError{Field: "role"}
	}

	if _, err := s.Employees.FindByEmail(ctx, ne.Email); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, ne.Email)
	} else if !IsNotFound(err) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	if ne.Role != RoleAdmin {
		if ne.ApproverID == "" {
			return nil, &FieldError{Field: "approver"}
		}
		if _, err := s.Employees.FindByID(ctx, ne.ApproverID); err != nil {
			if IsNotFound(err) {
				return nil, fmt.Errorf("%w: approver %s does not exist", ErrApproverMismatch, ne.ApproverID)
			}
			return nil, fmt.Errorf("resolving approver: %w", err)
		}
	}

	emp := &Employee{
		ID:           uuid.NewString(),
		FirstName:    ne.FirstName,
		MiddleName:   ne.MiddleName,
		LastName:     ne.LastName,
		Email:        ne.Email,
		Role:         ne.Role,
		ApproverID:   ne.ApproverID,
		JoinedAt:     ne.JoinedAt,
		Active:       true,
		PasswordHash: ne.PasswordHash,
		Balances:     NewBalanceSheet(s.Entitlement),
		CreatedAt:    s.Now(),
	}

	if err := s.Employees.Save(ctx, emp); err != nil {
		return nil, fmt.Errorf("persisting employee: %w", err)
	}

	subject, body := welcomeMessage(emp)
	s.notify(ctx, emp.Email, subject, body)

	return emp, nil
}

// notify delivers one notification, logging and discarding any failure.
func (s *Service) notify(ctx context.Context, to, subject, body string) {
	if err := s.Notifier.Send(ctx, to, subject, body); err != nil {
		s.Log.Warn("notification delivery failed",
			"to", to, "subject", subject, "error", err)
	}
}
