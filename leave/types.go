/*
Package leave implements the leave-balance reconciliation engine.

PURPOSE:
  This package contains the domain types and algorithms for managing employee
  leave: business-day duration calculation, request validation, the balance
  ledger that debits and credits per-category counters, and the request
  lifecycle state machine (pending -> approved | rejected).

KEY CONCEPTS IN THIS FILE (types.go):
  - Category: A fixed leave type (sick, casual, paid)
  - BalanceSheet: Per-category available/availed/total counters
  - Employee: The aggregate owning a BalanceSheet
  - Request: A leave request with its frozen day count and status

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal so half days never lose precision
  2. Frozen counts: Request.DaysCount is computed once at submission and
     reused verbatim for reversal - never recomputed from dates
  3. Invariant: available[c] + availed[c] == total[c] for every category,
     outside of an in-flight read-modify-write

SEE ALSO:
  - calendar.go: Business-day duration calculation
  - validate.go: Request validation gate
  - ledger.go: Balance debit/credit
  - service.go: Request lifecycle orchestration
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORY - Fixed leave types
// =============================================================================

type Category string

const (
	CategorySick   Category = "sick"
	CategoryCasual Category = "casual"
	CategoryPaid   Category = "paid"
)

// Categories lists every valid leave category.
var Categories = []Category{CategorySick, CategoryCasual, CategoryPaid}

// ParseCategory returns the category for s, or false if s is not one of
// the fixed enum values.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategorySick, CategoryCasual, CategoryPaid:
		return Category(s), true
	}
	return "", false
}

// =============================================================================
// STATUS - Request lifecycle states
// =============================================================================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus returns the status for s, or false if s is not a known state.
// Callers filtering by status treat an unknown value as "no filter".
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// =============================================================================
// ROLE
// =============================================================================

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// =============================================================================
// BALANCE SHEET - Per-category leave counters
// =============================================================================

// BalanceSheet holds the three counters for every category.
// Total is fixed at onboarding; only Available and Availed move, and they
// move together: every debit of Available is a credit of Availed.
type BalanceSheet struct {
	Available map[Category]decimal.Decimal
	Availed   map[Category]decimal.Decimal
	Total     map[Category]decimal.Decimal
}

// NewBalanceSheet creates a sheet with available = total = entitlement and
// availed = 0 for every category.
func NewBalanceSheet(entitlement decimal.Decimal) BalanceSheet {
	b := BalanceSheet{
		Available: make(map[Category]decimal.Decimal, len(Categories)),
		Availed:   make(map[Category]decimal.Decimal, len(Categories)),
		Total:     make(map[Category]decimal.Decimal, len(Categories)),
	}
	for _, c := range Categories {
		b.Available[c] = entitlement
		b.Availed[c] = decimal.Zero
		b.Total[c] = entitlement
	}
	return b
}

// Clone returns a deep copy. Stores hand out clones so callers mutate
// nothing until Save.
func (b BalanceSheet) Clone() BalanceSheet {
	out := BalanceSheet{
		Available: make(map[Category]decimal.Decimal, len(b.Available)),
		Availed:   make(map[Category]decimal.Decimal, len(b.Availed)),
		Total:     make(map[Category]decimal.Decimal, len(b.Total)),
	}
	for c, v := range b.Available {
		out.Available[c] = v
	}
	for c, v := range b.Availed {
		out.Availed[c] = v
	}
	for c, v := range b.Total {
		out.Total[c] = v
	}
	return out
}

// Consistent reports whether available + availed == total for every category.
func (b BalanceSheet) Consistent() bool {
	for _, c := range Categories {
		if !b.Available[c].Add(b.Availed[c]).Equal(b.Total[c]) {
			return false
		}
	}
	return true
}

// =============================================================================
// EMPLOYEE - Aggregate owning the balance sheet
// =============================================================================

type Employee struct {
	ID           string
	FirstName    string
	MiddleName   string
	LastName     string
	Email        string
	Role         Role
	ApproverID   string // required unless Role is admin
	JoinedAt     time.Time
	Active       bool
	PasswordHash string
	Balances     BalanceSheet
	CreatedAt    time.Time
}

// Clone returns a deep copy of the employee, including balances.
func (e Employee) Clone() Employee {
	out := e
	out.Balances = e.Balances.Clone()
	return out
}

// FullName joins the non-empty name parts.
func (e Employee) FullName() string {
	name := e.FirstName
	if e.MiddleName != "" {
		name += " " + e.MiddleName
	}
	if e.LastName != "" {
		name += " " + e.LastName
	}
	return name
}

// =============================================================================
// REQUEST - A leave request
// =============================================================================

// Request is a single leave request. DaysCount is frozen at submission:
// rejection credits back exactly this value, never a recomputation from
// the dates, so a reversal always undoes the original debit even if the
// calendar rules change later.
type Request struct {
	ID          string
	EmployeeID  string
	ApproverID  string
	StartDate   time.Time
	EndDate     time.Time
	Category    Category
	HalfDay     bool
	Description string
	DaysCount   decimal.Decimal
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
