/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Struct tags are checked with go-playground/validator before any value
  reaches the domain validator, so malformed bodies fail fast with a 400.
  Dates cross the wire as "2006-01-02" strings.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/block8/leave-engine/leave"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// LoginRequest is the credential pair for /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateEmployeeRequest onboards an employee.
type CreateEmployeeRequest struct {
	FirstName  string `json:"firstName" validate:"required,min=1,max=50"`
	MiddleName string `json:"middleName,omitempty" validate:"max=50"`
	LastName   string `json:"lastName" validate:"required,min=1,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"required,oneof=admin employee"`
	Approver   string `json:"approver,omitempty"`
	DOJ        string `json:"doj" validate:"required"` // date of joining, 2006-01-02
	Password   string `json:"password" validate:"required,min=5"`
}

// SubmitLeaveRequest submits a leave request.
type SubmitLeaveRequest struct {
	EmployeeID  string `json:"employeeId" validate:"required"`
	ApproverID  string `json:"approverId" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	LeaveType   string `json:"leaveType" validate:"required,oneof=sick casual paid"`
	HalfDay     *bool  `json:"halfDay" validate:"required"`
	Description string `json:"description,omitempty"`
}

// SetStatusRequest approves or rejects a pending request.
type SetStatusRequest struct {
	Status     string `json:"status" validate:"required"`
	ApproverID string `json:"approverId" validate:"required"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token    string      `json:"token"`
	Employee EmployeeDTO `json:"employee"`
}

// EmployeeDTO represents an employee in API responses. The credential hash
// never leaves the server.
type EmployeeDTO struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"firstName"`
	MiddleName string     `json:"middleName,omitempty"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Approver   string     `json:"approver,omitempty"`
	DOJ        string     `json:"doj,omitempty"`
	Active     bool       `json:"active"`
	Balances   BalanceDTO `json:"balances"`
}

// BalanceDTO is the per-category counter triple.
type BalanceDTO struct {
	Available map[string]string `json:"available"`
	Availed   map[string]string `json:"availed"`
	Total     map[string]string `json:"total"`
}

// LeaveRequestDTO represents a leave request in API responses.
type LeaveRequestDTO struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	ApproverID  string `json:"approverId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	LeaveType   string `json:"leaveType"`
	HalfDay     bool   `json:"halfDay"`
	Description string `json:"description,omitempty"`
	DaysCount   string `json:"daysCount"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e *leave.Employee) EmployeeDTO {
	doj := ""
	if !e.JoinedAt.IsZero() {
		doj = e.JoinedAt.Format("2006-01-02")
	}
	return EmployeeDTO{
		ID:         e.ID,
		FirstName:  e.FirstName,
		MiddleName: e.MiddleName,
		LastName:   e.LastName,
		Email:      e.Email,
		Role:       string(e.Role),
		Approver:   e.ApproverID,
		DOJ:        doj,
		Active:     e.Active,
		Balances:   toBalanceDTO(e.Balances),
	}
}

func toBalanceDTO(b leave.BalanceSheet) BalanceDTO {
	out := BalanceDTO{
		Available: make(map[string]string, len(b.Available)),
		Availed:   make(map[string]string, len(b.Availed)),
		Total:     make(map[string]string, len(b.Total)),
	}
	for c, v := range b.Available {
		out.Available[string(c)] = v.String()
	}
	for c, v := range b.Availed {
		out.Availed[string(c)] = v.String()
	}
	for c, v := range b.Total {
		out.Total[string(c)] = v.String()
	}
	return out
}

func toLeaveRequestDTO(r *leave.Request) LeaveRequestDTO {
	return LeaveRequestDTO{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		ApproverID:  r.ApproverID,
		StartDate:   r.StartDate.Format("2006-01-02"),
		EndDate:     r.EndDate.Format("2006-01-02"),
		LeaveType:   string(r.Category),
		HalfDay:     r.HalfDay,
		Description: r.Description,
		DaysCount:   r.DaysCount.String(),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toLeaveRequestDTOs(rs []leave.Request) []LeaveRequestDTO {
	dtos := make([]LeaveRequestDTO, len(rs))
	for i := range rs {
		dtos[i] = toLeaveRequestDTO(&rs[i])
	}
	return dtos
}
