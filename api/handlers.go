/*
handlers.go - HTTP handlers for the leave engine

PURPOSE:
  Translates HTTP requests into calls on the lifecycle service and the
  auth service, and domain errors into status codes:

    401  invalid credentials
    404  record not found
    409  invalid status transition
    400  every other client error (validation, approver mismatch,
         insufficient balance, duplicate email)
    500  store/infrastructure failures

  Request bodies are validated with go-playground/validator struct tags
  before the domain validator runs, so shape errors never reach the core.

SEE ALSO:
  - dto.go: Request/response types
  - server.go: Route wiring
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/block8/leave-engine/auth"
	"github.com/block8/leave-engine/leave"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	Service  *leave.Service
	Auth     *auth.Service
	validate *validator.Validate
	log      *slog.Logger
}

func NewHandler(service *leave.Service, authSvc *auth.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Service:  service,
		Auth:     authSvc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// =============================================================================
// AUTH
// =============================================================================

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if !h.decode(w, r, &body) {
		return
	}

	token, emp, err := h.Auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, LoginResponse{Token: token, Employee: toEmployeeDTO(emp)})
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// CreateEmployee handles POST /api/employees.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var body CreateEmployeeRequest
	if !h.decode(w, r, &body) {
		return
	}

	doj, err := time.Parse("2006-01-02", body.DOJ)
	if err != nil {
		h.writeBadRequest(w, "doj must be a valid date (YYYY-MM-DD)")
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	emp, err := h.Service.RegisterEmployee(r.Context(), leave.NewEmployee{
		FirstName:    body.FirstName,
		MiddleName:   body.MiddleName,
		LastName:     body.LastName,
		Email:        body.Email,
		Role:         leave.Role(body.Role),
		ApproverID:   body.Approver,
		JoinedAt:     doj,
		PasswordHash: hash,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployee handles GET /api/employees/{id}.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Employees.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// GetBalance handles GET /api/employees/{id}/balance.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Employees.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toBalanceDTO(emp.Balances))
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// SubmitLeave handles POST /api/leave.
func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var body SubmitLeaveRequest
	if !h.decode(w, r, &body) {
		return
	}

	start, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		h.writeBadRequest(w, "startDate must be a valid date (YYYY-MM-DD)")
		return
	}
	end, err := time.Parse("2006-01-02", body.EndDate)
	if err != nil {
		h.writeBadRequest(w, "endDate must be a valid date (YYYY-MM-DD)")
		return
	}

	req, err := h.Service.Submit(r.Context(), leave.Submission{
		EmployeeID:  body.EmployeeID,
		ApproverID:  body.ApproverID,
		StartDate:   start,
		EndDate:     end,
		Category:    leave.Category(body.LeaveType),
		HalfDay:     *body.HalfDay,
		Description: body.Description,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toLeaveRequestDTO(req))
}

// GetLeave handles GET /api/leave/{id}.
func (h *Handler) GetLeave(w http.ResponseWriter, r *http.Request) {
	req, err := h.Service.Requests.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLeaveRequestDTO(req))
}

// ListLeaves handles GET /api/leave with employeeId, approverId, and status
// query parameters. An unknown status value is ignored, not an error.
func (h *Handler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reqs, err := h.Service.List(r.Context(), leave.ListQuery{
		EmployeeID: q.Get("employeeId"),
		ApproverID: q.Get("approverId"),
		Status:     q.Get("status"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLeaveRequestDTOs(reqs))
}

// SetLeaveStatus handles PUT /api/leave/{id}/status.
func (h *Handler) SetLeaveStatus(w http.ResponseWriter, r *http.Request) {
	var body SetStatusRequest
	if !h.decode(w, r, &body) {
		return
	}

	req, err := h.Service.SetStatus(r.Context(), chi.URLParam(r, "id"),
		leave.Status(body.Status), body.ApproverID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toLeaveRequestDTO(req))
}

// =============================================================================
// HELPERS
// =============================================================================

// decode unmarshals and tag-validates the request body, writing a 400 and
// returning false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeBadRequest(w, "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeBadRequest(w, err.Error())
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("encoding response", "error", err)
	}
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, msg string) {
	h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Code: "bad_request"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Code: "unauthorized"})
	case leave.IsNotFound(err):
		h.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, leave.ErrInvalidTransition):
		h.writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "invalid_transition"})
	case leave.IsClientError(err):
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "validation_failed"})
	default:
		h.log.Error("internal error", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"})
	}
}
