/*
notify.go - Outbound notification sink

PURPOSE:
  The engine emits an email-shaped notification at each lifecycle step:
  submission (to the approver, plus a confirmation to the employee),
  approval, rejection, and employee onboarding. Delivery is fire-and-forget:
  a sink failure is logged by the service and never fails or rolls back the
  triggering business operation.

IMPLEMENTATIONS:
  - Noop: swallows everything (default when email is not configured)
  - email/smtp.go: SMTP delivery

SEE ALSO:
  - service.go: The only caller; wraps Send with failure logging
*/
package leave

import (
	"context"
	"fmt"
)

// Notifier delivers a single notification. The returned error is logged by
// the caller and otherwise discarded.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Noop is a Notifier that discards everything.
type Noop struct{}

func (Noop) Send(ctx context.Context, to, subject, body string) error { return nil }

// =============================================================================
// MESSAGE TEMPLATES
// =============================================================================

func submittedMessage(emp *Employee, req *Request) (subject, body string) {
	subject = "[LEAVE REQUEST]-" + emp.FirstName
	body = fmt.Sprintf(
		"%s has applied for %s %s leave from %s to %s (%s day(s)).\n\nDescription: %s\n\nPlease approve or reject the request.",
		emp.FullName(), requestKind(req), req.Category,
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
		req.DaysCount, req.Description)
	return subject, body
}

func confirmationMessage(emp *Employee, req *Request) (subject, body string) {
	subject = "[LEAVE APPLIED]-" + emp.FirstName
	body = fmt.Sprintf(
		"Your %s %s leave from %s to %s (%s day(s)) has been submitted and is pending approval.",
		requestKind(req), req.Category,
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
		req.DaysCount)
	return subject, body
}

func decisionMessage(emp *Employee, req *Request) (subject, body string) {
	switch req.Status {
	case StatusApproved:
		subject = "[LEAVE APPROVED]-" + emp.FirstName
	default:
		subject = "[LEAVE REJECTED]-" + emp.FirstName
	}
	body = fmt.Sprintf(
		"Your %s leave from %s to %s (%s day(s)) has been %s.",
		req.Category,
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
		req.DaysCount, req.Status)
	return subject, body
}

func welcomeMessage(emp *Employee) (subject, body string) {
	subject = "[LOGIN DETAILS]-" + emp.FirstName
	body = fmt.Sprintf(
		"Welcome to the leave management system, %s.\n\nLogin: %s\n\nUse the password you were issued to sign in.",
		emp.FullName(), emp.Email)
	return subject, body
}

func requestKind(req *Request) string {
	if req.HalfDay {
		return "half-day"
	}
	return "full-day"
}
