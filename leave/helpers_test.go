package leave_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/block8/leave-engine/leave"
	memstore "github.com/block8/leave-engine/leave/store"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

// recordingNotifier captures every message so tests can assert on delivery.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []sentMessage
}

type sentMessage struct {
	To      string
	Subject string
	Body    string
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, sentMessage{To: to, Subject: subject, Body: body})
	return nil
}

func (n *recordingNotifier) sent() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentMessage, len(n.messages))
	copy(out, n.messages)
	return out
}

// failingNotifier always errors; the lifecycle must shrug it off.
type failingNotifier struct{}

func (failingNotifier) Send(context.Context, string, string, string) error {
	return errors.New("smtp: connection refused")
}

func newTestService(t *testing.T) (*leave.Service, *memstore.MemoryEmployees, *memstore.MemoryLeaves, *recordingNotifier) {
	t.Helper()
	employees := memstore.NewMemoryEmployees()
	leaves := memstore.NewMemoryLeaves()
	notifier := &recordingNotifier{}
	svc := leave.NewService(employees, leaves, notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, employees, leaves, notifier
}

// seedEmployees stores an admin approver and an employee reporting to
// them, both with the default entitlement of 10 per category.
func seedEmployees(t *testing.T, store *memstore.MemoryEmployees) (approver, employee *leave.Employee) {
	t.Helper()
	ctx := context.Background()

	approver = &leave.Employee{
		ID:        "mgr-1",
		FirstName: "Meera",
		LastName:  "Nair",
		Email:     "meera.nair@example.com",
		Role:      leave.RoleAdmin,
		Active:    true,
		Balances:  leave.NewBalanceSheet(decimal.NewFromInt(10)),
	}
	require.NoError(t, store.Save(ctx, approver))

	employee = &leave.Employee{
		ID:         "emp-1",
		FirstName:  "Akshay",
		LastName:   "Kumar",
		Email:      "akshay.kumar@example.com",
		Role:       leave.RoleEmployee,
		ApproverID: approver.ID,
		Active:     true,
		Balances:   leave.NewBalanceSheet(decimal.NewFromInt(10)),
	}
	require.NoError(t, store.Save(ctx, employee))

	return approver, employee
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// balance fetches the current counters for one category.
func balance(t *testing.T, store *memstore.MemoryEmployees, id string, c leave.Category) (available, availed, total string) {
	t.Helper()
	emp, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	return emp.Balances.Available[c].String(),
		emp.Balances.Availed[c].String(),
		emp.Balances.Total[c].String()
}
