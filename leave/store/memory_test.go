package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/block8/leave-engine/leave"
	"github.com/block8/leave-engine/leave/store"
)

func testEmployee(id, email string) *leave.Employee {
	return &leave.Employee{
		ID:        id,
		FirstName: "Test",
		LastName:  "Person",
		Email:     email,
		Role:      leave.RoleEmployee,
		Balances:  leave.NewBalanceSheet(decimal.NewFromInt(10)),
	}
}

func TestMemoryEmployees_CopyOnRead(t *testing.T) {
	// Mutating a fetched employee must not leak into the store until Save.

	m := store.NewMemoryEmployees()
	ctx := context.Background()
	require.NoError(t, m.Save(ctx, testEmployee("e1", "e1@example.com")))

	fetched, err := m.FindByID(ctx, "e1")
	require.NoError(t, err)
	fetched.Balances.Available[leave.CategorySick] = decimal.Zero

	again, err := m.FindByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "10", again.Balances.Available[leave.CategorySick].String())

	// After Save the mutation is visible.
	require.NoError(t, m.Save(ctx, fetched))
	again, err = m.FindByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "0", again.Balances.Available[leave.CategorySick].String())
}

func TestMemoryEmployees_FindByEmail(t *testing.T) {
	m := store.NewMemoryEmployees()
	ctx := context.Background()
	require.NoError(t, m.Save(ctx, testEmployee("e1", "old@example.com")))

	_, err := m.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, leave.ErrNotFound)

	got, err := m.FindByEmail(ctx, "old@example.com")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)

	// Changing the email re-indexes and drops the old key.
	changed := got.Clone()
	changed.Email = "new@example.com"
	require.NoError(t, m.Save(ctx, &changed))

	_, err = m.FindByEmail(ctx, "old@example.com")
	assert.ErrorIs(t, err, leave.ErrNotFound)
	got, err = m.FindByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
}

func TestMemoryLeaves_FilterAndOrder(t *testing.T) {
	m := store.NewMemoryLeaves()
	ctx := context.Background()

	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	save := func(id, empID, approverID string, status leave.Status, at time.Time) {
		require.NoError(t, m.Save(ctx, &leave.Request{
			ID: id, EmployeeID: empID, ApproverID: approverID,
			Category: leave.CategorySick, DaysCount: decimal.NewFromInt(1),
			Status: status, CreatedAt: at,
		}))
	}
	save("r3", "e1", "m1", leave.StatusPending, base.Add(2*time.Hour))
	save("r1", "e1", "m1", leave.StatusApproved, base)
	save("r2", "e2", "m1", leave.StatusPending, base.Add(time.Hour))

	byEmployee, err := m.Find(ctx, leave.Filter{EmployeeID: "e1"})
	require.NoError(t, err)
	require.Len(t, byEmployee, 2)
	assert.Equal(t, "r1", byEmployee[0].ID, "oldest first")
	assert.Equal(t, "r3", byEmployee[1].ID)

	byApprover, err := m.Find(ctx, leave.Filter{ApproverID: "m1", Status: leave.StatusPending})
	require.NoError(t, err)
	assert.Len(t, byApprover, 2)

	_, err = m.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, leave.ErrNotFound)
}
