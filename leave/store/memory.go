// Package store provides in-memory implementations of the leave engine's
// persistence interfaces, used in tests and local development.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/block8/leave-engine/leave"
)

// =============================================================================
// MEMORY EMPLOYEE STORE
// =============================================================================

type MemoryEmployees struct {
	mu      sync.RWMutex
	byID    map[string]leave.Employee
	byEmail map[string]string // email -> id
}

func NewMemoryEmployees() *MemoryEmployees {
	return &MemoryEmployees{
		byID:    make(map[string]leave.Employee),
		byEmail: make(map[string]string),
	}
}

// FindByID returns a deep copy; mutations take effect only via Save.
func (m *MemoryEmployees) FindByID(_ context.Context, id string) (*leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.byID[id]
	if !ok {
		return nil, leave.ErrNotFound
	}
	out := e.Clone()
	return &out, nil
}

func (m *MemoryEmployees) FindByEmail(_ context.Context, email string) (*leave.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, leave.ErrNotFound
	}
	e := m.byID[id].Clone()
	return &e, nil
}

// Save stores a deep copy of the whole aggregate. Last write wins.
func (m *MemoryEmployees) Save(_ context.Context, e *leave.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.byID[e.ID]; ok && prev.Email != e.Email {
		delete(m.byEmail, prev.Email)
	}
	m.byID[e.ID] = e.Clone()
	m.byEmail[e.Email] = e.ID
	return nil
}

// =============================================================================
// MEMORY LEAVE STORE
// =============================================================================

type MemoryLeaves struct {
	mu   sync.RWMutex
	byID map[string]leave.Request
}

func NewMemoryLeaves() *MemoryLeaves {
	return &MemoryLeaves{byID: make(map[string]leave.Request)}
}

func (m *MemoryLeaves) FindByID(_ context.Context, id string) (*leave.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byID[id]
	if !ok {
		return nil, leave.ErrNotFound
	}
	out := r
	return &out, nil
}

func (m *MemoryLeaves) Find(_ context.Context, f leave.Filter) ([]leave.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []leave.Request
	for _, r := range m.byID {
		if f.EmployeeID != "" && r.EmployeeID != f.EmployeeID {
			continue
		}
		if f.ApproverID != "" && r.ApproverID != f.ApproverID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryLeaves) Save(_ context.Context, r *leave.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[r.ID] = *r
	return nil
}
