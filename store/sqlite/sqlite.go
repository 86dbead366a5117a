/*
Package sqlite provides a SQLite-backed implementation of the leave engine's
storage interfaces.

PURPOSE:
  Implements leave.EmployeeStore and leave.LeaveStore using SQLite. In
  production the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

KEY TABLES:
  employees:      Employee records
  leave_balances: Per-category available/availed/total counters
  leave_requests: Leave requests with their frozen day counts

ATOMICITY:
  Saving an employee writes the record and all balance rows inside one
  database transaction, so the aggregate's read-modify-write is a single
  durable step. The leave engine orders this write before the dependent
  leave_requests write.

DECIMALS:
  Day counts and balances are stored as TEXT and parsed through
  shopspring/decimal. Never floats: 0.5 must round-trip exactly.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, a single writer at a time, better crash
  recovery.

USAGE:
  store, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - leave/store.go: Interface definitions
  - leave/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/block8/leave-engine/leave"
)

// Store implements leave.EmployeeStore and leave.LeaveStore using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		middle_name TEXT,
		last_name TEXT,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		approver_id TEXT,
		joined_at TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		password_hash TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_balances (
		employee_id TEXT NOT NULL REFERENCES employees(id),
		category TEXT NOT NULL,
		available TEXT NOT NULL,
		availed TEXT NOT NULL,
		total TEXT NOT NULL,
		PRIMARY KEY (employee_id, category)
	);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		approver_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		category TEXT NOT NULL,
		half_day INTEGER NOT NULL,
		description TEXT,
		days_count TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON leave_requests(employee_id, status);
	CREATE INDEX IF NOT EXISTS idx_requests_approver
		ON leave_requests(approver_id, status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

func (s *Store) FindByID(ctx context.Context, id string) (*leave.Employee, error) {
	return s.findEmployee(ctx, `WHERE id = ?`, id)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*leave.Employee, error) {
	return s.findEmployee(ctx, `WHERE email = ?`, email)
}

func (s *Store) findEmployee(ctx context.Context, where string, arg any) (*leave.Employee, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, COALESCE(middle_name, ''), COALESCE(last_name, ''),
		       email, role, COALESCE(approver_id, ''), COALESCE(joined_at, ''),
		       active, COALESCE(password_hash, ''), created_at
		FROM employees `+where, arg)

	var e leave.Employee
	var role, joinedAt, createdAt string
	var active int
	err := row.Scan(&e.ID, &e.FirstName, &e.MiddleName, &e.LastName,
		&e.Email, &role, &e.ApproverID, &joinedAt,
		&active, &e.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, leave.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying employee: %w", err)
	}

	e.Role = leave.Role(role)
	e.Active = active != 0
	if joinedAt != "" {
		e.JoinedAt, _ = time.Parse("2006-01-02", joinedAt)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	if err := s.loadBalances(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) loadBalances(ctx context.Context, e *leave.Employee) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, available, availed, total
		FROM leave_balances WHERE employee_id = ?`, e.ID)
	if err != nil {
		return fmt.Errorf("querying balances: %w", err)
	}
	defer rows.Close()

	e.Balances = leave.BalanceSheet{
		Available: make(map[leave.Category]decimal.Decimal),
		Availed:   make(map[leave.Category]decimal.Decimal),
		Total:     make(map[leave.Category]decimal.Decimal),
	}
	for rows.Next() {
		var cat, available, availed, total string
		if err := rows.Scan(&cat, &available, &availed, &total); err != nil {
			return fmt.Errorf("scanning balance row: %w", err)
		}
		c := leave.Category(cat)
		if e.Balances.Available[c], err = decimal.NewFromString(available); err != nil {
			return fmt.Errorf("parsing available for %s: %w", c, err)
		}
		if e.Balances.Availed[c], err = decimal.NewFromString(availed); err != nil {
			return fmt.Errorf("parsing availed for %s: %w", c, err)
		}
		if e.Balances.Total[c], err = decimal.NewFromString(total); err != nil {
			return fmt.Errorf("parsing total for %s: %w", c, err)
		}
	}
	return rows.Err()
}

// Save writes the employee record and all balance rows in one database
// transaction. The whole aggregate lands or none of it does.
func (s *Store) Save(ctx context.Context, e *leave.Employee) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	active := 0
	if e.Active {
		active = 1
	}
	joinedAt := ""
	if !e.JoinedAt.IsZero() {
		joinedAt = e.JoinedAt.Format("2006-01-02")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO employees
			(id, first_name, middle_name, last_name, email, role, approver_id,
			 joined_at, active, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			middle_name = excluded.middle_name,
			last_name = excluded.last_name,
			email = excluded.email,
			role = excluded.role,
			approver_id = excluded.approver_id,
			joined_at = excluded.joined_at,
			active = excluded.active,
			password_hash = excluded.password_hash`,
		e.ID, e.FirstName, e.MiddleName, e.LastName, e.Email, string(e.Role),
		e.ApproverID, joinedAt, active, e.PasswordHash,
		e.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting employee: %w", err)
	}

	for _, c := range leave.Categories {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO leave_balances (employee_id, category, available, availed, total)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(employee_id, category) DO UPDATE SET
				available = excluded.available,
				availed = excluded.availed,
				total = excluded.total`,
			e.ID, string(c),
			e.Balances.Available[c].String(),
			e.Balances.Availed[c].String(),
			e.Balances.Total[c].String())
		if err != nil {
			return fmt.Errorf("upserting balance %s: %w", c, err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// LEAVE STORE
// =============================================================================

const requestColumns = `id, employee_id, approver_id, start_date, end_date,
	category, half_day, COALESCE(description, ''), days_count, status,
	created_at, updated_at`

func (s *Store) FindRequestByID(ctx context.Context, id string) (*leave.Request, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM leave_requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, leave.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying request: %w", err)
	}
	return req, nil
}

func (s *Store) FindRequests(ctx context.Context, f leave.Filter) ([]leave.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM leave_requests WHERE 1=1`
	var args []any
	if f.EmployeeID != "" {
		query += ` AND employee_id = ?`
		args = append(args, f.EmployeeID)
	}
	if f.ApproverID != "" {
		query += ` AND approver_id = ?`
		args = append(args, f.ApproverID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying requests: %w", err)
	}
	defer rows.Close()

	var out []leave.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning request row: %w", err)
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (s *Store) SaveRequest(ctx context.Context, r *leave.Request) error {
	halfDay := 0
	if r.HalfDay {
		halfDay = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests
			(id, employee_id, approver_id, start_date, end_date, category,
			 half_day, description, days_count, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at`,
		r.ID, r.EmployeeID, r.ApproverID,
		r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"),
		string(r.Category), halfDay, r.Description, r.DaysCount.String(),
		string(r.Status),
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting request: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*leave.Request, error) {
	var r leave.Request
	var start, end, category, days, status, createdAt, updatedAt string
	var halfDay int
	err := row.Scan(&r.ID, &r.EmployeeID, &r.ApproverID, &start, &end,
		&category, &halfDay, &r.Description, &days, &status,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	r.StartDate, _ = time.Parse("2006-01-02", start)
	r.EndDate, _ = time.Parse("2006-01-02", end)
	r.Category = leave.Category(category)
	r.HalfDay = halfDay != 0
	if r.DaysCount, err = decimal.NewFromString(days); err != nil {
		return nil, fmt.Errorf("parsing days_count: %w", err)
	}
	r.Status = leave.Status(status)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &r, nil
}

// =============================================================================
// INTERFACE ADAPTERS
// =============================================================================

// Leaves returns a view of the store satisfying leave.LeaveStore. The
// employee methods on Store already satisfy leave.EmployeeStore.
func (s *Store) Leaves() leave.LeaveStore { return leaveView{s} }

type leaveView struct{ s *Store }

func (v leaveView) FindByID(ctx context.Context, id string) (*leave.Request, error) {
	return v.s.FindRequestByID(ctx, id)
}

func (v leaveView) Find(ctx context.Context, f leave.Filter) ([]leave.Request, error) {
	return v.s.FindRequests(ctx, f)
}

func (v leaveView) Save(ctx context.Context, r *leave.Request) error {
	return v.s.SaveRequest(ctx, r)
}

// Compile-time interface checks
var (
	_ leave.EmployeeStore = (*Store)(nil)
	_ leave.LeaveStore    = leaveView{}
)
