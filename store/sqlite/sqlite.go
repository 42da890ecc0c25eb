/*
Package sqlite provides the SQLite-backed Records implementation.

PURPOSE:
  Persists employee records, the append-only gratuity computation history,
  and payroll batches. The same patterns apply to PostgreSQL - only minor
  SQL dialect differences.

KEY TABLES:
  employees:        Employee master data the engine snapshots from
  gratuity_results: Append-only audit history of end-of-service computations
  payroll_batches:  Batch header (period, status, notes)
  payroll_lines:    Lines, ordered by position, unique per employee per batch

MONEY REPRESENTATION:
  Money and late-hour amounts are stored as decimal TEXT, never as REAL.
  A float column would reintroduce exactly the rounding drift the engine's
  decimal arithmetic exists to avoid.

APPEND-ONLY ENFORCEMENT:
  gratuity_results has no UPDATE or DELETE path in this package. A
  recomputation after a data correction appends a new row.

ATOMIC BATCH SAVE:
  SaveBatch writes the header and replaces all lines inside one database
  transaction, so a reader never observes a half-saved batch.

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers do not
  block, one writer at a time.

SEE ALSO:
  - store/store.go: interface definition
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/store"
)

// Store implements store.Records using SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and migrates the schema.
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
		name TEXT NOT NULL,
		monthly_base_salary TEXT NOT NULL,
		join_date TEXT NOT NULL,
		annual_leave_days INTEGER NOT NULL DEFAULT 0,
		sick_leave_days INTEGER NOT NULL DEFAULT 0,
		emergency_leave_days INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	-- Append-only audit history of end-of-service computations
	CREATE TABLE IF NOT EXISTS gratuity_results (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		termination_type TEXT NOT NULL,
		termination_date TEXT NOT NULL,
		tenure_years INTEGER NOT NULL,
		tenure_months INTEGER NOT NULL,
		tenure_days INTEGER NOT NULL,
		lines_json TEXT NOT NULL,
		total TEXT NOT NULL,
		computed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_gratuity_employee
		ON gratuity_results(employee_id, computed_at);

	CREATE TABLE IF NOT EXISTS payroll_batches (
		id TEXT PRIMARY KEY,
		period_year INTEGER NOT NULL,
		period_month INTEGER NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_batches_period
		ON payroll_batches(period_year, period_month);

	CREATE TABLE IF NOT EXISTS payroll_lines (
		id TEXT PRIMARY KEY,
		batch_id TEXT NOT NULL REFERENCES payroll_batches(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		employee_id TEXT NOT NULL,
		base_salary TEXT NOT NULL,
		fixed_deductions TEXT NOT NULL,
		advances TEXT NOT NULL,
		total_work_days INTEGER NOT NULL,
		actual_work_days INTEGER NOT NULL,
		absent_days INTEGER NOT NULL,
		late_hours TEXT NOT NULL,
		net_salary TEXT NOT NULL,
		UNIQUE(batch_id, employee_id)
	);

	CREATE INDEX IF NOT EXISTS idx_lines_batch
		ON payroll_lines(batch_id, position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, employee store.EmployeeRecord) error {
	createdAt := employee.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, monthly_base_salary, join_date,
			annual_leave_days, sick_leave_days, emergency_leave_days, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			monthly_base_salary = excluded.monthly_base_salary,
			join_date = excluded.join_date,
			annual_leave_days = excluded.annual_leave_days,
			sick_leave_days = excluded.sick_leave_days,
			emergency_leave_days = excluded.emergency_leave_days`,
		string(employee.ID), employee.Name, employee.MonthlyBaseSalary.String(),
		employee.JoinDate.String(), employee.AnnualLeaveDays, employee.SickLeaveDays,
		employee.EmergencyLeaveDays, createdAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetEmployee(ctx context.Context, id compensation.EmployeeID) (store.EmployeeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, monthly_base_salary, join_date,
			annual_leave_days, sick_leave_days, emergency_leave_days, created_at
		FROM employees WHERE id = ?`, string(id))

	employee, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return store.EmployeeRecord{}, store.ErrNotFound
	}
	return employee, err
}

func (s *Store) ListEmployees(ctx context.Context) ([]store.EmployeeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, monthly_base_salary, join_date,
			annual_leave_days, sick_leave_days, emergency_leave_days, created_at
		FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []store.EmployeeRecord
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanEmployee(row scannable) (store.EmployeeRecord, error) {
	var (
		employee                        store.EmployeeRecord
		id, salary, joinDate, createdAt string
	)
	if err := row.Scan(&id, &employee.Name, &salary, &joinDate,
		&employee.AnnualLeaveDays, &employee.SickLeaveDays,
		&employee.EmergencyLeaveDays, &createdAt); err != nil {
		return store.EmployeeRecord{}, err
	}

	employee.ID = compensation.EmployeeID(id)

	var err error
	if employee.MonthlyBaseSalary, err = parseMoney(salary); err != nil {
		return store.EmployeeRecord{}, err
	}
	if employee.JoinDate, err = compensation.ParseDate(joinDate); err != nil {
		return store.EmployeeRecord{}, err
	}
	if employee.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return store.EmployeeRecord{}, err
	}
	return employee, nil
}

// =============================================================================
// GRATUITY HISTORY (append-only: no UPDATE, no DELETE)
// =============================================================================

// lineJSON is the stored form of a gratuity line; amounts are exact decimal
// strings, not floats.
type lineJSON struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

func (s *Store) AppendGratuity(ctx context.Context, record store.GratuityRecord) error {
	lines := make([]lineJSON, len(record.Lines))
	for i, line := range record.Lines {
		lines[i] = lineJSON{Description: line.Description, Amount: line.Amount.String()}
	}
	linesBlob, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	computedAt := record.ComputedAt
	if computedAt.IsZero() {
		computedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO gratuity_results (id, employee_id, termination_type,
			termination_date, tenure_years, tenure_months, tenure_days,
			lines_json, total, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, string(record.EmployeeID), string(record.TerminationType),
		record.TerminationDate.String(), record.Tenure.Years, record.Tenure.Months,
		record.Tenure.Days, string(linesBlob), record.Total.String(),
		computedAt.Format(time.RFC3339))
	return err
}

func (s *Store) ListGratuities(ctx context.Context, employeeID compensation.EmployeeID) ([]store.GratuityRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, termination_type, termination_date,
			tenure_years, tenure_months, tenure_days, lines_json, total, computed_at
		FROM gratuity_results WHERE employee_id = ? ORDER BY computed_at`, string(employeeID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []store.GratuityRecord
	for rows.Next() {
		var (
			record                       store.GratuityRecord
			id, termType, termDate, blob string
			total, at                    string
		)
		if err := rows.Scan(&record.ID, &id, &termType, &termDate,
			&record.Tenure.Years, &record.Tenure.Months, &record.Tenure.Days,
			&blob, &total, &at); err != nil {
			return nil, err
		}

		record.EmployeeID = compensation.EmployeeID(id)
		record.TerminationType = compensation.TerminationType(termType)
		if record.TerminationDate, err = compensation.ParseDate(termDate); err != nil {
			return nil, err
		}
		if record.Total, err = parseMoney(total); err != nil {
			return nil, err
		}
		if record.ComputedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, err
		}

		var lines []lineJSON
		if err := json.Unmarshal([]byte(blob), &lines); err != nil {
			return nil, err
		}
		record.Lines = make([]compensation.GratuityLine, len(lines))
		for i, line := range lines {
			amount, err := parseMoney(line.Amount)
			if err != nil {
				return nil, err
			}
			record.Lines[i] = compensation.GratuityLine{Description: line.Description, Amount: amount}
		}

		records = append(records, record)
	}
	return records, rows.Err()
}

// =============================================================================
// PAYROLL BATCHES
// =============================================================================

func (s *Store) SaveBatch(ctx context.Context, batch compensation.PayrollBatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO payroll_batches (id, period_year, period_month, status, notes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			notes = excluded.notes`,
		batch.ID, batch.Period.Year, int(batch.Period.Month),
		string(batch.Status), batch.Notes); err != nil {
		return err
	}

	// Replace the lines wholesale; the batch value is the source of truth.
	if _, err := tx.ExecContext(ctx, `DELETE FROM payroll_lines WHERE batch_id = ?`, batch.ID); err != nil {
		return err
	}

	for position, line := range batch.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO payroll_lines (id, batch_id, position, employee_id,
				base_salary, fixed_deductions, advances,
				total_work_days, actual_work_days, absent_days, late_hours, net_salary)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			line.ID, batch.ID, position, string(line.EmployeeID),
			line.BaseSalary.String(), line.FixedDeductions.String(), line.Advances.String(),
			line.Attendance.TotalWorkDays, line.Attendance.ActualWorkDays,
			line.Attendance.AbsentDays, line.Attendance.LateHours.String(),
			line.NetSalary.String()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) GetBatch(ctx context.Context, id string) (compensation.PayrollBatch, error) {
	var (
		batch         compensation.PayrollBatch
		year, month   int
		status, notes string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, period_year, period_month, status, notes
		FROM payroll_batches WHERE id = ?`, id).
		Scan(&batch.ID, &year, &month, &status, &notes)
	if err == sql.ErrNoRows {
		return compensation.PayrollBatch{}, store.ErrNotFound
	}
	if err != nil {
		return compensation.PayrollBatch{}, err
	}

	batch.Period = compensation.PayPeriod{Year: year, Month: time.Month(month)}
	batch.Status = compensation.BatchStatus(status)
	batch.Notes = notes

	if batch.Lines, err = s.loadLines(ctx, id); err != nil {
		return compensation.PayrollBatch{}, err
	}
	return batch, nil
}

func (s *Store) ListBatches(ctx context.Context) ([]compensation.PayrollBatch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM payroll_batches ORDER BY period_year, period_month, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	batches := make([]compensation.PayrollBatch, 0, len(ids))
	for _, id := range ids {
		batch, err := s.GetBatch(ctx, id)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

func (s *Store) loadLines(ctx context.Context, batchID string) ([]compensation.PayrollLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, base_salary, fixed_deductions, advances,
			total_work_days, actual_work_days, absent_days, late_hours, net_salary
		FROM payroll_lines WHERE batch_id = ? ORDER BY position`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []compensation.PayrollLine
	for rows.Next() {
		var (
			line                                         compensation.PayrollLine
			employeeID, base, fixed, advances, late, net string
		)
		if err := rows.Scan(&line.ID, &employeeID, &base, &fixed, &advances,
			&line.Attendance.TotalWorkDays, &line.Attendance.ActualWorkDays,
			&line.Attendance.AbsentDays, &late, &net); err != nil {
			return nil, err
		}

		line.EmployeeID = compensation.EmployeeID(employeeID)
		if line.BaseSalary, err = parseMoney(base); err != nil {
			return nil, err
		}
		if line.FixedDeductions, err = parseMoney(fixed); err != nil {
			return nil, err
		}
		if line.Advances, err = parseMoney(advances); err != nil {
			return nil, err
		}
		if line.Attendance.LateHours, err = decimal.NewFromString(late); err != nil {
			return nil, err
		}
		if line.NetSalary, err = parseMoney(net); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func parseMoney(s string) (compensation.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return compensation.Money{}, fmt.Errorf("malformed stored amount %q: %w", s, err)
	}
	return compensation.Money{Value: d}, nil
}
