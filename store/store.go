/*
Package store defines persistence for the records surrounding the
compensation engine.

PURPOSE:
  The engine itself performs no I/O; it reads snapshots and returns values.
  Something still has to hold the employee records the snapshots come from,
  keep an audit history of gratuity computations, and persist payroll
  batches between sessions. That is this package.

KEY INTERFACE:
  Records - employee records, gratuity computation history (append-only),
  and payroll batch load/save.

APPEND-ONLY HISTORY:
  Gratuity results are an audit trail: once a computation has been stored
  it is never updated or deleted. Recomputing after a data correction
  appends a new record; reporting reads the latest.

IMPLEMENTATIONS:
  - store/memory: mutex-guarded maps, for tests and development
  - store/sqlite: production SQLite
*/
package store

import (
	"context"
	"errors"
	"time"

	"github.com/warp/compensation-engine/compensation"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// =============================================================================
// RECORD TYPES
// =============================================================================

// EmployeeRecord is the stored form of an employee. Snapshot() projects it
// into the read-only view the engine computes from.
type EmployeeRecord struct {
	ID                 compensation.EmployeeID
	Name               string
	MonthlyBaseSalary  compensation.Money
	JoinDate           compensation.Date
	AnnualLeaveDays    int
	SickLeaveDays      int
	EmergencyLeaveDays int
	CreatedAt          time.Time
}

// Snapshot returns the immutable view the engine consumes.
func (e EmployeeRecord) Snapshot() compensation.EmploymentRecord {
	return compensation.EmploymentRecord{
		EmployeeID:        e.ID,
		MonthlyBaseSalary: e.MonthlyBaseSalary,
		JoinDate:          e.JoinDate,
		LeaveBalances: compensation.LeaveBalances{
			AnnualDays:    e.AnnualLeaveDays,
			SickDays:      e.SickLeaveDays,
			EmergencyDays: e.EmergencyLeaveDays,
		},
	}
}

// GratuityRecord is one stored gratuity computation: the inputs that drove
// it plus the full line-item audit trail it produced.
type GratuityRecord struct {
	ID              string
	EmployeeID      compensation.EmployeeID
	TerminationType compensation.TerminationType
	TerminationDate compensation.Date
	Tenure          compensation.Tenure
	Lines           []compensation.GratuityLine
	Total           compensation.Money
	ComputedAt      time.Time
}

// =============================================================================
// RECORDS - Persistence interface
// =============================================================================

// Records is the persistence boundary. GetEmployee and GetBatch return
// ErrNotFound for missing ids. SaveBatch persists the whole batch value,
// replacing its lines atomically.
type Records interface {
	SaveEmployee(ctx context.Context, employee EmployeeRecord) error
	GetEmployee(ctx context.Context, id compensation.EmployeeID) (EmployeeRecord, error)
	ListEmployees(ctx context.Context) ([]EmployeeRecord, error)

	// AppendGratuity adds a computation to the audit history. Append-only:
	// no update or delete exists.
	AppendGratuity(ctx context.Context, record GratuityRecord) error
	ListGratuities(ctx context.Context, employeeID compensation.EmployeeID) ([]GratuityRecord, error)

	SaveBatch(ctx context.Context, batch compensation.PayrollBatch) error
	GetBatch(ctx context.Context, id string) (compensation.PayrollBatch, error)
	ListBatches(ctx context.Context) ([]compensation.PayrollBatch, error)
}
