/*
Package compensation implements the compensation computation engine for the
internal-operations HR suite: the deterministic, auditable arithmetic that
turns an employment record and a termination or pay-period event into a money
amount broken into named line items.

PURPOSE:
  Everything in this package is pure computation. A caller supplies an
  immutable snapshot of input data (salary, dates, attendance counters) and
  gets back a result snapshot (line items, totals, a new batch value). The
  package performs no I/O, persists nothing, and keeps no state between
  calls: identical inputs always produce identical outputs.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: an exact decimal money amount in the currency's base unit
  - EmploymentRecord: read-only snapshot of an employee supplied by the
    surrounding records store
  - TerminationEvent: the event that triggers an end-of-service computation
  - AttendanceRecord: work-day and lateness counters for one pay period

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal everywhere; no float64 in money math
  2. Immutability: operations return new values, inputs are never mutated
  3. Auditability: every computed total is backed by named line items
  4. No silent clamping: out-of-domain inputs fail, they are never floored

SEE ALSO:
  - tenure.go: calendar duration between two dates
  - gratuity.go: end-of-service benefit rule engine
  - payroll.go: per-employee pay-period computation
  - batch.go: payroll batch aggregate and its status machine
*/
package compensation

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Exact decimal amount in the currency's base unit
// =============================================================================

// Money is an amount of money in the currency's base unit, undecorated.
// Formatting, localization and currency symbols are the caller's concern.
type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money      { return Money{Value: decimal.NewFromFloat(value)} }
func NewMoneyFromInt(value int64) Money { return Money{Value: decimal.NewFromInt(value)} }
func ZeroMoney() Money                  { return Money{Value: decimal.Zero} }

// MustParseMoney parses a decimal string, returning zero on malformed input.
func MustParseMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroMoney()
	}
	return Money{Value: d}
}

func (m Money) Add(o Money) Money              { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money              { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Mul(s decimal.Decimal) Money    { return Money{Value: m.Value.Mul(s)} }
func (m Money) Div(s decimal.Decimal) Money    { return Money{Value: m.Value.Div(s)} }
func (m Money) MulInt(n int) Money             { return m.Mul(decimal.NewFromInt(int64(n))) }
func (m Money) DivInt(n int) Money             { return m.Div(decimal.NewFromInt(int64(n))) }
func (m Money) Neg() Money                     { return Money{Value: m.Value.Neg()} }
func (m Money) IsNegative() bool               { return m.Value.IsNegative() }
func (m Money) IsPositive() bool               { return m.Value.IsPositive() }
func (m Money) IsZero() bool                   { return m.Value.IsZero() }
func (m Money) Equal(o Money) bool             { return m.Value.Equal(o.Value) }
func (m Money) GreaterThan(o Money) bool       { return m.Value.GreaterThan(o.Value) }
func (m Money) LessThan(o Money) bool          { return m.Value.LessThan(o.Value) }
func (m Money) String() string                 { return m.Value.String() }
func (m Money) StringFixed(places int32) string { return m.Value.StringFixed(places) }

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// =============================================================================
// EMPLOYMENT RECORD - Read-only snapshot from the records store
// =============================================================================

// LeaveBalances holds the remaining leave days by category, in whole days.
type LeaveBalances struct {
	AnnualDays    int
	SickDays      int
	EmergencyDays int
}

// EmploymentRecord is the snapshot of an employee the engine computes from.
// It is owned by the external records store; the engine only reads it.
type EmploymentRecord struct {
	EmployeeID        EmployeeID
	MonthlyBaseSalary Money
	JoinDate          Date
	LeaveBalances     LeaveBalances
}

// Validate checks the record is within the engine's input domain.
func (r EmploymentRecord) Validate() error {
	if r.EmployeeID == "" {
		return &ValidationError{Field: "employee_id", Reason: "must not be empty"}
	}
	if !r.MonthlyBaseSalary.IsPositive() {
		return &ValidationError{Field: "monthly_base_salary", Reason: "must be positive"}
	}
	if r.JoinDate.IsZero() {
		return &ValidationError{Field: "join_date", Reason: "must be set"}
	}
	if r.LeaveBalances.AnnualDays < 0 || r.LeaveBalances.SickDays < 0 || r.LeaveBalances.EmergencyDays < 0 {
		return &ValidationError{Field: "leave_balances", Reason: "must not be negative"}
	}
	return nil
}

// =============================================================================
// TERMINATION EVENT
// =============================================================================

// TerminationType distinguishes who ended the employment, which drives the
// resignation penalty tiers in the gratuity rule engine.
type TerminationType string

const (
	TerminationResignation TerminationType = "resignation"
	TerminationEmployer    TerminationType = "employer-initiated"
	TerminationRetirement  TerminationType = "retirement"
)

// Valid reports whether t is one of the known termination types.
func (t TerminationType) Valid() bool {
	switch t {
	case TerminationResignation, TerminationEmployer, TerminationRetirement:
		return true
	}
	return false
}

// TerminationEvent is created once per termination. The date must not precede
// the employee's join date; ComputeEndOfService enforces that.
type TerminationEvent struct {
	Type TerminationType
	Date Date
}

// =============================================================================
// ATTENDANCE RECORD - Counters for one employee in one pay period
// =============================================================================

// AttendanceRecord carries the attendance counters for one pay period.
// AbsentDays is expected to equal TotalWorkDays - ActualWorkDays but the
// engine does not enforce that relationship; the counters come from the
// attendance module and are taken at face value.
type AttendanceRecord struct {
	TotalWorkDays  int
	ActualWorkDays int
	AbsentDays     int
	LateHours      decimal.Decimal
}

// Validate checks the counters are within the engine's input domain.
func (a AttendanceRecord) Validate() error {
	if a.TotalWorkDays <= 0 {
		return &ValidationError{Field: "total_work_days", Reason: "must be positive"}
	}
	if a.ActualWorkDays < 0 {
		return &ValidationError{Field: "actual_work_days", Reason: "must not be negative"}
	}
	if a.AbsentDays < 0 {
		return &ValidationError{Field: "absent_days", Reason: "must not be negative"}
	}
	if a.LateHours.IsNegative() {
		return &ValidationError{Field: "late_hours", Reason: "must not be negative"}
	}
	return nil
}
