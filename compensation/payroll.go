/*
payroll.go - Per-employee pay-period computation

PURPOSE:
  Combines a base salary, fixed deductions, advances and the attendance
  deduction into the net salary for one employee in one pay period.

RECOMPUTATION RULE:
  Any edit to any input field triggers a full recomputation from the
  formula - never an incremental adjustment. That is what keeps the derived
  net salary from drifting away from the fields it was derived from.

NEGATIVE NET:
  Net salary may legitimately come out negative (uncapped attendance
  deduction, heavy advances). It is not clamped to zero; callers decide
  whether a negative net is an error, a flag, or carried forward.
*/
package compensation

// ComputeNetSalary returns the net salary for one pay period:
//
//	net = baseSalary - fixedDeductions - advances - attendanceDeduction
//
// delegating the attendance math to ComputeAttendanceDeduction.
func ComputeNetSalary(baseSalary, fixedDeductions, advances Money, att AttendanceRecord) (Money, error) {
	if !baseSalary.IsPositive() {
		return ZeroMoney(), &ValidationError{Field: "base_salary", Reason: "must be positive"}
	}
	if fixedDeductions.IsNegative() {
		return ZeroMoney(), &ValidationError{Field: "fixed_deductions", Reason: "must not be negative"}
	}
	if advances.IsNegative() {
		return ZeroMoney(), &ValidationError{Field: "advances", Reason: "must not be negative"}
	}

	attendanceDeduction, err := ComputeAttendanceDeduction(baseSalary, att)
	if err != nil {
		return ZeroMoney(), err
	}

	return baseSalary.Sub(fixedDeductions).Sub(advances).Sub(attendanceDeduction), nil
}

// =============================================================================
// PAYROLL LINE - One employee's result within a batch
// =============================================================================

// PayrollLine is one employee's computed pay-period result. NetSalary is
// always a function of the other fields; lines are only built through
// NewPayrollLine or Apply so the two can never disagree.
type PayrollLine struct {
	ID              string
	EmployeeID      EmployeeID
	BaseSalary      Money
	FixedDeductions Money
	Advances        Money
	Attendance      AttendanceRecord
	NetSalary       Money
}

// NewPayrollLine builds a line and computes its net salary.
func NewPayrollLine(id string, employeeID EmployeeID, baseSalary, fixedDeductions, advances Money, att AttendanceRecord) (PayrollLine, error) {
	if employeeID == "" {
		return PayrollLine{}, &ValidationError{Field: "employee_id", Reason: "must not be empty"}
	}
	net, err := ComputeNetSalary(baseSalary, fixedDeductions, advances, att)
	if err != nil {
		return PayrollLine{}, err
	}
	return PayrollLine{
		ID:              id,
		EmployeeID:      employeeID,
		BaseSalary:      baseSalary,
		FixedDeductions: fixedDeductions,
		Advances:        advances,
		Attendance:      att,
		NetSalary:       net,
	}, nil
}

// LineUpdate is a partial edit to a payroll line. Nil fields are left as-is.
type LineUpdate struct {
	BaseSalary      *Money
	FixedDeductions *Money
	Advances        *Money
	Attendance      *AttendanceRecord
}

// Apply merges the update into the line and recomputes the net salary from
// scratch, returning a new line. The receiver is not modified.
func (l PayrollLine) Apply(u LineUpdate) (PayrollLine, error) {
	merged := l
	if u.BaseSalary != nil {
		merged.BaseSalary = *u.BaseSalary
	}
	if u.FixedDeductions != nil {
		merged.FixedDeductions = *u.FixedDeductions
	}
	if u.Advances != nil {
		merged.Advances = *u.Advances
	}
	if u.Attendance != nil {
		merged.Attendance = *u.Attendance
	}

	net, err := ComputeNetSalary(merged.BaseSalary, merged.FixedDeductions, merged.Advances, merged.Attendance)
	if err != nil {
		return PayrollLine{}, err
	}
	merged.NetSalary = net
	return merged, nil
}
