/*
attendance.go - Attendance-based payroll deduction

PURPOSE:
  Converts a monthly salary plus attendance counters into the monetary
  deduction for one pay period. Absences are charged at the daily rate,
  lateness at an hourly rate derived from a fixed 8-hour workday.

NO CAP:
  The deduction is deliberately not capped at the base salary. A
  pathological attendance record can therefore drive the deduction past the
  salary and the resulting net salary negative; deciding what to do about
  that is the caller's policy, not this function's.
*/
package compensation

import (
	"github.com/shopspring/decimal"
)

// workdayHours is the fixed workday length used to derive the late-hour rate.
var workdayHours = decimal.NewFromInt(8)

// ComputeAttendanceDeduction returns the deduction owed for the attendance
// record at the given monthly base salary:
//
//	dailyRate     = baseSalary / totalWorkDays
//	lateHourRate  = dailyRate / 8
//	deduction     = absentDays*dailyRate + lateHours*lateHourRate
//
// It fails with a ValidationError when the salary is not positive or any
// counter is out of domain (totalWorkDays <= 0, negative counters).
func ComputeAttendanceDeduction(baseSalary Money, att AttendanceRecord) (Money, error) {
	if !baseSalary.IsPositive() {
		return ZeroMoney(), &ValidationError{Field: "base_salary", Reason: "must be positive"}
	}
	if err := att.Validate(); err != nil {
		return ZeroMoney(), err
	}

	dailyRate := baseSalary.DivInt(att.TotalWorkDays)
	absentDeduction := dailyRate.MulInt(att.AbsentDays)

	lateHourRate := dailyRate.Div(workdayHours)
	lateDeduction := lateHourRate.Mul(att.LateHours)

	return absentDeduction.Add(lateDeduction), nil
}
