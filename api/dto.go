/*
dto.go - Data transfer objects for API requests and responses

PURPOSE:
  JSON structures decoupling the API contract from the domain types.
  Money travels as exact decimal strings (shopspring/decimal's default JSON
  form), never as floats: the whole point of the engine is that amounts do
  not drift, and the API must not undo that at the boundary.

NAMING CONVENTION:
  - *DTO:     response types returned to clients
  - *Request: request body types from clients

VALIDATION:
  Handlers parse and hand off to the engine; the domain rules live there,
  not in the DTOs.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/store"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	MonthlyBaseSalary  decimal.Decimal `json:"monthly_base_salary"`
	JoinDate           string          `json:"join_date"`
	AnnualLeaveDays    int             `json:"annual_leave_days"`
	SickLeaveDays      int             `json:"sick_leave_days"`
	EmergencyLeaveDays int             `json:"emergency_leave_days"`
	CreatedAt          string          `json:"created_at,omitempty"`
}

type CreateEmployeeRequest struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	MonthlyBaseSalary  decimal.Decimal `json:"monthly_base_salary"`
	JoinDate           string          `json:"join_date"`
	AnnualLeaveDays    int             `json:"annual_leave_days"`
	SickLeaveDays      int             `json:"sick_leave_days"`
	EmergencyLeaveDays int             `json:"emergency_leave_days"`
}

// =============================================================================
// GRATUITY
// =============================================================================

type ComputeGratuityRequest struct {
	EmployeeID      string `json:"employee_id"`
	TerminationType string `json:"termination_type"`
	TerminationDate string `json:"termination_date"`
}

type TenureDTO struct {
	Years           int             `json:"years"`
	Months          int             `json:"months"`
	Days            int             `json:"days"`
	FractionalYears decimal.Decimal `json:"fractional_years"`
}

type GratuityLineDTO struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type GratuityDTO struct {
	ID              string            `json:"id"`
	EmployeeID      string            `json:"employee_id"`
	TerminationType string            `json:"termination_type"`
	TerminationDate string            `json:"termination_date"`
	Tenure          TenureDTO         `json:"tenure"`
	Lines           []GratuityLineDTO `json:"lines"`
	Total           decimal.Decimal   `json:"total"`
	ComputedAt      string            `json:"computed_at,omitempty"`
}

// =============================================================================
// PAYROLL
// =============================================================================

type AttendanceDTO struct {
	TotalWorkDays  int             `json:"total_work_days"`
	ActualWorkDays int             `json:"actual_work_days"`
	AbsentDays     int             `json:"absent_days"`
	LateHours      decimal.Decimal `json:"late_hours"`
}

type PayrollLineDTO struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	FixedDeductions decimal.Decimal `json:"fixed_deductions"`
	Advances        decimal.Decimal `json:"advances"`
	Attendance      AttendanceDTO   `json:"attendance"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

type BatchDTO struct {
	ID          string           `json:"id"`
	Period      string           `json:"period"`
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Status      string           `json:"status"`
	Notes       string           `json:"notes,omitempty"`
	Lines       []PayrollLineDTO `json:"lines"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

type CreateBatchRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type AddLineRequest struct {
	EmployeeID      string          `json:"employee_id"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	FixedDeductions decimal.Decimal `json:"fixed_deductions"`
	Advances        decimal.Decimal `json:"advances"`
	Attendance      AttendanceDTO   `json:"attendance"`
}

// UpdateLineRequest is a partial edit; absent fields are left as-is.
type UpdateLineRequest struct {
	BaseSalary      *decimal.Decimal `json:"base_salary,omitempty"`
	FixedDeductions *decimal.Decimal `json:"fixed_deductions,omitempty"`
	Advances        *decimal.Decimal `json:"advances,omitempty"`
	Attendance      *AttendanceDTO   `json:"attendance,omitempty"`
}

type RejectBatchRequest struct {
	Notes string `json:"notes"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e store.EmployeeRecord) EmployeeDTO {
	dto := EmployeeDTO{
		ID:                 string(e.ID),
		Name:               e.Name,
		MonthlyBaseSalary:  e.MonthlyBaseSalary.Value,
		JoinDate:           e.JoinDate.String(),
		AnnualLeaveDays:    e.AnnualLeaveDays,
		SickLeaveDays:      e.SickLeaveDays,
		EmergencyLeaveDays: e.EmergencyLeaveDays,
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toTenureDTO(t compensation.Tenure) TenureDTO {
	return TenureDTO{
		Years:           t.Years,
		Months:          t.Months,
		Days:            t.Days,
		FractionalYears: t.FractionalYears(),
	}
}

func toGratuityLineDTOs(lines []compensation.GratuityLine) []GratuityLineDTO {
	dtos := make([]GratuityLineDTO, len(lines))
	for i, line := range lines {
		dtos[i] = GratuityLineDTO{Description: line.Description, Amount: line.Amount.Value}
	}
	return dtos
}

func toGratuityDTO(r store.GratuityRecord) GratuityDTO {
	dto := GratuityDTO{
		ID:              r.ID,
		EmployeeID:      string(r.EmployeeID),
		TerminationType: string(r.TerminationType),
		TerminationDate: r.TerminationDate.String(),
		Tenure:          toTenureDTO(r.Tenure),
		Lines:           toGratuityLineDTOs(r.Lines),
		Total:           r.Total.Value,
	}
	if !r.ComputedAt.IsZero() {
		dto.ComputedAt = r.ComputedAt.Format(time.RFC3339)
	}
	return dto
}

func toAttendanceDTO(a compensation.AttendanceRecord) AttendanceDTO {
	return AttendanceDTO{
		TotalWorkDays:  a.TotalWorkDays,
		ActualWorkDays: a.ActualWorkDays,
		AbsentDays:     a.AbsentDays,
		LateHours:      a.LateHours,
	}
}

func fromAttendanceDTO(a AttendanceDTO) compensation.AttendanceRecord {
	return compensation.AttendanceRecord{
		TotalWorkDays:  a.TotalWorkDays,
		ActualWorkDays: a.ActualWorkDays,
		AbsentDays:     a.AbsentDays,
		LateHours:      a.LateHours,
	}
}

func toPayrollLineDTO(line compensation.PayrollLine) PayrollLineDTO {
	return PayrollLineDTO{
		ID:              line.ID,
		EmployeeID:      string(line.EmployeeID),
		BaseSalary:      line.BaseSalary.Value,
		FixedDeductions: line.FixedDeductions.Value,
		Advances:        line.Advances.Value,
		Attendance:      toAttendanceDTO(line.Attendance),
		NetSalary:       line.NetSalary.Value,
	}
}

func toBatchDTO(batch compensation.PayrollBatch) BatchDTO {
	lines := make([]PayrollLineDTO, len(batch.Lines))
	for i, line := range batch.Lines {
		lines[i] = toPayrollLineDTO(line)
	}
	return BatchDTO{
		ID:          batch.ID,
		Period:      batch.Period.String(),
		Year:        batch.Period.Year,
		Month:       int(batch.Period.Month),
		Status:      string(batch.Status),
		Notes:       batch.Notes,
		Lines:       lines,
		TotalAmount: batch.TotalAmount().Value,
	}
}
