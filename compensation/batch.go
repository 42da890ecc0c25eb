/*
batch.go - Payroll batch aggregate and its status machine

PURPOSE:
  A PayrollBatch owns the payroll lines for one pay period, keeps the batch
  total equal to the sum of its lines, and enforces the status machine:

    draft -> approved -> paid

  Transitions are strictly forward; there is no way out of paid. A reject
  action stays in draft and only records review notes.

VALUE SEMANTICS:
  Every operation takes the batch by value and returns a NEW batch value
  with a copied line slice. The input batch is never modified, so a failed
  operation provably leaves the caller's batch unchanged, and snapshots
  handed to other readers cannot be mutated underneath them.

TOTAL INVARIANT:
  TotalAmount() recomputes the sum of line net salaries on every call. The
  total is never cached, so it cannot drift from the lines it derives from.

CONCURRENCY:
  The batch provides no internal locking. A batch is edited by one
  interactive session at a time; an embedding system with multiple writers
  must serialize mutations to a given batch itself.
*/
package compensation

import (
	"time"
)

// =============================================================================
// STATUS MACHINE
// =============================================================================

type BatchStatus string

const (
	BatchDraft    BatchStatus = "draft"
	BatchApproved BatchStatus = "approved"
	BatchPaid     BatchStatus = "paid"
)

// Valid reports whether s is a known batch status.
func (s BatchStatus) Valid() bool {
	switch s {
	case BatchDraft, BatchApproved, BatchPaid:
		return true
	}
	return false
}

// forwardEdges enumerates the only legal transitions.
var forwardEdges = map[BatchStatus]BatchStatus{
	BatchDraft:    BatchApproved,
	BatchApproved: BatchPaid,
}

// =============================================================================
// PAY PERIOD
// =============================================================================

// PayPeriod identifies the month a batch covers.
type PayPeriod struct {
	Year  int
	Month time.Month
}

func (p PayPeriod) Validate() error {
	if p.Year <= 0 {
		return &ValidationError{Field: "period_year", Reason: "must be positive"}
	}
	if p.Month < time.January || p.Month > time.December {
		return &ValidationError{Field: "period_month", Reason: "must be between 1 and 12"}
	}
	return nil
}

func (p PayPeriod) String() string {
	return NewDate(p.Year, p.Month, 1).t.Format("2006-01")
}

// =============================================================================
// PAYROLL BATCH
// =============================================================================

// PayrollBatch is the set of payroll lines for one pay period. Lines are
// ordered by insertion and unique per employee within the batch.
type PayrollBatch struct {
	ID     string
	Period PayPeriod
	Status BatchStatus
	Lines  []PayrollLine
	Notes  string
}

// NewPayrollBatch opens a draft batch for the given pay period.
func NewPayrollBatch(id string, period PayPeriod) (PayrollBatch, error) {
	if id == "" {
		return PayrollBatch{}, &ValidationError{Field: "batch_id", Reason: "must not be empty"}
	}
	if err := period.Validate(); err != nil {
		return PayrollBatch{}, err
	}
	return PayrollBatch{ID: id, Period: period, Status: BatchDraft}, nil
}

// TotalAmount recomputes the batch total as the sum of line net salaries.
func (b PayrollBatch) TotalAmount() Money {
	total := ZeroMoney()
	for _, line := range b.Lines {
		total = total.Add(line.NetSalary)
	}
	return total
}

// Line returns the line with the given id, if present.
func (b PayrollBatch) Line(lineID string) (PayrollLine, bool) {
	for _, line := range b.Lines {
		if line.ID == lineID {
			return line, true
		}
	}
	return PayrollLine{}, false
}

// cloneLines copies the line slice so returned batches share nothing with
// their input.
func (b PayrollBatch) cloneLines() []PayrollLine {
	lines := make([]PayrollLine, len(b.Lines))
	copy(lines, b.Lines)
	return lines
}

// guardMutable rejects line mutations once the batch has been paid.
func (b PayrollBatch) guardMutable(operation string) error {
	if b.Status == BatchPaid {
		return &InvalidStateError{Status: b.Status, Operation: operation}
	}
	return nil
}

// AddLine appends a line to the batch. The line's net salary is recomputed
// from its inputs on the way in, so a hand-built line can never smuggle an
// inconsistent net into the batch. Fails with a ConflictError when the batch
// already holds a line for the same employee.
func (b PayrollBatch) AddLine(line PayrollLine) (PayrollBatch, error) {
	if err := b.guardMutable("add line"); err != nil {
		return b, err
	}
	for _, existing := range b.Lines {
		if existing.EmployeeID == line.EmployeeID {
			return b, &ConflictError{BatchID: b.ID, EmployeeID: line.EmployeeID}
		}
	}

	recomputed, err := NewPayrollLine(line.ID, line.EmployeeID, line.BaseSalary, line.FixedDeductions, line.Advances, line.Attendance)
	if err != nil {
		return b, err
	}

	next := b
	next.Lines = append(b.cloneLines(), recomputed)
	return next, nil
}

// RemoveLine removes the line with the given id.
func (b PayrollBatch) RemoveLine(lineID string) (PayrollBatch, error) {
	if err := b.guardMutable("remove line"); err != nil {
		return b, err
	}

	lines := b.cloneLines()
	for i, line := range lines {
		if line.ID == lineID {
			next := b
			next.Lines = append(lines[:i], lines[i+1:]...)
			return next, nil
		}
	}
	return b, ErrLineNotFound
}

// UpdateLine merges the update into the identified line, recomputes its net
// salary from scratch, and returns the new batch.
func (b PayrollBatch) UpdateLine(lineID string, update LineUpdate) (PayrollBatch, error) {
	if err := b.guardMutable("update line"); err != nil {
		return b, err
	}

	lines := b.cloneLines()
	for i, line := range lines {
		if line.ID == lineID {
			merged, err := line.Apply(update)
			if err != nil {
				return b, err
			}
			lines[i] = merged
			next := b
			next.Lines = lines
			return next, nil
		}
	}
	return b, ErrLineNotFound
}

// Transition moves the batch forward to newStatus. Only draft -> approved
// and approved -> paid are legal; anything else fails with an
// InvalidStateError and leaves the batch unchanged.
func (b PayrollBatch) Transition(newStatus BatchStatus) (PayrollBatch, error) {
	if !newStatus.Valid() {
		return b, &ValidationError{Field: "status", Reason: "unknown batch status"}
	}
	if forwardEdges[b.Status] != newStatus {
		return b, &InvalidStateError{Status: b.Status, Operation: "transition to " + string(newStatus)}
	}
	next := b
	next.Status = newStatus
	return next, nil
}

// Reject records review notes without changing state. Rejection is only
// meaningful while the batch is still a draft.
func (b PayrollBatch) Reject(notes string) (PayrollBatch, error) {
	if b.Status != BatchDraft {
		return b, &InvalidStateError{Status: b.Status, Operation: "reject"}
	}
	next := b
	next.Notes = notes
	return next, nil
}
