// Package memory provides an in-memory Records implementation for tests/dev.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/store"
)

// Store keeps all records in maps behind a RWMutex. Values are copied on the
// way in and out so callers never share slices with the store.
type Store struct {
	mu         sync.RWMutex
	employees  map[compensation.EmployeeID]store.EmployeeRecord
	gratuities map[compensation.EmployeeID][]store.GratuityRecord
	batches    map[string]compensation.PayrollBatch
}

func New() *Store {
	return &Store{
		employees:  make(map[compensation.EmployeeID]store.EmployeeRecord),
		gratuities: make(map[compensation.EmployeeID][]store.GratuityRecord),
		batches:    make(map[string]compensation.PayrollBatch),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(_ context.Context, employee store.EmployeeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[employee.ID] = employee
	return nil
}

func (s *Store) GetEmployee(_ context.Context, id compensation.EmployeeID) (store.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employee, ok := s.employees[id]
	if !ok {
		return store.EmployeeRecord{}, store.ErrNotFound
	}
	return employee, nil
}

func (s *Store) ListEmployees(_ context.Context) ([]store.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]store.EmployeeRecord, 0, len(s.employees))
	for _, e := range s.employees {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

// =============================================================================
// GRATUITY HISTORY (append-only)
// =============================================================================

func (s *Store) AppendGratuity(_ context.Context, record store.GratuityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Lines = append([]compensation.GratuityLine(nil), record.Lines...)
	s.gratuities[record.EmployeeID] = append(s.gratuities[record.EmployeeID], record)
	return nil
}

func (s *Store) ListGratuities(_ context.Context, employeeID compensation.EmployeeID) ([]store.GratuityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]store.GratuityRecord, len(s.gratuities[employeeID]))
	copy(records, s.gratuities[employeeID])
	for i := range records {
		records[i].Lines = append([]compensation.GratuityLine(nil), records[i].Lines...)
	}
	return records, nil
}

// =============================================================================
// PAYROLL BATCHES
// =============================================================================

func (s *Store) SaveBatch(_ context.Context, batch compensation.PayrollBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = cloneBatch(batch)
	return nil
}

func (s *Store) GetBatch(_ context.Context, id string) (compensation.PayrollBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.batches[id]
	if !ok {
		return compensation.PayrollBatch{}, store.ErrNotFound
	}
	return cloneBatch(batch), nil
}

func (s *Store) ListBatches(_ context.Context) ([]compensation.PayrollBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batches := make([]compensation.PayrollBatch, 0, len(s.batches))
	for _, b := range s.batches {
		batches = append(batches, cloneBatch(b))
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].ID < batches[j].ID })
	return batches, nil
}

func cloneBatch(batch compensation.PayrollBatch) compensation.PayrollBatch {
	clone := batch
	clone.Lines = append([]compensation.PayrollLine(nil), batch.Lines...)
	return clone
}
