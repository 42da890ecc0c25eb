package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEmployeeRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	employee := store.EmployeeRecord{
		ID:                "emp-1",
		Name:              "A. Mansour",
		MonthlyBaseSalary: compensation.NewMoneyFromInt(12000),
		JoinDate:          compensation.NewDate(2019, time.February, 3),
		AnnualLeaveDays:   21,
		SickLeaveDays:     10,
		CreatedAt:         time.Date(2025, time.January, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveEmployee(ctx, employee))

	loaded, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, employee.Name, loaded.Name)
	assert.True(t, loaded.MonthlyBaseSalary.Equal(employee.MonthlyBaseSalary))
	assert.True(t, loaded.JoinDate.Equal(employee.JoinDate))
	assert.Equal(t, 21, loaded.AnnualLeaveDays)

	_, err = s.GetEmployee(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEmployeeUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	employee := store.EmployeeRecord{
		ID:                "emp-1",
		Name:              "Before",
		MonthlyBaseSalary: compensation.NewMoneyFromInt(9000),
		JoinDate:          compensation.NewDate(2020, time.June, 1),
	}
	require.NoError(t, s.SaveEmployee(ctx, employee))

	employee.Name = "After"
	employee.AnnualLeaveDays = 5
	require.NoError(t, s.SaveEmployee(ctx, employee))

	loaded, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "After", loaded.Name)
	assert.Equal(t, 5, loaded.AnnualLeaveDays)

	all, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGratuityHistoryRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := store.GratuityRecord{
		ID:              "grat-1",
		EmployeeID:      "emp-1",
		TerminationType: compensation.TerminationResignation,
		TerminationDate: compensation.NewDate(2025, time.March, 31),
		Tenure:          compensation.Tenure{Years: 3, Months: 1, Days: 12},
		Lines: []compensation.GratuityLine{
			{Description: "half month's salary per year for the first five years", Amount: compensation.NewMoneyFromInt(15000)},
			{Description: "resignation between two and five years retains one third", Amount: compensation.NewMoneyFromInt(-10000)},
		},
		Total:      compensation.NewMoneyFromInt(5000),
		ComputedAt: time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.AppendGratuity(ctx, record))

	records, err := s.ListGratuities(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, records, 1)

	loaded := records[0]
	assert.Equal(t, record.TerminationType, loaded.TerminationType)
	assert.Equal(t, record.Tenure, loaded.Tenure)
	require.Len(t, loaded.Lines, 2)
	assert.Equal(t, record.Lines[0].Description, loaded.Lines[0].Description)
	assert.True(t, loaded.Lines[1].Amount.Equal(record.Lines[1].Amount))
	assert.True(t, loaded.Total.Equal(record.Total))
}

func TestBatchRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	batch, err := compensation.NewPayrollBatch("batch-1", compensation.PayPeriod{Year: 2025, Month: time.March})
	require.NoError(t, err)

	line, err := compensation.NewPayrollLine("l1", "emp-1",
		compensation.NewMoneyFromInt(12000), compensation.NewMoneyFromInt(500),
		compensation.NewMoneyFromInt(1000),
		compensation.AttendanceRecord{TotalWorkDays: 22, ActualWorkDays: 20, AbsentDays: 2, LateHours: decimal.NewFromInt(3)})
	require.NoError(t, err)

	batch, err = batch.AddLine(line)
	require.NoError(t, err)
	require.NoError(t, s.SaveBatch(ctx, batch))

	loaded, err := s.GetBatch(ctx, "batch-1")
	require.NoError(t, err)
	assert.Equal(t, compensation.BatchDraft, loaded.Status)
	assert.Equal(t, compensation.PayPeriod{Year: 2025, Month: time.March}, loaded.Period)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, "9204.55", loaded.Lines[0].NetSalary.StringFixed(2))
	assert.Equal(t, "9204.55", loaded.TotalAmount().StringFixed(2))

	// Saving again replaces the lines rather than accumulating them.
	loaded, err = loaded.RemoveLine("l1")
	require.NoError(t, err)
	require.NoError(t, s.SaveBatch(ctx, loaded))

	reloaded, err := s.GetBatch(ctx, "batch-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Lines)

	_, err = s.GetBatch(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListBatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"b-feb", "b-jan"} {
		month := time.February
		if id == "b-jan" {
			month = time.January
		}
		batch, err := compensation.NewPayrollBatch(id, compensation.PayPeriod{Year: 2025, Month: month})
		require.NoError(t, err)
		require.NoError(t, s.SaveBatch(ctx, batch))
	}

	batches, err := s.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "b-jan", batches[0].ID)
	assert.Equal(t, "b-feb", batches[1].ID)
}
