package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/store"
)

func TestEmployeeRoundtrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SaveEmployee(ctx, store.EmployeeRecord{
		ID:                "emp-1",
		Name:              "B. Haddad",
		MonthlyBaseSalary: compensation.NewMoneyFromInt(8000),
		JoinDate:          compensation.NewDate(2021, time.September, 1),
	}))

	loaded, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "B. Haddad", loaded.Name)

	_, err = s.GetEmployee(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBatchIsolation(t *testing.T) {
	// A batch loaded from the store must not share line storage with the
	// stored copy: mutating the loaded value leaves the store untouched.
	s := New()
	ctx := context.Background()

	batch, err := compensation.NewPayrollBatch("batch-1", compensation.PayPeriod{Year: 2025, Month: time.May})
	require.NoError(t, err)

	line, err := compensation.NewPayrollLine("l1", "emp-1",
		compensation.NewMoneyFromInt(5000), compensation.ZeroMoney(), compensation.ZeroMoney(),
		compensation.AttendanceRecord{TotalWorkDays: 22, ActualWorkDays: 22})
	require.NoError(t, err)
	batch, err = batch.AddLine(line)
	require.NoError(t, err)

	require.NoError(t, s.SaveBatch(ctx, batch))

	loaded, err := s.GetBatch(ctx, "batch-1")
	require.NoError(t, err)
	loaded, err = loaded.RemoveLine("l1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Lines)

	stored, err := s.GetBatch(ctx, "batch-1")
	require.NoError(t, err)
	assert.Len(t, stored.Lines, 1)
}

func TestGratuityHistoryAppends(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, s.AppendGratuity(ctx, store.GratuityRecord{
			ID:         string(rune('a' + i)),
			EmployeeID: "emp-1",
			Total:      compensation.NewMoneyFromInt(int64(1000 * (i + 1))),
		}))
	}

	records, err := s.ListGratuities(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Total.LessThan(records[1].Total))
}
