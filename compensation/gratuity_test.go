package compensation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGratuity_ResignationMidTier(t *testing.T) {
	// GIVEN: 10000/month, 3 full years of service, resignation, 21 leave days
	// WHEN:  computing the end-of-service benefit
	// THEN:  base 15000 is cut to a third (reduction line -10000), leave
	//        encashment adds 7000, total 12000

	result, err := ComputeGratuity(GratuityInput{
		BaseSalary:             NewMoneyFromInt(10000),
		Tenure:                 Tenure{Years: 3},
		TerminationType:        TerminationResignation,
		AnnualLeaveBalanceDays: 21,
	})
	require.NoError(t, err)

	require.Len(t, result.Lines, 3)
	assert.Equal(t, "15000.00", result.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "-10000.00", result.Lines[1].Amount.StringFixed(2))
	assert.Equal(t, "7000.00", result.Lines[2].Amount.StringFixed(2))
	assert.Equal(t, "12000.00", result.Total.StringFixed(2))
}

func TestComputeGratuity_EmployerInitiatedBeyondFiveYears(t *testing.T) {
	// GIVEN: 12000/month, 7 years of service, employer-initiated, no leave
	// THEN:  (12000/2)*5 + 12000*2 = 54000, no adjustment

	result, err := ComputeGratuity(GratuityInput{
		BaseSalary:      NewMoneyFromInt(12000),
		Tenure:          Tenure{Years: 7},
		TerminationType: TerminationEmployer,
	})
	require.NoError(t, err)

	require.Len(t, result.Lines, 3)
	assert.Equal(t, "30000.00", result.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "24000.00", result.Lines[1].Amount.StringFixed(2))
	assert.True(t, result.Lines[2].Amount.IsZero(), "zero-day encashment line")
	assert.Equal(t, "54000.00", result.Total.StringFixed(2))
}

func TestComputeGratuity_ResignationUnderTwoYears(t *testing.T) {
	// Resignation before two years forfeits the accrual entirely. The accrual
	// lines are replaced by a single explanatory zero line; the total is the
	// leave encashment alone.

	result, err := ComputeGratuity(GratuityInput{
		BaseSalary:             NewMoneyFromInt(9000),
		Tenure:                 Tenure{Years: 1, Months: 6},
		TerminationType:        TerminationResignation,
		AnnualLeaveBalanceDays: 10,
	})
	require.NoError(t, err)

	require.Len(t, result.Lines, 2)
	assert.True(t, result.Lines[0].Amount.IsZero())
	assert.Equal(t, "3000.00", result.Lines[1].Amount.StringFixed(2))
	assert.Equal(t, "3000.00", result.Total.StringFixed(2))
}

func TestComputeGratuity_ResignationTierBoundaries(t *testing.T) {
	// Boundaries are inclusive on the lower side: exactly 2 years uses the
	// 2-5 tier, exactly 5 the 5-10 tier, exactly 10 is unadjusted.
	tests := []struct {
		name  string
		years int
		want  string
	}{
		{"exactly two years keeps one third", 2, "3333.33"},
		{"exactly five years keeps two thirds", 5, "16666.67"},
		{"exactly ten years is unadjusted", 10, "75000.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ComputeGratuity(GratuityInput{
				BaseSalary:      NewMoneyFromInt(10000),
				Tenure:          Tenure{Years: tc.years},
				TerminationType: TerminationResignation,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Total.StringFixed(2))
		})
	}
}

func TestComputeGratuity_NoAdjustmentForOtherTypes(t *testing.T) {
	// The resignation tiers never apply to employer-initiated termination or
	// retirement, whatever the tenure.
	for _, termType := range []TerminationType{TerminationEmployer, TerminationRetirement} {
		result, err := ComputeGratuity(GratuityInput{
			BaseSalary:      NewMoneyFromInt(10000),
			Tenure:          Tenure{Years: 3},
			TerminationType: termType,
		})
		require.NoError(t, err)
		assert.Equal(t, "15000.00", result.Total.StringFixed(2), "type %s", termType)
	}
}

func TestComputeGratuity_Deterministic(t *testing.T) {
	input := GratuityInput{
		BaseSalary:             NewMoneyFromInt(11500),
		Tenure:                 Tenure{Years: 6, Months: 4, Days: 17},
		TerminationType:        TerminationResignation,
		AnnualLeaveBalanceDays: 13,
	}

	first, err := ComputeGratuity(input)
	require.NoError(t, err)
	second, err := ComputeGratuity(input)
	require.NoError(t, err)

	require.Equal(t, first, second, "identical inputs must yield identical results")
}

func TestComputeGratuity_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input GratuityInput
	}{
		{"zero salary", GratuityInput{TerminationType: TerminationRetirement}},
		{"negative tenure", GratuityInput{
			BaseSalary:      NewMoneyFromInt(5000),
			Tenure:          Tenure{Years: -1},
			TerminationType: TerminationRetirement,
		}},
		{"unknown termination type", GratuityInput{
			BaseSalary:      NewMoneyFromInt(5000),
			TerminationType: "mutual",
		}},
		{"negative leave balance", GratuityInput{
			BaseSalary:             NewMoneyFromInt(5000),
			TerminationType:        TerminationRetirement,
			AnnualLeaveBalanceDays: -1,
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeGratuity(tc.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestComputeEndOfService(t *testing.T) {
	record := EmploymentRecord{
		EmployeeID:        "emp-1",
		MonthlyBaseSalary: NewMoneyFromInt(12000),
		JoinDate:          NewDate(2015, time.June, 1),
		LeaveBalances:     LeaveBalances{AnnualDays: 0},
	}

	result, tenure, err := ComputeEndOfService(record, TerminationEvent{
		Type: TerminationEmployer,
		Date: NewDate(2022, time.June, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, Tenure{Years: 7}, tenure)
	assert.Equal(t, "54000.00", result.Total.StringFixed(2))
}

func TestComputeEndOfService_TerminationBeforeJoin(t *testing.T) {
	record := EmploymentRecord{
		EmployeeID:        "emp-1",
		MonthlyBaseSalary: NewMoneyFromInt(12000),
		JoinDate:          NewDate(2020, time.June, 1),
	}

	_, _, err := ComputeEndOfService(record, TerminationEvent{
		Type: TerminationRetirement,
		Date: NewDate(2020, time.May, 31),
	})
	assert.ErrorIs(t, err, ErrValidation)
}
