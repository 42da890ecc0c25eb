/*
gratuity.go - End-of-service benefit rule engine

PURPOSE:
  Applies the legally-motivated termination tiers and leave encashment to
  produce an itemized end-of-service benefit. The result is not just a
  number: the ordered line items ARE the audit trail, and their sequence is
  part of the observable contract.

STEP ORDER (fixed):
  1. Base accrual, tiered on fractional years of service:
       first five years  -> half a month's salary per year
       beyond five years -> a full month's salary per year
  2. Resignation adjustment, applied only to employee-initiated termination:
       under 2 years        -> benefit forfeited entirely
       2 to under 5 years   -> one third retained
       5 to under 10 years  -> two thirds retained
       10 years and over    -> no adjustment
  3. Leave encashment, applied unconditionally:
       unused annual leave days paid at baseSalary/30 per day

  Tier boundaries are inclusive on the lower side: exactly 2 years falls in
  the 2-5 tier, exactly 5 in the 5-10 tier, exactly 10 is unadjusted.

RULE TABLES:
  Both tiered steps are expressed as small ordered tables of
  (bound, formula) rows rather than nested conditionals, so the audit-line
  generation and the numeric branch stay in lock-step.

DETERMINISM:
  Calling ComputeGratuity twice with identical inputs yields an identical
  line sequence and total. There is no hidden state and no clock access.
*/
package compensation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// GratuityLine is one named step of the computation. Amount may be negative
// (a stated reduction) or positive (a stated addition). Lines are append-only
// within one computation and never mutated after being produced.
type GratuityLine struct {
	Description string
	Amount      Money
}

// GratuityResult is the itemized end-of-service benefit.
type GratuityResult struct {
	Lines []GratuityLine
	Total Money
}

// GratuityInput is the immutable snapshot a gratuity computation reads.
type GratuityInput struct {
	BaseSalary             Money
	Tenure                 Tenure
	TerminationType        TerminationType
	AnnualLeaveBalanceDays int
}

// =============================================================================
// RULE TABLES
// =============================================================================

var (
	five = decimal.NewFromInt(5)
	half = decimal.NewFromFloat(0.5)
	one  = decimal.NewFromInt(1)
)

// accrualBand is one row of the base accrual schedule: service years up to
// (and excluding) UpToYears accrue RatePerYear months of salary per year.
type accrualBand struct {
	FromYears   decimal.Decimal
	UpToYears   *decimal.Decimal // nil = unbounded
	RatePerYear decimal.Decimal  // months of salary per year of service
	Description string
}

var accrualBands = []accrualBand{
	{
		FromYears:   decimal.Zero,
		UpToYears:   &five,
		RatePerYear: half,
		Description: "half month's salary per year for the first five years",
	},
	{
		FromYears:   five,
		UpToYears:   nil,
		RatePerYear: one,
		Description: "full month's salary per year beyond five years",
	},
}

// resignationTier is one row of the resignation penalty schedule. The first
// tier whose BelowYears exceeds the fractional tenure applies; tenure at or
// above every bound is unadjusted.
type resignationTier struct {
	BelowYears  decimal.Decimal
	RetainedNum int // retained fraction, numerator; 0 forfeits the benefit
	RetainedDen int
	Description string
}

var resignationTiers = []resignationTier{
	{
		BelowYears:  decimal.NewFromInt(2),
		RetainedNum: 0,
		RetainedDen: 1,
		Description: "resignation before two years of service forfeits the benefit",
	},
	{
		BelowYears:  decimal.NewFromInt(5),
		RetainedNum: 1,
		RetainedDen: 3,
		Description: "resignation between two and five years retains one third",
	},
	{
		BelowYears:  decimal.NewFromInt(10),
		RetainedNum: 2,
		RetainedDen: 3,
		Description: "resignation between five and ten years retains two thirds",
	},
}

// encashmentDivisor converts a monthly salary into the per-day rate used for
// leave encashment. Fixed 30-day month by rule, regardless of the calendar.
var encashmentDivisor = decimal.NewFromInt(30)

// =============================================================================
// GRATUITY COMPUTATION
// =============================================================================

// ComputeGratuity applies the three steps in their fixed order and returns
// the itemized benefit. It fails with a ValidationError when the salary is
// not positive, the tenure is malformed, the termination type is unknown, or
// the leave balance is negative.
func ComputeGratuity(input GratuityInput) (GratuityResult, error) {
	if !input.BaseSalary.IsPositive() {
		return GratuityResult{}, &ValidationError{Field: "base_salary", Reason: "must be positive"}
	}
	if err := input.Tenure.Validate(); err != nil {
		return GratuityResult{}, err
	}
	if !input.TerminationType.Valid() {
		return GratuityResult{}, &ValidationError{Field: "termination_type", Reason: fmt.Sprintf("unknown type %q", input.TerminationType)}
	}
	if input.AnnualLeaveBalanceDays < 0 {
		return GratuityResult{}, &ValidationError{Field: "annual_leave_balance_days", Reason: "must not be negative"}
	}

	years := input.Tenure.FractionalYears()

	// Step 1: base accrual across the bands.
	var lines []GratuityLine
	base := ZeroMoney()
	for _, band := range accrualBands {
		if band.FromYears.GreaterThan(decimal.Zero) && years.LessThan(band.FromYears) {
			break
		}
		span := years.Sub(band.FromYears)
		if band.UpToYears != nil {
			width := band.UpToYears.Sub(band.FromYears)
			if span.GreaterThan(width) {
				span = width
			}
		}
		amount := input.BaseSalary.Mul(band.RatePerYear).Mul(span)
		lines = append(lines, GratuityLine{Description: band.Description, Amount: amount})
		base = base.Add(amount)
	}

	// Step 2: resignation adjustment. Only employee-initiated termination is
	// penalized; employer-initiated and retirement pass through untouched.
	if input.TerminationType == TerminationResignation {
		for _, tier := range resignationTiers {
			if !years.LessThan(tier.BelowYears) {
				continue
			}
			if tier.RetainedNum == 0 {
				// The accrual lines are replaced by a single explanatory
				// zero-amount line; the benefit is the encashment alone.
				lines = []GratuityLine{{Description: tier.Description, Amount: ZeroMoney()}}
				base = ZeroMoney()
				break
			}
			retained := base.MulInt(tier.RetainedNum).DivInt(tier.RetainedDen)
			lines = append(lines, GratuityLine{Description: tier.Description, Amount: retained.Sub(base)})
			base = retained
			break
		}
	}

	// Step 3: leave encashment, unconditional.
	dailyRate := input.BaseSalary.Div(encashmentDivisor)
	encashment := dailyRate.MulInt(input.AnnualLeaveBalanceDays)
	lines = append(lines, GratuityLine{
		Description: fmt.Sprintf("encashment of %d unused annual leave days", input.AnnualLeaveBalanceDays),
		Amount:      encashment,
	})
	base = base.Add(encashment)

	return GratuityResult{Lines: lines, Total: base}, nil
}

// ComputeEndOfService is the record-level entry point: it derives tenure from
// the employment record and termination event, then runs the gratuity rules.
// The termination date must not precede the join date.
func ComputeEndOfService(record EmploymentRecord, event TerminationEvent) (GratuityResult, Tenure, error) {
	if err := record.Validate(); err != nil {
		return GratuityResult{}, Tenure{}, err
	}
	if !event.Type.Valid() {
		return GratuityResult{}, Tenure{}, &ValidationError{Field: "termination_type", Reason: fmt.Sprintf("unknown type %q", event.Type)}
	}
	if event.Date.Before(record.JoinDate) {
		return GratuityResult{}, Tenure{}, &ValidationError{Field: "termination_date", Reason: "must not precede join date"}
	}

	tenure, err := ComputeTenure(record.JoinDate, event.Date)
	if err != nil {
		return GratuityResult{}, Tenure{}, err
	}

	result, err := ComputeGratuity(GratuityInput{
		BaseSalary:             record.MonthlyBaseSalary,
		Tenure:                 tenure,
		TerminationType:        event.Type,
		AnnualLeaveBalanceDays: record.LeaveBalances.AnnualDays,
	})
	if err != nil {
		return GratuityResult{}, Tenure{}, err
	}
	return result, tenure, nil
}
