/*
tenure.go - Calendar duration between two dates

PURPOSE:
  Converts (join date, reference date) into a whole years/months/days
  duration using ordinary calendar subtraction. Tenure is always recomputed
  from its two input dates, never stored: a pure function of its inputs
  cannot go stale.

ALGORITHM:
  Subtract day-of-month, then month, then year, borrowing one month (and,
  if needed, one year) whenever the day subtraction goes negative. The
  borrow amount is the day count of the month immediately preceding the end
  date - real calendar subtraction, not a fixed 30-day month.

FRACTIONAL YEARS:
  The gratuity tiers compare against a single fractional-years figure:

    years + months/12 + days/365

  The fixed 365-day divisor ignores leap years while the rest of the
  calculation uses true calendar months. That asymmetry is inherited from
  the payroll rules this engine reproduces and is kept for output
  compatibility; do not substitute the actual year length.
*/
package compensation

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// TENURE - Whole-unit employment duration
// =============================================================================

// Tenure is the elapsed employment duration between a join date and a
// reference date, broken into whole calendar units.
type Tenure struct {
	Years  int
	Months int
	Days   int
}

// ComputeTenure returns the calendar duration from start to end.
// It fails with a ValidationError when end precedes start.
func ComputeTenure(start, end Date) (Tenure, error) {
	if end.Before(start) {
		return Tenure{}, &ValidationError{Field: "end_date", Reason: "must not precede start date"}
	}

	days := end.Day() - start.Day()
	months := int(end.Month()) - int(start.Month())
	years := end.Year() - start.Year()

	if days < 0 {
		days += daysInMonthBefore(end)
		months--
	}
	if months < 0 {
		months += 12
		years--
	}

	return Tenure{Years: years, Months: months, Days: days}, nil
}

// FractionalYears collapses the tenure into a single decimal figure for tier
// comparison: years + months/12 + days/365.
func (t Tenure) FractionalYears() decimal.Decimal {
	years := decimal.NewFromInt(int64(t.Years))
	months := decimal.NewFromInt(int64(t.Months)).Div(decimal.NewFromInt(12))
	days := decimal.NewFromInt(int64(t.Days)).Div(decimal.NewFromInt(365))
	return years.Add(months).Add(days)
}

// Validate checks the tenure components are non-negative.
func (t Tenure) Validate() error {
	if t.Years < 0 || t.Months < 0 || t.Days < 0 {
		return &ValidationError{Field: "tenure", Reason: "components must not be negative"}
	}
	return nil
}
