/*
projector.go - Year-by-year education ROI projection

PURPOSE:
  Turns an Inputs set into a Projection: the full timeline plus the summary
  Result. This is the only computation in the package; everything else is
  types and presentation helpers.

ALGORITHM:
  1. totalCost = tuition + training + living + other
  2. rate = annualGrowthRate / 100
  3. For year = 1..careerLength, in order:
       earnings(year)  = startingSalary * (1 + rate)^(year-1)
       cumulative     += earnings(year)
       netValue        = cumulative - totalCost
       record the row; the first year with netValue >= 0 is the break-even year
  4. roi = (cumulative - totalCost) / totalCost * 100, undefined if totalCost = 0
  5. projectedFinalSalary = earnings(careerLength)

  Earnings are grown by repeated multiplication. In decimal arithmetic this
  is exactly the closed form above, so no Pow is needed.

NUMERIC SEMANTICS:
  Annual compounding only. Nominal values: no inflation, no discounting to
  present value.

BREAK-EVEN:
  First crossing wins and is never revised. With non-negative growth the
  cumulative earnings never decrease, so the first crossing is also the
  lasting one. Negative growth rates are rejected by Validate.

CONCURRENCY:
  Project is pure and keeps no shared state. Safe for concurrent use;
  identical inputs always produce identical outputs.

SEE ALSO:
  - types.go:  Inputs, Result, YearlyProjection
  - errors.go: InvalidInputError
*/
package roi

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks an input set and reports every offending field at once.
func Validate(in Inputs) error {
	var issues []Issue

	nonNegative := []struct {
		name  string
		value decimal.Decimal
	}{
		{FieldTuitionFees, in.TuitionFees},
		{FieldTrainingFees, in.TrainingFees},
		{FieldLivingExpenses, in.LivingExpenses},
		{FieldOtherCosts, in.OtherCosts},
		{FieldStartingSalary, in.StartingSalary},
		{FieldAnnualGrowthRate, in.AnnualGrowthRate},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			issues = append(issues, Issue{
				Field:   f.name,
				Code:    CodeNegative,
				Message: fmt.Sprintf("%s must not be negative (got %s)", f.name, f.value),
			})
		}
	}

	if in.AnnualGrowthRate.GreaterThan(MaxGrowthRate) {
		issues = append(issues, Issue{
			Field:   FieldAnnualGrowthRate,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("%s must be at most %s percent", FieldAnnualGrowthRate, MaxGrowthRate),
		})
	}

	switch {
	case in.CareerLength < 1:
		issues = append(issues, Issue{
			Field:   FieldCareerLength,
			Code:    CodeNotPositive,
			Message: fmt.Sprintf("%s must be a positive number of years (got %d)", FieldCareerLength, in.CareerLength),
		})
	case in.CareerLength > MaxCareerLength:
		issues = append(issues, Issue{
			Field:   FieldCareerLength,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("%s must be at most %d years", FieldCareerLength, MaxCareerLength),
		})
	}

	if len(issues) > 0 {
		return &InvalidInputError{Issues: issues}
	}
	return nil
}

// =============================================================================
// PROJECTION
// =============================================================================

// Project computes the timeline and summary for one input set.
// Invalid inputs are rejected before any computation.
func Project(in Inputs) (Projection, error) {
	if err := Validate(in); err != nil {
		return Projection{}, err
	}

	totalCost := in.TotalEducationCost()
	multiplier := decimalOne.Add(in.AnnualGrowthRate.Div(decimalHundred))

	timeline := make([]YearlyProjection, 0, in.CareerLength)
	cumulative := decimalZero
	earnings := in.StartingSalary
	breakEven := NotReached

	for year := 1; year <= in.CareerLength; year++ {
		if year > 1 {
			earnings = earnings.Mul(multiplier)
		}
		cumulative = cumulative.Add(earnings)
		net := cumulative.Sub(totalCost)

		timeline = append(timeline, YearlyProjection{
			Year:               year,
			CumulativeCosts:    totalCost,
			CumulativeEarnings: cumulative,
			NetValue:           net,
			Earnings:           earnings,
		})

		if breakEven == NotReached && !net.IsNegative() {
			breakEven = year
		}
	}

	netProfit := cumulative.Sub(totalCost)

	result := Result{
		TotalEducationCost:   totalCost,
		BreakEvenYear:        breakEven,
		PaybackPeriod:        NoPayback,
		NetProfit:            netProfit,
		ProjectedFinalSalary: earnings,
		CostBreakdown:        Breakdown(in),
	}
	if breakEven != NotReached {
		result.PaybackPeriod = breakEven
	}
	if !totalCost.IsZero() {
		pct := netProfit.Div(totalCost).Mul(decimalHundred)
		result.ROIPercentage = &pct
	}

	return Projection{Result: result, Timeline: timeline}, nil
}

// Breakdown pairs the four cost inputs with their fixed labels.
func Breakdown(in Inputs) []CostCategory {
	return []CostCategory{
		{ID: CategoryTuition, Label: "Tuition Fees", Value: in.TuitionFees},
		{ID: CategoryTraining, Label: "Training Fees", Value: in.TrainingFees},
		{ID: CategoryLiving, Label: "Living Expenses", Value: in.LivingExpenses},
		{ID: CategoryOther, Label: "Other Costs", Value: in.OtherCosts},
	}
}
