/*
Package roi projects the financial return of an education investment.

PURPOSE:
  Given what an education costs and what the resulting career earns, the
  projector produces a year-by-year timeline of cumulative costs against
  cumulative earnings, the first year the investment breaks even, the final
  ROI percentage and the cost breakdown used for visualisation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Inputs:           The cost/earnings input set (decimal money)
  - Float64Inputs:    The same input set at the float64 boundary (JSON, CLI)
  - YearlyProjection: One row of the timeline
  - Result:           Summary values derived once per input set
  - CostCategory:     One labelled slice of the total education cost

DESIGN PRINCIPLES:
  1. Purity: Project has no side effects and keeps no state between calls
  2. Precision: Money is decimal.Decimal so zero-growth earnings are exact
  3. Explicit sentinels: "never broke even" and "ROI undefined" are values,
     not NaN or Infinity

USAGE:
  projection, err := roi.Project(roi.Inputs{
      TuitionFees:      decimal.NewFromInt(50000),
      StartingSalary:   decimal.NewFromInt(60000),
      AnnualGrowthRate: decimal.NewFromInt(5),
      CareerLength:     30,
  })
  if err != nil {
      // errors.Is(err, roi.ErrInvalidInput)
  }
  fmt.Println(projection.Result.BreakEvenYear)

SEE ALSO:
  - projector.go: The projection algorithm
  - errors.go:    Validation errors
  - compare.go:   Ranking several plans by ROI
*/
package roi

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LIMITS AND SENTINELS
// =============================================================================

const (
	// NotReached is the BreakEvenYear reported when net value never becomes
	// non-negative within the career length.
	NotReached = 0

	// NoPayback is the PaybackPeriod reported when break-even is not reached.
	NoPayback = -1

	// MaxCareerLength bounds the number of projected years, and with it the
	// timeline size and the digits of compounded earnings.
	MaxCareerLength = 100
)

var (
	decimalZero    = decimal.Zero
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)

	// MaxGrowthRate is the largest accepted AnnualGrowthRate, in percent.
	// Together with MaxCareerLength it caps earnings growth at 2^99.
	MaxGrowthRate = decimal.NewFromInt(100)
)

// =============================================================================
// INPUTS
// =============================================================================

// Inputs is the cost/earnings input set for one projection.
// All monetary values share one arbitrary currency unit.
type Inputs struct {
	TuitionFees    decimal.Decimal
	TrainingFees   decimal.Decimal
	LivingExpenses decimal.Decimal
	OtherCosts     decimal.Decimal

	// First-year earnings.
	StartingSalary decimal.Decimal

	// Percentage, 5 means 5%. Compounded once per year.
	AnnualGrowthRate decimal.Decimal

	// Number of years to project.
	CareerLength int
}

// TotalEducationCost is the sum of the four cost components.
func (in Inputs) TotalEducationCost() decimal.Decimal {
	return in.TuitionFees.Add(in.TrainingFees).Add(in.LivingExpenses).Add(in.OtherCosts)
}

// Float64Inputs mirrors Inputs for callers that hold plain floats.
type Float64Inputs struct {
	TuitionFees      float64 `json:"tuition_fees"`
	TrainingFees     float64 `json:"training_fees"`
	LivingExpenses   float64 `json:"living_expenses"`
	OtherCosts       float64 `json:"other_costs"`
	StartingSalary   float64 `json:"starting_salary"`
	AnnualGrowthRate float64 `json:"annual_growth_rate"`
	CareerLength     int     `json:"career_length"`
}

// Decimal converts to Inputs. NaN and infinities are rejected with an
// *InvalidInputError because decimal.NewFromFloat cannot represent them.
func (f Float64Inputs) Decimal() (Inputs, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{FieldTuitionFees, f.TuitionFees},
		{FieldTrainingFees, f.TrainingFees},
		{FieldLivingExpenses, f.LivingExpenses},
		{FieldOtherCosts, f.OtherCosts},
		{FieldStartingSalary, f.StartingSalary},
		{FieldAnnualGrowthRate, f.AnnualGrowthRate},
	}

	var issues []Issue
	for _, fv := range fields {
		if math.IsNaN(fv.value) || math.IsInf(fv.value, 0) {
			issues = append(issues, Issue{
				Field:   fv.name,
				Code:    CodeNotFinite,
				Message: fv.name + " must be a finite number",
			})
		}
	}
	if len(issues) > 0 {
		return Inputs{}, &InvalidInputError{Issues: issues}
	}

	return Inputs{
		TuitionFees:      decimal.NewFromFloat(f.TuitionFees),
		TrainingFees:     decimal.NewFromFloat(f.TrainingFees),
		LivingExpenses:   decimal.NewFromFloat(f.LivingExpenses),
		OtherCosts:       decimal.NewFromFloat(f.OtherCosts),
		StartingSalary:   decimal.NewFromFloat(f.StartingSalary),
		AnnualGrowthRate: decimal.NewFromFloat(f.AnnualGrowthRate),
		CareerLength:     f.CareerLength,
	}, nil
}

// =============================================================================
// OUTPUTS
// =============================================================================

// YearlyProjection is one row of the timeline.
type YearlyProjection struct {
	Year int

	// Equal to the total education cost every year: the cost is sunk up front.
	CumulativeCosts decimal.Decimal

	CumulativeEarnings decimal.Decimal
	NetValue           decimal.Decimal

	// This year's earnings alone.
	Earnings decimal.Decimal
}

// CostCategoryID identifies one of the four cost components.
type CostCategoryID string

const (
	CategoryTuition  CostCategoryID = "tuition"
	CategoryTraining CostCategoryID = "training"
	CategoryLiving   CostCategoryID = "living"
	CategoryOther    CostCategoryID = "other"
)

// CostCategory is one labelled slice of the total education cost.
type CostCategory struct {
	ID    CostCategoryID
	Label string
	Value decimal.Decimal
}

// Result holds the summary values of a projection.
type Result struct {
	TotalEducationCost decimal.Decimal

	// First year with NetValue >= 0, or NotReached.
	BreakEvenYear int

	// BreakEvenYear when reached, NoPayback otherwise.
	PaybackPeriod int

	// Final cumulative earnings minus the total education cost.
	NetProfit decimal.Decimal

	// Nil when the total education cost is zero. Use ROI() for an error instead.
	ROIPercentage *decimal.Decimal

	// Single-year earnings in the final year, not cumulative.
	ProjectedFinalSalary decimal.Decimal

	CostBreakdown []CostCategory
}

// BreakEvenReached reports whether net value turned non-negative.
func (r Result) BreakEvenReached() bool {
	return r.BreakEvenYear != NotReached
}

// ROIDefined reports whether ROIPercentage carries a value.
func (r Result) ROIDefined() bool {
	return r.ROIPercentage != nil
}

// ROI returns the ROI percentage, or ErrUndefinedROI when the total
// education cost is zero.
func (r Result) ROI() (decimal.Decimal, error) {
	if r.ROIPercentage == nil {
		return decimalZero, ErrUndefinedROI
	}
	return *r.ROIPercentage, nil
}

// Projection is everything Project produces for one input set.
type Projection struct {
	Result   Result
	Timeline []YearlyProjection
}
