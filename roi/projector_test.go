package roi_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/careerpath/roi"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// defaultInputs are the calculator defaults of the parent dashboard.
func defaultInputs() roi.Inputs {
	return roi.Inputs{
		TuitionFees:      money(50000),
		TrainingFees:     money(10000),
		LivingExpenses:   money(30000),
		OtherCosts:       money(5000),
		StartingSalary:   money(60000),
		AnnualGrowthRate: money(5),
		CareerLength:     30,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	w := decimal.RequireFromString(want)
	assert.Truef(t, w.Equal(got), "want %s, got %s", w, got)
}

func mustProject(t *testing.T, in roi.Inputs) roi.Projection {
	t.Helper()
	p, err := roi.Project(in)
	require.NoError(t, err)
	return p
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestProject_DefaultPlan_BreaksEvenInYearTwo(t *testing.T) {
	// GIVEN: 95,000 of education costs and a 60,000 salary growing 5% a year
	p := mustProject(t, defaultInputs())

	// THEN: the totals and the first two rows match the closed form
	assertDecimal(t, "95000", p.Result.TotalEducationCost)
	require.Len(t, p.Timeline, 30)

	assert.Equal(t, 1, p.Timeline[0].Year)
	assertDecimal(t, "60000", p.Timeline[0].CumulativeEarnings)
	assertDecimal(t, "-35000", p.Timeline[0].NetValue)

	assertDecimal(t, "63000", p.Timeline[1].Earnings)
	assertDecimal(t, "123000", p.Timeline[1].CumulativeEarnings)
	assertDecimal(t, "28000", p.Timeline[1].NetValue)

	assert.Equal(t, 2, p.Result.BreakEvenYear)
	assert.Equal(t, 2, p.Result.PaybackPeriod)
	assert.True(t, p.Result.BreakEvenReached())

	// Final year: 60000 * 1.05^29 and the ROI on the 30-year total
	assert.InDelta(t, 246968.1357228949, p.Result.ProjectedFinalSalary.InexactFloat64(), 1e-6)
	assert.InDelta(t, 3986330.8501807944, p.Timeline[29].CumulativeEarnings.InexactFloat64(), 1e-6)

	pct, err := p.Result.ROI()
	require.NoError(t, err)
	assert.InDelta(t, 4096.1377370324, pct.InexactFloat64(), 1e-8)
	assertDecimal(t, p.Timeline[29].NetValue.String(), p.Result.NetProfit)
}

func TestProject_ZeroCosts_ROIUndefined(t *testing.T) {
	// GIVEN: all four cost components are zero
	in := defaultInputs()
	in.TuitionFees = decimal.Zero
	in.TrainingFees = decimal.Zero
	in.LivingExpenses = decimal.Zero
	in.OtherCosts = decimal.Zero

	// WHEN
	p := mustProject(t, in)

	// THEN: ROI is reported as undefined instead of Inf/NaN
	assert.True(t, p.Result.TotalEducationCost.IsZero())
	assert.False(t, p.Result.ROIDefined())
	assert.Nil(t, p.Result.ROIPercentage)

	_, err := p.Result.ROI()
	assert.ErrorIs(t, err, roi.ErrUndefinedROI)

	// Nothing to pay back: break-even is immediate
	assert.Equal(t, 1, p.Result.BreakEvenYear)
}

func TestProject_NoSalary_NeverBreaksEven(t *testing.T) {
	// GIVEN: costs but no earnings at all
	in := defaultInputs()
	in.StartingSalary = decimal.Zero
	in.CareerLength = 12

	// WHEN
	p := mustProject(t, in)

	// THEN: net value stays at -totalCost and break-even is the sentinel
	assert.Equal(t, roi.NotReached, p.Result.BreakEvenYear)
	assert.Equal(t, roi.NoPayback, p.Result.PaybackPeriod)
	assert.False(t, p.Result.BreakEvenReached())
	for _, row := range p.Timeline {
		assert.Truef(t, row.NetValue.Equal(money(-95000)), "year %d: net value %s", row.Year, row.NetValue)
	}

	pct, err := p.Result.ROI()
	require.NoError(t, err)
	assertDecimal(t, "-100", pct)
}

func TestProject_SingleYear(t *testing.T) {
	in := defaultInputs()
	in.CareerLength = 1

	p := mustProject(t, in)

	require.Len(t, p.Timeline, 1)
	assertDecimal(t, "60000", p.Result.ProjectedFinalSalary)
	assert.Equal(t, roi.NotReached, p.Result.BreakEvenYear)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestProject_Deterministic(t *testing.T) {
	in := defaultInputs()
	in.AnnualGrowthRate = decimal.RequireFromString("3.75")

	first := mustProject(t, in)
	second := mustProject(t, in)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("projection differs between calls (-first +second):\n%s", diff)
	}
}

func TestProject_ZeroGrowth_EarningsExact(t *testing.T) {
	in := defaultInputs()
	in.AnnualGrowthRate = decimal.Zero
	in.StartingSalary = decimal.RequireFromString("41234.57")

	p := mustProject(t, in)

	for _, row := range p.Timeline {
		want := in.StartingSalary.Mul(decimal.NewFromInt(int64(row.Year)))
		assert.True(t, want.Equal(row.CumulativeEarnings), "year %d: want %s, got %s", row.Year, want, row.CumulativeEarnings)
	}
}

func TestProject_TimelineInvariants(t *testing.T) {
	cases := []struct {
		name string
		in   roi.Inputs
	}{
		{"defaults", defaultInputs()},
		{"slow growth", func() roi.Inputs {
			in := defaultInputs()
			in.AnnualGrowthRate = decimal.RequireFromString("0.5")
			in.StartingSalary = money(9000)
			return in
		}()},
		{"expensive medicine", func() roi.Inputs {
			in := defaultInputs()
			in.TuitionFees = money(400000)
			in.StartingSalary = money(45000)
			in.AnnualGrowthRate = money(8)
			in.CareerLength = 40
			return in
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustProject(t, tc.in)
			total := tc.in.TotalEducationCost()

			require.Len(t, p.Timeline, tc.in.CareerLength)
			for i, row := range p.Timeline {
				assert.Equal(t, i+1, row.Year)
				assert.True(t, row.CumulativeCosts.Equal(total), "cumulative cost must stay constant")
				assert.True(t, row.NetValue.Equal(row.CumulativeEarnings.Sub(total)))
				if i > 0 {
					assert.True(t, row.CumulativeEarnings.GreaterThan(p.Timeline[i-1].CumulativeEarnings),
						"cumulative earnings must increase in year %d", row.Year)
				}
			}

			// Break-even correctness
			y := p.Result.BreakEvenYear
			for _, row := range p.Timeline {
				switch {
				case y == roi.NotReached || row.Year < y:
					assert.True(t, row.NetValue.IsNegative(), "year %d should be below break-even", row.Year)
				case row.Year == y:
					assert.False(t, row.NetValue.IsNegative())
				}
			}

			last := p.Timeline[len(p.Timeline)-1]
			assert.True(t, p.Result.ProjectedFinalSalary.Equal(last.Earnings))
		})
	}
}

func TestProject_CostBreakdownPassthrough(t *testing.T) {
	p := mustProject(t, defaultInputs())

	want := []struct {
		id    roi.CostCategoryID
		label string
		value string
	}{
		{roi.CategoryTuition, "Tuition Fees", "50000"},
		{roi.CategoryTraining, "Training Fees", "10000"},
		{roi.CategoryLiving, "Living Expenses", "30000"},
		{roi.CategoryOther, "Other Costs", "5000"},
	}
	require.Len(t, p.Result.CostBreakdown, len(want))
	for i, w := range want {
		got := p.Result.CostBreakdown[i]
		assert.Equal(t, w.id, got.ID)
		assert.Equal(t, w.label, got.Label)
		assertDecimal(t, w.value, got.Value)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestProject_RejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*roi.Inputs)
		field  string
		code   string
	}{
		{"zero career", func(in *roi.Inputs) { in.CareerLength = 0 }, roi.FieldCareerLength, roi.CodeNotPositive},
		{"negative career", func(in *roi.Inputs) { in.CareerLength = -3 }, roi.FieldCareerLength, roi.CodeNotPositive},
		{"career too long", func(in *roi.Inputs) { in.CareerLength = roi.MaxCareerLength + 1 }, roi.FieldCareerLength, roi.CodeOutOfRange},
		{"negative tuition", func(in *roi.Inputs) { in.TuitionFees = money(-1) }, roi.FieldTuitionFees, roi.CodeNegative},
		{"negative salary", func(in *roi.Inputs) { in.StartingSalary = money(-60000) }, roi.FieldStartingSalary, roi.CodeNegative},
		{"negative growth", func(in *roi.Inputs) { in.AnnualGrowthRate = money(-2) }, roi.FieldAnnualGrowthRate, roi.CodeNegative},
		{"growth too high", func(in *roi.Inputs) { in.AnnualGrowthRate = money(250) }, roi.FieldAnnualGrowthRate, roi.CodeOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := defaultInputs()
			tc.mutate(&in)

			_, err := roi.Project(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, roi.ErrInvalidInput)
			assert.True(t, roi.IsClientError(err))

			var invalid *roi.InvalidInputError
			require.True(t, errors.As(err, &invalid))
			require.Len(t, invalid.Issues, 1)
			assert.Equal(t, tc.field, invalid.Issues[0].Field)
			assert.Equal(t, tc.code, invalid.Issues[0].Code)
		})
	}
}

func TestProject_AcceptsLargestInputs(t *testing.T) {
	// GIVEN: the largest growth rate and career length that validate
	in := defaultInputs()
	in.AnnualGrowthRate = roi.MaxGrowthRate
	in.CareerLength = roi.MaxCareerLength

	// WHEN: projecting
	proj, err := roi.Project(in)

	// THEN: salary doubles every year, exactly
	require.NoError(t, err)
	require.Len(t, proj.Timeline, roi.MaxCareerLength)
	assertDecimal(t, "38029518006846882044901096161280000", proj.Result.ProjectedFinalSalary)
	assert.Equal(t, 2, proj.Result.BreakEvenYear)
}

func TestValidate_ReportsEveryIssue(t *testing.T) {
	in := defaultInputs()
	in.TuitionFees = money(-1)
	in.OtherCosts = money(-1)
	in.CareerLength = 0

	err := roi.Validate(in)

	var invalid *roi.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	fields := make([]string, len(invalid.Issues))
	for i, issue := range invalid.Issues {
		fields[i] = issue.Field
	}
	assert.Equal(t, []string{roi.FieldTuitionFees, roi.FieldOtherCosts, roi.FieldCareerLength}, fields)
	assert.Contains(t, err.Error(), "career_length must be a positive number of years")
}

func TestFloat64Inputs_Decimal(t *testing.T) {
	f := roi.Float64Inputs{
		TuitionFees:      50000,
		TrainingFees:     10000,
		LivingExpenses:   30000,
		OtherCosts:       5000,
		StartingSalary:   60000,
		AnnualGrowthRate: 5,
		CareerLength:     30,
	}

	in, err := f.Decimal()
	require.NoError(t, err)
	if diff := cmp.Diff(defaultInputs(), in); diff != "" {
		t.Errorf("conversion mismatch (-want +got):\n%s", diff)
	}
}

func TestFloat64Inputs_Decimal_RejectsNonFinite(t *testing.T) {
	f := roi.Float64Inputs{
		TuitionFees:    math.NaN(),
		StartingSalary: math.Inf(1),
		CareerLength:   10,
	}

	_, err := f.Decimal()

	var invalid *roi.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	require.Len(t, invalid.Issues, 2)
	assert.Equal(t, roi.FieldTuitionFees, invalid.Issues[0].Field)
	assert.Equal(t, roi.CodeNotFinite, invalid.Issues[0].Code)
	assert.Equal(t, roi.FieldStartingSalary, invalid.Issues[1].Field)
}
