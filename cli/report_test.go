package cli_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/careerpath/cli"
	"github.com/warp/careerpath/factory"
	"github.com/warp/careerpath/roi"
)

func defaultProjection(t *testing.T) roi.Projection {
	t.Helper()
	plan, err := factory.NewPlanFactory().ParsePlan(factory.DefaultPlanJSON("d", "Defaults"))
	require.NoError(t, err)
	p, err := roi.Project(plan.Inputs)
	require.NoError(t, err)
	return p
}

func TestRenderTable_AlignsMultiByteCells(t *testing.T) {
	out := cli.RenderTable(cli.Table{
		Headers: []string{"Item", "Amount"},
		Rows:    [][]string{{"fees", "₹1,000"}, {"---"}, {"total", "$10"}},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	for _, l := range lines[1:] {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(l)), "every line has the same width: %q", l)
	}
	assert.Contains(t, out, "₹1,000")
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Equal(t, "", cli.RenderTable(cli.Table{}))
}

func TestRenderProjection_Summary(t *testing.T) {
	out := cli.RenderProjection("Calculator Defaults", defaultProjection(t), cli.ReportOptions{Currency: "USD", Every: 10})

	assert.Contains(t, out, "Calculator Defaults")
	assert.Contains(t, out, "$95,000")
	assert.Contains(t, out, "year 2")
	assert.Contains(t, out, "4096.14%")
	assert.Contains(t, out, "Tuition Fees")
	assert.Contains(t, out, "Timeline")
	assert.Contains(t, out, "2 *", "break-even year is marked")
	assert.Contains(t, out, "30")
}

func TestRenderProjection_NoTimelineAndUndefinedROI(t *testing.T) {
	p, err := roi.Project(roi.Inputs{
		StartingSalary: decimal.NewFromInt(1000),
		CareerLength:   3,
	})
	require.NoError(t, err)

	out := cli.RenderProjection("Free", p, cli.ReportOptions{Currency: "EUR"})
	assert.Contains(t, out, "undefined")
	assert.Contains(t, out, "€0")
	assert.NotContains(t, out, "Timeline")
}

func TestRenderProjection_NeverBreaksEven(t *testing.T) {
	p, err := roi.Project(roi.Inputs{
		TuitionFees:    decimal.NewFromInt(100000),
		StartingSalary: decimal.NewFromInt(10000),
		CareerLength:   5,
	})
	require.NoError(t, err)

	out := cli.RenderProjection("Expensive", p, cli.ReportOptions{Currency: "USD"})
	assert.Contains(t, out, "not within career")
	assert.Contains(t, out, "-$50,000")
}

func TestRenderComparison(t *testing.T) {
	f := factory.NewPlanFactory()
	var plans []roi.Plan
	for _, p := range factory.Presets() {
		parsed, err := f.ParsePlan(p.JSON)
		require.NoError(t, err)
		plans = append(plans, parsed.Plan)
	}
	ranked, err := roi.Compare(plans)
	require.NoError(t, err)

	out := cli.RenderComparison(ranked, "USD")
	for _, p := range factory.Presets() {
		assert.Contains(t, out, p.Name)
	}
}

func TestRenderPresets(t *testing.T) {
	out := cli.RenderPresets(factory.Presets())
	assert.Contains(t, out, "engineering")
	assert.Contains(t, out, "training")
}
