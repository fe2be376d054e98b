package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/careerpath/currency"
	"github.com/warp/careerpath/factory"
	"github.com/warp/careerpath/roi"
)

// ReportOptions controls how much of a projection is printed.
type ReportOptions struct {
	Currency string

	// Print every Nth year of the timeline plus the break-even and final
	// years. Zero or negative hides the timeline.
	Every int
}

// RenderProjection renders the summary, cost breakdown and timeline of one plan.
func RenderProjection(name string, p roi.Projection, opts ReportOptions) string {
	res := p.Result
	money := func(d decimal.Decimal) string { return currency.Format(d, opts.Currency) }

	var b strings.Builder
	b.WriteString(RenderTitle(name))
	b.WriteString("\n\n")

	breakEven := warnStyle.Render("not within career")
	if res.BreakEvenReached() {
		breakEven = "year " + strconv.Itoa(res.BreakEvenYear)
	}

	roiText := mutedStyle.Render("undefined (no education cost)")
	if pct, err := res.ROI(); err == nil {
		roiText = styleSigned(pct.IsNegative(), currency.Percent(pct))
	}

	b.WriteString(RenderKeyValues([][2]string{
		{"Total education cost", money(res.TotalEducationCost)},
		{"Break-even", breakEven},
		{"Net profit", styleSigned(res.NetProfit.IsNegative(), money(res.NetProfit))},
		{"ROI", roiText},
		{"Final-year salary", money(res.ProjectedFinalSalary)},
	}))
	b.WriteString("\n")

	costs := Table{Title: "Cost breakdown", Headers: []string{"Category", "Amount"}}
	for _, c := range res.CostBreakdown {
		costs.Rows = append(costs.Rows, []string{c.Label, money(c.Value)})
	}
	costs.Rows = append(costs.Rows, []string{"---"}, []string{"Total", money(res.TotalEducationCost)})
	b.WriteString(RenderTable(costs))

	if opts.Every > 0 && len(p.Timeline) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderTable(timelineTable(p, opts, money)))
	}

	return b.String()
}

func timelineTable(p roi.Projection, opts ReportOptions, money func(decimal.Decimal) string) Table {
	t := Table{
		Title:   "Timeline",
		Headers: []string{"Year", "Earnings", "Cumulative", "Net value"},
	}
	last := len(p.Timeline)
	for _, row := range p.Timeline {
		show := row.Year == 1 || row.Year%opts.Every == 0 || row.Year == last ||
			row.Year == p.Result.BreakEvenYear
		if !show {
			continue
		}
		year := strconv.Itoa(row.Year)
		if row.Year == p.Result.BreakEvenYear {
			year += " *"
		}
		t.Rows = append(t.Rows, []string{
			year,
			money(row.Earnings),
			money(row.CumulativeEarnings),
			styleSigned(row.NetValue.IsNegative(), money(row.NetValue)),
		})
	}
	return t
}

// RenderComparison renders ranked plans side by side.
func RenderComparison(ranked []roi.Ranked, currencyCode string) string {
	t := Table{
		Title:   "Plan comparison",
		Headers: []string{"#", "Plan", "Cost", "Break-even", "Net profit", "ROI"},
	}
	for _, r := range ranked {
		res := r.Projection.Result
		breakEven := "never"
		if res.BreakEvenReached() {
			breakEven = fmt.Sprintf("year %d", res.BreakEvenYear)
		}
		roiText := "n/a"
		if pct, err := res.ROI(); err == nil {
			roiText = currency.Percent(pct)
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Rank),
			r.Plan.Name,
			currency.Format(res.TotalEducationCost, currencyCode),
			breakEven,
			currency.Format(res.NetProfit, currencyCode),
			roiText,
		})
	}
	return RenderTable(t)
}

// RenderPresets lists the built-in plans.
func RenderPresets(presets []factory.Preset) string {
	t := Table{Title: "Presets", Headers: []string{"ID", "Name", "Category"}}
	for _, p := range presets {
		t.Rows = append(t.Rows, []string{p.ID, p.Name, p.Category})
	}
	return RenderTable(t)
}

func styleSigned(negative bool, s string) string {
	if negative {
		return lossStyle.Render(s)
	}
	return gainStyle.Render(s)
}
