package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warp/careerpath/cli"
	"github.com/warp/careerpath/currency"
	"github.com/warp/careerpath/factory"
	"github.com/warp/careerpath/roi"
)

// =============================================================================
// PROJECT
// =============================================================================

type projectOptions struct {
	preset   string
	file     string
	currency string
	every    int
	inputs   factory.InputsJSON
	years    int
}

func newProjectCmd(root *rootOptions) *cobra.Command {
	opts := &projectOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the ROI of one plan",
		Long: `Project the ROI of one plan and print the report.

The plan comes from --preset, from a JSON plan --file, or from the input flags.
Input flags given together with --preset or --file override the plan's values.`,
		Example: `  careerpath project --preset engineering
  careerpath project --tuition 40000 --salary 55000 --growth 4 --years 35 --every 5
  careerpath project --file plan.json --currency EUR`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProject(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.preset, "preset", "", "Preset plan id (see 'careerpath presets')")
	f.StringVar(&opts.file, "file", "", "Path to a JSON plan")
	f.StringVar(&opts.currency, "currency", "", "Display currency code (overrides config)")
	f.IntVar(&opts.every, "every", 5, "Print every Nth year of the timeline (0 hides it)")
	f.Float64Var(&opts.inputs.TuitionFees, "tuition", 0, "Tuition fees")
	f.Float64Var(&opts.inputs.TrainingFees, "training", 0, "Training fees")
	f.Float64Var(&opts.inputs.LivingExpenses, "living", 0, "Living expenses")
	f.Float64Var(&opts.inputs.OtherCosts, "other", 0, "Other costs")
	f.Float64Var(&opts.inputs.StartingSalary, "salary", 0, "Starting salary")
	f.Float64Var(&opts.inputs.AnnualGrowthRate, "growth", 0, "Annual salary growth in percent")
	f.IntVar(&opts.years, "years", factory.DefaultCareerLength, "Career length in years")
	cmd.MarkFlagsMutuallyExclusive("preset", "file")
	return cmd
}

func runProject(cmd *cobra.Command, root *rootOptions, opts *projectOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	pf := factory.NewPlanFactory()
	var pj factory.PlanJSON
	switch {
	case opts.preset != "":
		preset, ok := findPreset(opts.preset)
		if !ok {
			return fmt.Errorf("unknown preset %q", opts.preset)
		}
		plan, err := pf.ParsePlan(preset.JSON)
		if err != nil {
			return err
		}
		pj = pf.ToJSON(plan)
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("read plan file: %w", err)
		}
		plan, err := pf.ParsePlan(string(data))
		if err != nil {
			return err
		}
		pj = pf.ToJSON(plan)
	default:
		pj = factory.PlanJSON{Name: "Custom plan"}
	}
	applyInputFlags(cmd, opts, &pj.Inputs)

	plan, err := pf.FromJSON(pj)
	if err != nil {
		return describeInputError(err)
	}

	proj, err := roi.Project(plan.Inputs)
	if err != nil {
		return describeInputError(err)
	}

	code, err := displayCurrency(opts.currency, plan.Currency, cfg.Display.Currency, cmd.Flags().Changed("currency"))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderProjection(plan.Name, proj, cli.ReportOptions{
		Currency: code,
		Every:    opts.every,
	}))
	return nil
}

// applyInputFlags copies the input flags the user actually set.
func applyInputFlags(cmd *cobra.Command, opts *projectOptions, in *factory.InputsJSON) {
	flags := cmd.Flags()
	set := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("tuition", &in.TuitionFees, opts.inputs.TuitionFees)
	set("training", &in.TrainingFees, opts.inputs.TrainingFees)
	set("living", &in.LivingExpenses, opts.inputs.LivingExpenses)
	set("other", &in.OtherCosts, opts.inputs.OtherCosts)
	set("salary", &in.StartingSalary, opts.inputs.StartingSalary)
	set("growth", &in.AnnualGrowthRate, opts.inputs.AnnualGrowthRate)
	if flags.Changed("years") || in.CareerLength == nil {
		years := opts.years
		in.CareerLength = &years
	}
}

// displayCurrency picks the flag, then the plan's own currency, then the
// configured default.
func displayCurrency(flag, plan, configured string, flagSet bool) (string, error) {
	code := configured
	if plan != "" && plan != currency.Default {
		code = plan
	}
	if flagSet {
		code = flag
	}
	c, ok := currency.Lookup(code)
	if !ok {
		return "", fmt.Errorf("unsupported currency %q", code)
	}
	return c.Code, nil
}

// describeInputError flattens validation issues into one readable error.
func describeInputError(err error) error {
	var inputErr *roi.InvalidInputError
	if !errors.As(err, &inputErr) {
		return err
	}
	msg := "invalid plan:"
	for _, issue := range inputErr.Issues {
		msg += "\n  - " + issue.Message
	}
	return errors.New(msg)
}

func findPreset(id string) (factory.Preset, bool) {
	for _, p := range factory.Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return factory.Preset{}, false
}

// =============================================================================
// COMPARE
// =============================================================================

type compareOptions struct {
	files    []string
	currency string
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank plans by ROI",
		Long:  "Rank the given plan files by ROI. Without --file every preset is ranked.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, root, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.files, "file", nil, "JSON plan files to compare (repeatable)")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "Display currency code (overrides config)")
	return cmd
}

func runCompare(cmd *cobra.Command, root *rootOptions, opts *compareOptions) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	pf := factory.NewPlanFactory()
	var plans []roi.Plan
	if len(opts.files) == 0 {
		for _, preset := range factory.Presets() {
			plan, err := pf.ParsePlan(preset.JSON)
			if err != nil {
				return fmt.Errorf("preset %s: %w", preset.ID, err)
			}
			plans = append(plans, plan.Plan)
		}
	}
	for _, path := range opts.files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read plan file: %w", err)
		}
		plan, err := pf.ParsePlan(string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", path, describeInputError(err))
		}
		plans = append(plans, plan.Plan)
	}

	ranked, err := roi.Compare(plans)
	if err != nil {
		return describeInputError(err)
	}

	code, err := displayCurrency(opts.currency, "", cfg.Display.Currency, cmd.Flags().Changed("currency"))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderComparison(ranked, code))
	return nil
}

// =============================================================================
// PRESETS
// =============================================================================

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderPresets(factory.Presets()))
			return nil
		},
	}
}
