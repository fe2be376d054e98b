/*
Package factory provides JSON to Go plan conversion.

PURPOSE:
  Converts JSON plan definitions into roi.Plan values. Plans are what users
  save ("Engineering at State U", "Two-year apprenticeship") and what the
  preset catalog ships; the factory is the single place where their JSON
  form is decoded, defaulted and validated.

JSON SCHEMA:
  {
    "id": "engineering",
    "name": "Engineering Degree",
    "description": "Four-year B.Tech with hostel",
    "category": "degree",
    "currency": "USD",
    "inputs": {
      "tuition_fees": 50000,
      "training_fees": 10000,
      "living_expenses": 30000,
      "other_costs": 5000,
      "starting_salary": 60000,
      "annual_growth_rate": 5,
      "career_length": 30
    }
  }

DEFAULTS:
  - Omitted money fields and growth rate are 0
  - Omitted career_length is DefaultCareerLength (30)
  - Omitted category is "custom"
  - Omitted currency is DefaultCurrency ("USD"); the currency only labels
    the amounts, no conversion happens

VALIDATION:
  - name is required
  - inputs go through roi.Float64Inputs.Decimal and roi.Validate, so every
    error from ParsePlan on bad numbers satisfies errors.Is(err, roi.ErrInvalidInput)

USAGE:
  f := factory.NewPlanFactory()
  plan, err := f.ParsePlan(factory.DefaultPlanJSON("default", "Calculator defaults"))
  projection, _ := roi.Project(plan.Inputs)

SEE ALSO:
  - presets.go: Built-in plan definitions
  - roi/types.go: Plan and Inputs
*/
package factory

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/warp/careerpath/roi"
)

// DefaultCareerLength applies when a plan omits career_length.
const DefaultCareerLength = 30

const (
	// CategoryCustom is the category of user-created plans.
	CategoryCustom = "custom"

	// DefaultCurrency labels plans that do not name a currency.
	DefaultCurrency = "USD"
)

// ErrMissingName is returned when a plan has no name.
var ErrMissingName = errors.New("plan name is required")

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PlanJSON is the JSON representation of a plan.
type PlanJSON struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Currency    string     `json:"currency,omitempty"`
	Inputs      InputsJSON `json:"inputs"`
}

// InputsJSON is roi.Float64Inputs with optional career length.
type InputsJSON struct {
	TuitionFees      float64 `json:"tuition_fees"`
	TrainingFees     float64 `json:"training_fees"`
	LivingExpenses   float64 `json:"living_expenses"`
	OtherCosts       float64 `json:"other_costs"`
	StartingSalary   float64 `json:"starting_salary"`
	AnnualGrowthRate float64 `json:"annual_growth_rate"`
	CareerLength     *int    `json:"career_length,omitempty"`
}

// Float64 applies the career length default.
func (ij InputsJSON) Float64() roi.Float64Inputs {
	length := DefaultCareerLength
	if ij.CareerLength != nil {
		length = *ij.CareerLength
	}
	return roi.Float64Inputs{
		TuitionFees:      ij.TuitionFees,
		TrainingFees:     ij.TrainingFees,
		LivingExpenses:   ij.LivingExpenses,
		OtherCosts:       ij.OtherCosts,
		StartingSalary:   ij.StartingSalary,
		AnnualGrowthRate: ij.AnnualGrowthRate,
		CareerLength:     length,
	}
}

// Plan is a decoded plan with its catalog metadata.
type Plan struct {
	ID       string
	Category string
	Currency string
	roi.Plan
}

// =============================================================================
// PLAN FACTORY
// =============================================================================

// PlanFactory converts JSON plans to Go structs.
type PlanFactory struct{}

// NewPlanFactory creates a new plan factory.
func NewPlanFactory() *PlanFactory {
	return &PlanFactory{}
}

// ParsePlan parses a JSON string into a Plan.
func (f *PlanFactory) ParsePlan(jsonStr string) (*Plan, error) {
	var pj PlanJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return nil, fmt.Errorf("failed to parse plan JSON: %w", err)
	}
	return f.FromJSON(pj)
}

// FromJSON validates PlanJSON and converts it to a Plan.
func (f *PlanFactory) FromJSON(pj PlanJSON) (*Plan, error) {
	name := strings.TrimSpace(pj.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	inputs, err := pj.Inputs.Float64().Decimal()
	if err != nil {
		return nil, err
	}
	if err := roi.Validate(inputs); err != nil {
		return nil, err
	}

	category := pj.Category
	if category == "" {
		category = CategoryCustom
	}
	currency := strings.ToUpper(strings.TrimSpace(pj.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	return &Plan{
		ID:       pj.ID,
		Category: category,
		Currency: currency,
		Plan: roi.Plan{
			Name:        name,
			Description: pj.Description,
			Inputs:      inputs,
		},
	}, nil
}

// ToJSON converts a Plan back to PlanJSON.
func (f *PlanFactory) ToJSON(p *Plan) PlanJSON {
	in := p.Inputs
	length := in.CareerLength
	return PlanJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Currency:    p.Currency,
		Inputs: InputsJSON{
			TuitionFees:      in.TuitionFees.InexactFloat64(),
			TrainingFees:     in.TrainingFees.InexactFloat64(),
			LivingExpenses:   in.LivingExpenses.InexactFloat64(),
			OtherCosts:       in.OtherCosts.InexactFloat64(),
			StartingSalary:   in.StartingSalary.InexactFloat64(),
			AnnualGrowthRate: in.AnnualGrowthRate.InexactFloat64(),
			CareerLength:     &length,
		},
	}
}

// Marshal encodes a PlanJSON with indentation, as stored in the database.
func (f *PlanFactory) Marshal(pj PlanJSON) (string, error) {
	b, err := json.MarshalIndent(pj, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode plan JSON: %w", err)
	}
	return string(b), nil
}
