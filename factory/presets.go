package factory

import (
	json "github.com/goccy/go-json"
)

// =============================================================================
// PRESET PLAN DEFINITIONS
// =============================================================================

// Preset is a built-in plan definition.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	JSON        string `json:"-"`
}

// Presets returns the built-in plans in display order.
func Presets() []Preset {
	return []Preset{
		{
			ID:          "calculator-defaults",
			Name:        "Calculator Defaults",
			Description: "The parent dashboard's starting values: 95k total cost, 60k salary growing 5%",
			Category:    "degree",
			JSON:        DefaultPlanJSON("calculator-defaults", "Calculator Defaults"),
		},
		{
			ID:          "engineering",
			Name:        "Engineering Degree",
			Description: "Four-year engineering degree with campus housing",
			Category:    "degree",
			JSON:        EngineeringDegreeJSON("engineering", "Engineering Degree"),
		},
		{
			ID:          "medicine",
			Name:        "Medical Degree",
			Description: "Long, expensive training with a high salary and a long career",
			Category:    "degree",
			JSON:        MedicalDegreeJSON("medicine", "Medical Degree"),
		},
		{
			ID:          "vocational",
			Name:        "Vocational Training",
			Description: "Short certificate programme, modest salary, fast payback",
			Category:    "training",
			JSON:        VocationalTrainingJSON("vocational", "Vocational Training"),
		},
	}
}

// DefaultPlanJSON returns JSON for the calculator's default inputs.
func DefaultPlanJSON(id, name string) string {
	return planJSON(id, name, "degree", map[string]interface{}{
		"tuition_fees":       50000,
		"training_fees":      10000,
		"living_expenses":    30000,
		"other_costs":        5000,
		"starting_salary":    60000,
		"annual_growth_rate": 5,
		"career_length":      30,
	})
}

// EngineeringDegreeJSON returns JSON for a four-year engineering degree.
func EngineeringDegreeJSON(id, name string) string {
	return planJSON(id, name, "degree", map[string]interface{}{
		"tuition_fees":       80000,
		"training_fees":      6000,
		"living_expenses":    40000,
		"other_costs":        8000,
		"starting_salary":    72000,
		"annual_growth_rate": 6,
		"career_length":      35,
	})
}

// MedicalDegreeJSON returns JSON for a medical degree with residency.
func MedicalDegreeJSON(id, name string) string {
	return planJSON(id, name, "degree", map[string]interface{}{
		"tuition_fees":       240000,
		"training_fees":      30000,
		"living_expenses":    90000,
		"other_costs":        15000,
		"starting_salary":    95000,
		"annual_growth_rate": 7,
		"career_length":      32,
	})
}

// VocationalTrainingJSON returns JSON for a short vocational programme.
func VocationalTrainingJSON(id, name string) string {
	return planJSON(id, name, "training", map[string]interface{}{
		"tuition_fees":       8000,
		"training_fees":      4000,
		"living_expenses":    6000,
		"other_costs":        1000,
		"starting_salary":    38000,
		"annual_growth_rate": 3,
		"career_length":      40,
	})
}

func planJSON(id, name, category string, inputs map[string]interface{}) string {
	pj := map[string]interface{}{
		"id":       id,
		"name":     name,
		"category": category,
		"inputs":   inputs,
	}
	b, _ := json.MarshalIndent(pj, "", "  ")
	return string(b)
}
