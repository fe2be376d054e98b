/*
errors.go - Error types for the ROI projector

PURPOSE:
  Keeps every error the projector can return in one place.

ERROR CATEGORIES:
  1. Invalid input - rejected before any computation (ErrInvalidInput)
  2. Undefined ROI - total cost is zero, reported through Result.ROI()
     (ErrUndefinedROI); Project itself still succeeds

  Not reaching break-even is a normal outcome and has no error.

USAGE:
  _, err := roi.Project(in)
  var invalid *roi.InvalidInputError
  if errors.As(err, &invalid) {
      for _, issue := range invalid.Issues {
          fmt.Println(issue.Field, issue.Message)
      }
  }

SEE ALSO:
  - projector.go: Validate and Project
*/
package roi

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrInvalidInput is returned when an input set fails validation.
	ErrInvalidInput = errors.New("invalid projection input")

	// ErrUndefinedROI is returned by Result.ROI when the total education
	// cost is zero.
	ErrUndefinedROI = errors.New("roi undefined: total education cost is zero")
)

// Field names used in Issue.Field. They match the JSON names of Float64Inputs.
const (
	FieldTuitionFees      = "tuition_fees"
	FieldTrainingFees     = "training_fees"
	FieldLivingExpenses   = "living_expenses"
	FieldOtherCosts       = "other_costs"
	FieldStartingSalary   = "starting_salary"
	FieldAnnualGrowthRate = "annual_growth_rate"
	FieldCareerLength     = "career_length"
)

// Issue codes.
const (
	CodeNegative    = "negative"
	CodeNotFinite   = "not_finite"
	CodeNotPositive = "not_positive"
	CodeOutOfRange  = "out_of_range"
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// Issue describes one offending input field.
type Issue struct {
	Field   string
	Code    string
	Message string
}

// InvalidInputError lists every field that failed validation.
type InvalidInputError struct {
	Issues []Issue
}

func (e *InvalidInputError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Message
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
