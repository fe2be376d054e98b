/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract. Money leaves
  the API as JSON numbers; inside the engine it stays decimal.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Projection:
    ProjectRequest, ProjectionDTO, YearlyProjectionDTO, CostCategoryDTO

  Comparison:
    CompareRequest, RankedPlanDTO

  Plans:
    PlanDTO (wraps factory.PlanJSON), PresetDTO

  Roles:
    QuizSubmitRequest, QuizResultDTO, AdvisorMessageRequest,
    AdvisorExchangeDTO, SessionDTO

UNDEFINED VALUES:
  roi_percentage is null when the total education cost is zero.
  break_even_year is 0 and payback_period is -1 when the plan never breaks even.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/plan.go: PlanJSON type
*/
package api

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/warp/careerpath/advisor"
	"github.com/warp/careerpath/factory"
	"github.com/warp/careerpath/quiz"
	"github.com/warp/careerpath/roi"
)

// =============================================================================
// PROJECTION
// =============================================================================

// ProjectRequest is the body of POST /api/roi/project.
type ProjectRequest struct {
	factory.InputsJSON
	Currency string `json:"currency,omitempty"`
}

// CostCategoryDTO is one slice of the education cost.
type CostCategoryDTO struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// YearlyProjectionDTO is one timeline row.
type YearlyProjectionDTO struct {
	Year               int     `json:"year"`
	Earnings           float64 `json:"earnings"`
	CumulativeCosts    float64 `json:"cumulative_costs"`
	CumulativeEarnings float64 `json:"cumulative_earnings"`
	NetValue           float64 `json:"net_value"`
}

// ProjectionDTO is a projection result with its timeline.
type ProjectionDTO struct {
	Currency             string                `json:"currency"`
	TotalEducationCost   float64               `json:"total_education_cost"`
	BreakEvenYear        int                   `json:"break_even_year"`
	BreakEvenReached     bool                  `json:"break_even_reached"`
	PaybackPeriod        int                   `json:"payback_period"`
	NetProfit            float64               `json:"net_profit"`
	ROIPercentage        *float64              `json:"roi_percentage"`
	ProjectedFinalSalary float64               `json:"projected_final_salary"`
	CostBreakdown        []CostCategoryDTO     `json:"cost_breakdown"`
	Timeline             []YearlyProjectionDTO `json:"timeline"`
}

// =============================================================================
// COMPARISON
// =============================================================================

// CompareRequest is the body of POST /api/roi/compare. Plans may be given
// inline, by saved plan ID, or both.
type CompareRequest struct {
	Plans    []factory.PlanJSON `json:"plans"`
	PlanIDs  []string           `json:"plan_ids"`
	Currency string             `json:"currency,omitempty"`
}

// RankedPlanDTO is one entry of a comparison.
type RankedPlanDTO struct {
	Rank        int           `json:"rank"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Projection  ProjectionDTO `json:"projection"`
}

// =============================================================================
// PLANS AND PRESETS
// =============================================================================

// PlanDTO represents a saved plan in API responses.
type PlanDTO struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	Config    factory.PlanJSON `json:"config"`
	Version   int              `json:"version"`
	CreatedAt string           `json:"created_at,omitempty"`
	UpdatedAt string           `json:"updated_at,omitempty"`
}

// PresetDTO describes a built-in plan.
type PresetDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadPresetRequest is the body of POST /api/presets/load.
type LoadPresetRequest struct {
	PresetID string `json:"preset_id"`
}

// =============================================================================
// ROLES
// =============================================================================

// QuizSubmitRequest maps question IDs to option IDs.
type QuizSubmitRequest struct {
	Answers map[int]string `json:"answers"`
}

// QuizResultDTO is a stored quiz result.
type QuizResultDTO struct {
	ID        string         `json:"id"`
	QuizID    string         `json:"quiz_id"`
	Role      string         `json:"role"`
	Score     int            `json:"score"`
	Answers   map[int]string `json:"answers"`
	BestTrait string         `json:"best_trait"`
	Outcome   *quiz.Outcome  `json:"outcome,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// AdvisorMessageRequest is one user question.
type AdvisorMessageRequest struct {
	Content string `json:"content"`
}

// AdvisorExchangeDTO is a question with its reply.
type AdvisorExchangeDTO struct {
	Question advisor.Message `json:"question"`
	Reply    advisor.Message `json:"reply"`
}

// SessionDTO is the stored state of one role.
type SessionDTO struct {
	Role   string                     `json:"role"`
	Values map[string]json.RawMessage `json:"values"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string     `json:"error"`
	Code    string     `json:"code,omitempty"`
	Details any        `json:"details,omitempty"`
	Issues  []IssueDTO `json:"issues,omitempty"`
}

// IssueDTO is one invalid input field.
type IssueDTO struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toProjectionDTO(p roi.Projection, currencyCode string) ProjectionDTO {
	res := p.Result
	dto := ProjectionDTO{
		Currency:             currencyCode,
		TotalEducationCost:   res.TotalEducationCost.InexactFloat64(),
		BreakEvenYear:        res.BreakEvenYear,
		BreakEvenReached:     res.BreakEvenReached(),
		PaybackPeriod:        res.PaybackPeriod,
		NetProfit:            res.NetProfit.InexactFloat64(),
		ProjectedFinalSalary: res.ProjectedFinalSalary.InexactFloat64(),
		CostBreakdown:        make([]CostCategoryDTO, len(res.CostBreakdown)),
		Timeline:             make([]YearlyProjectionDTO, len(p.Timeline)),
	}
	if pct, err := res.ROI(); err == nil {
		v := pct.InexactFloat64()
		dto.ROIPercentage = &v
	}
	for i, c := range res.CostBreakdown {
		dto.CostBreakdown[i] = CostCategoryDTO{ID: string(c.ID), Label: c.Label, Value: c.Value.InexactFloat64()}
	}
	for i, y := range p.Timeline {
		dto.Timeline[i] = YearlyProjectionDTO{
			Year:               y.Year,
			Earnings:           y.Earnings.InexactFloat64(),
			CumulativeCosts:    y.CumulativeCosts.InexactFloat64(),
			CumulativeEarnings: y.CumulativeEarnings.InexactFloat64(),
			NetValue:           y.NetValue.InexactFloat64(),
		}
	}
	return dto
}

func toIssueDTOs(issues []roi.Issue) []IssueDTO {
	out := make([]IssueDTO, len(issues))
	for i, is := range issues {
		out[i] = IssueDTO{Field: is.Field, Code: is.Code, Message: is.Message}
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
