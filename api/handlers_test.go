/*
handlers_test.go - HTTP tests for the API handlers

Tests run the full chi router against an in-memory SQLite store:
- Projection and comparison
- Saved plan CRUD and projection of saved plans
- Preset loading
- Quiz, advisor and session endpoints per role
*/
package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/careerpath/api"
	"github.com/warp/careerpath/store/sqlite"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testServer struct {
	t       *testing.T
	handler *api.Handler
	router  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := api.NewHandler(store, zap.NewNop())
	return &testServer{t: t, handler: h, router: api.NewRouter(h, api.RouterOptions{})}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const defaultInputs = `{
	"tuition_fees": 50000,
	"training_fees": 10000,
	"living_expenses": 30000,
	"other_costs": 5000,
	"starting_salary": 60000,
	"annual_growth_rate": 5,
	"career_length": 30
}`

// =============================================================================
// PROJECTION
// =============================================================================

func TestProjectROI_Defaults(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/roi/project", defaultInputs)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p := decode[api.ProjectionDTO](t, rec)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, 95000.0, p.TotalEducationCost)
	assert.Equal(t, 2, p.BreakEvenYear)
	assert.True(t, p.BreakEvenReached)
	assert.Equal(t, 2, p.PaybackPeriod)
	require.NotNil(t, p.ROIPercentage)
	assert.InDelta(t, 4096.1377370324, *p.ROIPercentage, 1e-6)
	assert.InDelta(t, 246968.1357228949, p.ProjectedFinalSalary, 1e-6)
	require.Len(t, p.Timeline, 30)
	assert.Equal(t, 1, p.Timeline[0].Year)
	assert.Equal(t, 60000.0, p.Timeline[0].Earnings)
	assert.Equal(t, -35000.0, p.Timeline[0].NetValue)
	require.Len(t, p.CostBreakdown, 4)
	assert.Equal(t, "Tuition Fees", p.CostBreakdown[0].Label)
}

func TestProjectROI_CareerLengthDefaults(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/roi/project", `{"starting_salary": 1000, "currency": "inr"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p := decode[api.ProjectionDTO](t, rec)
	assert.Equal(t, "INR", p.Currency)
	assert.Len(t, p.Timeline, 30)
}

func TestProjectROI_ZeroCostHasNullROI(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/roi/project", `{"starting_salary": 1000, "career_length": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	raw := decode[map[string]any](t, rec)
	v, present := raw["roi_percentage"]
	assert.True(t, present, "roi_percentage is always present")
	assert.Nil(t, v)
	assert.EqualValues(t, 1, raw["break_even_year"])
}

func TestProjectROI_NeverBreaksEven(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/roi/project", `{"tuition_fees": 100000, "starting_salary": 10000, "career_length": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	p := decode[api.ProjectionDTO](t, rec)
	assert.Equal(t, 0, p.BreakEvenYear)
	assert.False(t, p.BreakEvenReached)
	assert.Equal(t, -1, p.PaybackPeriod)
	require.NotNil(t, p.ROIPercentage)
	assert.InDelta(t, -50.0, *p.ROIPercentage, 1e-9)
}

func TestProjectROI_InvalidInput(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/roi/project", `{"tuition_fees": -1, "career_length": 0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[api.ErrorResponse](t, rec)
	assert.Equal(t, "invalid_input", resp.Code)
	require.Len(t, resp.Issues, 2)
	assert.Equal(t, "tuition_fees", resp.Issues[0].Field)
	assert.Equal(t, "career_length", resp.Issues[1].Field)
}

func TestProjectROI_BadRequests(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/roi/project", `{not json`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/roi/project", `{"currency": "XYZ"}`).Code)
}

func TestCompareROI(t *testing.T) {
	// GIVEN: one saved preset and one inline plan
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/presets/load", `{"preset_id": "vocational"}`).Code)

	body := `{
		"plan_ids": ["vocational"],
		"plans": [{"name": "Gap year", "inputs": {"starting_salary": 20000, "career_length": 10}}]
	}`

	// WHEN: comparing
	rec := s.do(http.MethodPost, "/api/roi/compare", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// THEN: the plan with a defined ROI ranks first, the free plan last
	ranked := decode[[]api.RankedPlanDTO](t, rec)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Vocational Training", ranked[0].Name)
	assert.Equal(t, "Gap year", ranked[1].Name)
	assert.Nil(t, ranked[1].Projection.ROIPercentage)
}

func TestCompareROI_Errors(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/roi/compare", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/roi/compare", `{"plan_ids": ["ghost"]}`).Code)

	rec := s.do(http.MethodPost, "/api/roi/compare", `{"plans": [{"name": "bad", "inputs": {"career_length": -3}}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", decode[api.ErrorResponse](t, rec).Code)

	rec = s.do(http.MethodPost, "/api/roi/compare", `{"plans": [{"inputs": {}}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_name", decode[api.ErrorResponse](t, rec).Code)
}

// =============================================================================
// PLANS
// =============================================================================

func TestPlans_Lifecycle(t *testing.T) {
	s := newTestServer(t)

	// Create without id
	rec := s.do(http.MethodPost, "/api/plans", `{"name": "Nursing", "category": "degree", "currency": "gbp",
		"inputs": {"tuition_fees": 27000, "living_expenses": 30000, "starting_salary": 28000, "annual_growth_rate": 3}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[api.PlanDTO](t, rec)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, "GBP", created.Config.Currency)
	require.NotNil(t, created.Config.Inputs.CareerLength)
	assert.Equal(t, 30, *created.Config.Inputs.CareerLength)

	// Get
	rec = s.do(http.MethodGet, "/api/plans/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Nursing", decode[api.PlanDTO](t, rec).Name)

	// Projection uses the plan currency unless overridden
	rec = s.do(http.MethodGet, "/api/plans/"+created.ID+"/projection", "")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[api.ProjectionDTO](t, rec)
	assert.Equal(t, "GBP", p.Currency)
	assert.Equal(t, 57000.0, p.TotalEducationCost)

	rec = s.do(http.MethodGet, "/api/plans/"+created.ID+"/projection?currency=EUR", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EUR", decode[api.ProjectionDTO](t, rec).Currency)

	// Replace bumps the version
	rec = s.do(http.MethodPost, "/api/plans", `{"id": "`+created.ID+`", "name": "Nursing (part-time)", "inputs": {"starting_salary": 1}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, decode[api.PlanDTO](t, rec).Version)

	// List
	rec = s.do(http.MethodGet, "/api/plans", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.PlanDTO](t, rec), 1)

	// Delete
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/plans/"+created.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/plans/"+created.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/plans/"+created.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/plans/"+created.ID+"/projection", "").Code)
}

func TestPlans_CreateInvalid(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/plans", `{"name": "x", "inputs": {"annual_growth_rate": 500}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[api.ErrorResponse](t, rec)
	require.Len(t, resp.Issues, 1)
	assert.Equal(t, "annual_growth_rate", resp.Issues[0].Field)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/plans", `{"name": "x", "currency": "BTC"}`).Code)

	rec = s.do(http.MethodGet, "/api/plans", "")
	assert.Equal(t, "[]\n", rec.Body.String())
}

// =============================================================================
// PRESETS
// =============================================================================

func TestPresets_LoadAndCurrent(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/presets/current", "")
	assert.Equal(t, "null\n", rec.Body.String())

	rec = s.do(http.MethodGet, "/api/presets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.PresetDTO](t, rec), 4)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/presets/load", `{"preset_id": "all"}`).Code)
	assert.Len(t, decode[[]api.PlanDTO](t, s.do(http.MethodGet, "/api/plans", "")), 4)

	// Loading one preset replaces the others
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/presets/load", `{"preset_id": "medicine"}`).Code)
	plans := decode[[]api.PlanDTO](t, s.do(http.MethodGet, "/api/plans", ""))
	require.Len(t, plans, 1)
	assert.Equal(t, "medicine", plans[0].ID)

	current := decode[api.PresetDTO](t, s.do(http.MethodGet, "/api/presets/current", ""))
	assert.Equal(t, "Medical Degree", current.Name)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/presets/load", `{"preset_id": "astronaut"}`).Code)
}

func TestSeedPresets_OnlyWhenEmpty(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, s.handler.SeedPresets(ctx))
	assert.Len(t, decode[[]api.PlanDTO](t, s.do(http.MethodGet, "/api/plans", "")), 4)

	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/plans/medicine", "").Code)
	require.NoError(t, s.handler.SeedPresets(ctx))
	assert.Len(t, decode[[]api.PlanDTO](t, s.do(http.MethodGet, "/api/plans", "")), 3)
}

func TestResetDatabase(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/presets/load", `{"preset_id": "all"}`).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/roles/parent/session/theme", `"dark"`).Code)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/presets/reset", "").Code)

	assert.Empty(t, decode[[]api.PlanDTO](t, s.do(http.MethodGet, "/api/plans", "")))
	sess := decode[api.SessionDTO](t, s.do(http.MethodGet, "/api/roles/parent/session", ""))
	assert.Empty(t, sess.Values)
	assert.Equal(t, "null\n", s.do(http.MethodGet, "/api/presets/current", "").Body.String())
}
