/*
handlers.go - HTTP API handlers for the education ROI projector

PURPOSE:
  Exposes the projector, saved plans and the per-role dashboard state via
  REST API. Handles HTTP request/response, JSON serialization, and
  delegates to domain logic.

ENDPOINTS:
  Projection:
    POST   /api/roi/project                  Project one input set
    POST   /api/roi/compare                  Rank several plans by ROI

  Plans:
    GET    /api/plans                        List saved plans
    POST   /api/plans                        Save a plan (replaces on same id)
    GET    /api/plans/{id}                   Get a saved plan
    GET    /api/plans/{id}/projection        Project a saved plan
    DELETE /api/plans/{id}                   Delete a saved plan

  Presets (presets.go):
    GET    /api/presets                      List built-in plans
    GET    /api/presets/current              Currently loaded preset
    POST   /api/presets/load                 Replace saved plans with a preset
    POST   /api/presets/reset                Clear all data

  Roles (handlers_quiz.go, handlers_roles.go):
    GET    /api/quiz                         Quiz questions
    GET    /api/roles/{role}/quiz            Quiz history
    POST   /api/roles/{role}/quiz            Score and store answers
    GET    /api/roles/{role}/advisor         Advisor conversation
    POST   /api/roles/{role}/advisor/messages Ask the advisor
    DELETE /api/roles/{role}/advisor         Restart the conversation
    GET    /api/roles/{role}/session         Session values
    PUT    /api/roles/{role}/session/{key}   Set a session value
    DELETE /api/roles/{role}/session/{key}   Remove a session value

  Reference:
    GET    /api/currencies                   Display currencies
    GET    /api/health                       Liveness and database check

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access
  - PlanFactory: JSON to Plan conversion
  - Logger: zap logger for server-side failures
  - Cached session contexts and advisor conversations per role

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (with per-field issues)
  - 404: Resource not found
  - 500: Internal errors (logged)

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - presets.go: Preset loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/warp/careerpath/advisor"
	"github.com/warp/careerpath/currency"
	"github.com/warp/careerpath/factory"
	"github.com/warp/careerpath/role"
	"github.com/warp/careerpath/roi"
	"github.com/warp/careerpath/session"
	"github.com/warp/careerpath/store/sqlite"
	"go.uber.org/zap"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       *sqlite.Store
	PlanFactory *factory.PlanFactory
	Logger      *zap.Logger

	mu sync.Mutex

	// One session context and conversation per role, loaded on first use
	sessions      map[role.Role]*session.Context
	conversations map[role.Role]*advisor.Conversation

	// Track currently loaded preset
	currentPreset string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:         store,
		PlanFactory:   factory.NewPlanFactory(),
		Logger:        logger,
		sessions:      make(map[role.Role]*session.Context),
		conversations: make(map[role.Role]*advisor.Conversation),
	}
}

// sessionFor returns the cached session context of a role, loading it once.
func (h *Handler) sessionFor(ctx context.Context, r role.Role) (*session.Context, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessionLocked(ctx, r)
}

func (h *Handler) sessionLocked(ctx context.Context, r role.Role) (*session.Context, error) {
	if sess, ok := h.sessions[r]; ok {
		return sess, nil
	}
	sess, err := session.Open(ctx, r, h.Store)
	if err != nil {
		return nil, err
	}
	h.sessions[r] = sess
	return sess, nil
}

// conversationFor returns the cached advisor conversation of a role.
func (h *Handler) conversationFor(ctx context.Context, r role.Role) (*advisor.Conversation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conv, ok := h.conversations[r]; ok {
		return conv, nil
	}
	sess, err := h.sessionLocked(ctx, r)
	if err != nil {
		return nil, err
	}
	conv, err := advisor.Open(ctx, sess)
	if err != nil {
		return nil, err
	}
	h.conversations[r] = conv
	return conv, nil
}

// clearCaches drops loaded sessions after the database was reset.
func (h *Handler) clearCaches() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions = make(map[role.Role]*session.Context)
	h.conversations = make(map[role.Role]*advisor.Conversation)
	h.currentPreset = ""
}

// =============================================================================
// PROJECTION HANDLERS
// =============================================================================

// ProjectROI projects one input set without saving anything.
func (h *Handler) ProjectROI(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	code, err := resolveCurrency(req.Currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown currency", err)
		return
	}

	inputs, err := req.InputsJSON.Float64().Decimal()
	if err != nil {
		h.writeDomainError(w, "Invalid projection input", err)
		return
	}

	projection, err := roi.Project(inputs)
	if err != nil {
		h.writeDomainError(w, "Invalid projection input", err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectionDTO(projection, code))
}

// CompareROI ranks inline and saved plans by ROI.
func (h *Handler) CompareROI(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	code, err := resolveCurrency(req.Currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown currency", err)
		return
	}

	plans := make([]roi.Plan, 0, len(req.Plans)+len(req.PlanIDs))
	for i, pj := range req.Plans {
		plan, err := h.PlanFactory.FromJSON(pj)
		if err != nil {
			h.writeDomainError(w, fmt.Sprintf("Invalid plan at index %d", i), err)
			return
		}
		plans = append(plans, plan.Plan)
	}
	for _, id := range req.PlanIDs {
		plan, err := h.loadPlan(r.Context(), id)
		if err != nil {
			h.writeDomainError(w, "Failed to load plan", err)
			return
		}
		if plan == nil {
			writeError(w, http.StatusNotFound, "Plan not found", fmt.Errorf("plan %q", id))
			return
		}
		plans = append(plans, plan.Plan)
	}

	if len(plans) == 0 {
		writeError(w, http.StatusBadRequest, "No plans to compare", nil)
		return
	}

	ranked, err := roi.Compare(plans)
	if err != nil {
		h.writeDomainError(w, "Invalid plan", err)
		return
	}

	out := make([]RankedPlanDTO, len(ranked))
	for i, rk := range ranked {
		out[i] = RankedPlanDTO{
			Rank:        rk.Rank,
			Name:        rk.Plan.Name,
			Description: rk.Plan.Description,
			Projection:  toProjectionDTO(rk.Projection, code),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// PLAN HANDLERS
// =============================================================================

// ListPlans returns all saved plans.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListPlans(r.Context())
	if err != nil {
		h.writeInternal(w, "Failed to list plans", err)
		return
	}

	plans := make([]PlanDTO, 0, len(records))
	for _, rec := range records {
		dto, err := toPlanDTO(rec)
		if err != nil {
			h.Logger.Warn("skipping unreadable plan", zap.String("plan_id", rec.ID), zap.Error(err))
			continue
		}
		plans = append(plans, dto)
	}
	writeJSON(w, http.StatusOK, plans)
}

// CreatePlan validates and saves a plan. A missing id is generated.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var pj factory.PlanJSON
	if err := decodeJSON(w, r, &pj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if pj.Currency != "" {
		if _, err := resolveCurrency(pj.Currency); err != nil {
			writeError(w, http.StatusBadRequest, "Unknown currency", err)
			return
		}
	}
	if strings.TrimSpace(pj.ID) == "" {
		pj.ID = uuid.NewString()
	}

	plan, err := h.PlanFactory.FromJSON(pj)
	if err != nil {
		h.writeDomainError(w, "Invalid plan", err)
		return
	}

	rec, err := h.savePlan(r.Context(), plan)
	if err != nil {
		h.writeInternal(w, "Failed to save plan", err)
		return
	}

	dto, err := toPlanDTO(*rec)
	if err != nil {
		h.writeInternal(w, "Failed to read saved plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// GetPlan returns one saved plan.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetPlan(r.Context(), id)
	if err != nil {
		h.writeInternal(w, "Failed to get plan", err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	dto, err := toPlanDTO(*rec)
	if err != nil {
		h.writeInternal(w, "Failed to read plan", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetPlanProjection projects a saved plan. Results are never cached: the
// stored inputs are projected on every call.
func (h *Handler) GetPlanProjection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	plan, err := h.loadPlan(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "Failed to load plan", err)
		return
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, "Plan not found", nil)
		return
	}

	code := plan.Currency
	if q := r.URL.Query().Get("currency"); q != "" {
		if code, err = resolveCurrency(q); err != nil {
			writeError(w, http.StatusBadRequest, "Unknown currency", err)
			return
		}
	}

	projection, err := roi.Project(plan.Inputs)
	if err != nil {
		h.writeDomainError(w, "Invalid plan", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectionDTO(projection, code))
}

// DeletePlan removes a saved plan.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeletePlan(r.Context(), id); err != nil {
		if sqlite.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Plan not found", nil)
			return
		}
		h.writeInternal(w, "Failed to delete plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// savePlan stores the normalized JSON of a plan and returns the stored record.
func (h *Handler) savePlan(ctx context.Context, plan *factory.Plan) (*sqlite.PlanRecord, error) {
	record, err := h.planRecord(plan)
	if err != nil {
		return nil, err
	}
	if err := h.Store.SavePlan(ctx, record); err != nil {
		return nil, err
	}
	rec, err := h.Store.GetPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("plan %q vanished after save", plan.ID)
	}
	return rec, nil
}

// planRecord renders a plan as the normalized JSON the store keeps.
func (h *Handler) planRecord(plan *factory.Plan) (sqlite.PlanRecord, error) {
	doc, err := h.PlanFactory.Marshal(h.PlanFactory.ToJSON(plan))
	if err != nil {
		return sqlite.PlanRecord{}, err
	}
	return sqlite.PlanRecord{
		ID:       plan.ID,
		Name:     plan.Name,
		Category: plan.Category,
		PlanJSON: doc,
	}, nil
}

// loadPlan parses a saved plan. It returns nil, nil when the plan does not exist.
func (h *Handler) loadPlan(ctx context.Context, id string) (*factory.Plan, error) {
	rec, err := h.Store.GetPlan(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return h.PlanFactory.ParsePlan(rec.PlanJSON)
}

// =============================================================================
// REFERENCE HANDLERS
// =============================================================================

// ListCurrencies returns the display currencies.
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currency.Catalog())
}

// Health reports whether the database answers.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		h.writeInternal(w, "Database unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors to 400 and everything else to 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	var invalid *roi.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   message,
			Code:    "invalid_input",
			Details: err.Error(),
			Issues:  toIssueDTOs(invalid.Issues),
		})
	case errors.Is(err, factory.ErrMissingName):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   message,
			Code:    "missing_name",
			Details: err.Error(),
		})
	default:
		h.writeInternal(w, message, err)
	}
}

func (h *Handler) writeInternal(w http.ResponseWriter, message string, err error) {
	h.Logger.Error(message, zap.Error(err))
	writeError(w, http.StatusInternalServerError, message, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// resolveCurrency normalizes a currency code. Empty means the default.
func resolveCurrency(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return currency.Default, nil
	}
	c, ok := currency.Lookup(code)
	if !ok {
		return "", fmt.Errorf("currency %q is not supported", code)
	}
	return c.Code, nil
}

func toPlanDTO(rec sqlite.PlanRecord) (PlanDTO, error) {
	var pj factory.PlanJSON
	if err := json.Unmarshal([]byte(rec.PlanJSON), &pj); err != nil {
		return PlanDTO{}, fmt.Errorf("plan %q: %w", rec.ID, err)
	}
	return PlanDTO{
		ID:        rec.ID,
		Name:      rec.Name,
		Category:  rec.Category,
		Config:    pj,
		Version:   rec.Version,
		CreatedAt: formatTime(rec.CreatedAt),
		UpdatedAt: formatTime(rec.UpdatedAt),
	}, nil
}
