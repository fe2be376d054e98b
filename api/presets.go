/*
presets.go - Built-in plan loaders for demos and first runs

PURPOSE:

	Populates the plans table with ready-made education plans so a fresh
	install has something to project and compare.

AVAILABLE PRESETS:

	calculator-defaults: The parent dashboard's starting values
	engineering:         Four-year engineering degree
	medicine:            Medical degree with a long career
	vocational:          Short vocational programme
	all:                 Every preset above

HOW LOADING WORKS:
 1. Clear saved plans (session state and quiz history are kept)
 2. Parse each preset through the plan factory
 3. Save the normalized plan JSON

USAGE VIA API:

	POST /api/presets/load
	{"preset_id": "engineering"}

NOTE:

	Loading replaces every saved plan. POST /api/presets/reset clears all
	data including sessions. Only use in development/demo environments.

SEE ALSO:
  - factory/presets.go: Preset JSON definitions
  - handlers.go: Plan handlers
*/
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/warp/careerpath/factory"
	"github.com/warp/careerpath/store/sqlite"
	"go.uber.org/zap"
)

// PresetAll loads every preset at once.
const PresetAll = "all"

// ListPresets returns the built-in plans.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets := factory.Presets()
	out := make([]PresetDTO, len(presets))
	for i, p := range presets {
		out[i] = PresetDTO{ID: p.ID, Name: p.Name, Description: p.Description, Category: p.Category}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCurrentPreset returns the most recently loaded preset, or null.
func (h *Handler) GetCurrentPreset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentPreset
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if current == PresetAll {
		writeJSON(w, http.StatusOK, PresetDTO{
			ID:          PresetAll,
			Name:        "All presets",
			Description: "Every built-in plan",
		})
		return
	}

	for _, p := range factory.Presets() {
		if p.ID == current {
			writeJSON(w, http.StatusOK, PresetDTO{ID: p.ID, Name: p.Name, Description: p.Description, Category: p.Category})
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadPreset replaces the saved plans with one preset, or all of them.
func (h *Handler) LoadPreset(w http.ResponseWriter, r *http.Request) {
	var req LoadPresetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	selected, ok := selectPresets(req.PresetID)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown preset", fmt.Errorf("preset %q", req.PresetID))
		return
	}

	records, err := h.presetRecords(selected)
	if err != nil {
		h.writeInternal(w, fmt.Sprintf("Failed to load preset: %v", err), err)
		return
	}
	if err := h.Store.ReplacePlans(r.Context(), records); err != nil {
		h.writeInternal(w, "Failed to replace plans", err)
		return
	}

	h.mu.Lock()
	h.currentPreset = req.PresetID
	h.mu.Unlock()

	h.Logger.Info("preset loaded", zap.String("preset_id", req.PresetID), zap.Int("plans", len(selected)))
	writeJSON(w, http.StatusOK, map[string]any{"status": "loaded", "preset": req.PresetID, "plans": len(selected)})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		h.writeInternal(w, "Failed to reset database", err)
		return
	}
	h.clearCaches()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func selectPresets(id string) ([]factory.Preset, bool) {
	all := factory.Presets()
	if id == PresetAll {
		return all, true
	}
	for _, p := range all {
		if p.ID == id {
			return []factory.Preset{p}, true
		}
	}
	return nil, false
}

// presetRecords parses every preset before anything is written.
func (h *Handler) presetRecords(presets []factory.Preset) ([]sqlite.PlanRecord, error) {
	records := make([]sqlite.PlanRecord, 0, len(presets))
	for _, p := range presets {
		plan, err := h.PlanFactory.ParsePlan(p.JSON)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.ID, err)
		}
		rec, err := h.planRecord(plan)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// SeedPresets saves every preset when no plan exists yet.
func (h *Handler) SeedPresets(ctx context.Context) error {
	existing, err := h.Store.ListPlans(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	records, err := h.presetRecords(factory.Presets())
	if err != nil {
		return err
	}
	if err := h.Store.ReplacePlans(ctx, records); err != nil {
		return err
	}

	h.mu.Lock()
	h.currentPreset = PresetAll
	h.mu.Unlock()
	return nil
}
