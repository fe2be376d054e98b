package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/warp/careerpath/advisor"
	"github.com/warp/careerpath/session"
)

// =============================================================================
// ADVISOR ENDPOINTS
// =============================================================================

// GetAdvisor returns the conversation of a role, starting it if needed.
func (h *Handler) GetAdvisor(w http.ResponseWriter, r *http.Request) {
	rl, ok := roleParam(w, r)
	if !ok {
		return
	}

	conv, err := h.conversationFor(r.Context(), rl)
	if err != nil {
		h.writeInternal(w, "Failed to open advisor", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"role":        rl.String(),
		"messages":    conv.History(),
		"suggestions": advisor.InitialSuggestions(rl),
	})
}

// PostAdvisorMessage asks the advisor one question.
func (h *Handler) PostAdvisorMessage(w http.ResponseWriter, r *http.Request) {
	rl, ok := roleParam(w, r)
	if !ok {
		return
	}

	var req AdvisorMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	conv, err := h.conversationFor(r.Context(), rl)
	if err != nil {
		h.writeInternal(w, "Failed to open advisor", err)
		return
	}

	question, reply, err := conv.Ask(r.Context(), req.Content)
	if err != nil {
		if errors.Is(err, advisor.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "Message is empty", err)
			return
		}
		h.writeInternal(w, "Failed to answer", err)
		return
	}
	writeJSON(w, http.StatusCreated, AdvisorExchangeDTO{Question: question, Reply: reply})
}

// ClearAdvisor restarts the conversation with the welcome message.
func (h *Handler) ClearAdvisor(w http.ResponseWriter, r *http.Request) {
	rl, ok := roleParam(w, r)
	if !ok {
		return
	}

	conv, err := h.conversationFor(r.Context(), rl)
	if err != nil {
		h.writeInternal(w, "Failed to open advisor", err)
		return
	}
	if err := conv.Clear(r.Context()); err != nil {
		h.writeInternal(w, "Failed to clear advisor", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"role": rl.String(), "messages": conv.History()})
}

// =============================================================================
// SESSION ENDPOINTS
// =============================================================================

// GetSession returns every stored value of a role.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	rl, ok := roleParam(w, r)
	if !ok {
		return
	}

	sess, err := h.sessionFor(r.Context(), rl)
	if err != nil {
		h.writeInternal(w, "Failed to load session", err)
		return
	}
	writeJSON(w, http.StatusOK, SessionDTO{Role: rl.String(), Values: sess.Snapshot()})
}

// PutSessionValue stores the raw JSON body under {key}.
func (h *Handler) PutSessionValue(w http.ResponseWriter, r *http.Request) {
	rl, ok := roleParam(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")
	if key == session.KeyAdvisorHistory {
		writeError(w, http.StatusBadRequest, "Key is managed by the advisor endpoints", nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sess, err := h.sessionFor(r.Context(), rl)
	if err != nil {
		h.writeInternal(w, "Failed to load session", err)
		return
	}
	if err := sess.SetRaw(r.Context(), key, json.RawMessage(body)); err != nil {
		if errors.Is(err, session.ErrInvalidKey) || errors.Is(err, session.ErrInvalidValue) {
			writeError(w, http.StatusBadRequest, "Invalid session value", err)
			return
		}
		h.writeInternal(w, "Failed to save session value", err)
		return
	}
	writeJSON(w, http.StatusOK, SessionDTO{Role: rl.String(), Values: sess.Snapshot()})
}

// DeleteSessionValue removes {key} from the session of a role.
func (h *Handler) DeleteSessionValue(w http.ResponseWriter, r *http.Request) {
	rl, ok := roleParam(w, r)
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")
	if key == session.KeyAdvisorHistory {
		writeError(w, http.StatusBadRequest, "Key is managed by the advisor endpoints", nil)
		return
	}

	sess, err := h.sessionFor(r.Context(), rl)
	if err != nil {
		h.writeInternal(w, "Failed to load session", err)
		return
	}
	if err := sess.Delete(r.Context(), key); err != nil {
		if errors.Is(err, session.ErrInvalidKey) {
			writeError(w, http.StatusBadRequest, "Invalid session key", err)
			return
		}
		h.writeInternal(w, "Failed to delete session value", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
