package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/warp/careerpath/quiz"
	"github.com/warp/careerpath/role"
	"github.com/warp/careerpath/store/sqlite"
	"go.uber.org/zap"
)

// =============================================================================
// QUIZ ENDPOINTS
// =============================================================================

const defaultQuizHistory = 20

// GetQuiz returns the quiz questions.
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        quiz.ID,
		"questions": quiz.Questions(),
	})
}

// SubmitQuiz scores the answers and stores the result.
func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	rl, ok := roleParam(w, r)
	if !ok {
		return
	}

	var req QuizSubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Answers == nil {
		req.Answers = map[int]string{}
	}

	outcome, err := quiz.Score(req.Answers)
	if err != nil {
		if errors.Is(err, quiz.ErrInvalidAnswer) {
			writeError(w, http.StatusBadRequest, "Invalid quiz answer", err)
			return
		}
		h.writeInternal(w, "Failed to score quiz", err)
		return
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		h.writeInternal(w, "Failed to encode answers", err)
		return
	}

	result := sqlite.QuizResult{
		ID:          uuid.NewString(),
		Role:        rl,
		QuizID:      quiz.ID,
		Score:       outcome.Answered,
		AnswersJSON: string(answersJSON),
		BestTrait:   string(outcome.Best.Trait),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Store.SaveQuizResult(r.Context(), result); err != nil {
		h.writeInternal(w, "Failed to save quiz result", err)
		return
	}

	h.Logger.Debug("quiz scored",
		zap.Stringer("role", rl),
		zap.Int("answered", outcome.Answered),
		zap.String("best_trait", string(outcome.Best.Trait)))

	writeJSON(w, http.StatusCreated, QuizResultDTO{
		ID:        result.ID,
		QuizID:    result.QuizID,
		Role:      rl.String(),
		Score:     result.Score,
		Answers:   req.Answers,
		BestTrait: result.BestTrait,
		Outcome:   &outcome,
		CreatedAt: formatTime(result.CreatedAt),
	})
}

// ListQuizResults returns the stored results of a role, newest first.
// ?limit=N caps the list (default 20).
func (h *Handler) ListQuizResults(w http.ResponseWriter, r *http.Request) {
	rl, ok := roleParam(w, r)
	if !ok {
		return
	}

	limit := defaultQuizHistory
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	results, err := h.Store.ListQuizResults(r.Context(), rl, limit)
	if err != nil {
		h.writeInternal(w, "Failed to list quiz results", err)
		return
	}

	out := make([]QuizResultDTO, 0, len(results))
	for _, res := range results {
		var answers map[int]string
		if err := json.Unmarshal([]byte(res.AnswersJSON), &answers); err != nil {
			h.Logger.Warn("skipping unreadable quiz result", zap.String("id", res.ID), zap.Error(err))
			continue
		}
		dto := QuizResultDTO{
			ID:        res.ID,
			QuizID:    res.QuizID,
			Role:      res.Role.String(),
			Score:     res.Score,
			Answers:   answers,
			BestTrait: res.BestTrait,
			CreatedAt: formatTime(res.CreatedAt),
		}
		if outcome, err := quiz.Score(answers); err == nil {
			dto.Outcome = &outcome
		}
		out = append(out, dto)
	}
	writeJSON(w, http.StatusOK, out)
}

// roleParam parses the {role} URL parameter and writes 400 when it is unknown.
func roleParam(w http.ResponseWriter, r *http.Request) (role.Role, bool) {
	rl, err := role.Parse(chi.URLParam(r, "role"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown role", err)
		return 0, false
	}
	return rl, true
}
