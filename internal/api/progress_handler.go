package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/minhokim/sejong-api/internal/api/shared"
	"github.com/minhokim/sejong-api/internal/platform/logger"
	"github.com/minhokim/sejong-api/internal/service"
)

// ProgressHandler handles gamification state HTTP requests.
type ProgressHandler struct {
	progressService service.ProgressService
	logger          *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler with the given dependencies.
func NewProgressHandler(
	progressService service.ProgressService,
	logger *slog.Logger,
) *ProgressHandler {
	if progressService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressService cannot be nil for ProgressHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		progressService: progressService,
		logger:          logger.With(slog.String("component", "progress_handler")),
	}
}

// GetProgress handles GET /progress.
// A user with no recorded activity gets the fresh default state.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	state := h.progressService.GetState(r.Context(), userID)
	shared.RespondWithJSON(w, r, http.StatusOK, state)
}

// AddXP handles POST /progress/xp.
func (h *ProgressHandler) AddXP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddXPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.progressService.AddXP(r.Context(), userID, req.Amount)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to award XP")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RecordQuiz handles POST /progress/quiz.
func (h *ProgressHandler) RecordQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req QuizCompletionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.progressService.RecordQuizCompletion(r.Context(), userID, *req.ScorePercent)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record quiz completion")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RecordRolePlay handles POST /progress/roleplay.
func (h *ProgressHandler) RecordRolePlay(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req RolePlayCompletionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.progressService.RecordRolePlayCompletion(r.Context(), userID, req.ScenarioID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record role-play completion")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// questCompletionResponse extends the XP award result with the completion
// flag so clients can tell a fresh completion from a repeat.
type questCompletionResponse struct {
	*service.AddXPResult
	Completed bool `json:"completed"`
}

// CompleteQuest handles POST /progress/quests/{id}/complete.
// Completing the same quest twice awards nothing the second time.
func (h *ProgressHandler) CompleteQuest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	questID, ok := getPathString(w, r, "id")
	if !ok {
		return
	}

	var req QuestCompletionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, completed, err := h.progressService.RecordQuestCompletion(r.Context(), userID, questID, req.XP)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete quest")
		return
	}

	if !completed {
		log.Debug("quest already completed",
			slog.String("user_id", userID.String()),
			slog.String("quest_id", questID))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, questCompletionResponse{
		AddXPResult: result,
		Completed:   completed,
	})
}

// GetLevelXP handles GET /progress/levels/{level}.
// Exposes the XP curve so clients render progress bars with the same
// numbers the server levels up with.
func (h *ProgressHandler) GetLevelXP(w http.ResponseWriter, r *http.Request) {
	levelParam := chi.URLParam(r, "level")
	level, err := strconv.Atoi(levelParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Level must be an integer")
		return
	}

	xp, err := h.progressService.XPForLevel(level)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Level out of range")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LevelXPResponse{
		Level: level,
		XP:    xp,
	})
}
