package api

import (
	"log/slog"
	"net/http"

	"github.com/minhokim/sejong-api/internal/api/shared"
	"github.com/minhokim/sejong-api/internal/service"
)

// QuestHandler handles weekly quest generation HTTP requests.
type QuestHandler struct {
	questService service.QuestService
	logger       *slog.Logger
}

// NewQuestHandler creates a new QuestHandler with the given dependencies.
func NewQuestHandler(questService service.QuestService, logger *slog.Logger) *QuestHandler {
	if questService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("questService cannot be nil for QuestHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for QuestHandler")
	}

	return &QuestHandler{
		questService: questService,
		logger:       logger.With(slog.String("component", "quest_handler")),
	}
}

// GenerateQuests handles POST /quests/generate.
// Generation failures fall back to the static quest set, so this endpoint
// answers 200 even when the model is unreachable; IsSuccess in the body
// reports the substitution.
func (h *QuestHandler) GenerateQuests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateQuestsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		// An empty or malformed body just means no profile hint.
		req.ProfileHint = ""
	}

	result := h.questService.GenerateWeeklyQuests(r.Context(), userID, req.ProfileHint)
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
