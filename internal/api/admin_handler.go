package api

import (
	"log/slog"
	"net/http"

	"github.com/minhokim/sejong-api/internal/platform/logger"
	"github.com/minhokim/sejong-api/internal/service"
)

// AdminHandler handles administrative data management requests.
type AdminHandler struct {
	deckService     service.DeckService
	progressService service.ProgressService
	logger          *slog.Logger
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(
	deckService service.DeckService,
	progressService service.ProgressService,
	logger *slog.Logger,
) *AdminHandler {
	if deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckService cannot be nil for AdminHandler")
	}
	if progressService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressService cannot be nil for AdminHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AdminHandler")
	}

	return &AdminHandler{
		deckService:     deckService,
		progressService: progressService,
		logger:          logger.With(slog.String("component", "admin_handler")),
	}
}

// ResetUserData handles DELETE /admin/users/{id}/data.
// Destructive resets never degrade silently: a failed delete surfaces as an
// error so the operator knows the data is still there.
func (h *AdminHandler) ResetUserData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	targetID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), targetID); err != nil {
		log.Error("failed to delete deck during user data reset",
			slog.String("target_user_id", targetID.String()),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "Failed to reset user data")
		return
	}

	if err := h.progressService.DeleteState(r.Context(), targetID); err != nil {
		log.Error("failed to delete progress during user data reset",
			slog.String("target_user_id", targetID.String()),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "Failed to reset user data")
		return
	}

	log.Info("user data reset", slog.String("target_user_id", targetID.String()))
	w.WriteHeader(http.StatusNoContent)
}
