package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/minhokim/sejong-api/internal/api/shared"
	"github.com/minhokim/sejong-api/internal/domain/progress"
	"github.com/minhokim/sejong-api/internal/service"
)

// LeaderboardHandler handles the weekly leaderboard endpoint.
type LeaderboardHandler struct {
	userService     service.UserService
	progressService service.ProgressService
	params          *progress.Params
	logger          *slog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler with the given
// dependencies. A nil params falls back to the default gamification tuning.
func NewLeaderboardHandler(
	userService service.UserService,
	progressService service.ProgressService,
	params *progress.Params,
	logger *slog.Logger,
) *LeaderboardHandler {
	if userService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userService cannot be nil for LeaderboardHandler")
	}
	if progressService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressService cannot be nil for LeaderboardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LeaderboardHandler")
	}
	if params == nil {
		params = progress.NewDefaultParams()
	}

	return &LeaderboardHandler{
		userService:     userService,
		progressService: progressService,
		params:          params,
		logger:          logger.With(slog.String("component", "leaderboard_handler")),
	}
}

// GetLeaderboard handles GET /leaderboard.
// The authenticated user is ranked against the fixed competitor board using
// their current XP total. The display name is the local part of their email.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	displayName := "You"
	if user, err := h.userService.GetUser(r.Context(), userID); err == nil {
		if at := strings.Index(user.Email, "@"); at > 0 {
			displayName = user.Email[:at]
		}
	}

	state := h.progressService.GetState(r.Context(), userID)
	entries := service.Leaderboard(displayName, state.XP, h.params)

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}
