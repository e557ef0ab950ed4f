package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/minhokim/sejong-api/internal/api/shared"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/platform/logger"
	"github.com/minhokim/sejong-api/internal/service"
)

// DeckHandler handles vocabulary deck HTTP requests.
type DeckHandler struct {
	deckService     service.DeckService
	progressService service.ProgressService
	logger          *slog.Logger
	timeFunc        func() time.Time // Injectable for testing
}

// NewDeckHandler creates a new DeckHandler with the given dependencies.
func NewDeckHandler(
	deckService service.DeckService,
	progressService service.ProgressService,
	logger *slog.Logger,
) *DeckHandler {
	if deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckService cannot be nil for DeckHandler")
	}
	if progressService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressService cannot be nil for DeckHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		deckService:     deckService,
		progressService: progressService,
		logger:          logger.With(slog.String("component", "deck_handler")),
		timeFunc:        time.Now,
	}
}

// GetDeck handles GET /deck.
// A user with no saved words gets an empty deck, never an error.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	entries := h.deckService.GetDeck(r.Context(), userID)
	shared.RespondWithJSON(w, r, http.StatusOK, DeckResponse{
		Entries: entries,
		Count:   len(entries),
	})
}

// GetDueEntries handles GET /deck/due.
func (h *DeckHandler) GetDueEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	entries := h.deckService.DueEntries(r.Context(), userID, h.timeFunc())
	shared.RespondWithJSON(w, r, http.StatusOK, DeckResponse{
		Entries: entries,
		Count:   len(entries),
	})
}

// AddWords handles POST /deck/words.
// Words already in the deck are skipped without error; the response reports
// how many entries were actually created. Crossing a deck size threshold can
// unlock collection badges, which are included in the response.
func (h *DeckHandler) AddWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddWordsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.deckService.AddWords(r.Context(), userID, req.Items)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add words")
		return
	}

	var badges []domain.Badge
	if result.Added > 0 {
		badges, err = h.progressService.CheckDeckBadges(r.Context(), userID, result.DeckSize)
		if err != nil {
			// Words were saved; a failed badge check should not turn the
			// request into an error.
			log.Warn("deck badge check failed",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
			badges = nil
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AddWordsResponse{
		Added:    result.Added,
		DeckSize: result.DeckSize,
		Badges:   badges,
	})
}

// RecordReview handles POST /deck/review.
// Returns the rescheduled entry, or 404 when the word is not in the deck.
func (h *DeckHandler) RecordReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.deckService.RecordReviewOutcome(r.Context(), userID, req.Word, *req.Correct)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to record review")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// RemoveWord handles DELETE /deck/words/{word}.
func (h *DeckHandler) RemoveWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	word, ok := getPathString(w, r, "word")
	if !ok {
		return
	}

	if err := h.deckService.RemoveWord(r.Context(), userID, word); err != nil {
		HandleAPIError(w, r, err, "Failed to remove word")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
