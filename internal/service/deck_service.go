package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/domain/srs"
	"github.com/minhokim/sejong-api/internal/platform/logger"
	"github.com/minhokim/sejong-api/internal/store"
)

// AddWordsResult reports what an AddWords call actually did.
type AddWordsResult struct {
	// Added is the number of entries inserted. Words already present in
	// the deck are skipped and do not count.
	Added int `json:"added"`

	// DeckSize is the deck size after the insert.
	DeckSize int `json:"deck_size"`
}

// DeckService provides operations on a user's vocabulary deck: reads,
// inserts, the due-today query, and review rescheduling.
//
// Read operations degrade to an empty deck on storage failure; the failure
// is logged and never surfaces to the caller. Mutations and the destructive
// DeleteDeck propagate errors.
type DeckService interface {
	// GetDeck returns the user's full deck, oldest first. A user who has
	// never saved a word gets an empty slice.
	GetDeck(ctx context.Context, userID uuid.UUID) []domain.DeckEntry

	// DeckSize returns the number of entries in the user's deck.
	DeckSize(ctx context.Context, userID uuid.UUID) int

	// DueEntries returns the entries whose DueDate is at or before now.
	DueEntries(ctx context.Context, userID uuid.UUID, now time.Time) []domain.DeckEntry

	// AddWords inserts entries for items whose Word is not already in the
	// deck. Duplicates are silently skipped; the result reports how many
	// entries were actually inserted. Repeated calls with the same items
	// are idempotent.
	AddWords(ctx context.Context, userID uuid.UUID, items []domain.VocabItem) (*AddWordsResult, error)

	// RecordReviewOutcome reschedules the entry for word based on the
	// recall outcome and returns the updated entry.
	// Returns ErrWordNotInDeck if the deck has no entry for word.
	RecordReviewOutcome(ctx context.Context, userID uuid.UUID, word string, wasCorrect bool) (*domain.DeckEntry, error)

	// RemoveWord deletes the entry for word from the deck.
	// Returns ErrWordNotInDeck if the deck has no entry for word.
	RemoveWord(ctx context.Context, userID uuid.UUID, word string) error

	// DeleteDeck wipes the user's deck document. Used by the admin reset
	// path; errors propagate to the caller.
	DeleteDeck(ctx context.Context, userID uuid.UUID) error
}

// deckServiceImpl implements the DeckService interface.
type deckServiceImpl struct {
	deckStore  store.DeckStore
	srsService srs.Service
	logger     *slog.Logger
	timeFunc   func() time.Time // Injectable for testing
}

// Verify interface compliance at compile time
var _ DeckService = (*deckServiceImpl)(nil)

// NewDeckService creates a new DeckService implementation.
func NewDeckService(
	deckStore store.DeckStore,
	srsService srs.Service,
	logger *slog.Logger,
) DeckService {
	// Validate inputs
	if deckStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckStore cannot be nil")
	}
	if srsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("srsService cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		deckStore:  deckStore,
		srsService: srsService,
		logger:     logger.With(slog.String("component", "deck_service")),
		timeFunc:   time.Now,
	}
}

// loadDeck reads the user's deck, applying the degrade-to-empty rule:
// a missing document is a normal empty deck, any other failure is logged
// and also yields an empty deck.
func (s *deckServiceImpl) loadDeck(ctx context.Context, userID uuid.UUID) []domain.DeckEntry {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.deckStore.GetDeck(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			log.Error("deck read failed, degrading to empty deck",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return []domain.DeckEntry{}
	}

	return deck
}

// loadDeckStrict reads the user's deck for a mutation. Unlike loadDeck, a
// storage failure propagates so a partial read never clobbers the stored
// document on the subsequent write. A missing document is still an empty deck.
func (s *deckServiceImpl) loadDeckStrict(ctx context.Context, userID uuid.UUID) ([]domain.DeckEntry, error) {
	deck, err := s.deckStore.GetDeck(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []domain.DeckEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	return deck, nil
}

// GetDeck implements DeckService.GetDeck.
func (s *deckServiceImpl) GetDeck(ctx context.Context, userID uuid.UUID) []domain.DeckEntry {
	return s.loadDeck(ctx, userID)
}

// DeckSize implements DeckService.DeckSize.
func (s *deckServiceImpl) DeckSize(ctx context.Context, userID uuid.UUID) int {
	return len(s.loadDeck(ctx, userID))
}

// DueEntries implements DeckService.DueEntries.
func (s *deckServiceImpl) DueEntries(ctx context.Context, userID uuid.UUID, now time.Time) []domain.DeckEntry {
	deck := s.loadDeck(ctx, userID)

	due := make([]domain.DeckEntry, 0, len(deck))
	for _, entry := range deck {
		if entry.IsDue(now) {
			due = append(due, entry)
		}
	}

	return due
}

// AddWords implements DeckService.AddWords.
func (s *deckServiceImpl) AddWords(
	ctx context.Context,
	userID uuid.UUID,
	items []domain.VocabItem,
) (*AddWordsResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc().UTC()

	deck, err := s.loadDeckStrict(ctx, userID)
	if err != nil {
		return nil, NewServiceError("add_words", "failed to load deck", err)
	}

	// Index existing words. Word equality is exact string match.
	existing := make(map[string]struct{}, len(deck))
	for _, entry := range deck {
		existing[entry.Item.Word] = struct{}{}
	}

	added := 0
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, NewServiceError("add_words", "invalid vocabulary item", err)
		}

		if _, ok := existing[item.Word]; ok {
			continue
		}

		entry, err := s.srsService.NewEntry(item, now)
		if err != nil {
			return nil, NewServiceError("add_words", "failed to create deck entry", err)
		}

		deck = append(deck, *entry)
		existing[item.Word] = struct{}{}
		added++
	}

	// Nothing new; skip the write so repeated calls stay cheap.
	if added == 0 {
		return &AddWordsResult{Added: 0, DeckSize: len(deck)}, nil
	}

	if err := s.deckStore.SaveDeck(ctx, userID, deck); err != nil {
		log.Error("failed to save deck",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewServiceError("add_words", "failed to save deck", err)
	}

	log.Debug("words added to deck",
		slog.String("user_id", userID.String()),
		slog.Int("added", added),
		slog.Int("deck_size", len(deck)))

	return &AddWordsResult{Added: added, DeckSize: len(deck)}, nil
}

// RecordReviewOutcome implements DeckService.RecordReviewOutcome.
func (s *deckServiceImpl) RecordReviewOutcome(
	ctx context.Context,
	userID uuid.UUID,
	word string,
	wasCorrect bool,
) (*domain.DeckEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc().UTC()

	deck, err := s.loadDeckStrict(ctx, userID)
	if err != nil {
		return nil, NewServiceError("record_review", "failed to load deck", err)
	}

	idx := -1
	for i := range deck {
		if deck[i].Item.Word == word {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrWordNotInDeck
	}

	updated, err := s.srsService.Reschedule(&deck[idx], wasCorrect, now)
	if err != nil {
		return nil, NewServiceError("record_review", "failed to reschedule entry", err)
	}

	deck[idx] = *updated
	if err := s.deckStore.SaveDeck(ctx, userID, deck); err != nil {
		log.Error("failed to save deck after review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("word", word))
		return nil, NewServiceError("record_review", "failed to save deck", err)
	}

	log.Debug("review outcome recorded",
		slog.String("user_id", userID.String()),
		slog.String("word", word),
		slog.Bool("was_correct", wasCorrect),
		slog.Int("interval_days", updated.IntervalDays))

	return updated, nil
}

// RemoveWord implements DeckService.RemoveWord.
func (s *deckServiceImpl) RemoveWord(ctx context.Context, userID uuid.UUID, word string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.loadDeckStrict(ctx, userID)
	if err != nil {
		return NewServiceError("remove_word", "failed to load deck", err)
	}

	idx := -1
	for i := range deck {
		if deck[i].Item.Word == word {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrWordNotInDeck
	}

	deck = append(deck[:idx], deck[idx+1:]...)
	if err := s.deckStore.SaveDeck(ctx, userID, deck); err != nil {
		log.Error("failed to save deck after removal",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("word", word))
		return NewServiceError("remove_word", "failed to save deck", err)
	}

	return nil
}

// DeleteDeck implements DeckService.DeleteDeck.
// Destructive path: errors propagate to the caller.
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.deckStore.DeleteDeck(ctx, userID); err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return NewServiceError("delete_deck", "failed to delete deck", err)
	}

	log.Info("deck deleted", slog.String("user_id", userID.String()))
	return nil
}
