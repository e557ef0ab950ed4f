package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	"github.com/minhokim/sejong-api/internal/api/shared"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/service"
	"github.com/minhokim/sejong-api/internal/service/auth"
)

// Function-field stubs for the service interfaces, so each test configures
// only the calls it cares about.

type stubUserService struct {
	registerFn     func(ctx context.Context, email, password string) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
	getUserFn      func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	deleteUserFn   func(ctx context.Context, userID uuid.UUID) error
}

func (s *stubUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if s.getUserFn == nil {
		return nil, service.ErrInvalidCredentials
	}
	return s.getUserFn(ctx, userID)
}

func (s *stubUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if s.deleteUserFn == nil {
		return nil
	}
	return s.deleteUserFn(ctx, userID)
}

type stubJWTService struct {
	generateFn func(ctx context.Context, userID uuid.UUID, role string) (string, error)
	validateFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

func (s *stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID, role string) (string, error) {
	if s.generateFn == nil {
		return "test-token", nil
	}
	return s.generateFn(ctx, userID, role)
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return s.validateFn(ctx, tokenString)
}

type stubDeckService struct {
	getDeckFn       func(ctx context.Context, userID uuid.UUID) []domain.DeckEntry
	deckSizeFn      func(ctx context.Context, userID uuid.UUID) int
	dueEntriesFn    func(ctx context.Context, userID uuid.UUID, now time.Time) []domain.DeckEntry
	addWordsFn      func(ctx context.Context, userID uuid.UUID, items []domain.VocabItem) (*service.AddWordsResult, error)
	recordReviewFn  func(ctx context.Context, userID uuid.UUID, word string, wasCorrect bool) (*domain.DeckEntry, error)
	removeWordFn    func(ctx context.Context, userID uuid.UUID, word string) error
	deleteDeckFn    func(ctx context.Context, userID uuid.UUID) error
}

func (s *stubDeckService) GetDeck(ctx context.Context, userID uuid.UUID) []domain.DeckEntry {
	if s.getDeckFn == nil {
		return nil
	}
	return s.getDeckFn(ctx, userID)
}

func (s *stubDeckService) DeckSize(ctx context.Context, userID uuid.UUID) int {
	if s.deckSizeFn == nil {
		return 0
	}
	return s.deckSizeFn(ctx, userID)
}

func (s *stubDeckService) DueEntries(ctx context.Context, userID uuid.UUID, now time.Time) []domain.DeckEntry {
	if s.dueEntriesFn == nil {
		return nil
	}
	return s.dueEntriesFn(ctx, userID, now)
}

func (s *stubDeckService) AddWords(
	ctx context.Context,
	userID uuid.UUID,
	items []domain.VocabItem,
) (*service.AddWordsResult, error) {
	return s.addWordsFn(ctx, userID, items)
}

func (s *stubDeckService) RecordReviewOutcome(
	ctx context.Context,
	userID uuid.UUID,
	word string,
	wasCorrect bool,
) (*domain.DeckEntry, error) {
	return s.recordReviewFn(ctx, userID, word, wasCorrect)
}

func (s *stubDeckService) RemoveWord(ctx context.Context, userID uuid.UUID, word string) error {
	return s.removeWordFn(ctx, userID, word)
}

func (s *stubDeckService) DeleteDeck(ctx context.Context, userID uuid.UUID) error {
	return s.deleteDeckFn(ctx, userID)
}

type stubProgressService struct {
	getStateFn        func(ctx context.Context, userID uuid.UUID) *domain.ProgressState
	addXPFn           func(ctx context.Context, userID uuid.UUID, amount int) (*service.AddXPResult, error)
	recordQuizFn      func(ctx context.Context, userID uuid.UUID, scorePercent int) (*service.AddXPResult, error)
	recordRolePlayFn  func(ctx context.Context, userID uuid.UUID, scenarioID string) (*service.AddXPResult, error)
	recordQuestFn     func(ctx context.Context, userID uuid.UUID, questID string, questXP int) (*service.AddXPResult, bool, error)
	checkDeckBadgesFn func(ctx context.Context, userID uuid.UUID, deckSize int) ([]domain.Badge, error)
	xpForLevelFn      func(level int) (int, error)
	deleteStateFn     func(ctx context.Context, userID uuid.UUID) error
}

func (s *stubProgressService) GetState(ctx context.Context, userID uuid.UUID) *domain.ProgressState {
	if s.getStateFn == nil {
		return domain.NewProgressState()
	}
	return s.getStateFn(ctx, userID)
}

func (s *stubProgressService) AddXP(
	ctx context.Context,
	userID uuid.UUID,
	amount int,
) (*service.AddXPResult, error) {
	return s.addXPFn(ctx, userID, amount)
}

func (s *stubProgressService) RecordQuizCompletion(
	ctx context.Context,
	userID uuid.UUID,
	scorePercent int,
) (*service.AddXPResult, error) {
	return s.recordQuizFn(ctx, userID, scorePercent)
}

func (s *stubProgressService) RecordRolePlayCompletion(
	ctx context.Context,
	userID uuid.UUID,
	scenarioID string,
) (*service.AddXPResult, error) {
	return s.recordRolePlayFn(ctx, userID, scenarioID)
}

func (s *stubProgressService) RecordQuestCompletion(
	ctx context.Context,
	userID uuid.UUID,
	questID string,
	questXP int,
) (*service.AddXPResult, bool, error) {
	return s.recordQuestFn(ctx, userID, questID, questXP)
}

func (s *stubProgressService) CheckDeckBadges(
	ctx context.Context,
	userID uuid.UUID,
	deckSize int,
) ([]domain.Badge, error) {
	if s.checkDeckBadgesFn == nil {
		return nil, nil
	}
	return s.checkDeckBadgesFn(ctx, userID, deckSize)
}

func (s *stubProgressService) XPForLevel(level int) (int, error) {
	if s.xpForLevelFn == nil {
		return 0, nil
	}
	return s.xpForLevelFn(level)
}

func (s *stubProgressService) DeleteState(ctx context.Context, userID uuid.UUID) error {
	return s.deleteStateFn(ctx, userID)
}

// withUserID returns a copy of the request with the user ID placed in the
// context the way the authentication middleware does.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// recordedResponse runs the handler and captures the response.
func recordedResponse(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, r)
	return w
}
