package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/domain/progress"
	"github.com/minhokim/sejong-api/internal/events"
	"github.com/minhokim/sejong-api/internal/platform/logger"
	"github.com/minhokim/sejong-api/internal/store"
)

// AddXPResult reports the outcome of a single gamification mutation: the new
// totals, whether a level boundary was crossed, and any badges the mutation
// unlocked.
type AddXPResult struct {
	NewXP     int            `json:"new_xp"`
	NewLevel  int            `json:"new_level"`
	LeveledUp bool           `json:"leveled_up"`
	NewBadges []domain.Badge `json:"new_badges"`
	Streak    int            `json:"streak"`
}

// ProgressService provides operations on a user's gamification state: XP,
// levels, streaks, badges, and quest completion.
//
// Reading state degrades to the fresh-user default on storage failure. Every
// mutation persists the full document back and emits a progress event;
// mutation-path read and write failures propagate so a failed read never
// clobbers the stored document.
type ProgressService interface {
	// GetState returns the user's gamification state. A user with no
	// recorded progress (or a failed read) gets the fresh default.
	GetState(ctx context.Context, userID uuid.UUID) *domain.ProgressState

	// AddXP awards XP for a learning action, applies the daily streak rule,
	// recomputes the level, and unlocks any badges whose thresholds were
	// crossed. Returns ErrInvalidAmount for non-positive amounts.
	AddXP(ctx context.Context, userID uuid.UUID, amount int) (*AddXPResult, error)

	// RecordQuizCompletion records a finished quiz with its score (0-100),
	// awards the quiz XP, and checks quiz badges.
	RecordQuizCompletion(ctx context.Context, userID uuid.UUID, scorePercent int) (*AddXPResult, error)

	// RecordRolePlayCompletion records a finished role-play scenario,
	// awards the role-play XP, and checks role-play badges. The scenario
	// set is distinct; repeating a scenario still earns XP but does not
	// grow the set.
	RecordRolePlayCompletion(ctx context.Context, userID uuid.UUID, scenarioID string) (*AddXPResult, error)

	// RecordQuestCompletion marks a weekly quest as completed and awards
	// its XP. Idempotent by quest ID: completing an already-completed
	// quest changes nothing and reports completed=false.
	RecordQuestCompletion(ctx context.Context, userID uuid.UUID, questID string, questXP int) (*AddXPResult, bool, error)

	// CheckDeckBadges unlocks any deck-size badges the given size satisfies
	// and returns the newly unlocked ones.
	CheckDeckBadges(ctx context.Context, userID uuid.UUID, deckSize int) ([]domain.Badge, error)

	// XPForLevel returns the cumulative XP required to reach the given
	// level on the same curve AddXP uses.
	// Returns ErrInvalidAmount for levels below 1.
	XPForLevel(level int) (int, error)

	// DeleteState wipes the user's progress document. Admin path; errors
	// propagate.
	DeleteState(ctx context.Context, userID uuid.UUID) error
}

// progressServiceImpl implements the ProgressService interface.
type progressServiceImpl struct {
	progressStore store.ProgressStore
	params        *progress.Params
	emitter       events.EventEmitter
	logger        *slog.Logger
	timeFunc      func() time.Time // Injectable for testing
}

// Verify interface compliance at compile time
var _ ProgressService = (*progressServiceImpl)(nil)

// NewProgressService creates a new ProgressService implementation.
// The emitter may be nil, in which case no events are published.
func NewProgressService(
	progressStore store.ProgressStore,
	params *progress.Params,
	emitter events.EventEmitter,
	logger *slog.Logger,
) ProgressService {
	// Validate inputs
	if progressStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("progressStore cannot be nil")
	}
	if params == nil {
		params = progress.NewDefaultParams()
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &progressServiceImpl{
		progressStore: progressStore,
		params:        params,
		emitter:       emitter,
		logger:        logger.With(slog.String("component", "progress_service")),
		timeFunc:      time.Now,
	}
}

// loadState reads the user's progress, applying the degrade-to-default rule:
// a missing document is a fresh user, any other failure is logged and also
// yields the fresh default.
func (s *progressServiceImpl) loadState(ctx context.Context, userID uuid.UUID) *domain.ProgressState {
	log := logger.FromContextOrDefault(ctx, s.logger)

	state, err := s.progressStore.GetState(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			log.Error("progress read failed, degrading to default state",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return domain.NewProgressState()
	}

	return state
}

// loadStateStrict reads the user's progress for a mutation. Unlike loadState,
// a storage failure propagates so a failed read never resets the stored
// document to the default on the subsequent write. A missing document is
// still a fresh user.
func (s *progressServiceImpl) loadStateStrict(ctx context.Context, userID uuid.UUID) (*domain.ProgressState, error) {
	state, err := s.progressStore.GetState(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return domain.NewProgressState(), nil
		}
		return nil, fmt.Errorf("failed to read progress state: %w", err)
	}
	return state, nil
}

// GetState implements ProgressService.GetState.
func (s *progressServiceImpl) GetState(ctx context.Context, userID uuid.UUID) *domain.ProgressState {
	return s.loadState(ctx, userID)
}

// applyXP mutates state in place: adds XP, applies the daily streak rule,
// recomputes the level, and evaluates the always-on badge set. Returns the
// result skeleton with any newly unlocked badges.
func (s *progressServiceImpl) applyXP(state *domain.ProgressState, amount int, now time.Time) *AddXPResult {
	oldLevel := state.Level

	state.XP += amount
	state.Level = progress.LevelForXP(state.XP, s.params)
	state.Streak, state.LastActivityDate = progress.NextStreak(state.Streak, state.LastActivityDate, now)
	state.UpdatedAt = now

	newBadges := progress.EvaluateBadges(state)

	return &AddXPResult{
		NewXP:     state.XP,
		NewLevel:  state.Level,
		LeveledUp: state.Level > oldLevel,
		NewBadges: newBadges,
		Streak:    state.Streak,
	}
}

// saveAndEmit persists the mutated state and publishes the progress events.
// Persistence failures propagate; event failures are logged only.
func (s *progressServiceImpl) saveAndEmit(
	ctx context.Context,
	userID uuid.UUID,
	state *domain.ProgressState,
	result *AddXPResult,
	operation string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		return NewServiceError(operation, "invalid progress state", err)
	}

	if err := s.progressStore.SaveState(ctx, userID, state); err != nil {
		log.Error("failed to save progress state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("operation", operation))
		return NewServiceError(operation, "failed to save progress state", err)
	}

	s.emit(ctx, userID, events.EventTypeProgressUpdated, map[string]any{
		"xp":     state.XP,
		"level":  state.Level,
		"streak": state.Streak,
	})
	if result != nil && result.LeveledUp {
		s.emit(ctx, userID, events.EventTypeLevelUp, map[string]any{"new_level": result.NewLevel})
	}
	if result != nil {
		for _, badge := range result.NewBadges {
			s.emit(ctx, userID, events.EventTypeBadgeUnlocked, map[string]any{"badge_id": badge.ID})
		}
	}

	return nil
}

// emit publishes a single progress event, logging failures.
func (s *progressServiceImpl) emit(ctx context.Context, userID uuid.UUID, eventType string, payload any) {
	if s.emitter == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewProgressEvent(eventType, userID.String(), payload)
	if err != nil {
		log.Error("failed to build progress event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit progress event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType))
	}
}

// AddXP implements ProgressService.AddXP.
func (s *progressServiceImpl) AddXP(ctx context.Context, userID uuid.UUID, amount int) (*AddXPResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: xp amount must be positive", ErrInvalidAmount)
	}

	now := s.timeFunc()
	state, err := s.loadStateStrict(ctx, userID)
	if err != nil {
		return nil, NewServiceError("add_xp", "failed to read progress state", err)
	}
	result := s.applyXP(state, amount, now)

	if err := s.saveAndEmit(ctx, userID, state, result, "add_xp"); err != nil {
		return nil, err
	}

	return result, nil
}

// RecordQuizCompletion implements ProgressService.RecordQuizCompletion.
func (s *progressServiceImpl) RecordQuizCompletion(
	ctx context.Context,
	userID uuid.UUID,
	scorePercent int,
) (*AddXPResult, error) {
	if scorePercent < 0 || scorePercent > 100 {
		return nil, fmt.Errorf("%w: quiz score must be between 0 and 100", ErrInvalidAmount)
	}

	now := s.timeFunc()
	state, err := s.loadStateStrict(ctx, userID)
	if err != nil {
		return nil, NewServiceError("record_quiz", "failed to read progress state", err)
	}

	state.QuizzesCompleted++
	if scorePercent == 100 {
		state.PerfectQuizzes++
	}

	result := s.applyXP(state, s.params.QuizXP, now)

	// Quiz badges depend on the score, which applyXP knows nothing about.
	result.NewBadges = append(result.NewBadges, progress.EvaluateQuizBadges(state, scorePercent)...)

	if err := s.saveAndEmit(ctx, userID, state, result, "record_quiz"); err != nil {
		return nil, err
	}

	return result, nil
}

// RecordRolePlayCompletion implements ProgressService.RecordRolePlayCompletion.
func (s *progressServiceImpl) RecordRolePlayCompletion(
	ctx context.Context,
	userID uuid.UUID,
	scenarioID string,
) (*AddXPResult, error) {
	if scenarioID == "" {
		return nil, fmt.Errorf("%w: scenario ID cannot be empty", ErrInvalidAmount)
	}

	now := s.timeFunc()
	state, err := s.loadStateStrict(ctx, userID)
	if err != nil {
		return nil, NewServiceError("record_roleplay", "failed to read progress state", err)
	}

	if !state.HasRolePlayScenario(scenarioID) {
		state.RolePlayScenarios = append(state.RolePlayScenarios, scenarioID)
	}

	result := s.applyXP(state, s.params.RolePlayXP, now)

	if err := s.saveAndEmit(ctx, userID, state, result, "record_roleplay"); err != nil {
		return nil, err
	}

	return result, nil
}

// RecordQuestCompletion implements ProgressService.RecordQuestCompletion.
func (s *progressServiceImpl) RecordQuestCompletion(
	ctx context.Context,
	userID uuid.UUID,
	questID string,
	questXP int,
) (*AddXPResult, bool, error) {
	if questID == "" {
		return nil, false, fmt.Errorf("%w: quest ID cannot be empty", ErrInvalidAmount)
	}
	if questXP <= 0 {
		return nil, false, fmt.Errorf("%w: quest XP must be positive", ErrInvalidAmount)
	}

	now := s.timeFunc()
	state, err := s.loadStateStrict(ctx, userID)
	if err != nil {
		return nil, false, NewServiceError("record_quest", "failed to read progress state", err)
	}

	// Completing the same quest twice is a no-op, not an error.
	if state.HasCompletedQuest(questID) {
		return &AddXPResult{
			NewXP:    state.XP,
			NewLevel: state.Level,
			Streak:   state.Streak,
		}, false, nil
	}

	state.CompletedQuestIDs = append(state.CompletedQuestIDs, questID)
	result := s.applyXP(state, questXP, now)

	if err := s.saveAndEmit(ctx, userID, state, result, "record_quest"); err != nil {
		return nil, false, err
	}

	return result, true, nil
}

// CheckDeckBadges implements ProgressService.CheckDeckBadges.
func (s *progressServiceImpl) CheckDeckBadges(
	ctx context.Context,
	userID uuid.UUID,
	deckSize int,
) ([]domain.Badge, error) {
	now := s.timeFunc()
	state, err := s.loadStateStrict(ctx, userID)
	if err != nil {
		return nil, NewServiceError("check_deck_badges", "failed to read progress state", err)
	}

	newBadges := progress.EvaluateDeckBadges(state, deckSize)
	if len(newBadges) == 0 {
		return nil, nil
	}

	state.UpdatedAt = now
	result := &AddXPResult{
		NewXP:     state.XP,
		NewLevel:  state.Level,
		NewBadges: newBadges,
		Streak:    state.Streak,
	}
	if err := s.saveAndEmit(ctx, userID, state, result, "check_deck_badges"); err != nil {
		return nil, err
	}

	return newBadges, nil
}

// XPForLevel implements ProgressService.XPForLevel.
func (s *progressServiceImpl) XPForLevel(level int) (int, error) {
	if level < 1 {
		return 0, fmt.Errorf("%w: level must be at least 1", ErrInvalidAmount)
	}
	return progress.XPForLevel(level, s.params), nil
}

// DeleteState implements ProgressService.DeleteState.
// Destructive path: errors propagate to the caller.
func (s *progressServiceImpl) DeleteState(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.progressStore.DeleteState(ctx, userID); err != nil {
		log.Error("failed to delete progress state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return NewServiceError("delete_state", "failed to delete progress state", err)
	}

	log.Info("progress state deleted", slog.String("user_id", userID.String()))
	return nil
}
