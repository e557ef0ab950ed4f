package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/generation"
	"github.com/minhokim/sejong-api/internal/platform/logger"
)

// QuestGenerationResult is what quest generation hands back to the caller.
// Generation never fails from the caller's perspective: when the generator
// errors, the static sample quests stand in and IsSuccess reports the
// substitution.
type QuestGenerationResult struct {
	Quests       []domain.WeeklyQuest `json:"quests"`
	IsSuccess    bool                 `json:"is_success"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

// QuestService produces the weekly quest set for a user.
type QuestService interface {
	// GenerateWeeklyQuests asks the generator for quests tailored to the
	// profile hint. Any generation failure falls back to the static sample
	// set; the result is never an error.
	GenerateWeeklyQuests(ctx context.Context, userID uuid.UUID, profileHint string) *QuestGenerationResult
}

// questServiceImpl implements the QuestService interface.
type questServiceImpl struct {
	generator generation.QuestGenerator
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
}

// Verify interface compliance at compile time
var _ QuestService = (*questServiceImpl)(nil)

// NewQuestService creates a new QuestService implementation.
// The generator may be nil (no API key configured), in which case every call
// serves the sample quest set.
func NewQuestService(generator generation.QuestGenerator, logger *slog.Logger) QuestService {
	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &questServiceImpl{
		generator: generator,
		logger:    logger.With(slog.String("component", "quest_service")),
		timeFunc:  time.Now,
	}
}

// GenerateWeeklyQuests implements QuestService.GenerateWeeklyQuests.
func (s *questServiceImpl) GenerateWeeklyQuests(
	ctx context.Context,
	userID uuid.UUID,
	profileHint string,
) *QuestGenerationResult {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc().UTC()

	if s.generator == nil {
		log.Debug("no quest generator configured, serving sample quests",
			slog.String("user_id", userID.String()))
		return &QuestGenerationResult{
			Quests:       generation.SampleQuests(now),
			IsSuccess:    false,
			ErrorMessage: "quest generation is not configured",
		}
	}

	quests, err := s.generator.GenerateQuests(ctx, profileHint)
	if err != nil {
		log.Warn("quest generation failed, falling back to sample quests",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return &QuestGenerationResult{
			Quests:       generation.SampleQuests(now),
			IsSuccess:    false,
			ErrorMessage: "quest generation is temporarily unavailable",
		}
	}

	log.Debug("weekly quests generated",
		slog.String("user_id", userID.String()),
		slog.Int("quest_count", len(quests)))

	return &QuestGenerationResult{
		Quests:    quests,
		IsSuccess: true,
	}
}
