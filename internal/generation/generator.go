package generation

import (
	"context"

	"github.com/minhokim/sejong-api/internal/domain"
)

// QuestGenerator defines the interface for generating weekly quests.
// Implementations call an external AI service and may fail; callers are
// expected to fall back to SampleQuests so the feature never renders empty.
type QuestGenerator interface {
	// GenerateQuests creates a fresh set of weekly quests tailored to the
	// user's learner profile hint (free-form, may be empty).
	//
	// Returns the generated quests or an error classified by the sentinel
	// errors in this package (see errors.go).
	GenerateQuests(ctx context.Context, profileHint string) ([]domain.WeeklyQuest, error)
}
