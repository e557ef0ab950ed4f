package domain

import (
	"errors"
	"strings"
)

// Quest validation errors
var (
	// ErrEmptyQuestID is returned when a quest has no ID.
	ErrEmptyQuestID = errors.New("quest ID cannot be empty")

	// ErrEmptyQuestTitle is returned when a quest has no title.
	ErrEmptyQuestTitle = errors.New("quest title cannot be empty")

	// ErrInvalidQuestXP is returned when a quest's XP reward is not positive.
	ErrInvalidQuestXP = errors.New("quest XP must be positive")
)

// WeeklyQuest is an ephemeral challenge regenerated each week, either by the
// AI backend or from the static sample set. Completion is recorded by ID in
// the user's progress state.
type WeeklyQuest struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	XP            int    `json:"xp"`
	FeatureTarget string `json:"feature_target"`
}

// Validate checks if the WeeklyQuest has valid data.
func (q *WeeklyQuest) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return ErrEmptyQuestID
	}
	if strings.TrimSpace(q.Title) == "" {
		return ErrEmptyQuestTitle
	}
	if q.XP <= 0 {
		return ErrInvalidQuestXP
	}
	return nil
}

// Badge is a static catalog entry for a one-way-unlockable achievement.
// The unlock predicate lives in the progress package; this struct is what
// clients render.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}
