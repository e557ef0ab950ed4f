package domain

import (
	"errors"
	"time"
)

// Progress validation errors
var (
	// ErrNegativeXP is returned when a progress state carries negative XP.
	ErrNegativeXP = errors.New("xp cannot be negative")

	// ErrInvalidLevel is returned when a progress state's level is below 1.
	ErrInvalidLevel = errors.New("level must be at least 1")

	// ErrNegativeStreak is returned when a progress state carries a negative streak.
	ErrNegativeStreak = errors.New("streak cannot be negative")

	// ErrInvalidActivityDate is returned when the last activity date is not
	// a calendar date in YYYY-MM-DD form.
	ErrInvalidActivityDate = errors.New("last activity date must be YYYY-MM-DD")
)

// ActivityDateLayout is the calendar-date format used for streak tracking.
// Streaks compare whole local days, never instants.
const ActivityDateLayout = "2006-01-02"

// EpochActivityDate is the last-activity value of a user who has never
// recorded any activity.
const EpochActivityDate = "1970-01-01"

// ProgressState is a user's full gamification ledger: XP, level, streak,
// unlocked badges and completed quests, plus the counters badge predicates
// inspect. Level is always derivable from XP; the stored value is a cache
// that must be recomputed on every XP change.
type ProgressState struct {
	XP                int       `json:"xp"`
	Level             int       `json:"level"`
	Streak            int       `json:"streak"`
	LastActivityDate  string    `json:"last_activity_date"`
	UnlockedBadgeIDs  []string  `json:"unlocked_badge_ids"`
	CompletedQuestIDs []string  `json:"completed_quest_ids"`
	QuizzesCompleted  int       `json:"quizzes_completed"`
	PerfectQuizzes    int       `json:"perfect_quizzes"`
	RolePlayScenarios []string  `json:"role_play_scenarios"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewProgressState returns the default state of a user with no recorded
// activity. Every read path falls back to this when no document exists.
func NewProgressState() *ProgressState {
	return &ProgressState{
		XP:               0,
		Level:            1,
		Streak:           0,
		LastActivityDate: EpochActivityDate,
	}
}

// Validate checks if the ProgressState has valid data.
func (s *ProgressState) Validate() error {
	if s.XP < 0 {
		return ErrNegativeXP
	}
	if s.Level < 1 {
		return ErrInvalidLevel
	}
	if s.Streak < 0 {
		return ErrNegativeStreak
	}
	if _, err := time.Parse(ActivityDateLayout, s.LastActivityDate); err != nil {
		return ErrInvalidActivityDate
	}
	return nil
}

// HasBadge reports whether the badge is already unlocked.
func (s *ProgressState) HasBadge(badgeID string) bool {
	for _, id := range s.UnlockedBadgeIDs {
		if id == badgeID {
			return true
		}
	}
	return false
}

// UnlockBadge records the badge as unlocked. Unlocking is one-way and
// idempotent: it returns true only on the first crossing.
func (s *ProgressState) UnlockBadge(badgeID string) bool {
	if s.HasBadge(badgeID) {
		return false
	}
	s.UnlockedBadgeIDs = append(s.UnlockedBadgeIDs, badgeID)
	return true
}

// HasCompletedQuest reports whether the quest ID has already been recorded.
func (s *ProgressState) HasCompletedQuest(questID string) bool {
	for _, id := range s.CompletedQuestIDs {
		if id == questID {
			return true
		}
	}
	return false
}

// HasRolePlayScenario reports whether the scenario has already been recorded.
func (s *ProgressState) HasRolePlayScenario(scenarioID string) bool {
	for _, id := range s.RolePlayScenarios {
		if id == scenarioID {
			return true
		}
	}
	return false
}
