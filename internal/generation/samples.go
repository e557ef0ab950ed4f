package generation

import (
	"fmt"
	"time"

	"github.com/minhokim/sejong-api/internal/domain"
)

// SampleQuests returns the static fallback quest set for the week containing
// now. Quest IDs embed the ISO week so a completion recorded this week does
// not suppress next week's regenerated quest of the same slot.
func SampleQuests(now time.Time) []domain.WeeklyQuest {
	year, week := now.ISOWeek()
	id := func(slot int) string {
		return fmt.Sprintf("quest-%d-w%02d-%d", year, week, slot)
	}

	return []domain.WeeklyQuest{
		{
			ID:            id(1),
			Title:         "Flashcard Marathon",
			Description:   "Review 20 words from your deck this week",
			XP:            100,
			FeatureTarget: "flashcards",
		},
		{
			ID:            id(2),
			Title:         "Quiz Champion",
			Description:   "Complete 3 quizzes with a score of 80% or higher",
			XP:            150,
			FeatureTarget: "quiz",
		},
		{
			ID:            id(3),
			Title:         "Word Hunter",
			Description:   "Save 10 new words to your deck",
			XP:            120,
			FeatureTarget: "dictionary",
		},
	}
}
