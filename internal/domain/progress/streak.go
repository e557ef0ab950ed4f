package progress

import (
	"time"

	"github.com/minhokim/sejong-api/internal/domain"
)

// NextStreak applies the daily streak transition for an activity happening
// at the given time:
//
//   - same calendar day as the last activity: streak unchanged
//   - exactly one day later: streak + 1
//   - a gap of two or more days: streak resets to 1 (not 0 — the activity
//     itself counts as day one of the new streak)
//
// Comparison is by local calendar date, never by instant, so the transition
// is deterministic across midnight rollovers regardless of time of day.
// The returned date string is the new LastActivityDate.
func NextStreak(current int, lastActivityDate string, now time.Time) (int, string) {
	today := now.Format(domain.ActivityDateLayout)

	last, err := time.ParseInLocation(domain.ActivityDateLayout, lastActivityDate, now.Location())
	if err != nil {
		// An unparseable date is treated like no prior activity.
		return 1, today
	}

	switch daysBetween(last, now) {
	case 0:
		return current, today
	case 1:
		return current + 1, today
	default:
		return 1, today
	}
}

// daysBetween returns the number of whole calendar days from a to b,
// ignoring time of day.
func daysBetween(a, b time.Time) int {
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay).Hours() / 24)
}
