package srs

import (
	"time"

	"github.com/minhokim/sejong-api/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor based on the recall
// outcome. Correct recalls nudge the factor up, failed recalls pull it down,
// and the result is always clamped to the configured limits so intervals can
// neither explode nor stall.
func calculateNewEaseFactor(currentEF float64, wasCorrect bool, params *Params) float64 {
	var newEF float64
	if wasCorrect {
		newEF = currentEF + params.CorrectEaseBonus
	} else {
		newEF = currentEF + params.IncorrectEasePenalty
	}

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateNewInterval determines how many days should pass until the next
// review of an entry.
//
// Algorithm behavior:
//   - Incorrect recall: the interval resets to the minimum, so the word is
//     relearned from scratch.
//   - Correct recall: the interval grows multiplicatively by the entry's
//     ease factor, capped at MaxIntervalDays.
//
// The returned value is always within [MinIntervalDays, MaxIntervalDays].
func calculateNewInterval(currentInterval int, easeFactor float64, wasCorrect bool, params *Params) int {
	if !wasCorrect {
		return params.MinIntervalDays
	}

	newInterval := int(float64(currentInterval) * easeFactor)
	if newInterval <= currentInterval {
		// Guard against a degenerate ease factor stalling progress.
		newInterval = currentInterval + 1
	}
	if newInterval > params.MaxIntervalDays {
		newInterval = params.MaxIntervalDays
	}
	if newInterval < params.MinIntervalDays {
		newInterval = params.MinIntervalDays
	}

	return newInterval
}

// calculateNextDueDate converts the new interval into a concrete due date.
// Failed entries are due again immediately; successful ones move strictly
// later by the full interval.
func calculateNextDueDate(interval int, wasCorrect bool, now time.Time) time.Time {
	if !wasCorrect {
		return now
	}
	return now.AddDate(0, 0, interval)
}

// calculateNextEntry creates a new DeckEntry with an updated schedule based
// on the recall outcome. It follows the immutable update pattern: the input
// entry is never modified, a rescheduled copy is returned.
func calculateNextEntry(entry *domain.DeckEntry, wasCorrect bool, now time.Time, params *Params) *domain.DeckEntry {
	newEntry := &domain.DeckEntry{
		Item:         entry.Item,
		IntervalDays: entry.IntervalDays,
		EaseFactor:   entry.EaseFactor,
		DueDate:      entry.DueDate,
		AddedAt:      entry.AddedAt,
		ReviewCount:  entry.ReviewCount,
		LastReviewed: entry.LastReviewed,
	}

	newEntry.ReviewCount++
	newEntry.LastReviewed = now
	newEntry.EaseFactor = calculateNewEaseFactor(entry.EaseFactor, wasCorrect, params)
	newEntry.IntervalDays = calculateNewInterval(entry.IntervalDays, newEntry.EaseFactor, wasCorrect, params)
	newEntry.DueDate = calculateNextDueDate(newEntry.IntervalDays, wasCorrect, now)

	return newEntry
}
