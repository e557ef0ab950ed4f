package domain

import (
	"errors"
	"strings"
	"time"
)

// Vocabulary and deck validation errors
var (
	// ErrEmptyWord is returned when a vocabulary item has no word.
	ErrEmptyWord = errors.New("vocab item word cannot be empty")

	// ErrEmptyMeaning is returned when a vocabulary item has no meaning.
	ErrEmptyMeaning = errors.New("vocab item meaning cannot be empty")

	// ErrInvalidIntervalDays is returned when a deck entry's interval is below one day.
	ErrInvalidIntervalDays = errors.New("interval must be at least 1 day")

	// ErrInvalidEaseFactor is returned when a deck entry's ease factor is not above 1.0.
	ErrInvalidEaseFactor = errors.New("ease factor must be greater than 1.0")

	// ErrZeroDueDate is returned when a deck entry has no concrete due date.
	ErrZeroDueDate = errors.New("due date must be set")
)

// VocabItem is a single piece of vocabulary a learner has saved. Identity is
// the Word field by string equality; the deck rejects duplicates on insert.
type VocabItem struct {
	Word               string `json:"word"`
	Romanization       string `json:"romanization,omitempty"`
	Meaning            string `json:"meaning"`
	PartOfSpeech       string `json:"part_of_speech,omitempty"`
	ExampleSentence    string `json:"example_sentence,omitempty"`
	ExampleTranslation string `json:"example_translation,omitempty"`
}

// Validate checks if the VocabItem has valid data.
func (v *VocabItem) Validate() error {
	if strings.TrimSpace(v.Word) == "" {
		return ErrEmptyWord
	}
	if strings.TrimSpace(v.Meaning) == "" {
		return ErrEmptyMeaning
	}
	return nil
}

// DeckEntry wraps a VocabItem with its spaced-repetition schedule.
// An entry with no review history is due immediately.
type DeckEntry struct {
	Item         VocabItem `json:"item"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	DueDate      time.Time `json:"due_date"`
	AddedAt      time.Time `json:"added_at"`
	ReviewCount  int       `json:"review_count"`
	LastReviewed time.Time `json:"last_reviewed,omitempty"`
}

// NewDeckEntry creates a deck entry for a freshly saved word. The entry
// starts at the minimum interval with the given ease factor and is due
// immediately so the learner sees it in the next review session.
func NewDeckEntry(item VocabItem, easeFactor float64, now time.Time) (*DeckEntry, error) {
	entry := &DeckEntry{
		Item:         item,
		IntervalDays: 1,
		EaseFactor:   easeFactor,
		DueDate:      now,
		AddedAt:      now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the DeckEntry has valid data.
func (e *DeckEntry) Validate() error {
	if err := e.Item.Validate(); err != nil {
		return err
	}
	if e.IntervalDays < 1 {
		return ErrInvalidIntervalDays
	}
	if e.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}
	if e.DueDate.IsZero() {
		return ErrZeroDueDate
	}
	return nil
}

// IsDue reports whether the entry is due for review at the given time.
func (e *DeckEntry) IsDue(now time.Time) bool {
	return !e.DueDate.After(now)
}
