package srs

import (
	"errors"
	"time"

	"github.com/minhokim/sejong-api/internal/domain"
)

// Common errors
var (
	ErrNilEntry = errors.New("deck entry cannot be nil")
)

// Service defines the interface for review scheduling operations.
type Service interface {
	// NewEntry creates a deck entry for a freshly saved vocabulary item,
	// scheduled at the minimum interval and due immediately.
	NewEntry(item domain.VocabItem, now time.Time) (*domain.DeckEntry, error)

	// Reschedule computes a new entry based on a recall outcome: growth on
	// success, reset on failure. The input entry is not modified.
	Reschedule(entry *domain.DeckEntry, wasCorrect bool, now time.Time) (*domain.DeckEntry, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduler service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a new scheduler service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// NewEntry implements the Service interface.
func (s *defaultService) NewEntry(item domain.VocabItem, now time.Time) (*domain.DeckEntry, error) {
	return domain.NewDeckEntry(item, s.params.DefaultEaseFactor, now)
}

// Reschedule implements the Service interface.
func (s *defaultService) Reschedule(
	entry *domain.DeckEntry,
	wasCorrect bool,
	now time.Time,
) (*domain.DeckEntry, error) {
	if entry == nil {
		return nil, ErrNilEntry
	}

	return calculateNextEntry(entry, wasCorrect, now, s.params), nil
}
