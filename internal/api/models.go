package api

import (
	"github.com/google/uuid"

	"github.com/minhokim/sejong-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT access token used for API authorization
	Token string `json:"token"`
}

// AddWordsRequest defines the payload for saving vocabulary to the deck.
type AddWordsRequest struct {
	Items []domain.VocabItem `json:"items" validate:"required,min=1,dive"`
}

// AddWordsResponse reports how many of the submitted words were new.
type AddWordsResponse struct {
	Added    int            `json:"added"`
	DeckSize int            `json:"deck_size"`
	Badges   []domain.Badge `json:"badges,omitempty"`
}

// ReviewRequest defines the payload for recording a review outcome.
type ReviewRequest struct {
	Word    string `json:"word"    validate:"required"`
	Correct *bool  `json:"correct" validate:"required"`
}

// DeckResponse wraps the deck entries for list endpoints.
type DeckResponse struct {
	Entries []domain.DeckEntry `json:"entries"`
	Count   int                `json:"count"`
}

// AddXPRequest defines the payload for the manual XP award endpoint.
type AddXPRequest struct {
	Amount int `json:"amount" validate:"required"`
}

// QuizCompletionRequest defines the payload for recording a finished quiz.
type QuizCompletionRequest struct {
	ScorePercent *int `json:"score_percent" validate:"required,min=0,max=100"`
}

// RolePlayCompletionRequest defines the payload for recording a finished
// role-play session.
type RolePlayCompletionRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// QuestCompletionRequest carries the XP reward of the quest being completed.
type QuestCompletionRequest struct {
	XP int `json:"xp" validate:"required,min=1"`
}

// LevelXPResponse reports the total XP required to reach a level.
type LevelXPResponse struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

// GenerateQuestsRequest defines the payload for the weekly quest endpoint.
// The profile hint is free-form text describing the learner's recent focus.
type GenerateQuestsRequest struct {
	ProfileHint string `json:"profile_hint"`
}
