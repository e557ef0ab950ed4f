// Package service provides application-level services for managing decks,
// progress, quests, and users.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrWordNotInDeck indicates a review or removal targeted a word the
	// user's deck does not contain.
	// API layer should map this to HTTP 404 Not Found.
	ErrWordNotInDeck = errors.New("word not in deck")

	// ErrInvalidAmount indicates a non-positive or otherwise unusable
	// numeric input (XP amount, quiz score, level).
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCredentials indicates a login attempt with a wrong email or
	// password. Deliberately indistinguishable between the two cases.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ServiceError wraps errors from the service layer with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "add_words", "record_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError for the given operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
