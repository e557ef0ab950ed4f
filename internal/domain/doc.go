// Package domain contains the core business entities of the application:
// users, vocabulary decks with spaced-repetition scheduling state, and the
// gamification progress record (XP, level, streak, badges, quests). It is
// independent of any specific infrastructure or delivery mechanism; the
// scheduling and progression rules themselves live in the srs and progress
// subpackages.
package domain
