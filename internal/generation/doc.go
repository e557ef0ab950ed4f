// Package generation defines the boundary between the application core and
// the external AI service that produces weekly quests. The interface keeps
// the core free of any SDK types; the Gemini-backed implementation lives in
// internal/platform/gemini.
package generation
