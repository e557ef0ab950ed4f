// Package gemini provides an implementation of the generation interfaces
// using Google's Gemini API.
package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	ProfileHint string
	WeekLabel   string
}

// ResponseSchema represents the expected structure of the quest payload
// returned by the Gemini API
type ResponseSchema struct {
	// Quests is the array of weekly quests generated for the user
	Quests []QuestSchema `json:"quests"`
}

// QuestSchema represents a single weekly quest in the API response
type QuestSchema struct {
	// Title is the short display name of the quest
	Title string `json:"title"`

	// Description explains what the learner has to do
	Description string `json:"description"`

	// XP is the reward for completing the quest
	XP int `json:"xp"`

	// FeatureTarget names the app feature the quest points at
	// (quiz, flashcards, dictionary, stories, pronunciation, roleplay)
	FeatureTarget string `json:"feature_target"`
}
