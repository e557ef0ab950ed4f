package progress

import (
	"github.com/minhokim/sejong-api/internal/domain"
)

// evalContext carries the inputs a badge predicate may inspect beyond the
// progress state itself.
type evalContext struct {
	state        *domain.ProgressState
	deckSize     int
	quizScorePct int
}

// badgeDef pairs a catalog entry with its unlock predicate.
type badgeDef struct {
	badge     domain.Badge
	satisfied func(ctx evalContext) bool
}

// badgeDefs is the canonical badge catalog. IDs must stay stable because
// clients persist them in unlocked-badge sets.
func badgeDefs() []badgeDef {
	return []badgeDef{
		{
			badge: domain.Badge{ID: "streak-3", Name: "Warming Up", Icon: "🔥", Description: "Practice 3 days in a row"},
			satisfied: func(ctx evalContext) bool {
				return ctx.state.Streak >= 3
			},
		},
		{
			badge: domain.Badge{ID: "streak-7", Name: "One Full Week", Icon: "📅", Description: "Practice 7 days in a row"},
			satisfied: func(ctx evalContext) bool {
				return ctx.state.Streak >= 7
			},
		},
		{
			badge: domain.Badge{ID: "streak-30", Name: "Habit Formed", Icon: "🏮", Description: "Practice 30 days in a row"},
			satisfied: func(ctx evalContext) bool {
				return ctx.state.Streak >= 30
			},
		},
		{
			badge: domain.Badge{ID: "level-5", Name: "Getting Serious", Icon: "⭐", Description: "Reach level 5"},
			satisfied: func(ctx evalContext) bool {
				return ctx.state.Level >= 5
			},
		},
		{
			badge: domain.Badge{ID: "level-10", Name: "Dedicated Learner", Icon: "🌟", Description: "Reach level 10"},
			satisfied: func(ctx evalContext) bool {
				return ctx.state.Level >= 10
			},
		},
		{
			badge: domain.Badge{ID: "deck-10", Name: "Word Collector", Icon: "📚", Description: "Save 10 words to your deck"},
			satisfied: func(ctx evalContext) bool {
				return ctx.deckSize >= 10
			},
		},
		{
			badge: domain.Badge{ID: "deck-50", Name: "Lexicon Builder", Icon: "🗂️", Description: "Save 50 words to your deck"},
			satisfied: func(ctx evalContext) bool {
				return ctx.deckSize >= 50
			},
		},
		{
			badge: domain.Badge{ID: "quiz-first", Name: "First Quiz", Icon: "✏️", Description: "Complete your first quiz"},
			satisfied: func(ctx evalContext) bool {
				return ctx.state.QuizzesCompleted >= 1
			},
		},
		{
			badge: domain.Badge{ID: "quiz-ace", Name: "Quiz Ace", Icon: "🎯", Description: "Score 90% or higher on a quiz"},
			satisfied: func(ctx evalContext) bool {
				return ctx.quizScorePct >= 90
			},
		},
		{
			badge: domain.Badge{ID: "quiz-perfect-10", Name: "Perfectionist", Icon: "💯", Description: "Score 100% on 10 quizzes"},
			satisfied: func(ctx evalContext) bool {
				return ctx.state.PerfectQuizzes >= 10
			},
		},
		{
			badge: domain.Badge{ID: "roleplay-5", Name: "Conversationalist", Icon: "💬", Description: "Complete 5 role-play scenarios"},
			satisfied: func(ctx evalContext) bool {
				return len(ctx.state.RolePlayScenarios) >= 5
			},
		},
		{
			badge: domain.Badge{ID: "quest-first", Name: "Quest Taker", Icon: "🗺️", Description: "Complete a weekly quest"},
			satisfied: func(ctx evalContext) bool {
				return len(ctx.state.CompletedQuestIDs) >= 1
			},
		},
	}
}

// Catalog returns the full static badge catalog.
func Catalog() []domain.Badge {
	defs := badgeDefs()
	badges := make([]domain.Badge, 0, len(defs))
	for _, def := range defs {
		badges = append(badges, def.badge)
	}
	return badges
}

// evaluate checks every badge predicate against the context and unlocks the
// ones newly satisfied. A badge already present in the state is never
// re-unlocked and never appears in the returned list, so repeated checks of
// the same condition are no-ops.
func evaluate(ctx evalContext) []domain.Badge {
	var newlyUnlocked []domain.Badge
	for _, def := range badgeDefs() {
		if ctx.state.HasBadge(def.badge.ID) {
			continue
		}
		if def.satisfied(ctx) && ctx.state.UnlockBadge(def.badge.ID) {
			newlyUnlocked = append(newlyUnlocked, def.badge)
		}
	}
	return newlyUnlocked
}

// EvaluateBadges checks level and streak badges after any XP change.
func EvaluateBadges(state *domain.ProgressState) []domain.Badge {
	return evaluate(evalContext{state: state})
}

// EvaluateDeckBadges checks deck-size badges.
func EvaluateDeckBadges(state *domain.ProgressState, deckSize int) []domain.Badge {
	return evaluate(evalContext{state: state, deckSize: deckSize})
}

// EvaluateQuizBadges checks quiz badges against a completed quiz's score.
func EvaluateQuizBadges(state *domain.ProgressState, scorePercent int) []domain.Badge {
	return evaluate(evalContext{state: state, quizScorePct: scorePercent})
}
