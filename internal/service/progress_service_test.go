package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/domain/progress"
	"github.com/minhokim/sejong-api/internal/events"
	"github.com/minhokim/sejong-api/internal/platform/docstore"
	"github.com/minhokim/sejong-api/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEmitter captures emitted events for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.ProgressEvent
	err    error
}

func (r *recordingEmitter) EmitEvent(ctx context.Context, event *events.ProgressEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingEmitter) byType(eventType string) []*events.ProgressEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*events.ProgressEvent
	for _, e := range r.events {
		if e.Type == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

// newProgressServiceForTest builds a progress service over an in-memory KV
// with a fixed clock and a recording emitter.
func newProgressServiceForTest(t *testing.T, now time.Time) (*progressServiceImpl, *storetest.MemoryKV, *recordingEmitter) {
	t.Helper()

	kv := storetest.NewMemoryKV()
	emitter := &recordingEmitter{}
	svc := NewProgressService(
		docstore.NewProgressStore(kv, discardLogger()),
		progress.NewDefaultParams(),
		emitter,
		discardLogger(),
	).(*progressServiceImpl)
	svc.timeFunc = func() time.Time { return now }

	return svc, kv, emitter
}

func badgeIDs(badges []domain.Badge) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestProgressService_GetState(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("fresh user gets the default state", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		state := svc.GetState(ctx, userID)
		require.NotNil(t, state)
		assert.Equal(t, 0, state.XP)
		assert.Equal(t, 1, state.Level)
		assert.Equal(t, 0, state.Streak)
		assert.Equal(t, domain.EpochActivityDate, state.LastActivityDate)
	})

	t.Run("read failure degrades to the default state", func(t *testing.T) {
		svc, kv, _ := newProgressServiceForTest(t, now)

		_, err := svc.AddXP(ctx, userID, 500)
		require.NoError(t, err)

		kv.FailReads = errors.New("connection refused")
		state := svc.GetState(ctx, userID)
		assert.Equal(t, 0, state.XP)
		assert.Equal(t, 1, state.Level)
	})
}

func TestProgressService_MutationReadFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	svc, kv, _ := newProgressServiceForTest(t, now)

	// Build up state worth losing: XP, a multi-day streak, quiz history.
	_, err := svc.AddXP(ctx, userID, 1200)
	require.NoError(t, err)
	svc.timeFunc = func() time.Time { return now.AddDate(0, 0, 1) }
	_, err = svc.RecordQuizCompletion(ctx, userID, 100)
	require.NoError(t, err)
	svc.timeFunc = func() time.Time { return now.AddDate(0, 0, 2) }
	_, err = svc.AddXP(ctx, userID, 10)
	require.NoError(t, err)

	before := svc.GetState(ctx, userID)
	require.Equal(t, 3, before.Streak)
	require.NotEmpty(t, before.UnlockedBadgeIDs)

	// Every mutation must fail outright on a broken read rather than apply
	// itself to the fresh default and overwrite the stored document.
	kv.FailReads = errors.New("connection refused")

	_, err = svc.AddXP(ctx, userID, 10)
	assert.Error(t, err)
	_, err = svc.RecordQuizCompletion(ctx, userID, 80)
	assert.Error(t, err)
	_, err = svc.RecordRolePlayCompletion(ctx, userID, "cafe-ordering")
	assert.Error(t, err)
	_, _, err = svc.RecordQuestCompletion(ctx, userID, "q-1", 50)
	assert.Error(t, err)
	_, err = svc.CheckDeckBadges(ctx, userID, 100)
	assert.Error(t, err)

	kv.FailReads = nil
	after := svc.GetState(ctx, userID)
	assert.Equal(t, before.XP, after.XP)
	assert.Equal(t, before.Streak, after.Streak)
	assert.Equal(t, before.UnlockedBadgeIDs, after.UnlockedBadgeIDs)
	assert.Equal(t, before.QuizzesCompleted, after.QuizzesCompleted)
	assert.Equal(t, before.CompletedQuestIDs, after.CompletedQuestIDs)
}

func TestProgressService_AddXP(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		for _, amount := range []int{0, -10} {
			_, err := svc.AddXP(ctx, userID, amount)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		}
	})

	t.Run("awards XP and recomputes the level", func(t *testing.T) {
		svc, _, emitter := newProgressServiceForTest(t, now)

		result, err := svc.AddXP(ctx, userID, 150)
		require.NoError(t, err)
		assert.Equal(t, 150, result.NewXP)
		assert.Equal(t, 2, result.NewLevel, "150 XP crosses the 100 XP level-2 threshold")
		assert.True(t, result.LeveledUp)
		assert.Equal(t, 1, result.Streak, "first activity starts a streak of 1")

		// Level from the stored state matches the curve.
		state := svc.GetState(ctx, userID)
		assert.Equal(t, progress.LevelForXP(state.XP, progress.NewDefaultParams()), state.Level)

		assert.Len(t, emitter.byType(events.EventTypeProgressUpdated), 1)
		assert.Len(t, emitter.byType(events.EventTypeLevelUp), 1)
	})

	t.Run("streak applies once per calendar day", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		first, err := svc.AddXP(ctx, userID, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, first.Streak)

		// Same day: unchanged.
		sameDay, err := svc.AddXP(ctx, userID, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, sameDay.Streak)

		// Next day: +1.
		svc.timeFunc = func() time.Time { return now.AddDate(0, 0, 1) }
		nextDay, err := svc.AddXP(ctx, userID, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, nextDay.Streak)

		// Two-day gap: reset to 1.
		svc.timeFunc = func() time.Time { return now.AddDate(0, 0, 3) }
		afterGap, err := svc.AddXP(ctx, userID, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, afterGap.Streak)
	})

	t.Run("streak badges unlock exactly once", func(t *testing.T) {
		svc, _, emitter := newProgressServiceForTest(t, now)

		var unlocked []string
		for day := 0; day < 4; day++ {
			d := day
			svc.timeFunc = func() time.Time { return now.AddDate(0, 0, d) }
			result, err := svc.AddXP(ctx, userID, 10)
			require.NoError(t, err)
			unlocked = append(unlocked, badgeIDs(result.NewBadges)...)
		}

		assert.Equal(t, []string{"streak-3"}, unlocked, "3-day streak badge appears once across all calls")
		assert.Len(t, emitter.byType(events.EventTypeBadgeUnlocked), 1)

		state := svc.GetState(ctx, userID)
		count := 0
		for _, id := range state.UnlockedBadgeIDs {
			if id == "streak-3" {
				count++
			}
		}
		assert.Equal(t, 1, count, "badge is in the unlocked set exactly once")
	})

	t.Run("propagates write failure", func(t *testing.T) {
		svc, kv, _ := newProgressServiceForTest(t, now)
		kv.FailWrites = errors.New("disk full")

		_, err := svc.AddXP(ctx, userID, 10)
		require.Error(t, err)
	})
}

func TestProgressService_RecordQuizCompletion(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("rejects out-of-range scores", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		for _, score := range []int{-1, 101} {
			_, err := svc.RecordQuizCompletion(ctx, userID, score)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		}
	})

	t.Run("awards quiz XP and unlocks quiz badges", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		result, err := svc.RecordQuizCompletion(ctx, userID, 95)
		require.NoError(t, err)
		assert.Equal(t, progress.NewDefaultParams().QuizXP, result.NewXP)
		assert.Contains(t, badgeIDs(result.NewBadges), "quiz-first")
		assert.Contains(t, badgeIDs(result.NewBadges), "quiz-ace")

		state := svc.GetState(ctx, userID)
		assert.Equal(t, 1, state.QuizzesCompleted)
		assert.Equal(t, 0, state.PerfectQuizzes, "95% is not a perfect score")
	})

	t.Run("perfect scores bump the perfect counter", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		_, err := svc.RecordQuizCompletion(ctx, userID, 100)
		require.NoError(t, err)

		state := svc.GetState(ctx, userID)
		assert.Equal(t, 1, state.PerfectQuizzes)
	})

	t.Run("quiz badges are not re-awarded", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		_, err := svc.RecordQuizCompletion(ctx, userID, 95)
		require.NoError(t, err)

		second, err := svc.RecordQuizCompletion(ctx, userID, 95)
		require.NoError(t, err)
		assert.NotContains(t, badgeIDs(second.NewBadges), "quiz-first")
		assert.NotContains(t, badgeIDs(second.NewBadges), "quiz-ace")
	})
}

func TestProgressService_RecordRolePlayCompletion(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("rejects empty scenario", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)
		_, err := svc.RecordRolePlayCompletion(ctx, userID, "")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("scenario set is distinct, XP is not", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		_, err := svc.RecordRolePlayCompletion(ctx, userID, "ordering-food")
		require.NoError(t, err)
		result, err := svc.RecordRolePlayCompletion(ctx, userID, "ordering-food")
		require.NoError(t, err)

		rolePlayXP := progress.NewDefaultParams().RolePlayXP
		assert.Equal(t, 2*rolePlayXP, result.NewXP, "repeating a scenario still earns XP")

		state := svc.GetState(ctx, userID)
		assert.Len(t, state.RolePlayScenarios, 1)
	})

	t.Run("five distinct scenarios unlock the badge", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		scenarios := []string{"cafe", "taxi", "market", "hospital", "bank"}
		var unlocked []string
		for _, sc := range scenarios {
			result, err := svc.RecordRolePlayCompletion(ctx, userID, sc)
			require.NoError(t, err)
			unlocked = append(unlocked, badgeIDs(result.NewBadges)...)
		}

		assert.Contains(t, unlocked, "roleplay-5")
	})
}

func TestProgressService_RecordQuestCompletion(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("validates input", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		_, _, err := svc.RecordQuestCompletion(ctx, userID, "", 100)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, _, err = svc.RecordQuestCompletion(ctx, userID, "quest-1", 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("first completion awards XP and the quest badge", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		result, completed, err := svc.RecordQuestCompletion(ctx, userID, "quest-2026-w18-1", 120)
		require.NoError(t, err)
		assert.True(t, completed)
		assert.Equal(t, 120, result.NewXP)
		assert.Contains(t, badgeIDs(result.NewBadges), "quest-first")
	})

	t.Run("repeat completion is a no-op", func(t *testing.T) {
		svc, _, emitter := newProgressServiceForTest(t, now)

		_, _, err := svc.RecordQuestCompletion(ctx, userID, "quest-2026-w18-1", 120)
		require.NoError(t, err)
		emitted := len(emitter.events)

		result, completed, err := svc.RecordQuestCompletion(ctx, userID, "quest-2026-w18-1", 120)
		require.NoError(t, err)
		assert.False(t, completed)
		assert.Equal(t, 120, result.NewXP, "XP is unchanged")
		assert.Len(t, emitter.events, emitted, "no events for a no-op")

		state := svc.GetState(ctx, userID)
		assert.Len(t, state.CompletedQuestIDs, 1)
	})
}

func TestProgressService_CheckDeckBadges(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	svc, _, emitter := newProgressServiceForTest(t, now)

	badges, err := svc.CheckDeckBadges(ctx, userID, 5)
	require.NoError(t, err)
	assert.Empty(t, badges)

	badges, err = svc.CheckDeckBadges(ctx, userID, 12)
	require.NoError(t, err)
	assert.Equal(t, []string{"deck-10"}, badgeIDs(badges))
	assert.Len(t, emitter.byType(events.EventTypeBadgeUnlocked), 1)

	// Second check at the same size: nothing new.
	badges, err = svc.CheckDeckBadges(ctx, userID, 12)
	require.NoError(t, err)
	assert.Empty(t, badges)

	badges, err = svc.CheckDeckBadges(ctx, userID, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"deck-50"}, badgeIDs(badges))
}

func TestProgressService_XPForLevel(t *testing.T) {
	svc, _, _ := newProgressServiceForTest(t, time.Now())

	_, err := svc.XPForLevel(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	params := progress.NewDefaultParams()
	for _, level := range []int{1, 2, 5, 10, 50} {
		xp, err := svc.XPForLevel(level)
		require.NoError(t, err)
		assert.Equal(t, progress.XPForLevel(level, params), xp)
	}
}

func TestProgressService_DeleteState(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("wipes the state", func(t *testing.T) {
		svc, _, _ := newProgressServiceForTest(t, now)

		_, err := svc.AddXP(ctx, userID, 300)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteState(ctx, userID))
		assert.Equal(t, 0, svc.GetState(ctx, userID).XP)
	})

	t.Run("propagates failure", func(t *testing.T) {
		svc, kv, _ := newProgressServiceForTest(t, now)
		kv.FailWrites = errors.New("backend down")

		require.Error(t, svc.DeleteState(ctx, userID))
	})
}
