package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minhokim/sejong-api/internal/domain"
	"github.com/minhokim/sejong-api/internal/domain/srs"
	"github.com/minhokim/sejong-api/internal/platform/docstore"
	"github.com/minhokim/sejong-api/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newDeckServiceForTest builds a deck service over an in-memory KV with a
// fixed clock.
func newDeckServiceForTest(t *testing.T, now time.Time) (*deckServiceImpl, *storetest.MemoryKV) {
	t.Helper()

	kv := storetest.NewMemoryKV()
	svc := NewDeckService(
		docstore.NewDeckStore(kv, discardLogger()),
		srs.NewDefaultService(),
		discardLogger(),
	).(*deckServiceImpl)
	svc.timeFunc = func() time.Time { return now }

	return svc, kv
}

func sampleItems() []domain.VocabItem {
	return []domain.VocabItem{
		{Word: "안녕하세요", Romanization: "annyeonghaseyo", Meaning: "hello", PartOfSpeech: "interjection"},
		{Word: "감사합니다", Romanization: "gamsahamnida", Meaning: "thank you", PartOfSpeech: "verb"},
	}
}

func TestDeckService_AddWords(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("inserts fresh words", func(t *testing.T) {
		svc, _ := newDeckServiceForTest(t, now)

		result, err := svc.AddWords(ctx, userID, sampleItems())
		require.NoError(t, err)
		assert.Equal(t, 2, result.Added)
		assert.Equal(t, 2, result.DeckSize)

		deck := svc.GetDeck(ctx, userID)
		require.Len(t, deck, 2)
		assert.Equal(t, 1, deck[0].IntervalDays, "fresh entries start at the minimum interval")
		assert.True(t, deck[0].DueDate.Equal(now), "fresh entries are due immediately")
	})

	t.Run("repeated insert is idempotent", func(t *testing.T) {
		svc, _ := newDeckServiceForTest(t, now)

		first, err := svc.AddWords(ctx, userID, sampleItems())
		require.NoError(t, err)
		require.Equal(t, 2, first.Added)

		second, err := svc.AddWords(ctx, userID, sampleItems())
		require.NoError(t, err)
		assert.Equal(t, 0, second.Added, "duplicates are silently skipped")
		assert.Equal(t, 2, second.DeckSize)
		assert.Equal(t, 2, svc.DeckSize(ctx, userID))
	})

	t.Run("duplicates within one batch count once", func(t *testing.T) {
		svc, _ := newDeckServiceForTest(t, now)

		items := append(sampleItems(), sampleItems()[0])
		result, err := svc.AddWords(ctx, userID, items)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Added)
	})

	t.Run("rejects invalid item", func(t *testing.T) {
		svc, _ := newDeckServiceForTest(t, now)

		_, err := svc.AddWords(ctx, userID, []domain.VocabItem{{Word: "", Meaning: "nothing"}})
		require.Error(t, err)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "add_words", svcErr.Operation)
	})

	t.Run("propagates write failure", func(t *testing.T) {
		svc, kv := newDeckServiceForTest(t, now)
		kv.FailWrites = errors.New("disk full")

		_, err := svc.AddWords(ctx, userID, sampleItems())
		require.Error(t, err)
	})
}

func TestDeckService_ReadDegradation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("empty deck for fresh user", func(t *testing.T) {
		svc, _ := newDeckServiceForTest(t, now)

		deck := svc.GetDeck(ctx, userID)
		assert.NotNil(t, deck)
		assert.Empty(t, deck)
		assert.Equal(t, 0, svc.DeckSize(ctx, userID))
	})

	t.Run("read failure degrades to empty deck", func(t *testing.T) {
		svc, kv := newDeckServiceForTest(t, now)

		_, err := svc.AddWords(ctx, userID, sampleItems())
		require.NoError(t, err)

		kv.FailReads = errors.New("connection refused")
		assert.Empty(t, svc.GetDeck(ctx, userID))
		assert.Equal(t, 0, svc.DeckSize(ctx, userID))
		assert.Empty(t, svc.DueEntries(ctx, userID, now))
	})
}

func TestDeckService_DueEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	svc, _ := newDeckServiceForTest(t, now)
	_, err := svc.AddWords(ctx, userID, sampleItems())
	require.NoError(t, err)

	// Everything is due immediately after insert.
	assert.Len(t, svc.DueEntries(ctx, userID, now), 2)

	// A correct review pushes one word into the future.
	_, err = svc.RecordReviewOutcome(ctx, userID, "안녕하세요", true)
	require.NoError(t, err)

	due := svc.DueEntries(ctx, userID, now)
	require.Len(t, due, 1)
	assert.Equal(t, "감사합니다", due[0].Item.Word)

	// The rescheduled word comes back once its due date passes.
	assert.Len(t, svc.DueEntries(ctx, userID, now.AddDate(0, 0, 30)), 2)
}

func TestDeckService_RecordReviewOutcome(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("correct review grows the interval", func(t *testing.T) {
		svc, _ := newDeckServiceForTest(t, now)
		_, err := svc.AddWords(ctx, userID, sampleItems())
		require.NoError(t, err)

		updated, err := svc.RecordReviewOutcome(ctx, userID, "안녕하세요", true)
		require.NoError(t, err)
		assert.Greater(t, updated.IntervalDays, 1)
		assert.True(t, updated.DueDate.After(now))
		assert.Greater(t, updated.EaseFactor, 2.0, "ease drifts up on success")
		assert.Equal(t, 1, updated.ReviewCount)

		// The stored deck reflects the reschedule.
		deck := svc.GetDeck(ctx, userID)
		for _, entry := range deck {
			if entry.Item.Word == "안녕하세요" {
				assert.Equal(t, updated.IntervalDays, entry.IntervalDays)
			}
		}
	})

	t.Run("incorrect review resets the interval", func(t *testing.T) {
		svc, _ := newDeckServiceForTest(t, now)
		_, err := svc.AddWords(ctx, userID, sampleItems())
		require.NoError(t, err)

		// Grow first so the reset is observable.
		_, err = svc.RecordReviewOutcome(ctx, userID, "안녕하세요", true)
		require.NoError(t, err)

		updated, err := svc.RecordReviewOutcome(ctx, userID, "안녕하세요", false)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.IntervalDays)
		assert.True(t, updated.DueDate.Equal(now), "failed words come due immediately")
		assert.Less(t, updated.EaseFactor, 2.0, "ease drifts down on failure")
	})

	t.Run("unknown word", func(t *testing.T) {
		svc, _ := newDeckServiceForTest(t, now)

		_, err := svc.RecordReviewOutcome(ctx, userID, "없는말", true)
		assert.ErrorIs(t, err, ErrWordNotInDeck)
	})
}

func TestDeckService_RemoveWord(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	svc, _ := newDeckServiceForTest(t, now)
	_, err := svc.AddWords(ctx, userID, sampleItems())
	require.NoError(t, err)

	require.NoError(t, svc.RemoveWord(ctx, userID, "안녕하세요"))
	assert.Equal(t, 1, svc.DeckSize(ctx, userID))

	assert.ErrorIs(t, svc.RemoveWord(ctx, userID, "안녕하세요"), ErrWordNotInDeck)
}

func TestDeckService_DeleteDeck(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("wipes the deck", func(t *testing.T) {
		svc, _ := newDeckServiceForTest(t, now)
		_, err := svc.AddWords(ctx, userID, sampleItems())
		require.NoError(t, err)

		require.NoError(t, svc.DeleteDeck(ctx, userID))
		assert.Equal(t, 0, svc.DeckSize(ctx, userID))
	})

	t.Run("propagates failure", func(t *testing.T) {
		svc, kv := newDeckServiceForTest(t, now)
		kv.FailWrites = errors.New("backend down")

		err := svc.DeleteDeck(ctx, userID)
		require.Error(t, err, "destructive actions never swallow errors")
	})
}
