package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

func TestService_ToggleSave(t *testing.T) {
	t.Parallel()

	author := uuid.New()
	user := uuid.New()

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()

		_, err := svc.ToggleSave(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("note not found", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()

		_, err := svc.ToggleSave(authedCtx(user), uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("save", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		note := noteWith(author, domain.EngagementCounts{Upvotes: 1})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}

		created := false
		repos.saves.CreateFunc = func(_ context.Context, _, _ uuid.UUID) error {
			created = true
			return nil
		}

		res, err := svc.ToggleSave(authedCtx(user), note.ID)
		require.NoError(t, err)

		assert.True(t, created)
		assert.True(t, res.Saved)
		assert.Equal(t, 1, res.SaveCount)
		assert.Equal(t, 7, res.CredibilityScore)
		assert.Equal(t, []int{AuraSave}, repos.profiles.deltas)
	})

	t.Run("unsave", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		note := noteWith(author, domain.EngagementCounts{Saves: 2})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}
		repos.saves.ExistsFunc = func(_ context.Context, _, _ uuid.UUID) (bool, error) {
			return true, nil
		}

		deleted := false
		repos.saves.DeleteFunc = func(_ context.Context, _, _ uuid.UUID) error {
			deleted = true
			return nil
		}

		res, err := svc.ToggleSave(authedCtx(user), note.ID)
		require.NoError(t, err)

		assert.True(t, deleted)
		assert.False(t, res.Saved)
		assert.Equal(t, 1, res.SaveCount)
		assert.Equal(t, 5, res.CredibilityScore)
		assert.Equal(t, []int{-AuraSave}, repos.profiles.deltas)
	})

	t.Run("unsave clamps at zero", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		note := noteWith(author, domain.EngagementCounts{})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}
		repos.saves.ExistsFunc = func(_ context.Context, _, _ uuid.UUID) (bool, error) {
			return true, nil
		}

		res, err := svc.ToggleSave(authedCtx(user), note.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, res.SaveCount)
		assert.Equal(t, 0, res.CredibilityScore)
	})
}
