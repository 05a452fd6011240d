package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

func TestService_Vote(t *testing.T) {
	t.Parallel()

	author := uuid.New()
	voter := uuid.New()

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()

		_, err := svc.Vote(context.Background(), uuid.New(), domain.VoteUp)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("invalid kind", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()

		_, err := svc.Vote(authedCtx(voter), uuid.New(), domain.VoteKind("SIDEWAYS"))
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.Vote(authedCtx(voter), uuid.New(), domain.VoteNone)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("note not found", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return nil, domain.ErrNotFound
		}

		_, err := svc.Vote(authedCtx(voter), uuid.New(), domain.VoteUp)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, repos.notes.updateCalls)
	})

	t.Run("first upvote", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		note := noteWith(author, domain.EngagementCounts{Upvotes: 3})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}

		var setKind domain.VoteKind
		repos.votes.SetFunc = func(_ context.Context, _, _ uuid.UUID, kind domain.VoteKind) error {
			setKind = kind
			return nil
		}

		var gotCounts domain.EngagementCounts
		var gotScore int
		repos.notes.UpdateEngagementFunc = func(_ context.Context, _ uuid.UUID, counts domain.EngagementCounts, score int, lastReportedAt *time.Time) error {
			gotCounts, gotScore = counts, score
			assert.Nil(t, lastReportedAt)
			return nil
		}

		res, err := svc.Vote(authedCtx(voter), note.ID, domain.VoteUp)
		require.NoError(t, err)

		assert.Equal(t, 4, res.Upvotes)
		assert.Equal(t, domain.VoteUp, res.UserVote)
		assert.Equal(t, 8, res.CredibilityScore)
		assert.Equal(t, domain.VoteUp, setKind)
		assert.Equal(t, 4, gotCounts.Upvotes)
		assert.Equal(t, 8, gotScore)
		assert.Equal(t, []int{AuraUpvote}, repos.profiles.deltas)
	})

	t.Run("repeat vote removes it", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		note := noteWith(author, domain.EngagementCounts{Downvotes: 2})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}
		repos.votes.GetFunc = func(_ context.Context, _, _ uuid.UUID) (domain.VoteKind, error) {
			return domain.VoteDown, nil
		}

		deleted := false
		repos.votes.DeleteFunc = func(_ context.Context, _, _ uuid.UUID) error {
			deleted = true
			return nil
		}

		res, err := svc.Vote(authedCtx(voter), note.ID, domain.VoteDown)
		require.NoError(t, err)

		assert.True(t, deleted)
		assert.Equal(t, 1, res.Downvotes)
		assert.Equal(t, domain.VoteNone, res.UserVote)
		assert.Equal(t, -3, res.CredibilityScore)
		// Removing a downvote gives the author back 3 aura.
		assert.Equal(t, []int{-AuraDownvote}, repos.profiles.deltas)
	})

	t.Run("switch down to up", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		note := noteWith(author, domain.EngagementCounts{Upvotes: 1, Downvotes: 1})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}
		repos.votes.GetFunc = func(_ context.Context, _, _ uuid.UUID) (domain.VoteKind, error) {
			return domain.VoteDown, nil
		}

		res, err := svc.Vote(authedCtx(voter), note.ID, domain.VoteUp)
		require.NoError(t, err)

		assert.Equal(t, 2, res.Upvotes)
		assert.Equal(t, 0, res.Downvotes)
		assert.Equal(t, domain.VoteUp, res.UserVote)
		assert.Equal(t, 4, res.CredibilityScore)
		// One aura write per transaction: −(−3) + 2 = +5.
		assert.Equal(t, []int{-AuraDownvote + AuraUpvote}, repos.profiles.deltas)
	})

	t.Run("counters never go negative", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		// A stored vote with a zero counter: undoing it must clamp at zero.
		note := noteWith(author, domain.EngagementCounts{})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}
		repos.votes.GetFunc = func(_ context.Context, _, _ uuid.UUID) (domain.VoteKind, error) {
			return domain.VoteUp, nil
		}

		res, err := svc.Vote(authedCtx(voter), note.ID, domain.VoteUp)
		require.NoError(t, err)

		assert.Equal(t, 0, res.Upvotes)
		assert.Equal(t, 0, res.CredibilityScore)
	})

	t.Run("author profile missing", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		note := noteWith(author, domain.EngagementCounts{})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}
		repos.profiles.AdjustAuraFunc = func(_ context.Context, _ uuid.UUID, _ int) error {
			return domain.ErrNotFound
		}

		res, err := svc.Vote(authedCtx(voter), note.ID, domain.VoteUp)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Upvotes)
		assert.Equal(t, 1, repos.notes.updateCalls)
	})

	t.Run("deleted author skips aura", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		note := noteWith(uuid.Nil, domain.EngagementCounts{})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}

		_, err := svc.Vote(authedCtx(voter), note.ID, domain.VoteUp)
		require.NoError(t, err)
		assert.Empty(t, repos.profiles.deltas)
	})

	t.Run("conflict surfaces", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		note := noteWith(author, domain.EngagementCounts{})
		repos.notes.GetFunc = func(_ context.Context, _ uuid.UUID) (*domain.Note, error) {
			return note, nil
		}
		repos.notes.UpdateEngagementFunc = func(_ context.Context, _ uuid.UUID, _ domain.EngagementCounts, _ int, _ *time.Time) error {
			return domain.ErrTxConflict
		}

		_, err := svc.Vote(authedCtx(voter), note.ID, domain.VoteUp)
		assert.ErrorIs(t, err, domain.ErrTxConflict)
	})
}
