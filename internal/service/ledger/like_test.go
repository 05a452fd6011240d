package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

func TestService_LikeComment(t *testing.T) {
	t.Parallel()

	commentAuthor := uuid.New()
	user := uuid.New()

	comment := func(likes int) *domain.Comment {
		return &domain.Comment{
			ID:       uuid.New(),
			NoteID:   uuid.New(),
			AuthorID: commentAuthor,
			Body:     "great summary, thanks",
			Likes:    likes,
		}
	}

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()

		_, err := svc.LikeComment(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("comment not found", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService()

		_, err := svc.LikeComment(authedCtx(user), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("own comment rejected", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		c := comment(0)
		repos.comments.GetFunc = func(_ context.Context, _, _ uuid.UUID) (*domain.Comment, error) {
			return c, nil
		}

		_, err := svc.LikeComment(authedCtx(commentAuthor), c.NoteID, c.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Zero(t, repos.comments.updateLikesCalls)
		assert.Empty(t, repos.profiles.deltas)
	})

	t.Run("like", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		c := comment(4)
		repos.comments.GetFunc = func(_ context.Context, _, _ uuid.UUID) (*domain.Comment, error) {
			return c, nil
		}

		var gotLikes int
		repos.comments.UpdateLikesFunc = func(_ context.Context, _ uuid.UUID, likes int) error {
			gotLikes = likes
			return nil
		}

		liked, err := svc.LikeComment(authedCtx(user), c.NoteID, c.ID)
		require.NoError(t, err)

		assert.True(t, liked)
		assert.Equal(t, 5, gotLikes)
		assert.Equal(t, []int{AuraCommentLike}, repos.profiles.deltas)
	})

	t.Run("unlike", func(t *testing.T) {
		t.Parallel()

		svc, repos := newTestService()
		c := comment(1)
		repos.comments.GetFunc = func(_ context.Context, _, _ uuid.UUID) (*domain.Comment, error) {
			return c, nil
		}
		repos.comments.LikeExistsFunc = func(_ context.Context, _, _ uuid.UUID) (bool, error) {
			return true, nil
		}

		var gotLikes int
		repos.comments.UpdateLikesFunc = func(_ context.Context, _ uuid.UUID, likes int) error {
			gotLikes = likes
			return nil
		}

		liked, err := svc.LikeComment(authedCtx(user), c.NoteID, c.ID)
		require.NoError(t, err)

		assert.False(t, liked)
		assert.Equal(t, 0, gotLikes)
		assert.Equal(t, []int{-AuraCommentLike}, repos.profiles.deltas)
	})
}

func TestReportInput_Validate(t *testing.T) {
	t.Parallel()

	longReason := make([]byte, maxReasonLen+1)
	for i := range longReason {
		longReason[i] = 'x'
	}

	tests := []struct {
		name    string
		input   ReportInput
		wantErr bool
	}{
		{
			name:  "valid",
			input: ReportInput{NoteID: uuid.New(), Reason: "off topic"},
		},
		{
			name:    "missing note id",
			input:   ReportInput{Reason: "off topic"},
			wantErr: true,
		},
		{
			name:    "blank reason",
			input:   ReportInput{NoteID: uuid.New(), Reason: "   "},
			wantErr: true,
		},
		{
			name:    "reason too long",
			input:   ReportInput{NoteID: uuid.New(), Reason: string(longReason)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
