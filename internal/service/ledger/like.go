package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

// LikeComment toggles the caller's like on a comment under a note.
// Authors cannot like their own comments. Returns the resulting liked state.
func (s *Service) LikeComment(ctx context.Context, noteID, commentID uuid.UUID) (bool, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return false, err
	}

	var liked bool

	err = s.tx.RunSerializable(ctx, func(txCtx context.Context) error {
		comment, err := s.comments.Get(txCtx, noteID, commentID)
		if err != nil {
			return fmt.Errorf("get comment: %w", err)
		}
		if comment.AuthorID == userID {
			return fmt.Errorf("cannot like own comment: %w", domain.ErrForbidden)
		}

		hasLiked, err := s.comments.LikeExists(txCtx, userID, commentID)
		if err != nil {
			return err
		}

		likes := comment.Likes
		auraDelta := 0

		if hasLiked {
			if err := s.comments.DeleteLike(txCtx, userID, commentID); err != nil {
				return err
			}
			likes--
			auraDelta = -AuraCommentLike
			liked = false
		} else {
			if err := s.comments.CreateLike(txCtx, userID, commentID); err != nil {
				return err
			}
			likes++
			auraDelta = AuraCommentLike
			liked = true
		}

		if err := s.comments.UpdateLikes(txCtx, commentID, max(likes, 0)); err != nil {
			return err
		}
		return s.applyAura(txCtx, comment.AuthorID, auraDelta)
	})
	if err != nil {
		return false, err
	}

	s.log.InfoContext(ctx, "comment like toggled",
		slog.String("user_id", userID.String()),
		slog.String("comment_id", commentID.String()),
		slog.Bool("liked", liked),
	)

	return liked, nil
}
