package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

// Vote applies a 3-state vote toggle for the caller on a note.
//
// Repeating the stored vote removes it; a different vote first reverses the
// stored one, then applies the new one. Counters, the derived credibility
// score, the caller's vote record, and the author's aura all commit in a
// single serializable transaction.
func (s *Service) Vote(ctx context.Context, noteID uuid.UUID, desired domain.VoteKind) (*VoteResult, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if desired != domain.VoteUp && desired != domain.VoteDown {
		return nil, domain.NewValidationError("vote", "must be UP or DOWN")
	}

	var res *VoteResult

	err = s.tx.RunSerializable(ctx, func(txCtx context.Context) error {
		note, err := s.notes.Get(txCtx, noteID)
		if err != nil {
			return fmt.Errorf("get note: %w", err)
		}

		stored, err := s.votes.Get(txCtx, userID, noteID)
		if err != nil {
			return fmt.Errorf("get vote: %w", err)
		}

		counts := note.Counts
		auraDelta := 0
		newVote := domain.VoteNone

		if stored == desired {
			// Same vote again: remove it.
			if err := s.votes.Delete(txCtx, userID, noteID); err != nil {
				return err
			}
			counts = decVote(counts, stored)
			auraDelta -= voteAura(stored)
		} else {
			if stored != domain.VoteNone {
				counts = decVote(counts, stored)
				auraDelta -= voteAura(stored)
			}
			counts = incVote(counts, desired)
			auraDelta += voteAura(desired)
			if err := s.votes.Set(txCtx, userID, noteID, desired); err != nil {
				return err
			}
			newVote = desired
		}

		counts = counts.Clamp()
		score := domain.CredibilityScore(counts)

		if err := s.notes.UpdateEngagement(txCtx, noteID, counts, score, nil); err != nil {
			return err
		}
		if err := s.applyAura(txCtx, note.AuthorID, auraDelta); err != nil {
			return err
		}

		res = &VoteResult{
			Upvotes:          counts.Upvotes,
			Downvotes:        counts.Downvotes,
			UserVote:         newVote,
			CredibilityScore: score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "vote applied",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()),
		slog.String("vote", string(res.UserVote)),
		slog.Int("score", res.CredibilityScore),
	)

	return res, nil
}

func voteAura(kind domain.VoteKind) int {
	if kind == domain.VoteUp {
		return AuraUpvote
	}
	return AuraDownvote
}

func incVote(c domain.EngagementCounts, kind domain.VoteKind) domain.EngagementCounts {
	if kind == domain.VoteUp {
		c.Upvotes++
	} else {
		c.Downvotes++
	}
	return c
}

func decVote(c domain.EngagementCounts, kind domain.VoteKind) domain.EngagementCounts {
	if kind == domain.VoteUp {
		c.Upvotes--
	} else {
		c.Downvotes--
	}
	return c
}
