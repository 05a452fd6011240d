package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

// ToggleSave flips the caller's save of a note: absent creates the record
// (saveCount+1, author aura +5), present deletes it (saveCount-1, aura -5).
func (s *Service) ToggleSave(ctx context.Context, noteID uuid.UUID) (*SaveResult, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	var res *SaveResult

	err = s.tx.RunSerializable(ctx, func(txCtx context.Context) error {
		note, err := s.notes.Get(txCtx, noteID)
		if err != nil {
			return fmt.Errorf("get note: %w", err)
		}

		saved, err := s.saves.Exists(txCtx, userID, noteID)
		if err != nil {
			return err
		}

		counts := note.Counts
		auraDelta := 0

		if saved {
			if err := s.saves.Delete(txCtx, userID, noteID); err != nil {
				return err
			}
			counts.Saves--
			auraDelta = -AuraSave
		} else {
			if err := s.saves.Create(txCtx, userID, noteID); err != nil {
				return err
			}
			counts.Saves++
			auraDelta = AuraSave
		}

		counts = counts.Clamp()
		score := domain.CredibilityScore(counts)

		if err := s.notes.UpdateEngagement(txCtx, noteID, counts, score, nil); err != nil {
			return err
		}
		if err := s.applyAura(txCtx, note.AuthorID, auraDelta); err != nil {
			return err
		}

		res = &SaveResult{
			Saved:            !saved,
			SaveCount:        counts.Saves,
			CredibilityScore: score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "save toggled",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()),
		slog.Bool("saved", res.Saved),
	)

	return res, nil
}
