package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
	"github.com/Aazib-Ai/uolink-backend/pkg/ctxutil"
)

// Report files the caller's report of a note. One report per user per note:
// a duplicate fails with domain.ErrAlreadyReported and changes nothing.
// On success the report record is created PENDING, reportCount increments,
// the author loses 10 aura, and notes.last_reported_at is stamped, all in
// one transaction.
func (s *Service) Report(ctx context.Context, input ReportInput) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}

	err = s.tx.RunSerializable(ctx, func(txCtx context.Context) error {
		note, err := s.notes.Get(txCtx, input.NoteID)
		if err != nil {
			return fmt.Errorf("get note: %w", err)
		}

		exists, err := s.reports.Exists(txCtx, input.NoteID, userID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("note %s: %w", input.NoteID, domain.ErrAlreadyReported)
		}

		if _, err := s.reports.Create(txCtx, &domain.Report{
			ID:          uuid.New(),
			NoteID:      input.NoteID,
			ReporterID:  userID,
			Reason:      input.Reason,
			Description: input.Description,
			Status:      domain.ReportStatusPending,
		}); err != nil {
			return err
		}

		counts := note.Counts
		counts.Reports++
		counts = counts.Clamp()
		score := domain.CredibilityScore(counts)

		now := time.Now()
		if err := s.notes.UpdateEngagement(txCtx, input.NoteID, counts, score, &now); err != nil {
			return err
		}
		return s.applyAura(txCtx, note.AuthorID, AuraReport)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "note reported",
		slog.String("user_id", userID.String()),
		slog.String("note_id", input.NoteID.String()),
		slog.String("reason", input.Reason),
	)

	return nil
}

// UndoReport removes the caller's report and exactly inverts Report's
// effects: reportCount decrements (clamped) and the author regains 10 aura.
// A missing report fails with domain.ErrNotFound.
func (s *Service) UndoReport(ctx context.Context, noteID uuid.UUID) error {
	userID, err := callerID(ctx)
	if err != nil {
		return err
	}

	err = s.tx.RunSerializable(ctx, func(txCtx context.Context) error {
		note, err := s.notes.Get(txCtx, noteID)
		if err != nil {
			return fmt.Errorf("get note: %w", err)
		}

		if err := s.reports.Delete(txCtx, noteID, userID); err != nil {
			return err
		}

		counts := note.Counts
		counts.Reports--
		counts = counts.Clamp()
		score := domain.CredibilityScore(counts)

		if err := s.notes.UpdateEngagement(txCtx, noteID, counts, score, nil); err != nil {
			return err
		}
		return s.applyAura(txCtx, note.AuthorID, -AuraReport)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "report undone",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()),
	)

	return nil
}

// ReportStatus returns whether the caller reported the note and the note's
// current report count. Read-only.
func (s *Service) ReportStatus(ctx context.Context, noteID uuid.UUID) (*ReportStatusResult, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	note, err := s.notes.Get(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	hasReported, err := s.reports.Exists(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	return &ReportStatusResult{
		HasReported: hasReported,
		ReportCount: note.Counts.Reports,
	}, nil
}

// ListReports returns moderation reports matching the filter. Admin only.
func (s *Service) ListReports(ctx context.Context, filter domain.ReportFilter) ([]*domain.Report, int, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, 0, err
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, 0, domain.ErrForbidden
	}

	return s.reports.Find(ctx, filter)
}

// ResolveReport sets the moderation status of a report. Admin only.
// Status changes never touch counters or aura; UndoReport is the only path
// that reverses a report's ledger effects.
func (s *Service) ResolveReport(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus) (*domain.Report, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	rep, err := s.reports.UpdateStatus(ctx, reportID, status)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "report resolved",
		slog.String("report_id", reportID.String()),
		slog.String("status", string(status)),
	)

	return rep, nil
}
