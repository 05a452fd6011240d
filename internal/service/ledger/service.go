// Package ledger implements the reputation ledger: the engagement counters
// on a note, the aura score on a contributor's profile, and the membership
// records that keep every user action at-most-once.
//
// Every mutation is one serializable transaction that re-reads all state it
// depends on, so a retry after a write conflict recomputes the outcome from
// fresh reads instead of replaying stale arithmetic.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
	"github.com/Aazib-Ai/uolink-backend/pkg/ctxutil"
)

// Aura deltas credited to a note's author per engagement action.
// Reversing an action applies the negated delta.
const (
	AuraUpvote      = 2
	AuraDownvote    = -3
	AuraSave        = 5
	AuraReport      = -10
	AuraCommentLike = 1
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type noteRepo interface {
	Get(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)
	UpdateEngagement(ctx context.Context, noteID uuid.UUID, counts domain.EngagementCounts, score int, lastReportedAt *time.Time) error
}

type voteRepo interface {
	Get(ctx context.Context, userID, noteID uuid.UUID) (domain.VoteKind, error)
	Set(ctx context.Context, userID, noteID uuid.UUID, kind domain.VoteKind) error
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

type saveRepo interface {
	Exists(ctx context.Context, userID, noteID uuid.UUID) (bool, error)
	Create(ctx context.Context, userID, noteID uuid.UUID) error
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
}

type reportRepo interface {
	Exists(ctx context.Context, noteID, reporterID uuid.UUID) (bool, error)
	Create(ctx context.Context, rep *domain.Report) (*domain.Report, error)
	Delete(ctx context.Context, noteID, reporterID uuid.UUID) error
	GetByID(ctx context.Context, reportID uuid.UUID) (*domain.Report, error)
	UpdateStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus) (*domain.Report, error)
	Find(ctx context.Context, filter domain.ReportFilter) ([]*domain.Report, int, error)
}

type commentRepo interface {
	Get(ctx context.Context, noteID, commentID uuid.UUID) (*domain.Comment, error)
	UpdateLikes(ctx context.Context, commentID uuid.UUID, likes int) error
	LikeExists(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	CreateLike(ctx context.Context, userID, commentID uuid.UUID) error
	DeleteLike(ctx context.Context, userID, commentID uuid.UUID) error
}

type profileRepo interface {
	AdjustAura(ctx context.Context, userID uuid.UUID, delta int) error
}

type txManager interface {
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the reputation-ledger business logic.
type Service struct {
	notes    noteRepo
	votes    voteRepo
	saves    saveRepo
	reports  reportRepo
	comments commentRepo
	profiles profileRepo
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new ledger service.
func NewService(
	log *slog.Logger,
	notes noteRepo,
	votes voteRepo,
	saves saveRepo,
	reports reportRepo,
	comments commentRepo,
	profiles profileRepo,
	tx txManager,
) *Service {
	return &Service{
		notes:    notes,
		votes:    votes,
		saves:    saves,
		reports:  reports,
		comments: comments,
		profiles: profiles,
		tx:       tx,
		log:      log.With("service", "ledger"),
	}
}

// applyAura adds delta to the user's aura inside the caller's transaction.
// A nil user or zero delta is a no-op. A missing profile is skipped rather
// than failing the transaction: engagement counters must still update when
// the author's account is gone.
func (s *Service) applyAura(ctx context.Context, userID uuid.UUID, delta int) error {
	if userID == uuid.Nil || delta == 0 {
		return nil
	}

	err := s.profiles.AdjustAura(ctx, userID, delta)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.DebugContext(ctx, "aura target missing, skipping",
			slog.String("user_id", userID.String()),
			slog.Int("delta", delta),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("adjust aura: %w", err)
	}
	return nil
}

// callerID extracts the authenticated user from the context.
func callerID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}
