// Package note implements note publishing and browsing: creating notes,
// reading them together with the caller's engagement state, listing saved
// notes, and adding comments.
package note

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

// AuraNoteCreated is the aura credited to an author for publishing a note.
const AuraNoteCreated = 10

type noteRepo interface {
	Get(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	ListSavedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Note, error)
}

type voteRepo interface {
	Get(ctx context.Context, userID, noteID uuid.UUID) (domain.VoteKind, error)
}

type saveRepo interface {
	Exists(ctx context.Context, userID, noteID uuid.UUID) (bool, error)
}

type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
}

type profileRepo interface {
	AdjustAura(ctx context.Context, userID uuid.UUID, delta int) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the note business logic.
type Service struct {
	notes    noteRepo
	votes    voteRepo
	saves    saveRepo
	comments commentRepo
	profiles profileRepo
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new note service.
func NewService(
	log *slog.Logger,
	notes noteRepo,
	votes voteRepo,
	saves saveRepo,
	comments commentRepo,
	profiles profileRepo,
	tx txManager,
) *Service {
	return &Service{
		notes:    notes,
		votes:    votes,
		saves:    saves,
		comments: comments,
		profiles: profiles,
		tx:       tx,
		log:      log.With("service", "note"),
	}
}

// Create publishes a note authored by the caller. Counters and the score
// start at zero; the author is credited 10 aura in the same transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Note

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.notes.Create(txCtx, &domain.Note{
			ID:          uuid.New(),
			AuthorID:    userID,
			Title:       input.Title,
			Subject:     input.Subject,
			Description: input.Description,
			FileURL:     input.FileURL,
		})
		if err != nil {
			return fmt.Errorf("create note: %w", err)
		}

		err = s.profiles.AdjustAura(txCtx, userID, AuraNoteCreated)
		if errors.Is(err, domain.ErrNotFound) {
			s.log.DebugContext(txCtx, "author profile missing, skipping aura",
				slog.String("user_id", userID.String()),
			)
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "note created",
		slog.String("note_id", created.ID.String()),
		slog.String("author_id", userID.String()),
		slog.String("subject", created.Subject),
	)

	return created, nil
}

// Get returns a note together with the caller's vote and saved state.
// Anonymous callers get VoteNone and saved=false.
func (s *Service) Get(ctx context.Context, noteID uuid.UUID) (*NoteDetail, error) {
	note, err := s.notes.Get(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	detail := &NoteDetail{Note: note, UserVote: domain.VoteNone}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return detail, nil
	}

	vote, err := s.votes.Get(ctx, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("get vote: %w", err)
	}
	saved, err := s.saves.Exists(ctx, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("get saved state: %w", err)
	}

	detail.UserVote = vote
	detail.Saved = saved
	return detail, nil
}

// ListSaved returns the caller's saved notes, newest save first.
func (s *Service) ListSaved(ctx context.Context, limit, offset int) ([]*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return s.notes.ListSavedByUser(ctx, userID, limit, offset)
}

// AddComment attaches a comment by the caller to a note.
func (s *Service) AddComment(ctx context.Context, noteID uuid.UUID, body string) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := validateCommentBody(body); err != nil {
		return nil, err
	}

	// Note existence check doubles as the FK guard with a friendlier error.
	if _, err := s.notes.Get(ctx, noteID); err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	comment, err := s.comments.Create(ctx, &domain.Comment{
		ID:        uuid.New(),
		NoteID:    noteID,
		AuthorID:  userID,
		Body:      body,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment added",
		slog.String("note_id", noteID.String()),
		slog.String("comment_id", comment.ID.String()),
	)

	return comment, nil
}
