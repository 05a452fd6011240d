// Package vote implements the per-user vote membership store.
// A row's presence encodes that the user has an active vote on the note;
// absence means VoteNone.
package vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres"
	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

// Repo provides vote-record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vote repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getVoteSQL = `
SELECT kind FROM note_votes
WHERE user_id = $1 AND note_id = $2`

const setVoteSQL = `
INSERT INTO note_votes (user_id, note_id, kind)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, note_id)
DO UPDATE SET kind = EXCLUDED.kind, updated_at = now()`

const deleteVoteSQL = `
DELETE FROM note_votes
WHERE user_id = $1 AND note_id = $2`

// Get returns the user's stored vote on a note, or domain.VoteNone when no
// record exists.
func (r *Repo) Get(ctx context.Context, userID, noteID uuid.UUID) (domain.VoteKind, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var kind domain.VoteKind
	err := querier.QueryRow(ctx, getVoteSQL, userID, noteID).Scan(&kind)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.VoteNone, nil
	}
	if err != nil {
		return domain.VoteNone, fmt.Errorf("get vote: %w", err)
	}
	return kind, nil
}

// Set upserts the user's vote record to the given kind.
func (r *Repo) Set(ctx context.Context, userID, noteID uuid.UUID, kind domain.VoteKind) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, setVoteSQL, userID, noteID, kind); err != nil {
		return postgres.MapError(err, "vote", noteID)
	}
	return nil
}

// Delete removes the user's vote record. Deleting an absent record is not
// an error.
func (r *Repo) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteVoteSQL, userID, noteID); err != nil {
		return fmt.Errorf("delete vote: %w", err)
	}
	return nil
}
