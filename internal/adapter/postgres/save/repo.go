// Package save implements the saved-notes membership store.
package save

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres"
)

// Repo provides save-record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new save repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const existsSaveSQL = `
SELECT EXISTS (
    SELECT 1 FROM saved_notes WHERE user_id = $1 AND note_id = $2
)`

const createSaveSQL = `
INSERT INTO saved_notes (user_id, note_id)
VALUES ($1, $2)
ON CONFLICT (user_id, note_id) DO NOTHING`

const deleteSaveSQL = `
DELETE FROM saved_notes
WHERE user_id = $1 AND note_id = $2`

// Exists reports whether the user has saved the note.
func (r *Repo) Exists(ctx context.Context, userID, noteID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsSaveSQL, userID, noteID).Scan(&exists); err != nil {
		return false, fmt.Errorf("save exists: %w", err)
	}
	return exists, nil
}

// Create inserts the save record. Creating an existing record is a no-op.
func (r *Repo) Create(ctx context.Context, userID, noteID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, createSaveSQL, userID, noteID); err != nil {
		return postgres.MapError(err, "save", noteID)
	}
	return nil
}

// Delete removes the save record. Deleting an absent record is not an error.
func (r *Repo) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteSaveSQL, userID, noteID); err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}
