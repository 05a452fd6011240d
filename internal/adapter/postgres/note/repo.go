// Package note implements the Note repository using PostgreSQL.
// All engagement counters and the derived credibility score are owned by
// the ledger service; this package only reads and writes them.
package note

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres"
	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new note repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const noteColumns = `id, author_id, title, subject, description, file_url,
       upvote_count, downvote_count, save_count, report_count,
       credibility_score, last_reported_at, created_at, updated_at`

const getNoteSQL = `
SELECT ` + noteColumns + `
FROM notes
WHERE id = $1`

const createNoteSQL = `
INSERT INTO notes (id, author_id, title, subject, description, file_url)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + noteColumns

const updateEngagementSQL = `
UPDATE notes
SET upvote_count = $2,
    downvote_count = $3,
    save_count = $4,
    report_count = $5,
    credibility_score = $6,
    last_reported_at = COALESCE($7, last_reported_at),
    updated_at = now()
WHERE id = $1`

const listSavedByUserSQL = `
SELECT ` + qualifiedNoteColumns + `
FROM saved_notes sn
JOIN notes n ON sn.note_id = n.id
WHERE sn.user_id = $1
ORDER BY sn.created_at DESC
LIMIT $2 OFFSET $3`

const qualifiedNoteColumns = `n.id, n.author_id, n.title, n.subject, n.description, n.file_url,
       n.upvote_count, n.downvote_count, n.save_count, n.report_count,
       n.credibility_score, n.last_reported_at, n.created_at, n.updated_at`

// Get returns a note by primary key.
// Returns domain.ErrNotFound if the note does not exist.
func (r *Repo) Get(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	n, err := scanNote(querier.QueryRow(ctx, getNoteSQL, noteID))
	if err != nil {
		return nil, postgres.MapError(err, "note", noteID)
	}
	return n, nil
}

// Create inserts a note with all counters and the score at zero.
func (r *Repo) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var authorID *uuid.UUID
	if note.AuthorID != uuid.Nil {
		authorID = &note.AuthorID
	}

	created, err := scanNote(querier.QueryRow(ctx, createNoteSQL,
		note.ID, authorID, note.Title, note.Subject, note.Description, note.FileURL))
	if err != nil {
		return nil, postgres.MapError(err, "note", note.ID)
	}
	return created, nil
}

// UpdateEngagement writes the full counter set and the recomputed score in
// one statement. lastReportedAt, when non-nil, stamps notes.last_reported_at;
// nil leaves the existing stamp untouched.
// Returns domain.ErrNotFound if the note does not exist.
func (r *Repo) UpdateEngagement(ctx context.Context, noteID uuid.UUID, counts domain.EngagementCounts, score int, lastReportedAt *time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateEngagementSQL,
		noteID, counts.Upvotes, counts.Downvotes, counts.Saves, counts.Reports,
		score, lastReportedAt)
	if err != nil {
		return postgres.MapError(err, "note", noteID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	return nil
}

// ListSavedByUser returns the user's saved notes, most recently saved first.
// Returns an empty slice (not nil) when nothing is saved.
func (r *Repo) ListSavedByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Note, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSavedByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list saved notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saved notes: %w", err)
	}

	return notes, nil
}

// RescoreAll recomputes credibility_score from the stored counters for every
// note whose persisted score disagrees with the formula. Used by the rescore
// ops tool. Returns the number of corrected rows.
func (r *Repo) RescoreAll(ctx context.Context) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, fmt.Sprintf(`
UPDATE notes
SET credibility_score = %d*upvote_count + %d*save_count + %d*downvote_count + %d*report_count,
    updated_at = now()
WHERE credibility_score <> %d*upvote_count + %d*save_count + %d*downvote_count + %d*report_count`,
		domain.ScoreWeightUpvote, domain.ScoreWeightSave, domain.ScoreWeightDownvote, domain.ScoreWeightReport,
		domain.ScoreWeightUpvote, domain.ScoreWeightSave, domain.ScoreWeightDownvote, domain.ScoreWeightReport))
	if err != nil {
		return 0, fmt.Errorf("rescore notes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// rowScanner matches both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var (
		n        domain.Note
		authorID *uuid.UUID
	)
	err := row.Scan(
		&n.ID, &authorID, &n.Title, &n.Subject, &n.Description, &n.FileURL,
		&n.Counts.Upvotes, &n.Counts.Downvotes, &n.Counts.Saves, &n.Counts.Reports,
		&n.CredibilityScore, &n.LastReportedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if authorID != nil {
		n.AuthorID = *authorID
	}
	return &n, nil
}
