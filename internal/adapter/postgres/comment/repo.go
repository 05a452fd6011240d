// Package comment implements the comment repository and the comment-like
// membership store.
package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres"
	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const commentColumns = `id, note_id, author_id, body, like_count, created_at`

// The note_id filter makes the comment addressable only under its note,
// matching the (noteID, commentID) ownership path.
const getCommentSQL = `
SELECT ` + commentColumns + `
FROM comments
WHERE id = $1 AND note_id = $2`

const createCommentSQL = `
INSERT INTO comments (id, note_id, author_id, body)
VALUES ($1, $2, $3, $4)
RETURNING ` + commentColumns

const updateLikesSQL = `
UPDATE comments
SET like_count = $2
WHERE id = $1`

const likeExistsSQL = `
SELECT EXISTS (
    SELECT 1 FROM comment_likes WHERE user_id = $1 AND comment_id = $2
)`

const createLikeSQL = `
INSERT INTO comment_likes (user_id, comment_id)
VALUES ($1, $2)
ON CONFLICT (user_id, comment_id) DO NOTHING`

const deleteLikeSQL = `
DELETE FROM comment_likes
WHERE user_id = $1 AND comment_id = $2`

// Get returns a comment addressed by its note.
// Returns domain.ErrNotFound when the comment does not exist under that note.
func (r *Repo) Get(ctx context.Context, noteID, commentID uuid.UUID) (*domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Comment
	err := querier.QueryRow(ctx, getCommentSQL, commentID, noteID).Scan(
		&c.ID, &c.NoteID, &c.AuthorID, &c.Body, &c.Likes, &c.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "comment", commentID)
	}
	return &c, nil
}

// Create inserts a comment with zero likes.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var created domain.Comment
	err := querier.QueryRow(ctx, createCommentSQL, c.ID, c.NoteID, c.AuthorID, c.Body).Scan(
		&created.ID, &created.NoteID, &created.AuthorID, &created.Body,
		&created.Likes, &created.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "comment", c.ID)
	}
	return &created, nil
}

// UpdateLikes writes the comment's like counter.
func (r *Repo) UpdateLikes(ctx context.Context, commentID uuid.UUID, likes int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateLikesSQL, commentID, likes)
	if err != nil {
		return postgres.MapError(err, "comment", commentID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}
	return nil
}

// LikeExists reports whether the user has liked the comment.
func (r *Repo) LikeExists(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, likeExistsSQL, userID, commentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("like exists: %w", err)
	}
	return exists, nil
}

// CreateLike inserts the like record. Creating an existing record is a no-op.
func (r *Repo) CreateLike(ctx context.Context, userID, commentID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, createLikeSQL, userID, commentID); err != nil {
		return postgres.MapError(err, "comment like", commentID)
	}
	return nil
}

// DeleteLike removes the like record. Deleting an absent record is not an
// error.
func (r *Repo) DeleteLike(ctx context.Context, userID, commentID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteLikeSQL, userID, commentID); err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}
