package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

// SeedProfile inserts a user profile with a unique username and zero aura.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) *domain.UserProfile {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id := uuid.New()
	username := fmt.Sprintf("user_%s", id.String()[:8])

	var p domain.UserProfile
	err := pool.QueryRow(ctx, `
		INSERT INTO user_profiles (id, username, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, username, display_name, aura, aura_updated_at, created_at, updated_at`,
		id, username, "Test User",
	).Scan(&p.ID, &p.Username, &p.DisplayName, &p.Aura, &p.AuraUpdatedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed profile: %v", err)
	}

	return &p
}

// SeedNote inserts a note owned by authorID with zero counters.
func SeedNote(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID) *domain.Note {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n := domain.Note{ID: uuid.New(), AuthorID: authorID}
	err := pool.QueryRow(ctx, `
		INSERT INTO notes (id, author_id, title, subject, file_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		n.ID, authorID, "Calculus II week 3", "MATH201", "https://files.example/notes/"+n.ID.String(),
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed note: %v", err)
	}
	n.Title = "Calculus II week 3"
	n.Subject = "MATH201"
	n.FileURL = "https://files.example/notes/" + n.ID.String()

	return &n
}

// SeedComment inserts a comment on noteID by authorID with zero likes.
func SeedComment(t *testing.T, pool *pgxpool.Pool, noteID, authorID uuid.UUID) *domain.Comment {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := domain.Comment{ID: uuid.New(), NoteID: noteID, AuthorID: authorID, Body: "very helpful, thanks"}
	err := pool.QueryRow(ctx, `
		INSERT INTO comments (id, note_id, author_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		c.ID, c.NoteID, c.AuthorID, c.Body,
	).Scan(&c.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: seed comment: %v", err)
	}

	return &c
}
