package profile_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/profile"
	"github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/testhelper"
	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

func newRepo(t *testing.T) (*profile.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return profile.New(pool), pool
}

func TestRepo_Create_And_Get(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	id := uuid.New()
	created, err := repo.Create(ctx, &domain.UserProfile{
		ID:          id,
		Username:    fmt.Sprintf("maria_%s", id.String()[:8]),
		DisplayName: "Maria",
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.Aura != 0 {
		t.Errorf("expected zero aura, got %d", created.Aura)
	}
	if created.AuraUpdatedAt != nil {
		t.Errorf("expected nil AuraUpdatedAt, got %v", created.AuraUpdatedAt)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.DisplayName != "Maria" {
		t.Errorf("DisplayName mismatch: got %q", got.DisplayName)
	}
}

func TestRepo_Create_DuplicateUsername(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	existing := testhelper.SeedProfile(t, pool)

	_, err := repo.Create(ctx, &domain.UserProfile{
		ID:          uuid.New(),
		Username:    existing.Username,
		DisplayName: "Impostor",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_AdjustAura(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	if err := repo.AdjustAura(ctx, p.ID, 5); err != nil {
		t.Fatalf("AdjustAura: unexpected error: %v", err)
	}
	if err := repo.AdjustAura(ctx, p.ID, -3); err != nil {
		t.Fatalf("AdjustAura: unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.Aura != 2 {
		t.Errorf("aura mismatch: got %d, want 2", got.Aura)
	}
	if got.AuraUpdatedAt == nil {
		t.Error("expected AuraUpdatedAt to be stamped")
	}
}

func TestRepo_AdjustAura_CanGoNegative(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	if err := repo.AdjustAura(ctx, p.ID, -10); err != nil {
		t.Fatalf("AdjustAura: unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if got.Aura != -10 {
		t.Errorf("aura mismatch: got %d, want -10", got.Aura)
	}
}

func TestRepo_AdjustAura_MissingProfile(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.AdjustAura(context.Background(), uuid.New(), 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
