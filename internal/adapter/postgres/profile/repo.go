// Package profile implements the UserProfile repository using PostgreSQL.
package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres"
	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

// Repo provides user-profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const profileColumns = `id, username, display_name, aura, aura_updated_at, created_at, updated_at`

const getProfileSQL = `
SELECT ` + profileColumns + `
FROM user_profiles
WHERE id = $1`

const createProfileSQL = `
INSERT INTO user_profiles (id, username, display_name)
VALUES ($1, $2, $3)
RETURNING ` + profileColumns

// Aura is adjusted with a single relative UPDATE so the addition is atomic
// at the row level. The profile row is never read-modify-written by the
// application.
const adjustAuraSQL = `
UPDATE user_profiles
SET aura = aura + $2,
    aura_updated_at = now(),
    updated_at = now()
WHERE id = $1`

// Get returns a profile by primary key.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var p domain.UserProfile
	err := querier.QueryRow(ctx, getProfileSQL, userID).Scan(
		&p.ID, &p.Username, &p.DisplayName, &p.Aura, &p.AuraUpdatedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "profile", userID)
	}
	return &p, nil
}

// Create inserts a profile with zero aura.
func (r *Repo) Create(ctx context.Context, p *domain.UserProfile) (*domain.UserProfile, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var created domain.UserProfile
	err := querier.QueryRow(ctx, createProfileSQL, p.ID, p.Username, p.DisplayName).Scan(
		&created.ID, &created.Username, &created.DisplayName, &created.Aura,
		&created.AuraUpdatedAt, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "profile", p.ID)
	}
	return &created, nil
}

// AdjustAura atomically adds delta to the profile's aura and stamps
// aura_updated_at. Returns domain.ErrNotFound when no such profile exists;
// callers inside a ledger transaction decide whether that is fatal.
func (r *Repo) AdjustAura(ctx context.Context, userID uuid.UUID, delta int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, adjustAuraSQL, userID, delta)
	if err != nil {
		return postgres.MapError(err, "profile", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}
