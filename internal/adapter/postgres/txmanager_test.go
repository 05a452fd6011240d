package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres"
	"github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/testhelper"
	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

func newManager(t *testing.T) (*postgres.TxManager, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return postgres.NewTxManager(pool, 5, 5*time.Millisecond), pool
}

func TestTxManager_RunInTx_Commit(t *testing.T) {
	t.Parallel()
	m, pool := newManager(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	err := m.RunInTx(ctx, func(txCtx context.Context) error {
		q := postgres.QuerierFromCtx(txCtx, pool)
		_, err := q.Exec(txCtx, `UPDATE user_profiles SET aura = aura + 1 WHERE id = $1`, p.ID)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx: unexpected error: %v", err)
	}

	var aura int64
	if err := pool.QueryRow(ctx, `SELECT aura FROM user_profiles WHERE id = $1`, p.ID).Scan(&aura); err != nil {
		t.Fatalf("read aura: %v", err)
	}
	if aura != 1 {
		t.Errorf("expected aura 1 after commit, got %d", aura)
	}
}

func TestTxManager_RunInTx_RollbackOnError(t *testing.T) {
	t.Parallel()
	m, pool := newManager(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	wantErr := errors.New("business rule failed")
	err := m.RunInTx(ctx, func(txCtx context.Context) error {
		q := postgres.QuerierFromCtx(txCtx, pool)
		if _, err := q.Exec(txCtx, `UPDATE user_profiles SET aura = aura + 100 WHERE id = $1`, p.ID); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	var aura int64
	if err := pool.QueryRow(ctx, `SELECT aura FROM user_profiles WHERE id = $1`, p.ID).Scan(&aura); err != nil {
		t.Fatalf("read aura: %v", err)
	}
	if aura != 0 {
		t.Errorf("expected aura 0 after rollback, got %d", aura)
	}
}

func TestTxManager_RunInTx_RollbackOnPanic(t *testing.T) {
	t.Parallel()
	m, pool := newManager(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected the panic to propagate")
			}
		}()
		_ = m.RunInTx(ctx, func(txCtx context.Context) error {
			q := postgres.QuerierFromCtx(txCtx, pool)
			if _, err := q.Exec(txCtx, `UPDATE user_profiles SET aura = aura + 100 WHERE id = $1`, p.ID); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	var aura int64
	if err := pool.QueryRow(ctx, `SELECT aura FROM user_profiles WHERE id = $1`, p.ID).Scan(&aura); err != nil {
		t.Fatalf("read aura: %v", err)
	}
	if aura != 0 {
		t.Errorf("expected aura 0 after panic rollback, got %d", aura)
	}
}

// TestTxManager_RunSerializable_ConcurrentWriters drives the read-modify-write
// pattern the ledger uses from many goroutines at once. With serializable
// isolation plus retry every increment must land exactly once.
func TestTxManager_RunSerializable_ConcurrentWriters(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	// Generous retry budget: every writer conflicts with every other.
	m := postgres.NewTxManager(pool, 20, 2*time.Millisecond)
	ctx := context.Background()

	author := testhelper.SeedProfile(t, pool)
	n := testhelper.SeedNote(t, pool, author.ID)

	const writers = 8

	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = m.RunSerializable(ctx, func(txCtx context.Context) error {
				q := postgres.QuerierFromCtx(txCtx, pool)

				var upvotes int
				if err := q.QueryRow(txCtx, `SELECT upvote_count FROM notes WHERE id = $1`, n.ID).Scan(&upvotes); err != nil {
					return err
				}
				_, err := q.Exec(txCtx, `UPDATE notes SET upvote_count = $2 WHERE id = $1`, n.ID, upvotes+1)
				return err
			})
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("writer %d: unexpected error: %v", i, err)
		}
	}

	var upvotes int
	if err := pool.QueryRow(ctx, `SELECT upvote_count FROM notes WHERE id = $1`, n.ID).Scan(&upvotes); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if upvotes != writers {
		t.Errorf("lost updates: expected %d, got %d", writers, upvotes)
	}
}

func TestTxManager_RunSerializable_ExhaustedRetries(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	m := postgres.NewTxManager(pool, 2, time.Millisecond)

	calls := 0
	err := m.RunSerializable(context.Background(), func(context.Context) error {
		calls++
		return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
	})

	if !errors.Is(err, domain.ErrTxConflict) {
		t.Fatalf("expected ErrTxConflict, got %v", err)
	}
	// Initial attempt plus two retries.
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestTxManager_RunSerializable_NoRetryOnBusinessError(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	m := postgres.NewTxManager(pool, 5, time.Millisecond)

	calls := 0
	wantErr := errors.New("not a conflict")
	err := m.RunSerializable(context.Background(), func(context.Context) error {
		calls++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the callback error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("business errors must not be retried: got %d attempts", calls)
	}
}
