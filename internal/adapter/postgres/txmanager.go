package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

// TxManager manages database transactions using the context pattern.
// Nested Run* calls are NOT supported: calling RunInTx inside a RunInTx
// callback will create a second independent transaction, which is a bug.
type TxManager struct {
	pool       *pgxpool.Pool
	maxRetries int
	baseDelay  time.Duration
}

// NewTxManager creates a new TxManager. maxRetries bounds the number of
// times RunSerializable re-runs fn after a write conflict; baseDelay is the
// initial backoff interval between attempts.
func NewTxManager(pool *pgxpool.Pool, maxRetries int, baseDelay time.Duration) *TxManager {
	return &TxManager{pool: pool, maxRetries: maxRetries, baseDelay: baseDelay}
}

// RunInTx executes fn within a Read Committed transaction.
// On success: commits. On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, pgx.TxOptions{}, fn)
}

// RunSerializable executes fn within a SERIALIZABLE transaction and
// transparently retries the whole callback when PostgreSQL aborts the
// transaction due to a conflicting concurrent writer (SQLSTATE 40001/40P01).
//
// fn MUST be a pure function of the state it reads inside the transaction:
// it can run several times, so it must not mutate captured state in a way
// that survives a retry, and every read it depends on must happen inside
// the callback.
//
// When the retry budget is exhausted the last conflict is surfaced as
// domain.ErrTxConflict.
func (m *TxManager) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	attempt := func() error {
		err := m.run(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
		if err != nil && !isSerializationFailure(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = m.baseDelay

	err := backoff.Retry(attempt,
		backoff.WithContext(backoff.WithMaxRetries(bo, uint64(m.maxRetries)), ctx))
	if err != nil && isSerializationFailure(err) {
		return fmt.Errorf("%w: %v", domain.ErrTxConflict, err)
	}
	return err
}

func (m *TxManager) run(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	txCtx := withTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// isSerializationFailure reports whether err is a PostgreSQL
// serialization_failure (40001) or deadlock_detected (40P01). Both mean
// the transaction lost a race and is safe to re-run.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
