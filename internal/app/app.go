// Package app wires configuration, storage, services, and transport into
// a running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Aazib-Ai/uolink-backend/internal/auth"
	"github.com/Aazib-Ai/uolink-backend/internal/config"

	"github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres"
	commentrepo "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/comment"
	noterepo "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/note"
	profilerepo "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/profile"
	reportrepo "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/report"
	saverepo "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/save"
	voterepo "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/vote"

	"github.com/Aazib-Ai/uolink-backend/internal/service/ledger"
	notesvc "github.com/Aazib-Ai/uolink-backend/internal/service/note"

	"github.com/Aazib-Ai/uolink-backend/internal/transport/middleware"
	"github.com/Aazib-Ai/uolink-backend/internal/transport/rest"
)

// Run is the application entry point. It blocks until ctx is cancelled,
// then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool, cfg.Ledger.TxMaxRetries, cfg.Ledger.TxRetryBaseDelay)

	notes := noterepo.New(pool)
	votes := voterepo.New(pool)
	saves := saverepo.New(pool)
	reports := reportrepo.New(pool)
	comments := commentrepo.New(pool)
	profiles := profilerepo.New(pool)

	ledgerService := ledger.NewService(logger, notes, votes, saves, reports, comments, profiles, txManager)
	noteService := notesvc.NewService(logger, notes, votes, saves, comments, profiles, txManager)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	router := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(pool, BuildVersion()),
		Notes:  rest.NewNoteHandler(noteService, logger),
		Ledger: rest.NewLedgerHandler(ledgerService, logger),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
