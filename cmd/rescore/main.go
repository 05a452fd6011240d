// Command rescore recomputes every note's credibility score from its
// stored counters. It exists for backfills after a weight change and as a
// consistency repair tool; normal operation keeps scores current
// transactionally. Intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres"
	"github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres/note"
	"github.com/Aazib-Ai/uolink-backend/internal/app"
	"github.com/Aazib-Ai/uolink-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	noteRepo := note.New(pool)

	updated, err := noteRepo.RescoreAll(ctx)
	if err != nil {
		logger.Error("rescore failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("rescore completed", slog.Int64("updated", updated))
}
