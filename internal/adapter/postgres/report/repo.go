// Package report implements the note-report repository.
// Creation/deletion follow the fixed-SQL style of the other membership
// stores; the moderation listing builds its WHERE clause dynamically with
// squirrel because every filter is optional.
package report

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Aazib-Ai/uolink-backend/internal/adapter/postgres"
	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Repo provides report persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new report repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const reportColumns = `id, note_id, reporter_id, reason, description, status, created_at`

const existsReportSQL = `
SELECT EXISTS (
    SELECT 1 FROM note_reports WHERE note_id = $1 AND reporter_id = $2
)`

const createReportSQL = `
INSERT INTO note_reports (id, note_id, reporter_id, reason, description, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + reportColumns

const deleteReportSQL = `
DELETE FROM note_reports
WHERE note_id = $1 AND reporter_id = $2`

const getReportSQL = `
SELECT ` + reportColumns + `
FROM note_reports
WHERE id = $1`

const updateStatusSQL = `
UPDATE note_reports
SET status = $2
WHERE id = $1
RETURNING ` + reportColumns

// Exists reports whether the user has already reported the note.
func (r *Repo) Exists(ctx context.Context, noteID, reporterID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsReportSQL, noteID, reporterID).Scan(&exists); err != nil {
		return false, fmt.Errorf("report exists: %w", err)
	}
	return exists, nil
}

// Create inserts a report. A duplicate (note, reporter) pair maps to
// domain.ErrAlreadyExists via the unique constraint.
func (r *Repo) Create(ctx context.Context, rep *domain.Report) (*domain.Report, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanReport(querier.QueryRow(ctx, createReportSQL,
		rep.ID, rep.NoteID, rep.ReporterID, rep.Reason, rep.Description, rep.Status))
	if err != nil {
		return nil, postgres.MapError(err, "report", rep.NoteID)
	}
	return created, nil
}

// Delete removes the user's report of a note.
// Returns domain.ErrNotFound when no such report exists.
func (r *Repo) Delete(ctx context.Context, noteID, reporterID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteReportSQL, noteID, reporterID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report for note %s: %w", noteID, domain.ErrNotFound)
	}
	return nil
}

// GetByID returns a report by primary key.
func (r *Repo) GetByID(ctx context.Context, reportID uuid.UUID) (*domain.Report, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rep, err := scanReport(querier.QueryRow(ctx, getReportSQL, reportID))
	if err != nil {
		return nil, postgres.MapError(err, "report", reportID)
	}
	return rep, nil
}

// UpdateStatus sets the moderation status of a report.
func (r *Repo) UpdateStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus) (*domain.Report, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rep, err := scanReport(querier.QueryRow(ctx, updateStatusSQL, reportID, status))
	if err != nil {
		return nil, postgres.MapError(err, "report", reportID)
	}
	return rep, nil
}

// Find returns reports matching the filter, newest first, plus the total
// match count for pagination.
func (r *Repo) Find(ctx context.Context, filter domain.ReportFilter) ([]*domain.Report, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := max(filter.Offset, 0)

	base := sq.Select().From("note_reports").PlaceholderFormat(sq.Dollar)
	if filter.Status != nil {
		base = base.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.NoteID != nil {
		base = base.Where(sq.Eq{"note_id": *filter.NoteID})
	}
	if filter.ReporterID != nil {
		base = base.Where(sq.Eq{"reporter_id": *filter.ReporterID})
	}

	countSQL, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	listSQL, listArgs, err := base.
		Columns(reportColumns).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}

	return reports, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.Report, error) {
	var rep domain.Report
	err := row.Scan(&rep.ID, &rep.NoteID, &rep.ReporterID, &rep.Reason,
		&rep.Description, &rep.Status, &rep.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
