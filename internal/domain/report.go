package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the moderation state of a note report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusResolved  ReportStatus = "RESOLVED"
	ReportStatusDismissed ReportStatus = "DISMISSED"
)

// ParseReportStatus validates a moderation status supplied by an admin.
func ParseReportStatus(s string) (ReportStatus, error) {
	switch ReportStatus(s) {
	case ReportStatusPending, ReportStatusResolved, ReportStatusDismissed:
		return ReportStatus(s), nil
	default:
		return "", NewValidationError("status", "must be PENDING, RESOLVED or DISMISSED")
	}
}

// Report is a user's report of a note. One report per (note, reporter);
// the unique pair is what makes reporting idempotent.
type Report struct {
	ID          uuid.UUID
	NoteID      uuid.UUID
	ReporterID  uuid.UUID
	Reason      string
	Description *string
	Status      ReportStatus
	CreatedAt   time.Time
}

// ReportFilter narrows the moderation report listing. Nil fields are
// ignored. Limit is clamped by the repository.
type ReportFilter struct {
	Status     *ReportStatus
	NoteID     *uuid.UUID
	ReporterID *uuid.UUID
	Limit      int
	Offset     int
}
