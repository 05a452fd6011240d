package ledger

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

const (
	maxReasonLen      = 200
	maxDescriptionLen = 2000
)

// ReportInput is the payload for Report.
type ReportInput struct {
	NoteID      uuid.UUID
	Reason      string
	Description *string
}

// Validate checks required fields and length bounds.
func (in *ReportInput) Validate() error {
	var errs []domain.FieldError

	if in.NoteID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "noteId", Message: "is required"})
	}
	if strings.TrimSpace(in.Reason) == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "is required"})
	} else if len(in.Reason) > maxReasonLen {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long"})
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLen {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
