package note

import (
	"strings"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
)

const (
	maxTitleLen   = 200
	maxSubjectLen = 100
	maxBodyLen    = 2000
)

// CreateInput is the payload for Create.
type CreateInput struct {
	Title       string
	Subject     string
	FileURL     string
	Description *string
}

// Validate checks required fields and length bounds.
func (in *CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "is required"})
	} else if len(in.Title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if strings.TrimSpace(in.Subject) == "" {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "is required"})
	} else if len(in.Subject) > maxSubjectLen {
		errs = append(errs, domain.FieldError{Field: "subject", Message: "too long"})
	}
	if strings.TrimSpace(in.FileURL) == "" {
		errs = append(errs, domain.FieldError{Field: "fileUrl", Message: "is required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateCommentBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return domain.NewValidationError("body", "is required")
	}
	if len(body) > maxBodyLen {
		return domain.NewValidationError("body", "too long")
	}
	return nil
}
