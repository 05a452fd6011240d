package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
	"github.com/Aazib-Ai/uolink-backend/internal/service/ledger"
)

// ledgerService defines the minimal interface needed by LedgerHandler.
type ledgerService interface {
	Vote(ctx context.Context, noteID uuid.UUID, desired domain.VoteKind) (*ledger.VoteResult, error)
	ToggleSave(ctx context.Context, noteID uuid.UUID) (*ledger.SaveResult, error)
	Report(ctx context.Context, input ledger.ReportInput) error
	UndoReport(ctx context.Context, noteID uuid.UUID) error
	ReportStatus(ctx context.Context, noteID uuid.UUID) (*ledger.ReportStatusResult, error)
	LikeComment(ctx context.Context, noteID, commentID uuid.UUID) (bool, error)
	ListReports(ctx context.Context, filter domain.ReportFilter) ([]*domain.Report, int, error)
	ResolveReport(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus) (*domain.Report, error)
}

// LedgerHandler serves the engagement endpoints.
type LedgerHandler struct {
	svc ledgerService
	log *slog.Logger
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(svc ledgerService, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{svc: svc, log: logger.With("handler", "ledger")}
}

type voteRequest struct {
	Type string `json:"type"`
}

type voteResponse struct {
	Upvotes          int    `json:"upvotes"`
	Downvotes        int    `json:"downvotes"`
	UserVote         string `json:"userVote"`
	CredibilityScore int    `json:"credibilityScore"`
}

type saveResponse struct {
	Saved            bool `json:"saved"`
	SaveCount        int  `json:"saveCount"`
	CredibilityScore int  `json:"credibilityScore"`
}

type reportRequest struct {
	Reason      string  `json:"reason"`
	Description *string `json:"description,omitempty"`
}

type reportStatusResponse struct {
	HasReported bool `json:"hasReported"`
	ReportCount int  `json:"reportCount"`
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

type reportResponse struct {
	ID          string  `json:"id"`
	NoteID      string  `json:"noteId"`
	ReporterID  string  `json:"reporterId"`
	Reason      string  `json:"reason"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

type reportListResponse struct {
	Reports []reportResponse `json:"reports"`
	Total   int              `json:"total"`
}

// Vote handles POST /notes/{id}/vote.
func (h *LedgerHandler) Vote(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.Vote(r.Context(), noteID, domain.VoteKind(strings.ToUpper(req.Type)))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, voteResponse{
		Upvotes:          res.Upvotes,
		Downvotes:        res.Downvotes,
		UserVote:         string(res.UserVote),
		CredibilityScore: res.CredibilityScore,
	})
}

// ToggleSave handles POST /notes/{id}/save.
func (h *LedgerHandler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.svc.ToggleSave(r.Context(), noteID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, saveResponse{
		Saved:            res.Saved,
		SaveCount:        res.SaveCount,
		CredibilityScore: res.CredibilityScore,
	})
}

// Report handles POST /notes/{id}/report.
func (h *LedgerHandler) Report(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.Report(r.Context(), ledger.ReportInput{
		NoteID:      noteID,
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "reported"})
}

// UndoReport handles DELETE /notes/{id}/report.
func (h *LedgerHandler) UndoReport(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.UndoReport(r.Context(), noteID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReportStatus handles GET /notes/{id}/report.
func (h *LedgerHandler) ReportStatus(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.svc.ReportStatus(r.Context(), noteID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, reportStatusResponse{
		HasReported: res.HasReported,
		ReportCount: res.ReportCount,
	})
}

// LikeComment handles POST /notes/{id}/comments/{commentID}/like.
func (h *LedgerHandler) LikeComment(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	commentID, ok := pathUUID(w, r, "commentID")
	if !ok {
		return
	}

	liked, err := h.svc.LikeComment(r.Context(), noteID, commentID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, likeResponse{Liked: liked})
}

// ListReports handles GET /admin/reports?status=PENDING&limit=50&offset=0.
func (h *LedgerHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	filter := domain.ReportFilter{}

	if v := r.URL.Query().Get("status"); v != "" {
		status, err := domain.ParseReportStatus(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		filter.Status = &status
	}
	if v := r.URL.Query().Get("noteId"); v != "" {
		noteID, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid noteId")
			return
		}
		filter.NoteID = &noteID
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	reports, total, err := h.svc.ListReports(r.Context(), filter)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := reportListResponse{Reports: make([]reportResponse, 0, len(reports)), Total: total}
	for _, rep := range reports {
		out.Reports = append(out.Reports, toReportResponse(rep))
	}

	writeJSON(w, http.StatusOK, out)
}

type resolveRequest struct {
	Status string `json:"status"`
}

// ResolveReport handles PATCH /admin/reports/{id}.
func (h *LedgerHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	reportID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := domain.ParseReportStatus(req.Status)
	if err != nil || status == domain.ReportStatusPending {
		writeError(w, http.StatusBadRequest, "status must be RESOLVED or DISMISSED")
		return
	}

	rep, err := h.svc.ResolveReport(r.Context(), reportID, status)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toReportResponse(rep))
}

func toReportResponse(rep *domain.Report) reportResponse {
	return reportResponse{
		ID:          rep.ID.String(),
		NoteID:      rep.NoteID.String(),
		ReporterID:  rep.ReporterID.String(),
		Reason:      rep.Reason,
		Description: rep.Description,
		Status:      string(rep.Status),
		CreatedAt:   rep.CreatedAt.Format(timeLayout),
	}
}
