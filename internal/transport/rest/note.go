package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Aazib-Ai/uolink-backend/internal/domain"
	"github.com/Aazib-Ai/uolink-backend/internal/service/note"
)

const timeLayout = time.RFC3339

// noteService defines the minimal interface needed by NoteHandler.
type noteService interface {
	Create(ctx context.Context, input note.CreateInput) (*domain.Note, error)
	Get(ctx context.Context, noteID uuid.UUID) (*note.NoteDetail, error)
	ListSaved(ctx context.Context, limit, offset int) ([]*domain.Note, error)
	AddComment(ctx context.Context, noteID uuid.UUID, body string) (*domain.Comment, error)
}

// NoteHandler serves note REST endpoints.
type NoteHandler struct {
	svc noteService
	log *slog.Logger
}

// NewNoteHandler creates a NoteHandler.
func NewNoteHandler(svc noteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{svc: svc, log: logger.With("handler", "note")}
}

type createNoteRequest struct {
	Title       string  `json:"title"`
	Subject     string  `json:"subject"`
	FileURL     string  `json:"fileUrl"`
	Description *string `json:"description,omitempty"`
}

type noteResponse struct {
	ID               string  `json:"id"`
	AuthorID         string  `json:"authorId,omitempty"`
	Title            string  `json:"title"`
	Subject          string  `json:"subject"`
	Description      *string `json:"description,omitempty"`
	FileURL          string  `json:"fileUrl"`
	Upvotes          int     `json:"upvotes"`
	Downvotes        int     `json:"downvotes"`
	SaveCount        int     `json:"saveCount"`
	ReportCount      int     `json:"reportCount"`
	CredibilityScore int     `json:"credibilityScore"`
	CreatedAt        string  `json:"createdAt"`
}

type noteDetailResponse struct {
	noteResponse
	UserVote string `json:"userVote"`
	Saved    bool   `json:"saved"`
}

type commentRequest struct {
	Body string `json:"body"`
}

type commentResponse struct {
	ID        string `json:"id"`
	NoteID    string `json:"noteId"`
	AuthorID  string `json:"authorId"`
	Body      string `json:"body"`
	Likes     int    `json:"likes"`
	CreatedAt string `json:"createdAt"`
}

// Create handles POST /notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), note.CreateInput{
		Title:       req.Title,
		Subject:     req.Subject,
		FileURL:     req.FileURL,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNoteResponse(created))
}

// Get handles GET /notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.svc.Get(r.Context(), noteID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, noteDetailResponse{
		noteResponse: toNoteResponse(detail.Note),
		UserVote:     string(detail.UserVote),
		Saved:        detail.Saved,
	})
}

// ListSaved handles GET /notes/saved?limit=20&offset=0.
func (h *NoteHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, _ = strconv.Atoi(v)
	}

	notes, err := h.svc.ListSaved(r.Context(), limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}

	writeJSON(w, http.StatusOK, map[string]any{"notes": out})
}

// AddComment handles POST /notes/{id}/comments.
func (h *NoteHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.svc.AddComment(r.Context(), noteID, req.Body)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentResponse{
		ID:        comment.ID.String(),
		NoteID:    comment.NoteID.String(),
		AuthorID:  comment.AuthorID.String(),
		Body:      comment.Body,
		Likes:     comment.Likes,
		CreatedAt: comment.CreatedAt.Format(timeLayout),
	})
}

func toNoteResponse(n *domain.Note) noteResponse {
	resp := noteResponse{
		ID:               n.ID.String(),
		Title:            n.Title,
		Subject:          n.Subject,
		Description:      n.Description,
		FileURL:          n.FileURL,
		Upvotes:          n.Counts.Upvotes,
		Downvotes:        n.Counts.Downvotes,
		SaveCount:        n.Counts.Saves,
		ReportCount:      n.Counts.Reports,
		CredibilityScore: n.CredibilityScore,
		CreatedAt:        n.CreatedAt.Format(timeLayout),
	}
	if n.AuthorID != uuid.Nil {
		resp.AuthorID = n.AuthorID.String()
	}
	return resp
}
