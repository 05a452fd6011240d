package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Health *HealthHandler
	Notes  *NoteHandler
	Ledger *LedgerHandler
}

// NewRouter builds the route table. Method patterns require Go 1.22+.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /notes", h.Notes.Create)
	mux.HandleFunc("GET /notes/saved", h.Notes.ListSaved)
	mux.HandleFunc("GET /notes/{id}", h.Notes.Get)
	mux.HandleFunc("POST /notes/{id}/comments", h.Notes.AddComment)

	mux.HandleFunc("POST /notes/{id}/vote", h.Ledger.Vote)
	mux.HandleFunc("POST /notes/{id}/save", h.Ledger.ToggleSave)
	mux.HandleFunc("POST /notes/{id}/report", h.Ledger.Report)
	mux.HandleFunc("DELETE /notes/{id}/report", h.Ledger.UndoReport)
	mux.HandleFunc("GET /notes/{id}/report", h.Ledger.ReportStatus)
	mux.HandleFunc("POST /notes/{id}/comments/{commentID}/like", h.Ledger.LikeComment)

	mux.HandleFunc("GET /admin/reports", h.Ledger.ListReports)
	mux.HandleFunc("PATCH /admin/reports/{id}", h.Ledger.ResolveReport)

	return mux
}
