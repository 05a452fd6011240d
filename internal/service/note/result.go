package note

import "github.com/Aazib-Ai/uolink-backend/internal/domain"

// NoteDetail is a note together with the caller's engagement state.
type NoteDetail struct {
	Note     *domain.Note
	UserVote domain.VoteKind
	Saved    bool
}
