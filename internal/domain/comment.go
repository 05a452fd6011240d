package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a note. Likes is kept non-negative by the ledger.
type Comment struct {
	ID        uuid.UUID
	NoteID    uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	Likes     int
	CreatedAt time.Time
}
