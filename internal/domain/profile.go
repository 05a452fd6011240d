package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile carries a contributor's aggregate reputation ("aura").
// Aura may go negative and is never overwritten wholesale; the only writer
// is the ledger's delta-apply primitive.
type UserProfile struct {
	ID            uuid.UUID
	Username      string
	DisplayName   string
	Aura          int64
	AuraUpdatedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
