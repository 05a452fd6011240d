package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credibility score weights. The score is always recomputed from the full
// counter set, never adjusted incrementally, so it can't drift from the
// counters it is derived from.
const (
	ScoreWeightUpvote   = 2
	ScoreWeightSave     = 5
	ScoreWeightDownvote = -3
	ScoreWeightReport   = -10
)

// EngagementCounts holds the per-note engagement counters owned by the
// reputation ledger. All four are kept non-negative.
type EngagementCounts struct {
	Upvotes   int
	Downvotes int
	Saves     int
	Reports   int
}

// Clamp floors every counter at zero. Toggle arithmetic subtracts before it
// recomputes the score, so a counter that was already zero must not go
// negative on a stale reversal.
func (c EngagementCounts) Clamp() EngagementCounts {
	return EngagementCounts{
		Upvotes:   max(c.Upvotes, 0),
		Downvotes: max(c.Downvotes, 0),
		Saves:     max(c.Saves, 0),
		Reports:   max(c.Reports, 0),
	}
}

// CredibilityScore maps engagement counts to a note's credibility score:
// 2*upvotes + 5*saves - 3*downvotes - 10*reports.
func CredibilityScore(c EngagementCounts) int {
	return ScoreWeightUpvote*c.Upvotes +
		ScoreWeightSave*c.Saves +
		ScoreWeightDownvote*c.Downvotes +
		ScoreWeightReport*c.Reports
}

// Note is a shared study note. AuthorID is uuid.Nil when the author's
// profile was deleted (notes.author_id is ON DELETE SET NULL).
type Note struct {
	ID               uuid.UUID
	AuthorID         uuid.UUID
	Title            string
	Subject          string
	Description      *string
	FileURL          string
	Counts           EngagementCounts
	CredibilityScore int
	LastReportedAt   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
