package ledger

import "github.com/Aazib-Ai/uolink-backend/internal/domain"

// VoteResult is the committed state returned after a vote toggle.
type VoteResult struct {
	Upvotes          int
	Downvotes        int
	UserVote         domain.VoteKind
	CredibilityScore int
}

// SaveResult is the committed state returned after a save toggle.
type SaveResult struct {
	Saved            bool
	SaveCount        int
	CredibilityScore int
}

// ReportStatusResult describes the caller's standing on a note's reports.
type ReportStatusResult struct {
	HasReported bool
	ReportCount int
}
