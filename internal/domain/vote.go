package domain

import "fmt"

// VoteKind is a user's stored vote on a note. The absence of a vote record
// is VoteNone; only VoteUp and VoteDown are ever persisted.
type VoteKind string

const (
	VoteNone VoteKind = "NONE"
	VoteUp   VoteKind = "UP"
	VoteDown VoteKind = "DOWN"
)

// ParseVoteKind converts wire input ("up"/"down", case-insensitive via
// callers normalizing) to a VoteKind. VoteNone is not a valid desired vote.
func ParseVoteKind(s string) (VoteKind, error) {
	switch VoteKind(s) {
	case VoteUp, VoteDown:
		return VoteKind(s), nil
	default:
		return VoteNone, fmt.Errorf("invalid vote kind %q: %w", s, ErrValidation)
	}
}
