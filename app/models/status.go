package models

// Status is the moderation state of a post.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
)

// StatusDefault is the status assigned to newly created posts. New posts enter
// the moderation queue and become publicly visible only after approval.
const StatusDefault = StatusPending

// Valid reports whether s is a recognized moderation state.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved
}

// CanTransitionTo reports whether the transition s -> next is allowed.
// APPROVED is terminal; re-approving an approved post is a harmless no-op.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved
	case StatusApproved:
		return next == StatusApproved
	}
	return false
}
