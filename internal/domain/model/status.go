package model

// Status is the moderation state of a submitted content item.
// The zero value means the upstream did not report a status.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// IsSet reports whether the upstream reported a status at all.
func (s Status) IsSet() bool { return s != "" }

// Terminal reports whether the status is a moderation end state.
// Transitions are one-way in normal operation: Pending moves to Approved
// or Rejected and stays there.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether a local transition to next is legal.
// Unset items on the moderation dashboard behave like pending ones.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Terminal() {
		return false
	}
	return !s.Terminal()
}
