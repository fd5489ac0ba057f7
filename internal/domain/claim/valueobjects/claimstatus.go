package valueobjects

// ClaimStatus is the lifecycle state of a reward claim.
//
// Legal transitions: pending → approved → completed, pending → completed
// (automatic mint), pending → rejected, approved → rejected, and the
// failure-recovery rollback approved → pending. Completed and rejected are
// final.
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusCompleted ClaimStatus = "completed"
	ClaimStatusRejected  ClaimStatus = "rejected"
)

func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusCompleted, ClaimStatusRejected:
		return true
	default:
		return false
	}
}

func (s ClaimStatus) IsPending() bool {
	return s == ClaimStatusPending
}

func (s ClaimStatus) IsFinal() bool {
	return s == ClaimStatusCompleted || s == ClaimStatusRejected
}

// CanTransitionTo reports whether moving from s to target is a legal
// lifecycle transition.
func (s ClaimStatus) CanTransitionTo(target ClaimStatus) bool {
	switch s {
	case ClaimStatusPending:
		return target == ClaimStatusApproved || target == ClaimStatusCompleted || target == ClaimStatusRejected
	case ClaimStatusApproved:
		return target == ClaimStatusCompleted || target == ClaimStatusRejected || target == ClaimStatusPending
	default:
		return false
	}
}

func (s ClaimStatus) String() string {
	return string(s)
}
