package models

// Status is the workflow state of an offboarding request.
type Status string

// Request statuses
const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// StatusFilterAll disables status filtering when listing requests.
const StatusFilterAll = "All"

// IsValid checks if the status is one of the known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsDecision reports whether a pending request may be moved to s.
// Only Approved and Rejected are accepted by a status update.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}
