package domain

// LeaveStatus is the leave-request state. PENDING is the only non-terminal
// state; APPROVED and REJECTED permit no further transitions.
type LeaveStatus string

const (
	StatusPending  LeaveStatus = "PENDING"
	StatusApproved LeaveStatus = "APPROVED"
	StatusRejected LeaveStatus = "REJECTED"
)

func (s LeaveStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}
