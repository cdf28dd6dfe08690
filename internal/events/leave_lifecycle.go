package events

import "time"

const (
	LeaveLifecycleTopic = "leave.request.lifecycle.v1"

	LeaveRequestSubmitted = "leave_request.submitted"
	LeaveRequestDecided   = "leave_request.decided"
)

type LeaveRequestSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Duration    int       `json:"duration"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type LeaveRequestDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	UserID     string    `json:"user_id"`
	ApproverID string    `json:"approver_id"`
	Status     string    `json:"status"`
	Comment    string    `json:"comment,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
