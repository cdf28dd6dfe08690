package leave

import (
	"github.com/BadrBouzakri/conges/internal/domain"
	leaveerrors "github.com/BadrBouzakri/conges/internal/leave/errors"
)

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Decide applies an approval decision to a pending request. The state check
// runs before the role check: deciding an already-decided request reports the
// state conflict even when the caller also lacks the role. The comment is
// stored verbatim, approve or reject alike, and may be nil.
func Decide(l *LeaveRequest, decision Decision, actor *domain.Actor, comment *string) error {
	if !decision.Valid() {
		return leaveerrors.ErrInvalidDecision
	}
	if l.Status.Terminal() {
		return leaveerrors.ErrAlreadyDecided
	}
	if !domain.CanDecide(actor, l.View()) {
		return leaveerrors.ErrDecisionForbidden
	}

	if decision == DecisionApprove {
		l.Status = domain.StatusApproved
	} else {
		l.Status = domain.StatusRejected
	}
	l.Comment = comment
	approverID := actor.ID
	l.ApproverID = &approverID

	return nil
}
