package domain

import "github.com/google/uuid"

// Actor is the authenticated identity every policy and lifecycle decision is
// made against. It is passed explicitly instead of being read from ambient
// state so the predicates below stay pure and testable.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// LeaveRequestView is the minimal slice of a leave request the policy needs.
type LeaveRequestView struct {
	OwnerID uuid.UUID
	Status  LeaveStatus
}

// The predicates below are total over well-formed inputs and never panic.
// A nil actor (no session) yields false for every one of them.

// CanView: owners see their own requests; approvers and admins see all.
func CanView(actor *Actor, r LeaveRequestView) bool {
	if actor == nil {
		return false
	}
	return actor.ID == r.OwnerID || ImpliesApprover(actor.Role)
}

// CanEdit: only the owner, and only while the request is still pending.
// Admins get no special casing here on purpose.
func CanEdit(actor *Actor, r LeaveRequestView) bool {
	if actor == nil {
		return false
	}
	return r.Status == StatusPending && actor.ID == r.OwnerID
}

// CanDelete shares the edit predicate exactly.
func CanDelete(actor *Actor, r LeaveRequestView) bool {
	return CanEdit(actor, r)
}

// CanDecide: approvers and admins, and only while the request is pending.
func CanDecide(actor *Actor, r LeaveRequestView) bool {
	if actor == nil {
		return false
	}
	return r.Status == StatusPending && ImpliesApprover(actor.Role)
}

func CanManageUsers(actor *Actor) bool {
	return actor != nil && actor.Role == RoleAdmin
}

func CanManageLeaveTypes(actor *Actor) bool {
	return actor != nil && actor.Role == RoleAdmin
}
