package domain

// Role is the single source of truth for a user's privileges. Exactly one
// role per user; admin privileges are a superset of approver privileges.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleApprover Role = "APPROVER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleApprover, RoleAdmin:
		return true
	}
	return false
}

// ImpliesApprover reports whether the role carries approver privileges.
// Kept as the one place this rule lives so derived flags cannot diverge.
func ImpliesApprover(r Role) bool {
	return r == RoleApprover || r == RoleAdmin
}
