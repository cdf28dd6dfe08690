package rbac

import (
	"github.com/BadrBouzakri/conges/internal/domain"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

// The policy set is static: roles are a fixed enum and what each of them may
// do is a product decision, not tenant data. Keeping it in code means the
// matrix is reviewed like any other change.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type policyRule struct {
	role     domain.Role
	resource string
	action   string
}

var policies = []policyRule{
	{domain.RoleApprover, "leave_request", "read_all"},
	{domain.RoleApprover, "leave_request", "decide"},
	{domain.RoleApprover, "leave_balance", "read_all"},
	{domain.RoleAdmin, "leave_type", "manage"},
	{domain.RoleAdmin, "user", "manage"},
	{domain.RoleAdmin, "holiday", "manage"},
	{domain.RoleAdmin, "leave_balance", "manage"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role domain.Role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(string(p.role), p.resource, p.action); err != nil {
			return nil, err
		}
	}

	// Admin inherits every approver permission.
	if _, err := enforcer.AddGroupingPolicy(string(domain.RoleAdmin), string(domain.RoleApprover)); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(role domain.Role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(string(role), resource, action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("role", string(role)),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	return allowed, nil
}
