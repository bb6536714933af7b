package domain

import (
	"strings"

	dErrors "amparo/pkg/domain-errors"
)

// Role is an operator's capability level. Roles are totally ordered: each one
// holds every capability of the roles below it.
type Role string

const (
	RoleViewer     Role = "VIEWER"
	RoleOperator   Role = "OPERATOR"
	RoleSupervisor Role = "SUPERVISOR"
	RoleAdmin      Role = "ADMIN"
)

var roleRank = map[Role]int{
	RoleViewer:     1,
	RoleOperator:   2,
	RoleSupervisor: 3,
	RoleAdmin:      4,
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := roleRank[r]; !ok {
		return "", dErrors.NewField("role", "role must be one of VIEWER, OPERATOR, SUPERVISOR, ADMIN")
	}
	return r, nil
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Allows reports whether r holds the capabilities of required. Unknown roles
// allow nothing.
func (r Role) Allows(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= need
}

func (r Role) String() string {
	return string(r)
}

// Capabilities map operations to the minimum role that may perform them.
const (
	CapabilityView   = RoleViewer
	CapabilityEdit   = RoleOperator
	CapabilityDelete = RoleSupervisor
	CapabilityManage = RoleAdmin
)
