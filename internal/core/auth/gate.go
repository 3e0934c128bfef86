package auth

import "github.com/99minutos/user-management/internal/core/domain"

// RoleGate admits identities whose role is in a fixed allowed set.
type RoleGate struct {
	allowed map[string]struct{}
}

// NewRoleGate normalizes the allowed roles to their names once. Typed role
// constants and untyped string literals can be mixed:
//
//	NewRoleGate(domain.RoleAdmin, "MANAGER")
func NewRoleGate(allowed ...domain.Role) *RoleGate {
	g := &RoleGate{allowed: make(map[string]struct{}, len(allowed))}
	for _, r := range allowed {
		g.allowed[r.String()] = struct{}{}
	}
	return g
}

// RolesFromNames converts runtime role names, e.g. from configuration, for
// use with NewRoleGate.
func RolesFromNames(names ...string) []domain.Role {
	roles := make([]domain.Role, len(names))
	for i, n := range names {
		roles[i] = domain.Role(n)
	}
	return roles
}

// Allows reports whether role is in the allowed set.
func (g *RoleGate) Allows(role domain.Role) bool {
	_, ok := g.allowed[role.String()]
	return ok
}

// Check returns a *domain.AuthzError when id's role is not allowed.
func (g *RoleGate) Check(id domain.Identity) error {
	if !g.Allows(id.Role) {
		return &domain.AuthzError{Role: id.Role}
	}
	return nil
}
