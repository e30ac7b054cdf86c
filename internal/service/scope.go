package service

import (
	"quiz-hub/internal/domain"
)

// Actor is the authenticated caller of a service method.
type Actor struct {
	UserID   string
	Email    string
	Role     domain.Role
	TenantID string
}

// ActorFromUser builds an actor from a stored user.
func ActorFromUser(u *domain.User) Actor {
	return Actor{UserID: u.ID, Email: u.Email, Role: u.Role, TenantID: u.TenantID}
}

func (a Actor) IsProductAdmin() bool { return a.Role == domain.RoleProductAdmin }

func (a Actor) IsTenantAdmin() bool { return a.Role == domain.RoleAdmin }

// ScopeFor returns the tenant filter for list and aggregate queries: empty
// (system-wide) for product admins and the actor's own tenant otherwise.
func ScopeFor(a Actor) string {
	if a.IsProductAdmin() {
		return ""
	}
	return a.TenantID
}

// canManageTenant reports whether a may administer records of tenantID.
func canManageTenant(a Actor, tenantID string) bool {
	if a.IsProductAdmin() {
		return true
	}
	return a.IsTenantAdmin() && a.TenantID != "" && a.TenantID == tenantID
}

func requireProductAdmin(a Actor) error {
	if !a.IsProductAdmin() {
		return domain.NewForbiddenError("Only product administrators can perform this action")
	}
	return nil
}

func requireAdmin(a Actor) error {
	if !a.IsProductAdmin() && !a.IsTenantAdmin() {
		return domain.NewForbiddenError("Only administrators can perform this action")
	}
	return nil
}

// withinLimit reports whether adding one more row keeps count under limit.
// A limit of zero or less means unlimited.
func withinLimit(count, limit int) bool {
	return limit <= 0 || count < limit
}
