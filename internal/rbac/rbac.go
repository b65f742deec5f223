// Package rbac decides whether a user may act in a given role.
package rbac

import "food-delivery/internal/domain"

// IsAuthorized reports whether user satisfies required. Admins pass every
// check. A nil user is never authorized.
func IsAuthorized(user *domain.User, required domain.Role) bool {
	if user == nil {
		return false
	}
	if user.Role == domain.RoleAdmin {
		return true
	}
	return user.Role == required
}

// HasAnyRole reports whether user satisfies at least one of required. An
// empty list only requires an authenticated user.
func HasAnyRole(user *domain.User, required ...domain.Role) bool {
	if user == nil {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if IsAuthorized(user, r) {
			return true
		}
	}
	return false
}

// ValidRole reports whether r is a known role.
func ValidRole(r domain.Role) bool {
	switch r {
	case domain.RoleAdmin, domain.RoleCustomer, domain.RoleDeliverer, domain.RolePDV:
		return true
	}
	return false
}
