package rbac

import (
	"testing"

	"food-delivery/internal/domain"
)

func TestIsAuthorized(t *testing.T) {
	roles := []domain.Role{domain.RoleAdmin, domain.RoleCustomer, domain.RoleDeliverer, domain.RolePDV}
	admin := &domain.User{Role: domain.RoleAdmin}
	for _, r := range roles {
		if !IsAuthorized(admin, r) {
			t.Fatalf("admin must pass %s", r)
		}
	}

	courier := &domain.User{Role: domain.RoleDeliverer}
	if !IsAuthorized(courier, domain.RoleDeliverer) {
		t.Fatalf("courier must pass entregador")
	}
	for _, r := range []domain.Role{domain.RoleAdmin, domain.RoleCustomer, domain.RolePDV} {
		if IsAuthorized(courier, r) {
			t.Fatalf("courier must not pass %s", r)
		}
	}

	if IsAuthorized(nil, domain.RoleCustomer) {
		t.Fatalf("nil user must fail")
	}
}

func TestHasAnyRole(t *testing.T) {
	pdv := &domain.User{Role: domain.RolePDV}
	if !HasAnyRole(pdv, domain.RoleAdmin, domain.RolePDV) {
		t.Fatalf("pdv must pass admin|pdv")
	}
	if HasAnyRole(pdv, domain.RoleDeliverer) {
		t.Fatalf("pdv must not pass entregador")
	}
	if !HasAnyRole(pdv) {
		t.Fatalf("empty requirement only needs a user")
	}
	if HasAnyRole(nil) {
		t.Fatalf("nil user must fail")
	}
}
