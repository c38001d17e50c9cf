package service

import (
	"testing"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

func newTestGuard(development bool) *RouteGuard {
	classifier := HeuristicClassifier{
		AllowedEmails:    []string{"board@renewal.example"},
		ReservedIDNumber: "000000000",
	}
	return NewRouteGuard(classifier, development, "/admin")
}

func sessionFor(p domain.Principal) *domain.Session {
	return &domain.Session{ID: "s1", Principal: p}
}

func TestRouteGuard_NilSessionDegradesToDemo(t *testing.T) {
	g := newTestGuard(false)

	d := g.Decide(nil, RouteRequirement{RequiredUserType: domain.UserTypeResidents}, "/v1/projects")
	if d.Outcome != GuardAllowDemo {
		t.Fatalf("outcome = %q, want allow_demo", d.Outcome)
	}
	if d.Reason != "unauthenticated" {
		t.Fatalf("reason = %q, want unauthenticated", d.Reason)
	}
}

func TestRouteGuard_DevelopmentReasonDiffers(t *testing.T) {
	g := newTestGuard(true)

	d := g.Decide(nil, RouteRequirement{}, "/v1/projects")
	if d.Outcome != GuardAllowDemo || d.Reason != "unauthenticated_dev" {
		t.Fatalf("got %+v, want allow_demo/unauthenticated_dev", d)
	}
}

func TestRouteGuard_UserTypeMismatchDiscloses(t *testing.T) {
	g := newTestGuard(false)
	sess := sessionFor(domain.Principal{
		Email:    "jane@test.com",
		Role:     domain.RoleResident,
		UserType: domain.UserTypeResidents,
	})

	d := g.Decide(sess, RouteRequirement{RequiredUserType: domain.UserTypeDevelopers}, "/v1/projects")
	if d.Outcome != GuardAllowMismatch {
		t.Fatalf("outcome = %q, want allow_mismatch", d.Outcome)
	}
	if d.Reason != "user_type_mismatch" {
		t.Fatalf("reason = %q", d.Reason)
	}
}

func TestRouteGuard_MatchingUserTypeAllows(t *testing.T) {
	g := newTestGuard(false)
	sess := sessionFor(domain.Principal{
		Role:     domain.RoleResident,
		UserType: domain.UserTypeResidents,
	})

	d := g.Decide(sess, RouteRequirement{RequiredUserType: domain.UserTypeResidents}, "/v1/projects")
	if d.Outcome != GuardAllow {
		t.Fatalf("outcome = %q, want allow", d.Outcome)
	}
}

func TestRouteGuard_AdminRedirectsOutsideAdminArea(t *testing.T) {
	g := newTestGuard(false)
	sess := sessionFor(domain.Principal{
		Email:    "chief@city.example",
		Role:     domain.RoleAdmin,
		UserType: domain.UserTypeAuthorities,
	})

	d := g.Decide(sess, RouteRequirement{RequiredUserType: domain.UserTypeResidents}, "/v1/projects")
	if d.Outcome != GuardAllowAdmin {
		t.Fatalf("outcome = %q, want allow_admin", d.Outcome)
	}
	if d.RedirectTo != "/admin" {
		t.Fatalf("redirect = %q, want /admin", d.RedirectTo)
	}

	// Inside the admin area the redirect disappears.
	d = g.Decide(sess, RouteRequirement{}, "/admin/projects")
	if d.Outcome != GuardAllowAdmin || d.RedirectTo != "" {
		t.Fatalf("got %+v, want allow_admin without redirect", d)
	}
}

func TestRouteGuard_AdminByReservedIDNumber(t *testing.T) {
	g := newTestGuard(false)
	sess := sessionFor(domain.Principal{
		Role:     domain.RoleResident,
		UserType: domain.UserTypeResidents,
		IDNumber: "000000000",
	})

	if d := g.Decide(sess, RouteRequirement{}, "/v1/projects"); d.Outcome != GuardAllowAdmin {
		t.Fatalf("outcome = %q, want allow_admin", d.Outcome)
	}
}

func TestRouteGuard_AdminOnlyViewsRenderUnconditionally(t *testing.T) {
	g := newTestGuard(false)

	// No session at all.
	if d := g.Decide(nil, RouteRequirement{AdminOnly: true}, "/admin"); d.Outcome != GuardAllow {
		t.Fatalf("nil session: outcome = %q, want allow", d.Outcome)
	}
	// Non-admin session.
	sess := sessionFor(domain.Principal{Role: domain.RoleResident, UserType: domain.UserTypeResidents})
	if d := g.Decide(sess, RouteRequirement{AdminOnly: true}, "/admin"); d.Outcome != GuardAllow {
		t.Fatalf("resident session: outcome = %q, want allow", d.Outcome)
	}
}
