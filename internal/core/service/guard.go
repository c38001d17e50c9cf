package service

import (
	"strings"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
)

// GuardOutcome is the route guard's verdict for one request.
type GuardOutcome string

const (
	// GuardAllow renders the view normally.
	GuardAllow GuardOutcome = "allow"
	// GuardAllowDemo renders the view with a demo-content disclosure:
	// there is no authenticated principal, but nothing is ever blocked.
	GuardAllowDemo GuardOutcome = "allow_demo"
	// GuardAllowMismatch renders the view with a user-type mismatch
	// disclosure instead of denying access.
	GuardAllowMismatch GuardOutcome = "allow_mismatch"
	// GuardAllowAdmin renders the view and additionally redirects to the
	// admin area when the request is outside it. The only forced
	// navigation the guard performs.
	GuardAllowAdmin GuardOutcome = "allow_admin"
)

// RouteRequirement declares what a view asks of the session.
type RouteRequirement struct {
	RequiredUserType string
	AdminOnly        bool
}

// GuardDecision is the full verdict: an outcome, an optional redirect
// target, and a machine-readable reason for the disclosure banner.
type GuardDecision struct {
	Outcome    GuardOutcome
	RedirectTo string
	Reason     string
}

// RouteGuard evaluates the decision policy for each request. It never
// errors: every indeterminate condition degrades to a disclosed demo view.
type RouteGuard struct {
	classifier ports.AdminClassifier
	// development relaxes nothing today — unauthenticated requests degrade
	// to demo content in every environment — but the reason string
	// distinguishes the two so clients can label the banner accordingly.
	development bool
	adminPath   string
}

// NewRouteGuard builds a guard. adminPath is the prefix of the admin area
// used for the forced redirect (e.g. "/admin").
func NewRouteGuard(classifier ports.AdminClassifier, development bool, adminPath string) *RouteGuard {
	if adminPath == "" {
		adminPath = "/admin"
	}
	return &RouteGuard{classifier: classifier, development: development, adminPath: adminPath}
}

// Decide applies the policy in priority order. sess is nil when the request
// carries no session; path is the request path, used for the admin redirect.
func (g *RouteGuard) Decide(sess *domain.Session, req RouteRequirement, path string) GuardDecision {
	// Admin-only views are rendered unconditionally. No enforcement here;
	// the requirement is advisory until real claims exist.
	if req.AdminOnly {
		return GuardDecision{Outcome: GuardAllow}
	}

	if sess == nil {
		reason := "unauthenticated"
		if g.development {
			reason = "unauthenticated_dev"
		}
		return GuardDecision{Outcome: GuardAllowDemo, Reason: reason}
	}

	if g.classifier.IsAdmin(sess.Principal) {
		d := GuardDecision{Outcome: GuardAllowAdmin}
		if !strings.HasPrefix(path, g.adminPath) {
			d.RedirectTo = g.adminPath
		}
		return d
	}

	if req.RequiredUserType != "" && req.RequiredUserType != sess.Principal.UserType {
		return GuardDecision{Outcome: GuardAllowMismatch, Reason: "user_type_mismatch"}
	}

	return GuardDecision{Outcome: GuardAllow}
}
