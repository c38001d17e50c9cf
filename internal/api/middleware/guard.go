package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urbanrenew/renewal-platform/internal/api/metrics"
	"github.com/urbanrenew/renewal-platform/internal/core/service"
)

// Response headers disclosing a degraded (demo) rendering to the client.
const (
	HeaderDemoMode   = "X-Demo-Mode"
	HeaderDemoReason = "X-Demo-Reason"
)

// ContextKeyGuardDecision exposes the guard's verdict to handlers.
const ContextKeyGuardDecision = "guard_decision"

// Guard applies the route guard policy to every request in a group. It
// never denies: unauthorized and indeterminate conditions degrade to a
// disclosed demo rendering. The admin redirect is the single exception —
// the only forced navigation the guard performs.
func Guard(g *service.RouteGuard, req service.RouteRequirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := g.Decide(SessionFrom(c), req, c.Request().URL.Path)
			metrics.GuardDecisionsTotal.WithLabelValues(string(decision.Outcome)).Inc()
			c.Set(ContextKeyGuardDecision, decision)

			switch decision.Outcome {
			case service.GuardAllowDemo, service.GuardAllowMismatch:
				c.Response().Header().Set(HeaderDemoMode, "true")
				c.Response().Header().Set(HeaderDemoReason, decision.Reason)
			case service.GuardAllowAdmin:
				if decision.RedirectTo != "" {
					return c.Redirect(http.StatusTemporaryRedirect, decision.RedirectTo)
				}
			}

			return next(c)
		}
	}
}
