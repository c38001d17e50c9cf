package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/urbanrenew/renewal-platform/internal/notify"
)

// Locale resolves the request's Accept-Language header so user-facing
// notices come back in the caller's language.
func Locale() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := notify.WithLocale(c.Request().Context(), c.Request().Header.Get("Accept-Language"))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
