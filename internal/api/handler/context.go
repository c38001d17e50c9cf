package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urbanrenew/renewal-platform/internal/api/middleware"
	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// ctxSession extracts the resolved session for operations that need an
// identity (casting a ballot, sending a message, updating a profile).
// Calling such an operation without a session is rejected loudly with 401,
// never silently ignored.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	return sess, nil
}
