package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/urbanrenew/renewal-platform/internal/api/metrics"
	"github.com/urbanrenew/renewal-platform/internal/core/ports"
	"github.com/urbanrenew/renewal-platform/internal/notify"
)

// AuthHandler exposes the authentication operations over HTTP.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// observeAuth times one authentication operation. Call the returned func
// when the operation finishes.
func observeAuth(operation string) func() {
	start := time.Now()
	return func() {
		metrics.AuthOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// SignUp creates a new account and opens a session for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	defer observeAuth("signup")()

	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.auth.SignUp(c.Request().Context(), ports.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		IDNumber: req.IDNumber,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(result.Session.Principal.UserType).Inc()
	metrics.SessionsOpenedTotal.WithLabelValues("signup").Inc()

	return c.JSON(http.StatusCreated, sessionResponse{
		SessionID: result.Session.ID,
		User:      &result.Session.Principal,
		Message:   notify.Text(c.Request().Context(), "signup", true),
	})
}

// SignIn opens a session from the email heuristic.
//
// @Summary      Sign in by email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	defer observeAuth("signin")()

	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("email", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("email", "success").Inc()
	metrics.SessionsOpenedTotal.WithLabelValues("email").Inc()

	return c.JSON(http.StatusOK, sessionResponse{
		SessionID: result.Session.ID,
		User:      &result.Session.Principal,
		Message:   notify.Text(c.Request().Context(), "signin", true),
	})
}

// SignInWithIDNumber is the credentialed login path.
//
// @Summary      Sign in by national ID number
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInIDRequest  true  "Credentials"
// @Success      200   {object}  loginIDResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login-id [post]
func (h *AuthHandler) SignInWithIDNumber(c echo.Context) error {
	defer observeAuth("signin_id")()

	var req signInIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.auth.SignInWithIDNumber(c.Request().Context(), req.IDNumber, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("id_number", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("id_number", "success").Inc()
	metrics.SessionsOpenedTotal.WithLabelValues("id_number").Inc()

	return c.JSON(http.StatusOK, loginIDResponse{
		AccessToken: result.Session.Token,
		SessionID:   result.Session.ID,
		User:        &result.Session.Principal,
	})
}

// SignOut clears the caller's session record: principal and bearer token
// are removed together. Signing out without a session succeeds quietly.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	defer observeAuth("signout")()

	sessionID := c.Request().Header.Get("X-Session-ID")
	if err := h.auth.SignOut(c.Request().Context(), sessionID); err != nil {
		return err
	}
	metrics.SessionsClosedTotal.Inc()

	return c.JSON(http.StatusOK, messageResponse{
		Message: notify.Text(c.Request().Context(), "signout", true),
	})
}

// ResetPassword reports success without making a durable change.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	defer observeAuth("reset_password")()

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Message: notify.Text(c.Request().Context(), "reset_password", true),
	})
}

// UpdateProfile shallow-merges the submitted fields into the current
// principal. Fails with 401 when no session is active.
//
// @Summary      Update the current user's profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	defer observeAuth("update_profile")()

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sessionID := c.Request().Header.Get("X-Session-ID")
	principal, err := h.auth.UpdateProfile(c.Request().Context(), sessionID, ports.ProfileUpdate{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		IDNumber: req.IDNumber,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		SessionID: sessionID,
		User:      principal,
		Message:   notify.Text(c.Request().Context(), "update_profile", true),
	})
}

// Me returns the current principal.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		SessionID: sess.ID,
		User:      &sess.Principal,
	})
}
