package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	"portfolio/internal/metrics"
	"portfolio/internal/service"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler. cookieSecure controls the
// Secure attribute of the session cookie.
func NewAuthHandler(authService service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

// CredentialsRequest represents a login or admin initialization request.
type CredentialsRequest struct {
	Username string `json:"username" validate:"max=255"`
	Password string `json:"password" validate:"max=72"`
}

// CheckResponse reports whether the caller holds a live session.
type CheckResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Login godoc
// @Summary Log in as admin
// @Description Sets an HttpOnly session cookie valid for 24 hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Admin credentials"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.Get().RecordLogin("failure")
		return respondError(c, err)
	}
	metrics.Get().RecordLogin("success")

	c.SetCookie(auth.NewSessionCookie(token, h.cookieSecure))
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Login successful"})
}

// Check godoc
// @Summary Check the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} CheckResponse
// @Failure 401 {object} CheckResponse
// @Router /auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	cookie, err := c.Cookie(auth.SessionCookieName)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, CheckResponse{Authenticated: false})
	}
	if err := h.authService.CheckSession(c.Request().Context(), cookie.Value); err != nil {
		return c.JSON(http.StatusUnauthorized, CheckResponse{Authenticated: false})
	}
	return c.JSON(http.StatusOK, CheckResponse{Authenticated: true})
}

// Logout godoc
// @Summary Log out
// @Description Clears the session cookie. Always succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			c.Logger().Warnf("revoke session: %v", err)
		}
	}

	c.SetCookie(auth.ClearSessionCookie(h.cookieSecure))
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Logout successful"})
}

// InitAdmin godoc
// @Summary Create the admin account
// @Description Available only while INIT_ADMIN_ENABLED is true.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Admin credentials"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /init-admin [post]
func (h *AuthHandler) InitAdmin(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	if _, err := h.authService.InitAdmin(c.Request().Context(), req.Username, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Admin account created"})
}
