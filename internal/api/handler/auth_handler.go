package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/webware/award-board/internal/api/award"
	"github.com/webware/award-board/internal/api/middleware"
	"github.com/webware/award-board/internal/core/domain"
	"github.com/webware/award-board/internal/core/ports"
)

type AuthHandler struct {
	auth       ports.AuthService
	cookieName string
	cookieTTL  time.Duration
}

func NewAuthHandler(auth ports.AuthService, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, cookieName: cookieName, cookieTTL: cookieTTL}
}

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" validate:"required"`
}

// statusResponse is the legacy envelope the board's clients expect:
// {"status": 200} on login success, {"status": "<message>"} everywhere else.
type statusResponse struct {
	Status any `json:"status"`
}

// Login authenticates a username/password pair and sets the session cookie.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  statusResponse
// @Failure      401   {object}  statusResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, statusResponse{Status: domain.ErrBadCredential.Error()})
	}

	token, _, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrBadCredential) {
			return c.JSON(http.StatusUnauthorized, statusResponse{Status: domain.ErrBadCredential.Error()})
		}
		return err
	}

	c.SetCookie(h.sessionCookie(token, h.cookieTTL))
	return c.JSON(http.StatusOK, statusResponse{Status: http.StatusOK})
}

// Signup creates a new account. Duplicate usernames fail softly with
// {"status":"failed"}, same shape the original clients parse.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  statusResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, statusResponse{Status: "failed"})
	}

	if _, err := h.auth.Signup(c.Request().Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserExists) || errors.Is(err, domain.ErrBadCredential) {
			return c.JSON(http.StatusOK, statusResponse{Status: "failed"})
		}
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "success"})
}

// ChangePassword swaps the password hash after verifying the old password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{Status: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusOK, statusResponse{Status: "failed"})
	}

	if err := h.auth.ChangePassword(c.Request().Context(), identity.Username, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrBadCredential) {
			return c.JSON(http.StatusOK, statusResponse{Status: "failed"})
		}
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "success"})
}

// Logout invalidates the session and sends the visitor back to the landing page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token, ok := middleware.SessionTokenFrom(c); ok {
		if err := h.auth.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}

	c.SetCookie(h.sessionCookie("", -time.Second))
	return c.Redirect(http.StatusFound, "/")
}

// Me returns the authenticated identity, awards included, and earns a 200.
func (h *AuthHandler) Me(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)
	award.FromContext(c).Terminal(http.StatusOK)
	return c.JSON(http.StatusOK, identity)
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
