package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/webware/award-board/internal/core/domain"
	"github.com/webware/award-board/internal/core/ports"
)

const (
	identityContextKey = "session.identity"
	tokenContextKey    = "session.token"
)

// RestoreSession resolves the session cookie into an Identity stored on the
// request context. Requests without a cookie, or with a lapsed session, pass
// through anonymously; protected routes decide what to do about that.
func RestoreSession(auth ports.AuthService, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			identity, err := auth.Restore(c.Request().Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionExpired) {
					log.Warn().Err(err).Msg("session restore failed")
				}
				return next(c)
			}

			SetIdentity(c, identity)
			SetSessionToken(c, cookie.Value)
			return next(c)
		}
	}
}

// SetIdentity stores the authenticated identity on the request context.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityContextKey, identity)
}

// SetSessionToken stores the raw session token on the request context.
func SetSessionToken(c echo.Context, token string) {
	c.Set(tokenContextKey, token)
}

// IdentityFrom returns the authenticated identity, if the request has one.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityContextKey).(*domain.Identity)
	return id, ok && id != nil
}

// SessionTokenFrom returns the raw session token the identity was restored from.
func SessionTokenFrom(c echo.Context) (string, bool) {
	token, ok := c.Get(tokenContextKey).(string)
	return token, ok && token != ""
}

// RequireLogin sends anonymous requests back to the landing page.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFrom(c); !ok {
				return c.Redirect(http.StatusFound, "/")
			}
			return next(c)
		}
	}
}

// RequireLogout sends authenticated requests to /home; signup and the landing
// page only make sense logged out.
func RequireLogout() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFrom(c); ok {
				return c.Redirect(http.StatusFound, "/home")
			}
			return next(c)
		}
	}
}
