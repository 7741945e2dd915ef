package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/webware/award-board/internal/core/domain"
)

type stubAuthService struct {
	restoreFn func(ctx context.Context, token string) (*domain.Identity, error)
}

func (s *stubAuthService) Signup(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.Identity, error) {
	return "", nil, nil
}

func (s *stubAuthService) Restore(ctx context.Context, token string) (*domain.Identity, error) {
	return s.restoreFn(ctx, token)
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) ChangePassword(context.Context, string, string, string) error {
	return nil
}

func TestRestoreSession_ValidCookie(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		restoreFn: func(_ context.Context, token string) (*domain.Identity, error) {
			if token != "tok-123" {
				t.Fatalf("unexpected token: %s", token)
			}
			return &domain.Identity{Username: "alice", Awards: []int{418}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "board_session", Value: "tok-123"})
	c := e.NewContext(req, httptest.NewRecorder())

	mw := RestoreSession(auth, "board_session", zerolog.Nop())
	err := mw(func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		if !ok || id.Username != "alice" {
			t.Fatalf("expected identity in context, got %+v", id)
		}
		token, ok := SessionTokenFrom(c)
		if !ok || token != "tok-123" {
			t.Fatalf("expected session token in context")
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
}

func TestRestoreSession_NoCookieStaysAnonymous(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		restoreFn: func(context.Context, string) (*domain.Identity, error) {
			t.Fatalf("restore must not be called without a cookie")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := RestoreSession(auth, "board_session", zerolog.Nop())(func(c echo.Context) error {
		if _, ok := IdentityFrom(c); ok {
			t.Fatalf("request must stay anonymous")
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
}

func TestRestoreSession_ExpiredSessionStaysAnonymous(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{
		restoreFn: func(context.Context, string) (*domain.Identity, error) {
			return nil, domain.ErrSessionExpired
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "board_session", Value: "stale"})
	c := e.NewContext(req, httptest.NewRecorder())

	err := RestoreSession(auth, "board_session", zerolog.Nop())(func(c echo.Context) error {
		if _, ok := IdentityFrom(c); ok {
			t.Fatalf("expired session must not restore an identity")
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
}

func TestRequireLogin_RedirectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequireLogin()(func(c echo.Context) error {
		t.Fatalf("handler must not run for anonymous requests")
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %s", loc)
	}
}

func TestRequireLogout_RedirectsAuthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	SetIdentity(c, &domain.Identity{Username: "alice"})

	err := RequireLogout()(func(c echo.Context) error {
		t.Fatalf("handler must not run for authenticated requests")
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/home" {
		t.Fatalf("expected redirect to /home, got %s", loc)
	}
}
