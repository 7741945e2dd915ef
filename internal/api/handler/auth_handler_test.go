package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/webware/award-board/internal/api/award"
	"github.com/webware/award-board/internal/api/middleware"
	"github.com/webware/award-board/internal/core/domain"
)

type stubAuthService struct {
	signupFn  func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn   func(ctx context.Context, username, password string) (string, *domain.Identity, error)
	changeFn  func(ctx context.Context, username, oldPassword, newPassword string) error
	logoutFn  func(ctx context.Context, token string) error
	restoreFn func(ctx context.Context, token string) (*domain.Identity, error)
}

func (s *stubAuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	return s.signupFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Restore(ctx context.Context, token string) (*domain.Identity, error) {
	return s.restoreFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return s.changeFn(ctx, username, oldPassword, newPassword)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, *domain.Identity, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "tok-123", &domain.Identity{Username: "alice"}, nil
		},
	}
	h := NewAuthHandler(stub, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/login", `{"username":"alice","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != float64(200) {
		t.Fatalf("expected status 200, got %v", resp["status"])
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "board_session" || cookies[0].Value != "tok-123" {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Identity, error) {
			return "", nil, domain.ErrBadCredential
		},
	}
	h := NewAuthHandler(stub, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/login", `{"username":"alice","password":"bad"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "incorrect username or password") {
		t.Fatalf("expected failure message, got %q", rec.Body.String())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie on failed login")
	}
}

func TestAuthHandler_Login_UnknownUserSameMessage(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Identity, error) {
			return "", nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/login", `{"username":"ghost","password":"p"}`)
	_ = h.Login(c)

	// unknown user and wrong password are indistinguishable to the client
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "incorrect username or password") {
		t.Fatalf("expected the generic failure message, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, username, password string) (*domain.User, error) {
			if username != "a" || password != "p" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{Username: username}, nil
		},
	}
	h := NewAuthHandler(stub, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/signup", `{"username":"a","password":"p"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"success"`) {
		t.Fatalf("expected success status, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Signup_DuplicateFails(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/signup", `{"username":"a","password":"p"}`)
	_ = h.Signup(c)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"failed"`) {
		t.Fatalf("expected failed status, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Signup_MissingFieldsFail(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/signup", `{"username":"a"}`)
	_ = h.Signup(c)

	if !strings.Contains(rec.Body.String(), `"status":"failed"`) {
		t.Fatalf("expected failed status, got %q", rec.Body.String())
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	stub := &stubAuthService{
		changeFn: func(_ context.Context, username, oldPassword, newPassword string) error {
			if username != "alice" || oldPassword != "old" || newPassword != "new" {
				t.Fatalf("unexpected args: %s %s %s", username, oldPassword, newPassword)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/change_password", `{"old_password":"old","new_password":"new"}`)
	middleware.SetIdentity(c, &domain.Identity{Username: "alice"})
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !strings.Contains(rec.Body.String(), `"status":"success"`) {
		t.Fatalf("expected success, got %q", rec.Body.String())
	}
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	stub := &stubAuthService{
		changeFn: func(context.Context, string, string, string) error {
			return domain.ErrBadCredential
		},
	}
	h := NewAuthHandler(stub, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/change_password", `{"old_password":"nope","new_password":"new"}`)
	middleware.SetIdentity(c, &domain.Identity{Username: "alice"})
	_ = h.ChangePassword(c)

	if !strings.Contains(rec.Body.String(), `"status":"failed"`) {
		t.Fatalf("expected failed, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	loggedOut := ""
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			loggedOut = token
			return nil
		},
	}
	h := NewAuthHandler(stub, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodGet, "/logout", "")
	middleware.SetIdentity(c, &domain.Identity{Username: "alice"})
	middleware.SetSessionToken(c, "tok-123")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if loggedOut != "tok-123" {
		t.Fatalf("expected session tok-123 invalidated, got %q", loggedOut)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Fatalf("expected redirect to /, got %s", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Fatalf("expected cleared session cookie, got %v", cookies)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, "board_session", time.Hour)

	c, rec := newTestContext(t, http.MethodGet, "/me", "")
	middleware.SetIdentity(c, &domain.Identity{Username: "alice", Awards: []int{418, 429}})
	v := award.Attach(c)

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if v.Code() != http.StatusOK {
		t.Fatalf("viewing /me should earn the 200 award, got %d", v.Code())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}
