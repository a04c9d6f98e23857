package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/constellation/social-api/internal/core/domain"
	"github.com/constellation/social-api/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccounts{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Password != "password123" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: domain.RolePeuple, Status: domain.DefaultStatus, PasswordHash: "secret-hash"}, nil
		},
	}
	h := NewAuthHandler(stub, &stubSessions{})

	c, rec := jsonContext(e, http.MethodPost, "/api/register", `{"name":"Alice","email":"alice@example.com","password":"password123"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["role"] != "peuple" || resp["is_banned"] != false {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccounts{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubSessions{})

	for name, body := range map[string]string{
		"not json":       "not-json",
		"short name":     `{"name":"Al","email":"al@example.com","password":"password123"}`,
		"bad email":      `{"name":"Alice","email":"alice","password":"password123"}`,
		"short password": `{"name":"Alice","email":"alice@example.com","password":"short"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := jsonContext(e, http.MethodPost, "/api/register", body)
			expectHTTPError(t, h.Register(c), http.StatusBadRequest)
		})
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccounts{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, &stubSessions{})

	c, _ := jsonContext(e, http.MethodPost, "/api/register", `{"name":"Alice","email":"alice@example.com","password":"password123"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	e := newTestEcho()
	sessions := &stubSessions{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if password != "password123" {
				return "", nil, domain.ErrInvalidCredentials
			}
			return "tok", &domain.User{ID: "u1", Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(&stubAccounts{}, sessions)

	c, rec := jsonContext(e, http.MethodPost, "/api/login", `{"email":"alice@example.com","password":"password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "tok" || resp.User.ID != "u1" || resp.User.Role != "admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, _ = jsonContext(e, http.MethodPost, "/api/login", `{"email":"alice@example.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	e := newTestEcho()
	actor := &domain.User{ID: "u1", Name: "Alice", Role: domain.RoleTour, Rewards: []domain.Reward{{Description: "Badge"}}}
	var loggedOut string
	sessions := &stubSessions{
		logoutFn: func(ctx context.Context, a *domain.User) error {
			loggedOut = a.ID
			return nil
		},
	}
	h := NewAuthHandler(&stubAccounts{}, sessions)

	c, rec := jsonContext(e, http.MethodGet, "/api/me", "")
	c.Set(ActorKey, actor)
	if err := h.Me(c); err != nil {
		t.Fatalf("Me error: %v", err)
	}
	var me userInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if me.ID != "u1" || me.Role != "tour" || len(me.Rewards) != 1 {
		t.Fatalf("unexpected profile: %+v", me)
	}

	c, rec = jsonContext(e, http.MethodPost, "/api/logout", "")
	c.Set(ActorKey, actor)
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if rec.Code != http.StatusOK || loggedOut != "u1" {
		t.Fatalf("logout not forwarded: code=%d user=%q", rec.Code, loggedOut)
	}

	// Without an actor the handler reports the request as unauthenticated.
	c, _ = jsonContext(e, http.MethodGet, "/api/me", "")
	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
