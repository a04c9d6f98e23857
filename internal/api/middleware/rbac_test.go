package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/constellation/social-api/internal/api/handler"
	"github.com/constellation/social-api/internal/core/domain"
)

func runRBAC(actor *domain.User, action domain.Action) (bool, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(handler.ActorKey, actor)
	}

	called := false
	err := RBAC(action)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRBAC_Allows(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin} {
		called, err := runRBAC(&domain.User{ID: "u1", Role: role}, domain.ActionBan)
		if err != nil || !called {
			t.Fatalf("%s should pass: called=%v err=%v", role, called, err)
		}
	}

	// Unprivileged actions pass for every role.
	called, err := runRBAC(&domain.User{ID: "u1", Role: domain.RolePeuple}, domain.ActionReadPosts)
	if err != nil || !called {
		t.Fatalf("peuple should read posts: called=%v err=%v", called, err)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	for _, role := range []domain.Role{domain.RolePeuple, domain.RoleConstellation, domain.RoleTornades, domain.RoleTour, domain.RoleBatview} {
		called, err := runRBAC(&domain.User{ID: "u1", Role: role}, domain.ActionListUsers)
		if called {
			t.Fatalf("%s should not reach next handler", role)
		}
		if !errors.Is(err, domain.ErrInsufficientPrivilege) {
			t.Fatalf("%s: expected ErrInsufficientPrivilege, got %v", role, err)
		}
	}
}

func TestRBAC_MissingActor(t *testing.T) {
	called, err := runRBAC(nil, domain.ActionCreatePost)
	if called || !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got called=%v err=%v", called, err)
	}
}
