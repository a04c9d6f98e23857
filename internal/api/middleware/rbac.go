package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/constellation/social-api/internal/api/handler"
	"github.com/constellation/social-api/internal/core/domain"
)

// RBAC rejects requests whose actor may not perform action at all, before the
// handler runs. Target-dependent rules are left to the services, which see
// the target record.
func RBAC(action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(handler.ActorKey).(*domain.User)
			if err := domain.Decide(domain.AccessRequest{Actor: actor, Action: action}).Err(); err != nil {
				return err
			}
			return next(c)
		}
	}
}
