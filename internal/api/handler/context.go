package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/constellation/social-api/internal/core/domain"
)

// ActorKey is the echo.Context key under which the Auth middleware stores the
// authenticated *domain.User.
const ActorKey = "actor"

// ctxActor returns the authenticated actor injected by the Auth middleware.
// A missing actor means the route was mounted without authentication and is
// reported as unauthenticated rather than a server fault.
func ctxActor(c echo.Context) (*domain.User, error) {
	actor, _ := c.Get(ActorKey).(*domain.User)
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return actor, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return nil
}

// pageParams reads the optional page and limit query parameters.
func pageParams(c echo.Context) (page, limit int, err error) {
	err = echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	return page, limit, nil
}
