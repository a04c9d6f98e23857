package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/constellation/social-api/internal/core/ports"
)

// UserHandler serves user listing and moderation endpoints.
type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  userListResponse
// @Failure      403    {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	page, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	list, err := h.accounts.ListUsers(c.Request().Context(), actor, ports.Page{Page: page, Limit: limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(list))
}

// AssignRole handles POST /api/users/:id/assign-role.
//
// @Summary      Assign a role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      assignRoleRequest  true  "New role"
// @Success      200   {object}  userInfo
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/assign-role [post]
func (h *UserHandler) AssignRole(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req assignRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.AssignRole(c.Request().Context(), actor, c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserInfo(user))
}

// Ban handles POST /api/users/:id/ban.
//
// @Summary      Ban a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userInfo
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id}/ban [post]
func (h *UserHandler) Ban(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	user, err := h.accounts.BanUser(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserInfo(user))
}

// Unban handles POST /api/users/:id/unban.
//
// @Summary      Lift a ban
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userInfo
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id}/unban [post]
func (h *UserHandler) Unban(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	user, err := h.accounts.UnbanUser(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserInfo(user))
}

// Reward handles POST /api/users/:id/reward.
//
// @Summary      Reward a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "User ID"
// @Param        body  body      rewardRequest  true  "Reward"
// @Success      200   {object}  userInfo
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/reward [post]
func (h *UserHandler) Reward(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req rewardRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.RewardUser(c.Request().Context(), actor, c.Param("id"), req.RewardDetails)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserInfo(user))
}

// ModerationLog handles GET /api/users/:id/moderation-log.
//
// @Summary      Moderation history of a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  moderationLogResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id}/moderation-log [get]
func (h *UserHandler) ModerationLog(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	events, err := h.accounts.ModerationLog(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toModerationLogResponse(id, events))
}
