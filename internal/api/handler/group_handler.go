package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/constellation/social-api/internal/core/ports"
)

type GroupHandler struct {
	groups ports.GroupService
}

func NewGroupHandler(groups ports.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// Create handles POST /api/groups.
//
// @Summary      Create a discussion group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGroupRequest  true  "Group name"
// @Success      201   {object}  groupInfo
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/groups [post]
func (h *GroupHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createGroupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	group, err := h.groups.CreateGroup(c.Request().Context(), actor, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toGroupInfo(group))
}

// AddMember handles POST /api/groups/:id/members.
//
// @Summary      Add a member to a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Group ID"
// @Param        body  body      addMemberRequest  true  "Member"
// @Success      200   {object}  groupInfo
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/groups/{id}/members [post]
func (h *GroupHandler) AddMember(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req addMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	group, err := h.groups.AddMember(c.Request().Context(), actor, c.Param("id"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGroupInfo(group))
}
