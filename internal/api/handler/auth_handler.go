package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/constellation/social-api/internal/core/ports"
)

type AuthHandler struct {
	accounts ports.AccountService
	sessions ports.SessionService
}

func NewAuthHandler(accounts ports.AccountService, sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

// Register creates a new account with the default role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userInfo
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserInfo(user))
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: toUserInfo(user)})
}

// Logout revokes every token of the current user.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.sessions.Logout(c.Request().Context(), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "successfully logged out"})
}

// Me returns the current user's profile, rewards included.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userInfo
// @Failure      401  {object}  map[string]string
// @Router       /api/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserInfo(actor))
}
