package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frauddetect/fraud-detection/internal/auth/core/ports"
)

// UserHandler exposes admin-only user management.
type UserHandler struct {
	auth ports.AuthService
}

func NewUserHandler(auth ports.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=admin secretary agent"`
}

type userResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Create registers a new account.
//
// @Summary      Create a user (admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.CreateUser(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{Username: user.Username, Role: user.Role})
}

// Delete removes an account by username.
//
// @Summary      Delete a user (admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /users/{username} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	username := c.Param("username")
	if err := h.auth.DeleteUser(c.Request().Context(), username); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "user deleted"})
}
