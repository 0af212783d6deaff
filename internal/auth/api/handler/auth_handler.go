package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frauddetect/fraud-detection/internal/auth/api/metrics"
	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
	"github.com/frauddetect/fraud-detection/internal/auth/core/ports"
)

// AuthHandler handles login and identity introspection.
type AuthHandler struct {
	auth   ports.AuthService
	tokens ports.TokenService
}

func NewAuthHandler(auth ports.AuthService, tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// Login authenticates a user and issues a bearer token.
//
// @Summary      Log in with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
		}
		return err
	}

	token, err := h.tokens.Issue(c.Request().Context(), user.Username, user.Role)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(user.Role).Inc()

	return c.JSON(http.StatusOK, loginResponse{Token: token, TokenType: "bearer"})
}

type meResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Me returns the identity bound to the presented token. The Authenticate
// middleware has already resolved it into the context.
//
// @Summary      Return the caller's identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)
	return c.JSON(http.StatusOK, meResponse{Username: username, Role: role})
}
