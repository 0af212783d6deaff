package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/frauddetect/fraud-detection/internal/auth/api/metrics"
	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
	"github.com/frauddetect/fraud-detection/internal/auth/core/ports"
)

// TokenHandler exposes token verification to dependent services.
type TokenHandler struct {
	tokens ports.TokenService
}

func NewTokenHandler(tokens ports.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Verify resolves a presented token. The response is always 200 with a
// structured payload: an invalid token is a normal negative outcome, not a
// transport error. The token arrives either as the "token" query parameter
// or in the Authorization header; scheme prefixes are stripped either way.
//
// @Summary      Verify a bearer token
// @Tags         auth
// @Produce      json
// @Param        token  query     string  false  "Token value"
// @Success      200    {object}  verifyResponse
// @Router       /verify-token [get]
func (h *TokenHandler) Verify(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		token = c.Request().Header.Get("Authorization")
	}
	if token == "" {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusOK, verifyResponse{Valid: false, Error: "No token provided"})
	}

	id, err := h.tokens.Verify(c.Request().Context(), token)
	if err != nil {
		// Registry faults (e.g. Redis down) are real errors; a token that
		// simply does not verify is a negative result.
		if !errors.Is(err, domain.ErrInvalidToken) {
			return err
		}
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusOK, verifyResponse{Valid: false})
	}

	metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	return c.JSON(http.StatusOK, verifyResponse{
		Valid:    true,
		Username: id.Username,
		Role:     id.Role,
	})
}
