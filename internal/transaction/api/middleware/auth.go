package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/ports"
)

// Auth verifies the bearer credential against the Authentication Service and
// injects the resolved identity into the request context. An unreachable
// upstream yields 503, never 401: the request is rejected, but not because
// the credential was bad.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			id, err := verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrAuthServiceUnavailable) {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "authentication service unavailable")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
			}

			c.Set("username", id.Username)
			c.Set("role", id.Role)

			return next(c)
		}
	}
}
