package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "invoice-service/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Verifier validates a bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

type Middleware struct {
	verifier Verifier
	logger   *zap.Logger
}

func NewMiddleware(verifier Verifier, logger *zap.Logger) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{verifier: verifier, logger: logger}
}

// RequireJWT rejects requests without a valid Cognito ID token and exposes the
// token subject as the user id.
func (m *Middleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			claims, err := m.verifier.Verify(c.Request().Context(), token)
			if err != nil {
				m.logger.Debug("token rejected", zap.Error(err))
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyEmail, claims.Email)

			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func GetUserID(c echo.Context) (string, error) {
	userID := c.Get(ContextKeyUserID)
	if userID == nil {
		return "", apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", apperrors.InternalServer(msgInvalidUserIDCtx, nil)
	}

	return id, nil
}

// GetEmail returns the caller email, empty when the token carried none.
func GetEmail(c echo.Context) string {
	email, _ := c.Get(ContextKeyEmail).(string)
	return email
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
