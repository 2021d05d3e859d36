package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	RequestIDHeader     = echo.HeaderXRequestID
	RequestIDContextKey = "request_id"
	LoggerContextKey    = "logger"

	maxRequestIDLength = 128
)

// RequestID accepts a caller supplied X-Request-ID or generates one, echoes
// it in the response and stores a logger tagged with it on the context.
func RequestID(logger *zap.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if requestID == "" || len(requestID) > maxRequestIDLength {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDContextKey, requestID)
			c.Set(LoggerContextKey, logger.With(zap.String("request_id", requestID)))
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDContextKey).(string); ok {
		return requestID
	}
	return ""
}

// Logger returns the request scoped logger, or a no-op logger outside a
// request.
func Logger(c echo.Context) *zap.Logger {
	if logger, ok := c.Get(LoggerContextKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}
